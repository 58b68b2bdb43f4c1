package room

// TeamCount is the number of teams a mode produces.
func (m TeamMode) TeamCount() int {
	switch m {
	case TeamFFA:
		return 1
	case TeamHalfVsHalf:
		return 2
	case TeamQuarterSplit:
		return 4
	default:
		return 1
	}
}

// AssignTeams splits roster into contiguous near-equal teams in roster order.
// When the roster does not divide evenly the lowest-indexed teams take one
// extra member each.
func AssignTeams[T any](mode TeamMode, roster []T) [][]T {
	count := mode.TeamCount()
	teams := make([][]T, count)

	base := len(roster) / count
	extra := len(roster) % count
	next := 0
	for i := range teams {
		size := base
		if i < extra {
			size++
		}
		teams[i] = append([]T(nil), roster[next:next+size]...)
		next += size
	}

	return teams
}
