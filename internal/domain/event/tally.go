package event

// Tally counts votes per format.
func Tally(votes []Vote) map[int64]int {
	counts := make(map[int64]int, len(votes))
	for _, v := range votes {
		counts[v.FormatID]++
	}
	return counts
}

// Winner returns the format whose count reached required first. Votes must
// be in insertion order; the winner is the format whose required-th vote
// arrived earliest.
func Winner(votes []Vote, required int) (int64, bool) {
	if required < 1 {
		return 0, false
	}

	counts := make(map[int64]int, len(votes))
	for _, v := range votes {
		counts[v.FormatID]++
		if counts[v.FormatID] == required {
			return v.FormatID, true
		}
	}
	return 0, false
}
