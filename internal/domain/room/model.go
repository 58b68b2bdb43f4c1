package room

import (
	"fmt"
	"time"
)

// SelectionMode decides how a started event picks its format. Stored values
// are fixed.
type SelectionMode int16

const (
	SelectionVote   SelectionMode = 0
	SelectionRandom SelectionMode = 1
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionVote:
		return "VOTE"
	case SelectionRandom:
		return "RANDOM"
	default:
		return fmt.Sprintf("SelectionMode(%d)", int16(m))
	}
}

func (m SelectionMode) Valid() bool {
	switch m {
	case SelectionVote, SelectionRandom:
		return true
	default:
		return false
	}
}

// ParseSelectionMode accepts the names returned by String.
func ParseSelectionMode(v string) (SelectionMode, error) {
	switch v {
	case "VOTE", "vote":
		return SelectionVote, nil
	case "RANDOM", "random":
		return SelectionRandom, nil
	default:
		return 0, fmt.Errorf("unknown selection mode %q", v)
	}
}

// TeamMode is the team-balancing rule of a format. Stored values are fixed.
type TeamMode int16

const (
	TeamFFA          TeamMode = 0
	TeamHalfVsHalf   TeamMode = 1
	TeamQuarterSplit TeamMode = 2
)

func (m TeamMode) String() string {
	switch m {
	case TeamFFA:
		return "FFA"
	case TeamHalfVsHalf:
		return "HALF_VS_HALF"
	case TeamQuarterSplit:
		return "QUARTER_SPLIT"
	default:
		return fmt.Sprintf("TeamMode(%d)", int16(m))
	}
}

func (m TeamMode) Valid() bool {
	switch m {
	case TeamFFA, TeamHalfVsHalf, TeamQuarterSplit:
		return true
	default:
		return false
	}
}

func ParseTeamMode(v string) (TeamMode, error) {
	switch v {
	case "FFA", "ffa":
		return TeamFFA, nil
	case "HALF_VS_HALF", "half_vs_half", "2v2":
		return TeamHalfVsHalf, nil
	case "QUARTER_SPLIT", "quarter_split", "4v4":
		return TeamQuarterSplit, nil
	default:
		return 0, fmt.Errorf("unknown team mode %q", v)
	}
}

// Room is a channel configured to host mogis.
type Room struct {
	ID              int64
	ChannelID       string
	GuildID         string
	Enabled         bool
	PlayersRequired int
	SelectionMode   SelectionMode
	VotesRequired   int
	ActiveEventID   *int64
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// Format is a named ruleset owned by one room.
type Format struct {
	ID         int64
	RoomID     int64
	Name       string
	TeamMode   TeamMode
	Servers    []string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

const (
	DefaultPlayersRequired = 8
	DefaultVotesRequired   = 4
	DefaultFormatName      = "FFA"
)

// Settings is the mutable part of a room's configuration.
type Settings struct {
	PlayersRequired int
	SelectionMode   SelectionMode
	VotesRequired   int
}

func DefaultSettings() Settings {
	return Settings{
		PlayersRequired: DefaultPlayersRequired,
		SelectionMode:   SelectionVote,
		VotesRequired:   DefaultVotesRequired,
	}
}

// Validate checks the invariants between the settings fields.
func (s Settings) Validate() error {
	if s.PlayersRequired < 2 {
		return fmt.Errorf("players required must be >= 2, got %d", s.PlayersRequired)
	}
	if !s.SelectionMode.Valid() {
		return fmt.Errorf("invalid selection mode %d", int16(s.SelectionMode))
	}
	if s.SelectionMode == SelectionVote {
		if s.VotesRequired < 1 {
			return fmt.Errorf("votes required must be >= 1, got %d", s.VotesRequired)
		}
		if s.VotesRequired > s.PlayersRequired {
			return fmt.Errorf("votes required (%d) cannot exceed players required (%d)", s.VotesRequired, s.PlayersRequired)
		}
	}
	return nil
}

func (r Room) Settings() Settings {
	return Settings{
		PlayersRequired: r.PlayersRequired,
		SelectionMode:   r.SelectionMode,
		VotesRequired:   r.VotesRequired,
	}
}
