package event

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a mogi. Stored values are fixed.
type Status int16

const (
	StatusLFG     Status = 0
	StatusStarted Status = 1
	StatusEnded   Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusLFG:
		return "LFG"
	case StatusStarted:
		return "STARTED"
	case StatusEnded:
		return "ENDED"
	default:
		return fmt.Sprintf("Status(%d)", int16(s))
	}
}

// Active reports whether the status is non-terminal.
func (s Status) Active() bool {
	switch s {
	case StatusLFG, StatusStarted:
		return true
	case StatusEnded:
		return false
	default:
		return false
	}
}

// CanTransitionTo lists the edges of the state machine.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusLFG:
		return next == StatusStarted
	case StatusStarted:
		return next == StatusEnded
	case StatusEnded:
		return false
	default:
		return false
	}
}

const ShortIDLength = 8

// Event is one mogi instance inside a room.
type Event struct {
	ID         int64
	ShortID    string
	RoomID     int64
	Status     Status
	FormatID   *int64
	InsertedAt time.Time
	UpdatedAt  time.Time
}

func (e Event) FormatResolved() bool {
	return e.FormatID != nil
}

// Participant is a user's membership in an event. RatingID references the
// rating row current at enrollment; nil means the user was unrated and the
// default prior applies.
type Participant struct {
	ID         int64
	EventID    int64
	UserID     int64
	RatingID   *int64
	Score      *int
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Substitute reports whether the participant finished without a score.
func (p Participant) Substitute() bool {
	return p.Score == nil
}

// Vote is a participant's current format preference.
type Vote struct {
	ID         int64
	EventID    int64
	UserID     int64
	FormatID   int64
	InsertedAt time.Time
	UpdatedAt  time.Time
}
