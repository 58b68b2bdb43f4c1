package event

import "errors"

// Storage-level uniqueness violations.
var (
	ErrDuplicateShortID     = errors.New("event short id already exists")
	ErrDuplicateParticipant = errors.New("user already enrolled in event")
	ErrRoomHasActiveEvent   = errors.New("room already has an active event")
)
