package usecase

import (
	"errors"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnauthorized          = errors.New("unauthorized")

	ErrRoomBusy                 = errors.New("room already has an active event")
	ErrRoomDisabled             = errors.New("room is disabled")
	ErrEventNotAcceptingEntries = errors.New("event is not accepting entries")
	ErrAlreadyEnrolled          = errors.New("user already enrolled")
	ErrNotEnrolled              = errors.New("user not enrolled")
	ErrInvalidTransition        = errors.New("invalid event transition")
	ErrNoFormatsConfigured      = errors.New("no formats configured")
	ErrNameTaken                = errors.New("name already taken")

	ErrDuplicateChannel = room.ErrDuplicateChannel
	ErrDuplicateShortID = event.ErrDuplicateShortID
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidInput, "INVALID_INPUT"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrDependencyUnavailable, "DEPENDENCY_UNAVAILABLE"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrRoomBusy, "ROOM_BUSY"},
	{ErrRoomDisabled, "ROOM_DISABLED"},
	{ErrEventNotAcceptingEntries, "EVENT_NOT_ACCEPTING_ENTRIES"},
	{ErrAlreadyEnrolled, "ALREADY_ENROLLED"},
	{ErrNotEnrolled, "NOT_ENROLLED"},
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrNoFormatsConfigured, "NO_FORMATS_CONFIGURED"},
	{ErrNameTaken, "NAME_TAKEN"},
	{ErrDuplicateChannel, "DUPLICATE_CHANNEL"},
	{ErrDuplicateShortID, "DUPLICATE_SHORT_ID"},
}

// Code returns the stable machine code of the first known error in err's
// chain, or "INTERNAL" when none matches.
func Code(err error) string {
	for _, item := range errorCodes {
		if errors.Is(err, item.err) {
			return item.code
		}
	}
	return "INTERNAL"
}
