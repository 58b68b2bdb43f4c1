package room

import "errors"

// Storage-level uniqueness violations.
var (
	ErrDuplicateChannel    = errors.New("room channel already configured")
	ErrDuplicateFormatName = errors.New("format name already exists in room")
)
