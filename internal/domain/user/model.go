package user

import "time"

// User is a person identified by an external chat platform account.
type User struct {
	ID         int64
	ExternalID string
	Name       string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Identity is what the chat layer knows about a caller.
type Identity struct {
	ExternalID string
	Name       string
}
