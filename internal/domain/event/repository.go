package event

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Event, bool, error)
	GetByShortID(ctx context.Context, shortID string) (Event, bool, error)
	// LockByID reads the event and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id int64) (Event, bool, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, e Event) error
	ListActiveByUser(ctx context.Context, userID int64) ([]Event, error)
	ListStartedWithoutFormat(ctx context.Context, limit int) ([]Event, error)

	// ListParticipants is ordered by insertion.
	ListParticipants(ctx context.Context, eventID int64) ([]Participant, error)
	GetParticipant(ctx context.Context, eventID, userID int64) (Participant, bool, error)
	CountParticipants(ctx context.Context, eventID int64) (int, error)
	AddParticipant(ctx context.Context, p Participant) (Participant, error)
	RemoveParticipant(ctx context.Context, eventID, userID int64) (bool, error)
	UpdateParticipant(ctx context.Context, p Participant) error

	// ListVotes is ordered by the time the vote was last cast.
	ListVotes(ctx context.Context, eventID int64) ([]Vote, error)
	UpsertVote(ctx context.Context, v Vote) (Vote, error)
	DeleteVote(ctx context.Context, eventID, userID int64) (bool, error)
}
