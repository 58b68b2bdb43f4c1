package room

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Room, bool, error)
	GetByChannelID(ctx context.Context, channelID string) (Room, bool, error)
	// LockByID reads the room and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id int64) (Room, bool, error)
	Create(ctx context.Context, r Room) (Room, error)
	Update(ctx context.Context, r Room) error
	SetActiveEvent(ctx context.Context, roomID int64, eventID *int64) error

	ListFormats(ctx context.Context, roomID int64) ([]Format, error)
	GetFormat(ctx context.Context, formatID int64) (Format, bool, error)
	CreateFormat(ctx context.Context, f Format) (Format, error)
}
