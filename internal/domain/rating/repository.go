package rating

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Rating, bool, error)
	// Latest returns the most recently inserted row for the user.
	Latest(ctx context.Context, userID int64) (Rating, bool, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Rating, error)
	Insert(ctx context.Context, r Rating) (Rating, error)
	Update(ctx context.Context, r Rating) error
	// CountInsertedAfter counts the user's rows inserted after the given row.
	CountInsertedAfter(ctx context.Context, r Rating) (int, error)
}
