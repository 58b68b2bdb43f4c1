package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (User, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (User, bool, error)
	Create(ctx context.Context, u User) (User, error)
	UpdateName(ctx context.Context, u User) error
}
