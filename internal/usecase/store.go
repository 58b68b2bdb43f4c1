package usecase

import (
	"context"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/domain/user"
)

// Repositories is one consistent view over storage. Inside WithinTx every
// repository shares the same transaction.
type Repositories struct {
	Users   user.Repository
	Ratings rating.Repository
	Rooms   room.Repository
	Events  event.Repository
	Mods    playermod.Repository
}

// Store hands out repositories and runs transactional units.
type Store interface {
	Repositories() Repositories
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
