package playermod

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, m PlayerMod) (PlayerMod, error)
	ListByUser(ctx context.Context, userID int64) ([]PlayerMod, error)
	// ListActiveByUser returns mods whose strikes have not expired at now.
	ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]PlayerMod, error)
}
