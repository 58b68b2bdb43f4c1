package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/usecase"
)

// Store runs repositories against a database handle or, inside WithinTx, a
// single transaction.
type Store struct {
	db        *sqlx.DB
	txTimeout time.Duration
}

var _ usecase.Store = (*Store)(nil)

func NewStore(db *sqlx.DB, txTimeout time.Duration) *Store {
	return &Store{db: db, txTimeout: txTimeout}
}

func (s *Store) Repositories() usecase.Repositories {
	return repositories(s.db)
}

// WithinTx bounds the transaction by the configured timeout. Row locks taken
// through LockByID are released on commit or rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrap(err, "begin tx"))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrap(err, "commit tx"))
	}
	return nil
}

func repositories(db sqlx.ExtContext) usecase.Repositories {
	return usecase.Repositories{
		Users:   NewUserRepository(db),
		Ratings: NewRatingRepository(db),
		Rooms:   NewRoomRepository(db),
		Events:  NewEventRepository(db),
		Mods:    NewPlayerModRepository(db),
	}
}
