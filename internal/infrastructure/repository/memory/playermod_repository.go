package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
)

type PlayerModRepository struct {
	store view
}

func (r *PlayerModRepository) Insert(_ context.Context, m playermod.PlayerMod) (playermod.PlayerMod, error) {
	_ = r.store.write(func(data *state) error {
		m.ID = data.nextID()
		data.mods = append(data.mods, m)
		return nil
	})
	return m, nil
}

func (r *PlayerModRepository) ListByUser(_ context.Context, userID int64) ([]playermod.PlayerMod, error) {
	return r.list(userID, func(playermod.PlayerMod) bool { return true }), nil
}

func (r *PlayerModRepository) ListActiveByUser(_ context.Context, userID int64, now time.Time) ([]playermod.PlayerMod, error) {
	return r.list(userID, func(m playermod.PlayerMod) bool { return m.ActiveAt(now) }), nil
}

// list returns matching mods newest first.
func (r *PlayerModRepository) list(userID int64, keep func(playermod.PlayerMod) bool) []playermod.PlayerMod {
	out := make([]playermod.PlayerMod, 0)
	r.store.read(func(data *state) {
		for i := len(data.mods) - 1; i >= 0; i-- {
			m := data.mods[i]
			if m.UserID == userID && keep(m) {
				out = append(out, m)
			}
		}
	})
	return out
}
