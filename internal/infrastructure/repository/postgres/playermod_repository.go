package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	qb "github.com/riskibarqy/gutbuster/internal/platform/querybuilder"
)

type PlayerModRepository struct {
	db sqlx.ExtContext
}

func NewPlayerModRepository(db sqlx.ExtContext) *PlayerModRepository {
	return &PlayerModRepository{db: db}
}

func (r *PlayerModRepository) Insert(ctx context.Context, m playermod.PlayerMod) (playermod.PlayerMod, error) {
	query, args, err := qb.InsertModel("player_mods", playerModInsertModel{
		UserID:          m.UserID,
		Reason:          int16(m.Reason),
		Strikes:         m.Strikes,
		RatingDelta:     m.RatingDelta,
		Note:            m.Note,
		StrikesExpireAt: m.StrikesExpireAt,
		InsertedAt:      m.InsertedAt,
		UpdatedAt:       m.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return playermod.PlayerMod{}, fmt.Errorf("build insert player mod query: %w", err)
	}

	var row playerModTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return playermod.PlayerMod{}, translateError(err, "insert player mod")
	}
	return playerModFromRow(row), nil
}

func (r *PlayerModRepository) ListByUser(ctx context.Context, userID int64) ([]playermod.PlayerMod, error) {
	return r.list(ctx, "list player mods", qb.Eq("user_id", userID))
}

func (r *PlayerModRepository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]playermod.PlayerMod, error) {
	return r.list(ctx, "list active player mods", qb.Eq("user_id", userID), qb.Gt("strikes_expire_at", now))
}

func (r *PlayerModRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]playermod.PlayerMod, error) {
	query, args, err := qb.Select("*").From("player_mods").
		Where(conditions...).
		OrderBy("inserted_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playerModTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, op)
	}

	out := make([]playermod.PlayerMod, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerModFromRow(row))
	}
	return out, nil
}

func playerModFromRow(row playerModTableModel) playermod.PlayerMod {
	return playermod.PlayerMod{
		ID:              row.ID,
		UserID:          row.UserID,
		Reason:          playermod.Reason(row.Reason),
		Strikes:         row.Strikes,
		RatingDelta:     row.RatingDelta,
		Note:            row.Note,
		StrikesExpireAt: row.StrikesExpireAt,
		InsertedAt:      row.InsertedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
