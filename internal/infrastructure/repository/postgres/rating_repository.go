package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	qb "github.com/riskibarqy/gutbuster/internal/platform/querybuilder"
)

// ratingOrder is "most recently inserted first".
var ratingOrder = []string{"inserted_at DESC", "id DESC"}

type RatingRepository struct {
	db sqlx.ExtContext
}

func NewRatingRepository(db sqlx.ExtContext) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) GetByID(ctx context.Context, id int64) (rating.Rating, bool, error) {
	query, args, err := qb.Select("*").From("ratings").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return rating.Rating{}, false, fmt.Errorf("build get rating query: %w", err)
	}
	return r.getOne(ctx, "get rating", query, args)
}

func (r *RatingRepository) Latest(ctx context.Context, userID int64) (rating.Rating, bool, error) {
	query, args, err := qb.Select("*").From("ratings").
		Where(qb.Eq("user_id", userID)).
		OrderBy(ratingOrder...).
		Limit(1).
		ToSQL()
	if err != nil {
		return rating.Rating{}, false, fmt.Errorf("build latest rating query: %w", err)
	}
	return r.getOne(ctx, "get latest rating", query, args)
}

func (r *RatingRepository) getOne(ctx context.Context, op, query string, args []any) (rating.Rating, bool, error) {
	var row ratingTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rating.Rating{}, false, nil
		}
		return rating.Rating{}, false, translateError(err, op)
	}
	return ratingFromRow(row), true, nil
}

func (r *RatingRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]rating.Rating, error) {
	query, args, err := qb.Select("*").From("ratings").
		Where(qb.Eq("user_id", userID)).
		OrderBy(ratingOrder...).
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ratings query: %w", err)
	}

	var rows []ratingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, "list ratings")
	}

	out := make([]rating.Rating, 0, len(rows))
	for _, row := range rows {
		out = append(out, ratingFromRow(row))
	}
	return out, nil
}

func (r *RatingRepository) Insert(ctx context.Context, item rating.Rating) (rating.Rating, error) {
	query, args, err := qb.InsertModel("ratings", ratingInsertModel{
		UserID:     item.UserID,
		Rating:     item.Value,
		Deviation:  item.Deviation,
		InsertedAt: item.InsertedAt,
		UpdatedAt:  item.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return rating.Rating{}, fmt.Errorf("build insert rating query: %w", err)
	}

	var row ratingTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return rating.Rating{}, translateError(err, "insert rating")
	}
	return ratingFromRow(row), nil
}

func (r *RatingRepository) Update(ctx context.Context, item rating.Rating) error {
	query, args, err := qb.Update("ratings").
		Set("rating", item.Value).
		Set("deviation", item.Deviation).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update rating query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "update rating")
	}
	return nil
}

func (r *RatingRepository) CountInsertedAfter(ctx context.Context, item rating.Rating) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("ratings").
		Where(
			qb.Eq("user_id", item.UserID),
			qb.Expr("(inserted_at > ? OR (inserted_at = ? AND id > ?))", item.InsertedAt, item.InsertedAt, item.ID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count later ratings query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, translateError(err, "count later ratings")
	}
	return count, nil
}

func ratingFromRow(row ratingTableModel) rating.Rating {
	return rating.Rating{
		ID:         row.ID,
		UserID:     row.UserID,
		Value:      row.Rating,
		Deviation:  row.Deviation,
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
