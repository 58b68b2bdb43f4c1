package memory

import (
	"context"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
)

// RatingRepository keeps rows in insertion order.
type RatingRepository struct {
	store view
}

func (r *RatingRepository) GetByID(_ context.Context, id int64) (out rating.Rating, found bool, err error) {
	r.store.read(func(data *state) {
		for _, item := range data.ratings {
			if item.ID == id {
				out, found = item, true
				return
			}
		}
	})
	return out, found, nil
}

func (r *RatingRepository) Latest(_ context.Context, userID int64) (out rating.Rating, found bool, err error) {
	r.store.read(func(data *state) {
		for i := len(data.ratings) - 1; i >= 0; i-- {
			if data.ratings[i].UserID == userID {
				out, found = data.ratings[i], true
				return
			}
		}
	})
	return out, found, nil
}

func (r *RatingRepository) ListByUser(_ context.Context, userID int64, limit int) ([]rating.Rating, error) {
	out := make([]rating.Rating, 0)
	r.store.read(func(data *state) {
		for i := len(data.ratings) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				return
			}
			if data.ratings[i].UserID == userID {
				out = append(out, data.ratings[i])
			}
		}
	})
	return out, nil
}

func (r *RatingRepository) Insert(_ context.Context, item rating.Rating) (rating.Rating, error) {
	_ = r.store.write(func(data *state) error {
		item.ID = data.nextID()
		data.ratings = append(data.ratings, item)
		return nil
	})
	return item, nil
}

func (r *RatingRepository) Update(_ context.Context, item rating.Rating) error {
	return r.store.write(func(data *state) error {
		for i := range data.ratings {
			if data.ratings[i].ID == item.ID {
				data.ratings[i].Value = item.Value
				data.ratings[i].Deviation = item.Deviation
				data.ratings[i].UpdatedAt = item.UpdatedAt
				return nil
			}
		}
		return nil
	})
}

func (r *RatingRepository) CountInsertedAfter(_ context.Context, item rating.Rating) (int, error) {
	count := 0
	r.store.read(func(data *state) {
		seen := false
		for _, row := range data.ratings {
			if row.ID == item.ID {
				seen = true
				continue
			}
			if seen && row.UserID == item.UserID {
				count++
			}
		}
	})
	return count, nil
}
