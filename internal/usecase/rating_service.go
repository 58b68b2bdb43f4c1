package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultRatingHistoryLimit = 20
	maxRatingHistoryLimit     = 200
)

type RatingService struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

func NewRatingService(store Store, logger *logging.Logger) *RatingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RatingService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Correction is the result of a retroactive correction. LaterRows counts the
// user's rating rows written after the corrected one; those rows were derived
// from the old value and are left untouched.
type Correction struct {
	Rating    rating.Rating
	Previous  rating.Rating
	LaterRows int
}

// CurrentRating returns the user's most recent rating, or the default prior
// when the user has never been rated.
func (s *RatingService) CurrentRating(ctx context.Context, userID int64) (rating.Rating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.CurrentRating", attribute.Int64("user.id", userID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	repos := s.store.Repositories()
	if _, err = requireUser(ctx, repos, userID); err != nil {
		return rating.Rating{}, err
	}

	var current rating.Rating
	current, err = currentRating(ctx, repos, userID)
	return current, err
}

func (s *RatingService) CommitRating(ctx context.Context, userID int64, value, deviation float64) (rating.Rating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.CommitRating", attribute.Int64("user.id", userID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if err = validateRatingValues(value, deviation); err != nil {
		return rating.Rating{}, err
	}

	var out rating.Rating
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := requireUser(ctx, repos, userID); err != nil {
			return err
		}
		now := s.now().UTC()
		inserted, err := repos.Ratings.Insert(ctx, rating.Rating{
			UserID:     userID,
			Value:      value,
			Deviation:  deviation,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("insert rating: %w", err)
		}
		out = inserted
		return nil
	})
	if err != nil {
		return rating.Rating{}, err
	}

	return out, nil
}

// RetroactiveCorrect rewrites one rating row in place. It does not recompute
// later rows.
func (s *RatingService) RetroactiveCorrect(ctx context.Context, ratingID int64, value, deviation float64) (Correction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.RetroactiveCorrect", attribute.Int64("rating.id", ratingID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if ratingID <= 0 {
		err = fmt.Errorf("%w: rating_id must be positive", ErrInvalidInput)
		return Correction{}, err
	}
	if err = validateRatingValues(value, deviation); err != nil {
		return Correction{}, err
	}

	var out Correction
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		existing, found, err := repos.Ratings.GetByID(ctx, ratingID)
		if err != nil {
			return fmt.Errorf("get rating: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: rating id=%d", ErrNotFound, ratingID)
		}

		corrected := existing
		corrected.Value = value
		corrected.Deviation = deviation
		corrected.UpdatedAt = s.now().UTC()
		if err := repos.Ratings.Update(ctx, corrected); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}

		later, err := repos.Ratings.CountInsertedAfter(ctx, existing)
		if err != nil {
			return fmt.Errorf("count later ratings: %w", err)
		}

		out = Correction{Rating: corrected, Previous: existing, LaterRows: later}
		return nil
	})
	if err != nil {
		return Correction{}, err
	}

	if out.LaterRows > 0 {
		s.logger.WarnContext(ctx, "corrected rating is not the latest row; later ratings were not recomputed",
			"rating_id", ratingID,
			"user_id", out.Rating.UserID,
			"later_rows", out.LaterRows,
			"old_value", out.Previous.Value,
			"new_value", out.Rating.Value,
		)
	}

	return out, nil
}

// RatingHistory lists the user's ratings, newest first.
func (s *RatingService) RatingHistory(ctx context.Context, userID int64, limit int) ([]rating.Rating, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.RatingHistory", attribute.Int64("user.id", userID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if limit <= 0 {
		limit = defaultRatingHistoryLimit
	}
	limit = min(limit, maxRatingHistoryLimit)

	repos := s.store.Repositories()
	if _, err = requireUser(ctx, repos, userID); err != nil {
		return nil, err
	}

	var items []rating.Rating
	items, err = repos.Ratings.ListByUser(ctx, userID, limit)
	if err != nil {
		err = fmt.Errorf("list ratings: %w", err)
		return nil, err
	}
	return items, nil
}

func currentRating(ctx context.Context, repos Repositories, userID int64) (rating.Rating, error) {
	latest, found, err := repos.Ratings.Latest(ctx, userID)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("get latest rating: %w", err)
	}
	if !found {
		return rating.Default(userID), nil
	}
	return latest, nil
}

func validateRatingValues(value, deviation float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: rating value must be finite", ErrInvalidInput)
	}
	if math.IsNaN(deviation) || math.IsInf(deviation, 0) || deviation <= 0 {
		return fmt.Errorf("%w: deviation must be a positive finite number", ErrInvalidInput)
	}
	return nil
}
