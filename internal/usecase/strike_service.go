package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const maxModNoteLength = 500

type ApplyModInput struct {
	UserID          int64
	Reason          playermod.Reason
	Strikes         int
	RatingDelta     float64
	Note            string
	StrikesExpireAt time.Time
}

// AppliedMod is the stored mod plus the rating row it produced, if any.
type AppliedMod struct {
	Mod    playermod.PlayerMod
	Rating *rating.Rating
}

type StrikeService struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

func NewStrikeService(store Store, logger *logging.Logger) *StrikeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StrikeService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ActiveStrikeCount sums strikes on mods that have not expired at now. Expiry
// is evaluated lazily against the caller's clock.
func (s *StrikeService) ActiveStrikeCount(ctx context.Context, userID int64, now time.Time) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StrikeService.ActiveStrikeCount", attribute.Int64("user.id", userID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	if now.IsZero() {
		now = s.now()
	}

	repos := s.store.Repositories()
	if _, err = requireUser(ctx, repos, userID); err != nil {
		return 0, err
	}

	var mods []playermod.PlayerMod
	mods, err = repos.Mods.ListActiveByUser(ctx, userID, now.UTC())
	if err != nil {
		err = fmt.Errorf("list active mods: %w", err)
		return 0, err
	}

	return playermod.ActiveStrikes(mods, now), nil
}

// ApplyMod appends a mod. A non-zero rating delta also appends a rating row
// of current rating plus delta in the same transaction.
func (s *StrikeService) ApplyMod(ctx context.Context, input ApplyModInput) (AppliedMod, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StrikeService.ApplyMod", attribute.Int64("user.id", input.UserID))
	var err error
	defer func() { endUsecaseSpan(span, err) }()

	input.Note = strings.TrimSpace(input.Note)
	if err = validateApplyModInput(input); err != nil {
		return AppliedMod{}, err
	}

	var out AppliedMod
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := requireUser(ctx, repos, input.UserID); err != nil {
			return err
		}

		now := s.now().UTC()
		mod, err := repos.Mods.Insert(ctx, playermod.PlayerMod{
			UserID:          input.UserID,
			Reason:          input.Reason,
			Strikes:         input.Strikes,
			RatingDelta:     input.RatingDelta,
			Note:            input.Note,
			StrikesExpireAt: input.StrikesExpireAt.UTC(),
			InsertedAt:      now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("insert player mod: %w", err)
		}
		out.Mod = mod

		if input.RatingDelta == 0 {
			return nil
		}

		current, err := currentRating(ctx, repos, input.UserID)
		if err != nil {
			return err
		}
		adjusted, err := repos.Ratings.Insert(ctx, rating.Rating{
			UserID:     input.UserID,
			Value:      current.Value + input.RatingDelta,
			Deviation:  current.Deviation,
			InsertedAt: now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("insert adjusted rating: %w", err)
		}
		out.Rating = &adjusted
		return nil
	})
	if err != nil {
		return AppliedMod{}, err
	}

	s.logger.InfoContext(ctx, "player mod applied",
		"user_id", input.UserID,
		"reason", input.Reason,
		"strikes", input.Strikes,
		"rating_delta", input.RatingDelta,
	)
	return out, nil
}

// ListMods returns every mod of the user, expired ones included, newest first.
func (s *StrikeService) ListMods(ctx context.Context, userID int64) ([]playermod.PlayerMod, error) {
	repos := s.store.Repositories()
	if _, err := requireUser(ctx, repos, userID); err != nil {
		return nil, err
	}

	items, err := repos.Mods.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list player mods: %w", err)
	}
	return items, nil
}

func validateApplyModInput(input ApplyModInput) error {
	if input.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}
	if !input.Reason.Valid() {
		return fmt.Errorf("%w: invalid reason %d", ErrInvalidInput, int16(input.Reason))
	}
	if input.Strikes < 0 {
		return fmt.Errorf("%w: strikes must be >= 0", ErrInvalidInput)
	}
	if math.IsNaN(input.RatingDelta) || math.IsInf(input.RatingDelta, 0) {
		return fmt.Errorf("%w: rating_delta must be finite", ErrInvalidInput)
	}
	if input.Strikes > 0 && input.StrikesExpireAt.IsZero() {
		return fmt.Errorf("%w: strikes_expire_at is required when strikes > 0", ErrInvalidInput)
	}
	if len(input.Note) > maxModNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, maxModNoteLength)
	}
	return nil
}
