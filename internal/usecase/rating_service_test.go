package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

func TestRatingService_DefaultPrior(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	u := h.newUsers(t, 1)[0]

	got, err := h.ratings.CurrentRating(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault())
	assert.Equal(t, rating.DefaultValue, got.Value)
	assert.Equal(t, rating.DefaultDeviation, got.Deviation)
}

func TestRatingService_CommitRoundTrip(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	u := h.newUsers(t, 1)[0]

	committed, err := h.ratings.CommitRating(ctx, u.ID, 1623.5, 141.25)
	require.NoError(t, err)

	got, err := h.ratings.CurrentRating(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, committed, got)
}

func TestRatingService_CommitValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	u := h.newUsers(t, 1)[0]

	_, err := h.ratings.CommitRating(ctx, u.ID, math.NaN(), 100)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = h.ratings.CommitRating(ctx, u.ID, 1500, 0)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = h.ratings.CommitRating(ctx, 404, 1500, 100)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestRatingService_RetroactiveCorrectLatestRow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	u := h.newUsers(t, 1)[0]

	_, err := h.ratings.CommitRating(ctx, u.ID, 1500, 300)
	require.NoError(t, err)
	latest, err := h.ratings.CommitRating(ctx, u.ID, 1450, 280)
	require.NoError(t, err)

	correction, err := h.ratings.RetroactiveCorrect(ctx, latest.ID, 1510, 280)
	require.NoError(t, err)
	assert.Zero(t, correction.LaterRows)
	assert.InDelta(t, 1450, correction.Previous.Value, 1e-9)

	got, err := h.ratings.CurrentRating(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)
	assert.InDelta(t, 1510, got.Value, 1e-9)
}

func TestRatingService_RetroactiveCorrectReportsLaterRows(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	u := h.newUsers(t, 1)[0]

	old, err := h.ratings.CommitRating(ctx, u.ID, 1400, 300)
	require.NoError(t, err)
	_, err = h.ratings.CommitRating(ctx, u.ID, 1380, 290)
	require.NoError(t, err)
	newest, err := h.ratings.CommitRating(ctx, u.ID, 1360, 280)
	require.NoError(t, err)

	correction, err := h.ratings.RetroactiveCorrect(ctx, old.ID, 1500, 300)
	require.NoError(t, err)
	assert.Equal(t, 2, correction.LaterRows)

	got, err := h.ratings.CurrentRating(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID, "later rows are not recomputed")
	assert.InDelta(t, 1360, got.Value, 1e-9)

	history, err := h.ratings.RatingHistory(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.InDelta(t, 1500, history[2].Value, 1e-9)

	_, err = h.ratings.RetroactiveCorrect(ctx, 999, 1500, 300)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}
