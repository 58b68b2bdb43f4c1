package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlicko_WinnerGainsLoserDrops(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	out := DefaultGlicko().Rate([]Standing{
		{UserID: 1, Value: 1500, Deviation: 200, Score: 90},
		{UserID: 2, Value: 1500, Deviation: 200, Score: 40},
	}, at)

	require.Len(t, out, 2)
	assert.Greater(t, out[0].Value, 1500.0)
	assert.Less(t, out[1].Value, 1500.0)
	assert.InDelta(t, out[0].Value-1500, 1500-out[1].Value, 1e-9)
}

func TestGlicko_UpsetAgainstStrongerOpponentGainsMore(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	policy := DefaultGlicko()

	vsEqual := policy.Rate([]Standing{
		{UserID: 1, Value: 1500, Deviation: 150, Score: 10},
		{UserID: 2, Value: 1500, Deviation: 150, Score: 5},
	}, at)
	vsStronger := policy.Rate([]Standing{
		{UserID: 1, Value: 1500, Deviation: 150, Score: 10},
		{UserID: 2, Value: 1900, Deviation: 150, Score: 5},
	}, at)

	assert.Greater(t, vsStronger[0].Value-1500, vsEqual[0].Value-1500)
}

func TestGlicko_DeviationShrinksWithPlayAndGrowsWithIdleTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	policy := DefaultGlicko()

	played := policy.Rate([]Standing{
		{UserID: 1, Value: 1500, Deviation: 200, RatedAt: at, Score: 3},
		{UserID: 2, Value: 1500, Deviation: 200, RatedAt: at, Score: 2},
	}, at)
	assert.Less(t, played[0].Deviation, 200.0)

	fresh := policy.inflate(Standing{Deviation: 100, RatedAt: at.Add(-time.Hour)}, at)
	stale := policy.inflate(Standing{Deviation: 100, RatedAt: at.AddDate(0, -6, 0)}, at)
	assert.Greater(t, stale, fresh)
	assert.LessOrEqual(t, stale, DefaultDeviation)
}

func TestGlicko_LoneParticipantKeepsValue(t *testing.T) {
	t.Parallel()

	out := DefaultGlicko().Rate([]Standing{{UserID: 7, Value: 1620, Deviation: 80, Score: 1}}, time.Now())
	require.Len(t, out, 1)
	assert.Equal(t, 1620.0, out[0].Value)
	assert.Equal(t, int64(7), out[0].UserID)
}
