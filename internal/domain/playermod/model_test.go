package playermod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveStrikes_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mods := []PlayerMod{
		{Strikes: 2, StrikesExpireAt: expiry},
		{Strikes: 0, RatingDelta: 25, StrikesExpireAt: expiry.AddDate(1, 0, 0)},
		{Strikes: 1, StrikesExpireAt: expiry.AddDate(0, 1, 0)},
	}

	assert.Equal(t, 3, ActiveStrikes(mods, expiry.Add(-time.Nanosecond)))
	assert.Equal(t, 1, ActiveStrikes(mods, expiry))
	assert.Equal(t, 0, ActiveStrikes(mods, expiry.AddDate(0, 2, 0)))
}

func TestReasonRoundTrip(t *testing.T) {
	t.Parallel()

	for _, r := range []Reason{ReasonOther, ReasonNoShow, ReasonDropped, ReasonMisconduct, ReasonBonus} {
		parsed, err := ParseReason(r.String())
		assert.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	assert.False(t, Reason(42).Valid())
}
