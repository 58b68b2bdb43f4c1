package playermod

import (
	"fmt"
	"time"
)

// Reason classifies a mod. Stored values are fixed.
type Reason int16

const (
	ReasonOther      Reason = 0
	ReasonNoShow     Reason = 1
	ReasonDropped    Reason = 2
	ReasonMisconduct Reason = 3
	ReasonBonus      Reason = 4
)

func (r Reason) String() string {
	switch r {
	case ReasonOther:
		return "OTHER"
	case ReasonNoShow:
		return "NO_SHOW"
	case ReasonDropped:
		return "DROPPED"
	case ReasonMisconduct:
		return "MISCONDUCT"
	case ReasonBonus:
		return "BONUS"
	default:
		return fmt.Sprintf("Reason(%d)", int16(r))
	}
}

func (r Reason) Valid() bool {
	switch r {
	case ReasonOther, ReasonNoShow, ReasonDropped, ReasonMisconduct, ReasonBonus:
		return true
	default:
		return false
	}
}

func ParseReason(v string) (Reason, error) {
	for _, r := range []Reason{ReasonOther, ReasonNoShow, ReasonDropped, ReasonMisconduct, ReasonBonus} {
		if r.String() == v {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown reason %q", v)
}

// PlayerMod is a strike or bonus attached to a user.
type PlayerMod struct {
	ID              int64
	UserID          int64
	Reason          Reason
	Strikes         int
	RatingDelta     float64
	Note            string
	StrikesExpireAt time.Time
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// ActiveAt reports whether the mod's strikes still count at now.
func (m PlayerMod) ActiveAt(now time.Time) bool {
	return now.Before(m.StrikesExpireAt)
}

// ActiveStrikes sums strikes over mods that have not expired at now.
func ActiveStrikes(mods []PlayerMod, now time.Time) int {
	total := 0
	for _, m := range mods {
		if m.Strikes > 0 && m.ActiveAt(now) {
			total += m.Strikes
		}
	}
	return total
}
