package rating

import (
	"math"
	"time"
)

// Standing is one participant's input to a rating update: the snapshot taken
// at enrollment and the final score.
type Standing struct {
	UserID    int64
	Value     float64
	Deviation float64
	// RatedAt is when the snapshot was recorded. Zero for unrated users.
	RatedAt time.Time
	Score   int
}

// Outcome is the post-event rating of one participant.
type Outcome struct {
	UserID    int64
	Value     float64
	Deviation float64
}

// Policy turns pre-event standings into post-event ratings, one outcome per
// standing and in the same order.
type Policy interface {
	Rate(standings []Standing, at time.Time) []Outcome
}

// Glicko is a Glicko-1 update that treats a mogi as a round robin: every pair
// of scored participants is one game won by the higher score.
type Glicko struct {
	// InflationPerDay is c² in the Glicko paper, applied per idle day.
	InflationPerDay float64
	MinDeviation    float64
	MaxDeviation    float64
}

func DefaultGlicko() Glicko {
	return Glicko{
		InflationPerDay: 34.6 * 34.6 / 30,
		MinDeviation:    30,
		MaxDeviation:    DefaultDeviation,
	}
}

var glickoQ = math.Ln10 / 400

func (g Glicko) Rate(standings []Standing, at time.Time) []Outcome {
	pre := make([]float64, len(standings))
	for i, s := range standings {
		pre[i] = g.inflate(s, at)
	}

	out := make([]Outcome, len(standings))
	for i, s := range standings {
		var dSum, delta float64
		for j, opp := range standings {
			if i == j {
				continue
			}
			gj := glickoG(pre[j])
			e := 1 / (1 + math.Pow(10, -gj*(s.Value-opp.Value)/400))
			dSum += gj * gj * e * (1 - e)
			delta += gj * (gameScore(s.Score, opp.Score) - e)
		}

		if dSum == 0 {
			out[i] = Outcome{UserID: s.UserID, Value: s.Value, Deviation: pre[i]}
			continue
		}

		invD2 := glickoQ * glickoQ * dSum
		denom := 1/(pre[i]*pre[i]) + invD2
		out[i] = Outcome{
			UserID:    s.UserID,
			Value:     s.Value + glickoQ/denom*delta,
			Deviation: g.clamp(math.Sqrt(1 / denom)),
		}
	}

	return out
}

// inflate grows the deviation with the time since the last rated event.
func (g Glicko) inflate(s Standing, at time.Time) float64 {
	rd := s.Deviation
	if rd <= 0 {
		rd = DefaultDeviation
	}
	if s.RatedAt.IsZero() || !at.After(s.RatedAt) {
		return g.clamp(rd)
	}
	days := at.Sub(s.RatedAt).Hours() / 24
	return g.clamp(math.Sqrt(rd*rd + g.InflationPerDay*days))
}

func (g Glicko) clamp(rd float64) float64 {
	if g.MaxDeviation > 0 && rd > g.MaxDeviation {
		return g.MaxDeviation
	}
	if rd < g.MinDeviation {
		return g.MinDeviation
	}
	return rd
}

func glickoG(rd float64) float64 {
	return 1 / math.Sqrt(1+3*glickoQ*glickoQ*rd*rd/(math.Pi*math.Pi))
}

func gameScore(own, opp int) float64 {
	switch {
	case own > opp:
		return 1
	case own < opp:
		return 0
	default:
		return 0.5
	}
}
