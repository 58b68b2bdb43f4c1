package usecase

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
)

// FormatResolver picks the format of a started event. It is safe for
// concurrent use; a fixed seed makes RANDOM selections reproducible.
type FormatResolver struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFormatResolver(seed uint64) *FormatResolver {
	return &FormatResolver{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Resolve returns the selected format, or false while a VOTE room has not
// reached its threshold. Votes for formats outside formats are ignored.
func (r *FormatResolver) Resolve(rm room.Room, formats []room.Format, votes []event.Vote) (room.Format, bool, error) {
	if len(formats) == 0 {
		return room.Format{}, false, ErrNoFormatsConfigured
	}

	ordered := append([]room.Format(nil), formats...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	switch rm.SelectionMode {
	case room.SelectionRandom:
		r.mu.Lock()
		idx := r.rng.IntN(len(ordered))
		r.mu.Unlock()
		return ordered[idx], true, nil
	case room.SelectionVote:
		byID := make(map[int64]room.Format, len(ordered))
		for _, f := range ordered {
			byID[f.ID] = f
		}
		valid := make([]event.Vote, 0, len(votes))
		for _, v := range votes {
			if _, ok := byID[v.FormatID]; ok {
				valid = append(valid, v)
			}
		}
		winner, ok := event.Winner(valid, rm.VotesRequired)
		if !ok {
			return room.Format{}, false, nil
		}
		return byID[winner], true, nil
	default:
		return room.Format{}, false, ErrInvalidInput
	}
}
