package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
)

type EventRepository struct {
	store view
}

func (r *EventRepository) GetByID(_ context.Context, id int64) (out event.Event, found bool, err error) {
	r.store.read(func(data *state) {
		out, found = data.events[id]
	})
	return out, found, nil
}

func (r *EventRepository) GetByShortID(_ context.Context, shortID string) (out event.Event, found bool, err error) {
	r.store.read(func(data *state) {
		for _, item := range data.events {
			if item.ShortID == shortID {
				out, found = item, true
				return
			}
		}
	})
	return out, found, nil
}

func (r *EventRepository) LockByID(ctx context.Context, id int64) (event.Event, bool, error) {
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Create(_ context.Context, item event.Event) (event.Event, error) {
	err := r.store.write(func(data *state) error {
		for _, existing := range data.events {
			if existing.ShortID == item.ShortID {
				return event.ErrDuplicateShortID
			}
			if existing.RoomID == item.RoomID && existing.Status != event.StatusEnded {
				return event.ErrRoomHasActiveEvent
			}
		}
		item.ID = data.nextID()
		data.events[item.ID] = item
		return nil
	})
	if err != nil {
		return event.Event{}, err
	}
	return item, nil
}

func (r *EventRepository) Update(_ context.Context, item event.Event) error {
	return r.store.write(func(data *state) error {
		if _, ok := data.events[item.ID]; ok {
			data.events[item.ID] = item
		}
		return nil
	})
}

func (r *EventRepository) ListActiveByUser(_ context.Context, userID int64) ([]event.Event, error) {
	out := make([]event.Event, 0)
	r.store.read(func(data *state) {
		for _, p := range data.participants {
			if p.UserID != userID {
				continue
			}
			if ev, ok := data.events[p.EventID]; ok && ev.Status.Active() {
				out = append(out, ev)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EventRepository) ListStartedWithoutFormat(_ context.Context, limit int) ([]event.Event, error) {
	out := make([]event.Event, 0)
	r.store.read(func(data *state) {
		for _, ev := range data.events {
			if ev.Status == event.StatusStarted && ev.FormatID == nil {
				out = append(out, ev)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *EventRepository) ListParticipants(_ context.Context, eventID int64) ([]event.Participant, error) {
	out := make([]event.Participant, 0)
	r.store.read(func(data *state) {
		for _, p := range data.participants {
			if p.EventID == eventID {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (r *EventRepository) GetParticipant(_ context.Context, eventID, userID int64) (out event.Participant, found bool, err error) {
	r.store.read(func(data *state) {
		idx := participantIndex(data, eventID, userID)
		if idx >= 0 {
			out, found = data.participants[idx], true
		}
	})
	return out, found, nil
}

func (r *EventRepository) CountParticipants(_ context.Context, eventID int64) (int, error) {
	count := 0
	r.store.read(func(data *state) {
		for _, p := range data.participants {
			if p.EventID == eventID {
				count++
			}
		}
	})
	return count, nil
}

func (r *EventRepository) AddParticipant(_ context.Context, p event.Participant) (event.Participant, error) {
	err := r.store.write(func(data *state) error {
		if participantIndex(data, p.EventID, p.UserID) >= 0 {
			return event.ErrDuplicateParticipant
		}
		p.ID = data.nextID()
		data.participants = append(data.participants, p)
		return nil
	})
	if err != nil {
		return event.Participant{}, err
	}
	return p, nil
}

func (r *EventRepository) RemoveParticipant(_ context.Context, eventID, userID int64) (bool, error) {
	removed := false
	_ = r.store.write(func(data *state) error {
		idx := participantIndex(data, eventID, userID)
		if idx >= 0 {
			data.participants = slices.Delete(data.participants, idx, idx+1)
			removed = true
		}
		return nil
	})
	return removed, nil
}

func (r *EventRepository) UpdateParticipant(_ context.Context, p event.Participant) error {
	return r.store.write(func(data *state) error {
		idx := participantIndex(data, p.EventID, p.UserID)
		if idx >= 0 {
			data.participants[idx].Score = p.Score
			data.participants[idx].UpdatedAt = p.UpdatedAt
		}
		return nil
	})
}

func (r *EventRepository) ListVotes(_ context.Context, eventID int64) ([]event.Vote, error) {
	out := make([]event.Vote, 0)
	r.store.read(func(data *state) {
		for _, v := range data.votes {
			if v.EventID == eventID {
				out = append(out, v)
			}
		}
	})
	return out, nil
}

// UpsertVote replaces the user's previous vote and moves it to the end of the
// cast order.
func (r *EventRepository) UpsertVote(_ context.Context, v event.Vote) (event.Vote, error) {
	_ = r.store.write(func(data *state) error {
		idx := voteIndex(data, v.EventID, v.UserID)
		if idx >= 0 {
			previous := data.votes[idx]
			v.ID = previous.ID
			v.InsertedAt = previous.InsertedAt
			data.votes = slices.Delete(data.votes, idx, idx+1)
		} else {
			v.ID = data.nextID()
		}
		data.votes = append(data.votes, v)
		return nil
	})
	return v, nil
}

func (r *EventRepository) DeleteVote(_ context.Context, eventID, userID int64) (bool, error) {
	deleted := false
	_ = r.store.write(func(data *state) error {
		idx := voteIndex(data, eventID, userID)
		if idx >= 0 {
			data.votes = slices.Delete(data.votes, idx, idx+1)
			deleted = true
		}
		return nil
	})
	return deleted, nil
}

func participantIndex(data *state, eventID, userID int64) int {
	return slices.IndexFunc(data.participants, func(p event.Participant) bool {
		return p.EventID == eventID && p.UserID == userID
	})
}

func voteIndex(data *state, eventID, userID int64) int {
	return slices.IndexFunc(data.votes, func(v event.Vote) bool {
		return v.EventID == eventID && v.UserID == userID
	})
}
