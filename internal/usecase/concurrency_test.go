package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

func TestConcurrentCreateEvent_OneActivePerRoom(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 2, room.SelectionRandom, 1, "FFA")

	const callers = 16
	var ok, busy, other atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Go(func() {
			_, err := h.events.CreateEvent(ctx, rm.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, usecase.ErrRoomBusy):
				busy.Add(1)
			default:
				other.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(callers-1), busy.Load())
	assert.Zero(t, other.Load())
}

func TestConcurrentEnroll_SameUserSucceedsOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 8, room.SelectionRandom, 1, "FFA")
	player := h.newUsers(t, 1)[0]

	ev, err := h.events.CreateEvent(ctx, rm.ID)
	require.NoError(t, err)

	var ok, dup atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Go(func() {
			_, err := h.events.Enroll(ctx, ev.ID, player.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, usecase.ErrAlreadyEnrolled):
				dup.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(19), dup.Load())
}

func TestConcurrentEnroll_NeverExceedsPlayersRequired(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 4, room.SelectionRandom, 1, "FFA")
	players := h.newUsers(t, 12)

	ev, err := h.events.CreateEvent(ctx, rm.ID)
	require.NoError(t, err)

	var ok, closed, started atomic.Int32
	var wg conc.WaitGroup
	for _, p := range players {
		userID := p.ID
		wg.Go(func() {
			res, err := h.events.Enroll(ctx, ev.ID, userID)
			switch {
			case err == nil:
				ok.Add(1)
				if res.Started {
					started.Add(1)
				}
			case errors.Is(err, usecase.ErrEventNotAcceptingEntries):
				closed.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(4), ok.Load())
	assert.Equal(t, int32(8), closed.Load())
	assert.Equal(t, int32(1), started.Load(), "exactly one enrollment triggers the start")

	roster, err := h.events.Roster(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 4)

	got, err := h.events.GetEventByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, event.StatusStarted, got.Status)
}
