package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/domain/user"
	"github.com/riskibarqy/gutbuster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

var fixedNow = time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)

// sequenceIDGenerator hands out ids in order, then counts upward.
type sequenceIDGenerator struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) > 0 {
		out := g.ids[0]
		g.ids = g.ids[1:]
		return out, nil
	}
	g.next++
	return fmt.Sprintf("EV%06d", g.next), nil
}

type harness struct {
	store   *memory.Store
	users   *usecase.UserService
	rooms   *usecase.RoomService
	events  *usecase.EventService
	ratings *usecase.RatingService
	strikes *usecase.StrikeService
	ids     *sequenceIDGenerator
	seq     int
}

func (h *harness) nextSeq() int {
	h.seq++
	return h.seq
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithPolicy(t, rating.DefaultGlicko())
}

func newHarnessWithPolicy(t *testing.T, policy rating.Policy) *harness {
	t.Helper()

	store := memory.NewStore()
	logger := logging.NewNop()
	ids := &sequenceIDGenerator{}
	clock := func() time.Time { return fixedNow }

	h := &harness{
		store:   store,
		users:   usecase.NewUserService(store, logger),
		rooms:   usecase.NewRoomService(store, time.Minute, logger),
		events:  usecase.NewEventService(store, usecase.NewFormatResolver(42), policy, ids, logger),
		ratings: usecase.NewRatingService(store, logger),
		strikes: usecase.NewStrikeService(store, logger),
		ids:     ids,
	}
	h.users.SetClock(clock)
	h.rooms.SetClock(clock)
	h.events.SetClock(clock)
	h.ratings.SetClock(clock)
	h.strikes.SetClock(clock)
	return h
}

func (h *harness) newRoom(t *testing.T, players int, mode room.SelectionMode, votes int, formats ...string) (room.Room, []room.Format) {
	t.Helper()
	ctx := context.Background()

	rm, err := h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       fmt.Sprintf("channel-%d", h.nextSeq()),
		GuildID:         "guild",
		PlayersRequired: players,
		SelectionMode:   mode,
		VotesRequired:   votes,
	})
	require.NoError(t, err)

	out := make([]room.Format, 0, len(formats))
	for _, name := range formats {
		f, err := h.rooms.AddFormat(ctx, usecase.AddFormatInput{RoomID: rm.ID, Name: name, TeamMode: room.TeamFFA})
		require.NoError(t, err)
		out = append(out, f)
	}
	return rm, out
}

func (h *harness) newUsers(t *testing.T, n int) []user.User {
	t.Helper()

	out := make([]user.User, 0, n)
	for i := 0; i < n; i++ {
		seq := h.nextSeq()
		u, err := h.users.ResolveUser(context.Background(), user.Identity{
			ExternalID: fmt.Sprintf("ext-%d", seq),
			Name:       fmt.Sprintf("racer-%d", seq),
		})
		require.NoError(t, err)
		out = append(out, u)
	}
	return out
}
