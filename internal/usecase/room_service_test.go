package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

func TestRoomService_ConfigureIsIdempotentUpsert(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	first, err := h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       "123",
		GuildID:         "g",
		PlayersRequired: 8,
		SelectionMode:   room.SelectionVote,
		VotesRequired:   4,
	})
	require.NoError(t, err)
	assert.True(t, first.Enabled)

	second, err := h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       "123",
		PlayersRequired: 12,
		SelectionMode:   room.SelectionRandom,
		VotesRequired:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 12, second.PlayersRequired)
	assert.Equal(t, "g", second.GuildID)

	got, err := h.rooms.GetRoom(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, room.SelectionRandom, got.SelectionMode)
}

func TestRoomService_ConfigureValidation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	_, err := h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{ChannelID: "1", PlayersRequired: 4, SelectionMode: room.SelectionVote, VotesRequired: 5})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{PlayersRequired: 4, VotesRequired: 1})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestRoomService_EnableCreatesDefaults(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	rm, err := h.rooms.EnableRoom(ctx, "555", "guild")
	require.NoError(t, err)
	assert.True(t, rm.Enabled)
	assert.Equal(t, room.DefaultPlayersRequired, rm.PlayersRequired)

	formats, err := h.rooms.ListFormats(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, formats, 1)
	assert.Equal(t, room.DefaultFormatName, formats[0].Name)
	assert.Equal(t, room.TeamFFA, formats[0].TeamMode)

	disabled, err := h.rooms.DisableRoom(ctx, "555")
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	again, err := h.rooms.EnableRoom(ctx, "555", "guild")
	require.NoError(t, err)
	assert.Equal(t, rm.ID, again.ID)
	assert.True(t, again.Enabled)

	formats, err = h.rooms.ListFormats(ctx, rm.ID)
	require.NoError(t, err)
	assert.Len(t, formats, 1, "re-enabling does not add another default format")
}

func TestRoomService_DisableUnknownRoom(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.rooms.DisableRoom(context.Background(), "nope")
	require.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = h.rooms.GetRoom(context.Background(), "nope")
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestRoomService_AddFormat(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 8, room.SelectionVote, 4)

	f, err := h.rooms.AddFormat(ctx, usecase.AddFormatInput{
		RoomID:   rm.ID,
		Name:     " 2v2 ",
		TeamMode: room.TeamHalfVsHalf,
		Servers:  []string{"eu-1", " eu-1", "na-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2v2", f.Name)
	assert.Equal(t, []string{"eu-1", "na-1"}, f.Servers)

	_, err = h.rooms.AddFormat(ctx, usecase.AddFormatInput{RoomID: rm.ID, Name: "2v2", TeamMode: room.TeamFFA})
	require.ErrorIs(t, err, usecase.ErrNameTaken)

	_, err = h.rooms.AddFormat(ctx, usecase.AddFormatInput{RoomID: rm.ID, Name: "bad", TeamMode: room.TeamMode(9)})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.rooms.AddFormat(ctx, usecase.AddFormatInput{RoomID: 999, Name: "x", TeamMode: room.TeamFFA})
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestRoomService_ConfigureRejectsRequirementTheLobbyAlreadyMeets(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 4, room.SelectionRandom, 0, "FFA")
	users := h.newUsers(t, 4)

	ev, err := h.events.CreateEvent(ctx, rm.ID)
	require.NoError(t, err)
	for _, u := range users[:3] {
		_, err := h.events.Enroll(ctx, ev.ID, u.ID)
		require.NoError(t, err)
	}

	for _, required := range []int{2, 3} {
		_, err = h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
			ChannelID:       rm.ChannelID,
			PlayersRequired: required,
			SelectionMode:   room.SelectionRandom,
		})
		require.ErrorIs(t, err, usecase.ErrInvalidInput, "players_required=%d", required)
	}

	got, err := h.rooms.GetRoom(ctx, rm.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.PlayersRequired)

	_, err = h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       rm.ChannelID,
		PlayersRequired: 6,
		SelectionMode:   room.SelectionRandom,
	})
	require.NoError(t, err)

	res, err := h.events.Enroll(ctx, ev.ID, users[3].ID)
	require.NoError(t, err)
	assert.False(t, res.Started)
	assert.Equal(t, 4, res.Enrolled)
}

func TestRoomService_ConfigureLowersRequirementAboveLobbySize(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	rm, _ := h.newRoom(t, 4, room.SelectionRandom, 0, "FFA")
	users := h.newUsers(t, 2)

	ev, err := h.events.CreateEvent(ctx, rm.ID)
	require.NoError(t, err)
	_, err = h.events.Enroll(ctx, ev.ID, users[0].ID)
	require.NoError(t, err)

	updated, err := h.rooms.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       rm.ChannelID,
		PlayersRequired: 2,
		SelectionMode:   room.SelectionRandom,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.PlayersRequired)

	res, err := h.events.Enroll(ctx, ev.ID, users[1].ID)
	require.NoError(t, err)
	assert.True(t, res.Started)
	assert.Equal(t, 2, res.Enrolled)
}
