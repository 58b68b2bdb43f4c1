package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
)

func TestFormatResolver_RandomIsSeeded(t *testing.T) {
	t.Parallel()

	formats := []room.Format{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	rm := room.Room{SelectionMode: room.SelectionRandom}

	a := NewFormatResolver(7)
	b := NewFormatResolver(7)
	for i := 0; i < 20; i++ {
		fa, okA, errA := a.Resolve(rm, formats, nil)
		fb, okB, errB := b.Resolve(rm, formats, nil)
		if errA != nil || errB != nil || !okA || !okB {
			t.Fatalf("unexpected resolve failure: %v %v", errA, errB)
		}
		if fa.ID != fb.ID {
			t.Fatalf("same seed diverged at draw %d: %d vs %d", i, fa.ID, fb.ID)
		}
	}
}

func TestFormatResolver_VoteThreshold(t *testing.T) {
	t.Parallel()

	formats := []room.Format{{ID: 1}, {ID: 2}}
	rm := room.Room{SelectionMode: room.SelectionVote, VotesRequired: 2}
	r := NewFormatResolver(1)

	votes := []event.Vote{{UserID: 1, FormatID: 2}, {UserID: 2, FormatID: 99}, {UserID: 3, FormatID: 1}}
	if _, ok, err := r.Resolve(rm, formats, votes); err != nil || ok {
		t.Fatalf("expected no decision below threshold, ok=%v err=%v", ok, err)
	}

	votes = append(votes, event.Vote{UserID: 4, FormatID: 1}, event.Vote{UserID: 5, FormatID: 2})
	got, ok, err := r.Resolve(rm, formats, votes)
	if err != nil || !ok {
		t.Fatalf("expected decision, ok=%v err=%v", ok, err)
	}
	if got.ID != 1 {
		t.Fatalf("first format to reach threshold should win, got %d", got.ID)
	}
}

func TestFormatResolver_NoFormats(t *testing.T) {
	t.Parallel()

	_, _, err := NewFormatResolver(1).Resolve(room.Room{}, nil, nil)
	if !errors.Is(err, ErrNoFormatsConfigured) {
		t.Fatalf("expected ErrNoFormatsConfigured, got %v", err)
	}
}

func TestCode(t *testing.T) {
	t.Parallel()

	if got := Code(errors.Join(errors.New("ctx"), ErrRoomBusy)); got != "ROOM_BUSY" {
		t.Fatalf("unexpected code %q", got)
	}
	if got := Code(errors.New("boom")); got != "INTERNAL" {
		t.Fatalf("unexpected code %q", got)
	}
}
