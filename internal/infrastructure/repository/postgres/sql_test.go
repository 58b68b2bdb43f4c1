package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
)

func TestTranslateError(t *testing.T) {
	t.Run("maps known unique constraint", func(t *testing.T) {
		err := translateError(&pq.Error{Code: "23505", Constraint: "events_one_active_per_room"}, "insert event")
		if !errors.Is(err, event.ErrRoomHasActiveEvent) {
			t.Fatalf("expected ErrRoomHasActiveEvent, got %v", err)
		}
		var pqErr *pq.Error
		if !errors.As(err, &pqErr) {
			t.Fatalf("expected driver error to stay in the chain")
		}
	})

	t.Run("maps channel conflict", func(t *testing.T) {
		err := translateError(&pq.Error{Code: "23505", Constraint: "rooms_channel_id_key"}, "insert room")
		if !errors.Is(err, room.ErrDuplicateChannel) {
			t.Fatalf("expected ErrDuplicateChannel, got %v", err)
		}
	})

	t.Run("leaves unknown constraint as plain wrap", func(t *testing.T) {
		err := translateError(&pq.Error{Code: "23505", Constraint: "something_else"}, "insert")
		if errors.Is(err, room.ErrDuplicateChannel) || errors.Is(err, event.ErrDuplicateShortID) {
			t.Fatalf("unexpected domain mapping: %v", err)
		}
	})

	t.Run("keeps no rows detectable", func(t *testing.T) {
		err := translateError(sql.ErrNoRows, "get")
		if !isNotFound(err) {
			t.Fatalf("expected sql.ErrNoRows in chain, got %v", err)
		}
	})

	t.Run("nil passes through", func(t *testing.T) {
		if err := translateError(nil, "noop"); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestNullHelpers(t *testing.T) {
	id := int64(9)
	if got := nullInt64Ptr(int64PtrToNull(&id)); got == nil || *got != 9 {
		t.Fatalf("unexpected int64 round trip: %v", got)
	}
	if got := nullInt64Ptr(int64PtrToNull(nil)); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	score := 42
	if got := nullInt32Ptr(intPtrToNull(&score)); got == nil || *got != 42 {
		t.Fatalf("unexpected int round trip: %v", got)
	}
}
