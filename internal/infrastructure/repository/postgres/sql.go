package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/domain/user"
)

const sqlStateUniqueViolation = "23505"

// uniqueConstraintErrors maps constraint names from db/migrations to domain
// conflict errors.
var uniqueConstraintErrors = map[string]error{
	"users_external_id_key":             user.ErrDuplicateExternalID,
	"users_name_key":                    user.ErrDuplicateName,
	"rooms_channel_id_key":              room.ErrDuplicateChannel,
	"event_formats_room_id_name_key":    room.ErrDuplicateFormatName,
	"events_short_id_key":               event.ErrDuplicateShortID,
	"events_one_active_per_room":        event.ErrRoomHasActiveEvent,
	"participants_user_id_event_id_key": event.ErrDuplicateParticipant,
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// translateError wraps a driver error with op. Unique violations on known
// constraints also match their domain error.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, op)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateUniqueViolation {
		if domainErr, ok := uniqueConstraintErrors[pqErr.Constraint]; ok {
			return fmt.Errorf("%w: %w", domainErr, wrapped)
		}
	}
	return wrapped
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt32Ptr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int32)
	return &out
}

func intPtrToNull(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}
