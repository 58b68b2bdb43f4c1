package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	qb "github.com/riskibarqy/gutbuster/internal/platform/querybuilder"
)

type EventRepository struct {
	db sqlx.ExtContext
}

func NewEventRepository(db sqlx.ExtContext) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}
	return r.getOne(ctx, "get event", query, args)
}

func (r *EventRepository) GetByShortID(ctx context.Context, shortID string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").Where(qb.Eq("short_id", shortID)).ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by short id query: %w", err)
	}
	return r.getOne(ctx, "get event by short id", query, args)
}

func (r *EventRepository) LockByID(ctx context.Context, id int64) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").Where(qb.Eq("id", id)).ForUpdate().ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build lock event query: %w", err)
	}
	return r.getOne(ctx, "lock event", query, args)
}

func (r *EventRepository) getOne(ctx context.Context, op, query string, args []any) (event.Event, bool, error) {
	var row eventTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, translateError(err, op)
	}
	return eventFromRow(row), true, nil
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) (event.Event, error) {
	query, args, err := qb.InsertModel("events", eventInsertModel{
		ShortID:    item.ShortID,
		RoomID:     item.RoomID,
		Status:     int16(item.Status),
		FormatID:   int64PtrToNull(item.FormatID),
		InsertedAt: item.InsertedAt,
		UpdatedAt:  item.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return event.Event{}, fmt.Errorf("build insert event query: %w", err)
	}

	var row eventTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return event.Event{}, translateError(err, "insert event")
	}
	return eventFromRow(row), nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	query, args, err := qb.Update("events").
		Set("status", int16(item.Status)).
		Set("format_id", int64PtrToNull(item.FormatID)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "update event")
	}
	return nil
}

func (r *EventRepository) ListActiveByUser(ctx context.Context, userID int64) ([]event.Event, error) {
	query, args, err := qb.Select("e.*").From("events e JOIN participants p ON p.event_id = e.id").
		Where(
			qb.Eq("p.user_id", userID),
			qb.In("e.status", int16(event.StatusLFG), int16(event.StatusStarted)),
		).
		OrderBy("e.id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active events query: %w", err)
	}
	return r.list(ctx, "list active events", query, args)
}

func (r *EventRepository) ListStartedWithoutFormat(ctx context.Context, limit int) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("status", int16(event.StatusStarted)), qb.IsNull("format_id")).
		OrderBy("id ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending format events query: %w", err)
	}
	return r.list(ctx, "list pending format events", query, args)
}

func (r *EventRepository) list(ctx context.Context, op, query string, args []any) ([]event.Event, error) {
	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, op)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) ListParticipants(ctx context.Context, eventID int64) ([]event.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, "list participants")
	}

	out := make([]event.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) GetParticipant(ctx context.Context, eventID, userID int64) (event.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(qb.Eq("event_id", eventID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return event.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Participant{}, false, nil
		}
		return event.Participant{}, false, translateError(err, "get participant")
	}
	return participantFromRow(row), true, nil
}

func (r *EventRepository) CountParticipants(ctx context.Context, eventID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("participants").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count participants query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, translateError(err, "count participants")
	}
	return count, nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, p event.Participant) (event.Participant, error) {
	query, args, err := qb.InsertModel("participants", participantInsertModel{
		EventID:    p.EventID,
		UserID:     p.UserID,
		RatingID:   int64PtrToNull(p.RatingID),
		Score:      intPtrToNull(p.Score),
		InsertedAt: p.InsertedAt,
		UpdatedAt:  p.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return event.Participant{}, fmt.Errorf("build insert participant query: %w", err)
	}

	var row participantTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return event.Participant{}, translateError(err, "insert participant")
	}
	return participantFromRow(row), nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("participants").
		Where(qb.Eq("event_id", eventID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete participant query: %w", err)
	}
	return r.execDelete(ctx, "delete participant", query, args)
}

func (r *EventRepository) UpdateParticipant(ctx context.Context, p event.Participant) error {
	query, args, err := qb.Update("participants").
		Set("score", intPtrToNull(p.Score)).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "update participant")
	}
	return nil
}

func (r *EventRepository) ListVotes(ctx context.Context, eventID int64) ([]event.Vote, error) {
	query, args, err := qb.Select("*").From("event_votes").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("updated_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list votes query: %w", err)
	}

	var rows []voteTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, "list votes")
	}

	out := make([]event.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, voteFromRow(row))
	}
	return out, nil
}

// UpsertVote replaces the user's previous vote in place, keeping its id and
// inserted_at.
func (r *EventRepository) UpsertVote(ctx context.Context, v event.Vote) (event.Vote, error) {
	query, args, err := qb.InsertModel("event_votes", voteInsertModel{
		EventID:    v.EventID,
		UserID:     v.UserID,
		FormatID:   v.FormatID,
		InsertedAt: v.InsertedAt,
		UpdatedAt:  v.UpdatedAt,
	}, "ON CONFLICT (event_id, user_id) DO UPDATE SET format_id = EXCLUDED.format_id, updated_at = EXCLUDED.updated_at RETURNING *")
	if err != nil {
		return event.Vote{}, fmt.Errorf("build upsert vote query: %w", err)
	}

	var row voteTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return event.Vote{}, translateError(err, "upsert vote")
	}
	return voteFromRow(row), nil
}

func (r *EventRepository) DeleteVote(ctx context.Context, eventID, userID int64) (bool, error) {
	query, args, err := qb.DeleteFrom("event_votes").
		Where(qb.Eq("event_id", eventID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete vote query: %w", err)
	}
	return r.execDelete(ctx, "delete vote", query, args)
}

func (r *EventRepository) execDelete(ctx context.Context, op, query string, args []any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, translateError(err, op)
	}
	return deletedAny(res, op)
}

func deletedAny(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, translateError(err, op)
	}
	return n > 0, nil
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:         row.ID,
		ShortID:    row.ShortID,
		RoomID:     row.RoomID,
		Status:     event.Status(row.Status),
		FormatID:   nullInt64Ptr(row.FormatID),
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func participantFromRow(row participantTableModel) event.Participant {
	return event.Participant{
		ID:         row.ID,
		EventID:    row.EventID,
		UserID:     row.UserID,
		RatingID:   nullInt64Ptr(row.RatingID),
		Score:      nullInt32Ptr(row.Score),
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func voteFromRow(row voteTableModel) event.Vote {
	return event.Vote{
		ID:         row.ID,
		EventID:    row.EventID,
		UserID:     row.UserID,
		FormatID:   row.FormatID,
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
