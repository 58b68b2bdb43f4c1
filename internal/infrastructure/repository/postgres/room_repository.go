package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/gutbuster/internal/domain/room"
	qb "github.com/riskibarqy/gutbuster/internal/platform/querybuilder"
)

type RoomRepository struct {
	db sqlx.ExtContext
}

func NewRoomRepository(db sqlx.ExtContext) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (room.Room, bool, error) {
	query, args, err := qb.Select("*").From("rooms").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build get room query: %w", err)
	}
	return r.getOne(ctx, "get room", query, args)
}

func (r *RoomRepository) GetByChannelID(ctx context.Context, channelID string) (room.Room, bool, error) {
	query, args, err := qb.Select("*").From("rooms").Where(qb.Eq("channel_id", channelID)).ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build get room by channel query: %w", err)
	}
	return r.getOne(ctx, "get room by channel", query, args)
}

func (r *RoomRepository) LockByID(ctx context.Context, id int64) (room.Room, bool, error) {
	query, args, err := qb.Select("*").From("rooms").Where(qb.Eq("id", id)).ForUpdate().ToSQL()
	if err != nil {
		return room.Room{}, false, fmt.Errorf("build lock room query: %w", err)
	}
	return r.getOne(ctx, "lock room", query, args)
}

func (r *RoomRepository) getOne(ctx context.Context, op, query string, args []any) (room.Room, bool, error) {
	var row roomTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Room{}, false, nil
		}
		return room.Room{}, false, translateError(err, op)
	}
	return roomFromRow(row), true, nil
}

func (r *RoomRepository) Create(ctx context.Context, item room.Room) (room.Room, error) {
	query, args, err := qb.InsertModel("rooms", roomWriteModelFrom(item), "RETURNING *")
	if err != nil {
		return room.Room{}, fmt.Errorf("build insert room query: %w", err)
	}

	var row roomTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return room.Room{}, translateError(err, "insert room")
	}
	return roomFromRow(row), nil
}

// Update writes the room's settings. active_event_id is owned by
// SetActiveEvent and left untouched.
func (r *RoomRepository) Update(ctx context.Context, item room.Room) error {
	query, args, err := qb.Update("rooms").
		Set("guild_id", item.GuildID).
		Set("enabled", item.Enabled).
		Set("players_required", item.PlayersRequired).
		Set("format_selection_mode", int16(item.SelectionMode)).
		Set("votes_required", item.VotesRequired).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update room query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "update room")
	}
	return nil
}

func (r *RoomRepository) SetActiveEvent(ctx context.Context, roomID int64, eventID *int64) error {
	query, args, err := qb.Update("rooms").
		Set("active_event_id", int64PtrToNull(eventID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", roomID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set active event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "set active event")
	}
	return nil
}

func (r *RoomRepository) ListFormats(ctx context.Context, roomID int64) ([]room.Format, error) {
	query, args, err := qb.Select("*").From("event_formats").
		Where(qb.Eq("room_id", roomID)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list formats query: %w", err)
	}

	var rows []formatTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, "list formats")
	}

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	servers, err := r.serversByFormat(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]room.Format, 0, len(rows))
	for _, row := range rows {
		out = append(out, formatFromRow(row, servers[row.ID]))
	}
	return out, nil
}

func (r *RoomRepository) GetFormat(ctx context.Context, formatID int64) (room.Format, bool, error) {
	query, args, err := qb.Select("*").From("event_formats").Where(qb.Eq("id", formatID)).ToSQL()
	if err != nil {
		return room.Format{}, false, fmt.Errorf("build get format query: %w", err)
	}

	var row formatTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return room.Format{}, false, nil
		}
		return room.Format{}, false, translateError(err, "get format")
	}

	servers, err := r.serversByFormat(ctx, []any{row.ID})
	if err != nil {
		return room.Format{}, false, err
	}
	return formatFromRow(row, servers[row.ID]), true, nil
}

func (r *RoomRepository) CreateFormat(ctx context.Context, f room.Format) (room.Format, error) {
	query, args, err := qb.InsertModel("event_formats", formatInsertModel{
		RoomID:     f.RoomID,
		Name:       f.Name,
		TeamMode:   int16(f.TeamMode),
		InsertedAt: f.InsertedAt,
		UpdatedAt:  f.UpdatedAt,
	}, "RETURNING *")
	if err != nil {
		return room.Format{}, fmt.Errorf("build insert format query: %w", err)
	}

	var row formatTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		return room.Format{}, translateError(err, "insert format")
	}

	if len(f.Servers) > 0 {
		insert := qb.InsertInto("event_format_servers").Columns("format_id", "server", "inserted_at", "updated_at")
		for _, server := range f.Servers {
			insert.Values(row.ID, server, f.InsertedAt, f.UpdatedAt)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return room.Format{}, fmt.Errorf("build insert format servers query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return room.Format{}, translateError(err, "insert format servers")
		}
	}

	return formatFromRow(row, append([]string(nil), f.Servers...)), nil
}

func (r *RoomRepository) serversByFormat(ctx context.Context, formatIDs []any) (map[int64][]string, error) {
	out := make(map[int64][]string, len(formatIDs))
	if len(formatIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("format_id", "server").From("event_format_servers").
		Where(qb.In("format_id", formatIDs...)).
		OrderBy("format_id ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list format servers query: %w", err)
	}

	var rows []formatServerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, translateError(err, "list format servers")
	}
	for _, row := range rows {
		out[row.FormatID] = append(out[row.FormatID], row.Server)
	}
	return out, nil
}

func roomWriteModelFrom(item room.Room) roomWriteModel {
	return roomWriteModel{
		ChannelID:           item.ChannelID,
		GuildID:             item.GuildID,
		Enabled:             item.Enabled,
		PlayersRequired:     item.PlayersRequired,
		FormatSelectionMode: int16(item.SelectionMode),
		VotesRequired:       item.VotesRequired,
		InsertedAt:          item.InsertedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

func roomFromRow(row roomTableModel) room.Room {
	return room.Room{
		ID:              row.ID,
		ChannelID:       row.ChannelID,
		GuildID:         row.GuildID,
		Enabled:         row.Enabled,
		PlayersRequired: row.PlayersRequired,
		SelectionMode:   room.SelectionMode(row.FormatSelectionMode),
		VotesRequired:   row.VotesRequired,
		ActiveEventID:   nullInt64Ptr(row.ActiveEventID),
		InsertedAt:      row.InsertedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func formatFromRow(row formatTableModel, servers []string) room.Format {
	if servers == nil {
		servers = []string{}
	}
	return room.Format{
		ID:         row.ID,
		RoomID:     row.RoomID,
		Name:       row.Name,
		TeamMode:   room.TeamMode(row.TeamMode),
		Servers:    servers,
		InsertedAt: row.InsertedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
