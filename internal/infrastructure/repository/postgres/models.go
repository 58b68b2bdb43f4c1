package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID         int64     `db:"id"`
	ExternalID string    `db:"external_id"`
	Name       string    `db:"name"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type userInsertModel struct {
	ExternalID string    `db:"external_id"`
	Name       string    `db:"name"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ratingTableModel struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Rating     float64   `db:"rating"`
	Deviation  float64   `db:"deviation"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ratingInsertModel struct {
	UserID     int64     `db:"user_id"`
	Rating     float64   `db:"rating"`
	Deviation  float64   `db:"deviation"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type roomTableModel struct {
	ID                  int64         `db:"id"`
	ChannelID           string        `db:"channel_id"`
	GuildID             string        `db:"guild_id"`
	Enabled             bool          `db:"enabled"`
	PlayersRequired     int           `db:"players_required"`
	FormatSelectionMode int16         `db:"format_selection_mode"`
	VotesRequired       int           `db:"votes_required"`
	ActiveEventID       sql.NullInt64 `db:"active_event_id"`
	InsertedAt          time.Time     `db:"inserted_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
}

type roomWriteModel struct {
	ChannelID           string    `db:"channel_id"`
	GuildID             string    `db:"guild_id"`
	Enabled             bool      `db:"enabled"`
	PlayersRequired     int       `db:"players_required"`
	FormatSelectionMode int16     `db:"format_selection_mode"`
	VotesRequired       int       `db:"votes_required"`
	InsertedAt          time.Time `db:"inserted_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type formatTableModel struct {
	ID         int64     `db:"id"`
	RoomID     int64     `db:"room_id"`
	Name       string    `db:"name"`
	TeamMode   int16     `db:"team_mode"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type formatInsertModel struct {
	RoomID     int64     `db:"room_id"`
	Name       string    `db:"name"`
	TeamMode   int16     `db:"team_mode"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type formatServerTableModel struct {
	FormatID int64  `db:"format_id"`
	Server   string `db:"server"`
}

type formatServerInsertModel struct {
	FormatID   int64     `db:"format_id"`
	Server     string    `db:"server"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type eventTableModel struct {
	ID         int64         `db:"id"`
	ShortID    string        `db:"short_id"`
	RoomID     int64         `db:"room_id"`
	Status     int16         `db:"status"`
	FormatID   sql.NullInt64 `db:"format_id"`
	InsertedAt time.Time     `db:"inserted_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type eventInsertModel struct {
	ShortID    string        `db:"short_id"`
	RoomID     int64         `db:"room_id"`
	Status     int16         `db:"status"`
	FormatID   sql.NullInt64 `db:"format_id"`
	InsertedAt time.Time     `db:"inserted_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type participantTableModel struct {
	ID         int64         `db:"id"`
	EventID    int64         `db:"event_id"`
	UserID     int64         `db:"user_id"`
	RatingID   sql.NullInt64 `db:"rating_id"`
	Score      sql.NullInt32 `db:"score"`
	InsertedAt time.Time     `db:"inserted_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type participantInsertModel struct {
	EventID    int64         `db:"event_id"`
	UserID     int64         `db:"user_id"`
	RatingID   sql.NullInt64 `db:"rating_id"`
	Score      sql.NullInt32 `db:"score"`
	InsertedAt time.Time     `db:"inserted_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type voteTableModel struct {
	ID         int64     `db:"id"`
	EventID    int64     `db:"event_id"`
	UserID     int64     `db:"user_id"`
	FormatID   int64     `db:"format_id"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type voteInsertModel struct {
	EventID    int64     `db:"event_id"`
	UserID     int64     `db:"user_id"`
	FormatID   int64     `db:"format_id"`
	InsertedAt time.Time `db:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type playerModTableModel struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Reason          int16     `db:"reason"`
	Strikes         int       `db:"strikes"`
	RatingDelta     float64   `db:"rating_delta"`
	Note            string    `db:"note"`
	StrikesExpireAt time.Time `db:"strikes_expire_at"`
	InsertedAt      time.Time `db:"inserted_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type playerModInsertModel struct {
	UserID          int64     `db:"user_id"`
	Reason          int16     `db:"reason"`
	Strikes         int       `db:"strikes"`
	RatingDelta     float64   `db:"rating_delta"`
	Note            string    `db:"note"`
	StrikesExpireAt time.Time `db:"strikes_expire_at"`
	InsertedAt      time.Time `db:"inserted_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
