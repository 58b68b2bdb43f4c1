package httpapi

import (
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/domain/user"
)

type userDTO struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

type ratingDTO struct {
	ID         int64      `json:"id,omitempty"`
	UserID     int64      `json:"user_id"`
	Value      float64    `json:"value"`
	Deviation  float64    `json:"deviation"`
	IsDefault  bool       `json:"is_default"`
	InsertedAt *time.Time `json:"inserted_at,omitempty"`
}

type roomDTO struct {
	ID              int64  `json:"id"`
	ChannelID       string `json:"channel_id"`
	GuildID         string `json:"guild_id"`
	Enabled         bool   `json:"enabled"`
	PlayersRequired int    `json:"players_required"`
	SelectionMode   string `json:"selection_mode"`
	VotesRequired   int    `json:"votes_required"`
	ActiveEventID   *int64 `json:"active_event_id"`
}

type formatDTO struct {
	ID       int64    `json:"id"`
	RoomID   int64    `json:"room_id"`
	Name     string   `json:"name"`
	TeamMode string   `json:"team_mode"`
	Servers  []string `json:"servers"`
}

type eventDTO struct {
	ID         int64     `json:"id"`
	ShortID    string    `json:"short_id"`
	RoomID     int64     `json:"room_id"`
	Status     string    `json:"status"`
	FormatID   *int64    `json:"format_id"`
	InsertedAt time.Time `json:"inserted_at"`
}

type participantDTO struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RatingID   *int64    `json:"rating_id"`
	Score      *int      `json:"score"`
	InsertedAt time.Time `json:"inserted_at"`
}

type eventDetailDTO struct {
	Event  eventDTO         `json:"event"`
	Roster []participantDTO `json:"roster"`
}

type enrollDTO struct {
	Event       eventDTO       `json:"event"`
	Participant participantDTO `json:"participant"`
	Enrolled    int            `json:"enrolled"`
	Started     bool           `json:"started"`
}

type voteDTO struct {
	Event    eventDTO       `json:"event"`
	FormatID int64          `json:"format_id"`
	Tally    map[string]int `json:"tally"`
	Resolved bool           `json:"resolved"`
}

type endDTO struct {
	Event       eventDTO         `json:"event"`
	Ratings     []ratingDTO      `json:"ratings"`
	Substitutes []participantDTO `json:"substitutes"`
}

type correctionDTO struct {
	Rating    ratingDTO `json:"rating"`
	Previous  ratingDTO `json:"previous"`
	LaterRows int       `json:"later_rows"`
}

type playerModDTO struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Reason          string    `json:"reason"`
	Strikes         int       `json:"strikes"`
	RatingDelta     float64   `json:"rating_delta"`
	Note            string    `json:"note"`
	StrikesExpireAt time.Time `json:"strikes_expire_at"`
	InsertedAt      time.Time `json:"inserted_at"`
}

type strikesDTO struct {
	UserID        int64          `json:"user_id"`
	ActiveStrikes int            `json:"active_strikes"`
	Mods          []playerModDTO `json:"mods"`
}

type appliedModDTO struct {
	Mod    playerModDTO `json:"mod"`
	Rating *ratingDTO   `json:"rating,omitempty"`
}

type retryDTO struct {
	Checked  int `json:"checked"`
	Resolved int `json:"resolved"`
	Pending  int `json:"pending"`
	Failed   int `json:"failed"`
}

func userToDTO(v user.User) userDTO {
	return userDTO{ID: v.ID, ExternalID: v.ExternalID, Name: v.Name}
}

func ratingToDTO(v rating.Rating) ratingDTO {
	out := ratingDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		Value:     v.Value,
		Deviation: v.Deviation,
		IsDefault: v.IsDefault(),
	}
	if !v.IsDefault() {
		insertedAt := v.InsertedAt
		out.InsertedAt = &insertedAt
	}
	return out
}

func ratingsToDTO(items []rating.Rating) []ratingDTO {
	out := make([]ratingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ratingToDTO(item))
	}
	return out
}

func roomToDTO(v room.Room) roomDTO {
	return roomDTO{
		ID:              v.ID,
		ChannelID:       v.ChannelID,
		GuildID:         v.GuildID,
		Enabled:         v.Enabled,
		PlayersRequired: v.PlayersRequired,
		SelectionMode:   v.SelectionMode.String(),
		VotesRequired:   v.VotesRequired,
		ActiveEventID:   v.ActiveEventID,
	}
}

func formatToDTO(v room.Format) formatDTO {
	servers := v.Servers
	if servers == nil {
		servers = []string{}
	}
	return formatDTO{
		ID:       v.ID,
		RoomID:   v.RoomID,
		Name:     v.Name,
		TeamMode: v.TeamMode.String(),
		Servers:  servers,
	}
}

func eventToDTO(v event.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		ShortID:    v.ShortID,
		RoomID:     v.RoomID,
		Status:     v.Status.String(),
		FormatID:   v.FormatID,
		InsertedAt: v.InsertedAt,
	}
}

func eventsToDTO(items []event.Event) []eventDTO {
	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventToDTO(item))
	}
	return out
}

func participantToDTO(v event.Participant) participantDTO {
	return participantDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		RatingID:   v.RatingID,
		Score:      v.Score,
		InsertedAt: v.InsertedAt,
	}
}

func participantsToDTO(items []event.Participant) []participantDTO {
	out := make([]participantDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participantToDTO(item))
	}
	return out
}

func playerModToDTO(v playermod.PlayerMod) playerModDTO {
	return playerModDTO{
		ID:              v.ID,
		UserID:          v.UserID,
		Reason:          v.Reason.String(),
		Strikes:         v.Strikes,
		RatingDelta:     v.RatingDelta,
		Note:            v.Note,
		StrikesExpireAt: v.StrikesExpireAt,
		InsertedAt:      v.InsertedAt,
	}
}
