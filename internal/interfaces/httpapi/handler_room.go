package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/gutbuster/internal/domain/room"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

type configureRoomRequest struct {
	GuildID         string `json:"guild_id" validate:"max=64"`
	PlayersRequired int    `json:"players_required" validate:"required,min=2,max=64"`
	SelectionMode   string `json:"selection_mode" validate:"required,oneof=VOTE RANDOM vote random"`
	VotesRequired   int    `json:"votes_required" validate:"min=0,max=64"`
}

type addFormatRequest struct {
	Name     string   `json:"name" validate:"required,max=64"`
	TeamMode string   `json:"team_mode" validate:"required"`
	Servers  []string `json:"servers" validate:"max=32,dive,required,max=128"`
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoom")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "get room failed", err, "channel_id", channelID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(rm))
}

func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormats")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "list formats failed", err, "channel_id", channelID)
		return
	}

	formats, err := h.roomService.ListFormats(ctx, rm.ID)
	if err != nil {
		h.fail(ctx, w, "list formats failed", err, "room_id", rm.ID)
		return
	}

	items := make([]formatDTO, 0, len(formats))
	for _, f := range formats {
		items = append(items, formatToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ConfigureRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfigureRoom")
	defer span.End()

	var req configureRoomRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	mode, err := room.ParseSelectionMode(req.SelectionMode)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.ConfigureRoom(ctx, usecase.ConfigureRoomInput{
		ChannelID:       channelID,
		GuildID:         req.GuildID,
		PlayersRequired: req.PlayersRequired,
		SelectionMode:   mode,
		VotesRequired:   req.VotesRequired,
	})
	if err != nil {
		h.fail(ctx, w, "configure room failed", err, "channel_id", channelID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(rm))
}

func (h *Handler) EnableRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnableRoom")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.EnableRoom(ctx, channelID, strings.TrimSpace(r.URL.Query().Get("guild_id")))
	if err != nil {
		h.fail(ctx, w, "enable room failed", err, "channel_id", channelID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(rm))
}

func (h *Handler) DisableRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DisableRoom")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.DisableRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "disable room failed", err, "channel_id", channelID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roomToDTO(rm))
}

func (h *Handler) AddFormat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFormat")
	defer span.End()

	var req addFormatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	teamMode, err := room.ParseTeamMode(req.TeamMode)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "add format failed", err, "channel_id", channelID)
		return
	}

	format, err := h.roomService.AddFormat(ctx, usecase.AddFormatInput{
		RoomID:   rm.ID,
		Name:     req.Name,
		TeamMode: teamMode,
		Servers:  req.Servers,
	})
	if err != nil {
		h.fail(ctx, w, "add format failed", err, "room_id", rm.ID, "name", req.Name)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, formatToDTO(format))
}
