package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/gutbuster/internal/domain/event"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

type castVoteRequest struct {
	FormatID int64 `json:"format_id" validate:"required,gt=0"`
}

type recordScoreRequest struct {
	ExternalID string `json:"external_id" validate:"required,max=64"`
	Score      *int   `json:"score" validate:"required,min=0"`
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "create event failed", err, "channel_id", channelID)
		return
	}

	ev, err := h.eventService.CreateEvent(ctx, rm.ID)
	if err != nil {
		h.fail(ctx, w, "create event failed", err, "room_id", rm.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(ev))
}

// JoinRoom enrolls the caller in the room's active event, opening a new one
// when the room is idle.
func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinRoom")
	defer span.End()

	caller, err := mustCaller(ctx)
	if err != nil {
		h.fail(ctx, w, "join room failed", err)
		return
	}

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "join room failed", err, "channel_id", channelID)
		return
	}

	ev, err := h.openEvent(ctx, rm.ID)
	if err != nil {
		h.fail(ctx, w, "join room failed", err, "room_id", rm.ID)
		return
	}

	result, err := h.eventService.Enroll(ctx, ev.ID, caller.ID)
	if err != nil {
		h.fail(ctx, w, "join room failed", err, "event_id", ev.ID, "user_id", caller.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrollResultToDTO(result))
}

// openEvent returns the room's active event or creates one. A concurrent
// creator winning the race is not an error.
func (h *Handler) openEvent(ctx context.Context, roomID int64) (event.Event, error) {
	ev, found, err := h.eventService.ActiveEvent(ctx, roomID)
	if err != nil {
		return event.Event{}, err
	}
	if found {
		return ev, nil
	}

	ev, err = h.eventService.CreateEvent(ctx, roomID)
	if errors.Is(err, usecase.ErrRoomBusy) {
		ev, found, err = h.eventService.ActiveEvent(ctx, roomID)
		if err == nil && !found {
			err = usecase.ErrRoomBusy
		}
	}
	return ev, err
}

func (h *Handler) GetActiveEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveEvent")
	defer span.End()

	channelID := r.PathValue("channelID")
	rm, err := h.roomService.GetRoom(ctx, channelID)
	if err != nil {
		h.fail(ctx, w, "get active event failed", err, "channel_id", channelID)
		return
	}

	ev, found, err := h.eventService.ActiveEvent(ctx, rm.ID)
	if err != nil {
		h.fail(ctx, w, "get active event failed", err, "room_id", rm.ID)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: room %s has no active event", usecase.ErrNotFound, channelID))
		return
	}

	h.writeEventDetail(ctx, w, ev)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ev, err := h.eventService.GetEventByID(ctx, eventID)
	if err != nil {
		h.fail(ctx, w, "get event failed", err, "event_id", eventID)
		return
	}

	h.writeEventDetail(ctx, w, ev)
}

func (h *Handler) GetEventByShortID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventByShortID")
	defer span.End()

	shortID := r.PathValue("shortID")
	ev, err := h.eventService.GetEvent(ctx, shortID)
	if err != nil {
		h.fail(ctx, w, "get event by short id failed", err, "short_id", shortID)
		return
	}

	h.writeEventDetail(ctx, w, ev)
}

func (h *Handler) writeEventDetail(ctx context.Context, w http.ResponseWriter, ev event.Event) {
	roster, err := h.eventService.Roster(ctx, ev.ID)
	if err != nil {
		h.fail(ctx, w, "list roster failed", err, "event_id", ev.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventDetailDTO{
		Event:  eventToDTO(ev),
		Roster: participantsToDTO(roster),
	})
}

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeams")
	defer span.End()

	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.eventService.Teams(ctx, eventID)
	if err != nil {
		h.fail(ctx, w, "get teams failed", err, "event_id", eventID)
		return
	}

	items := make([][]participantDTO, 0, len(teams))
	for _, team := range teams {
		items = append(items, participantsToDTO(team))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Enroll")
	defer span.End()

	eventID, caller, err := h.eventAndCaller(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.eventService.Enroll(ctx, eventID, caller)
	if err != nil {
		h.fail(ctx, w, "enroll failed", err, "event_id", eventID, "user_id", caller)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, enrollResultToDTO(result))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Withdraw")
	defer span.End()

	eventID, caller, err := h.eventAndCaller(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.eventService.Withdraw(ctx, eventID, caller); err != nil {
		h.fail(ctx, w, "withdraw failed", err, "event_id", eventID, "user_id", caller)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	eventID, caller, err := h.eventAndCaller(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req castVoteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.eventService.CastVote(ctx, eventID, caller, req.FormatID)
	if err != nil {
		h.fail(ctx, w, "cast vote failed", err, "event_id", eventID, "user_id", caller, "format_id", req.FormatID)
		return
	}

	tally := make(map[string]int, len(result.Tally))
	for formatID, votes := range result.Tally {
		tally[strconv.FormatInt(formatID, 10)] = votes
	}
	writeSuccess(ctx, w, http.StatusOK, voteDTO{
		Event:    eventToDTO(result.Event),
		FormatID: result.Vote.FormatID,
		Tally:    tally,
		Resolved: result.Resolved,
	})
}

func (h *Handler) WithdrawVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawVote")
	defer span.End()

	eventID, caller, err := h.eventAndCaller(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.eventService.WithdrawVote(ctx, eventID, caller); err != nil {
		h.fail(ctx, w, "withdraw vote failed", err, "event_id", eventID, "user_id", caller)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEvents")
	defer span.End()

	caller, err := mustCaller(ctx)
	if err != nil {
		h.fail(ctx, w, "list my events failed", err)
		return
	}

	items, err := h.eventService.ActiveEventsFor(ctx, caller.ID)
	if err != nil {
		h.fail(ctx, w, "list my events failed", err, "user_id", caller.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsToDTO(items))
}

func (h *Handler) ResolveFormat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveFormat")
	defer span.End()

	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ev, err := h.eventService.ResolveFormat(ctx, eventID)
	if err != nil {
		h.fail(ctx, w, "resolve format failed", err, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(ev))
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScore")
	defer span.End()

	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userService.GetUser(ctx, req.ExternalID)
	if err != nil {
		h.fail(ctx, w, "record score failed", err, "external_id", req.ExternalID)
		return
	}

	p, err := h.eventService.RecordScore(ctx, eventID, u.ID, *req.Score)
	if err != nil {
		h.fail(ctx, w, "record score failed", err, "event_id", eventID, "user_id", u.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(p))
}

func (h *Handler) EndEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndEvent")
	defer span.End()

	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.eventService.EndEvent(ctx, eventID)
	if err != nil {
		h.fail(ctx, w, "end event failed", err, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, endDTO{
		Event:       eventToDTO(result.Event),
		Ratings:     ratingsToDTO(result.Ratings),
		Substitutes: participantsToDTO(result.Substitutes),
	})
}

func (h *Handler) RetryPendingFormats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetryPendingFormats")
	defer span.End()

	result, err := h.eventService.RetryPendingFormats(ctx)
	if err != nil {
		h.fail(ctx, w, "retry pending formats failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, retryDTO{
		Checked:  result.Checked,
		Resolved: result.Resolved,
		Pending:  result.Pending,
		Failed:   result.Failed,
	})
}

func (h *Handler) eventAndCaller(ctx context.Context, r *http.Request) (int64, int64, error) {
	eventID, err := pathInt64(r, "eventID")
	if err != nil {
		return 0, 0, err
	}
	caller, err := mustCaller(ctx)
	if err != nil {
		return 0, 0, err
	}
	return eventID, caller.ID, nil
}

func enrollResultToDTO(result usecase.EnrollResult) enrollDTO {
	return enrollDTO{
		Event:       eventToDTO(result.Event),
		Participant: participantToDTO(result.Participant),
		Enrolled:    result.Enrolled,
		Started:     result.Started,
	}
}
