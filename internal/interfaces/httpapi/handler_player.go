package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/gutbuster/internal/domain/playermod"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

type ratingValuesRequest struct {
	Value     *float64 `json:"value" validate:"required"`
	Deviation *float64 `json:"deviation" validate:"required,gt=0"`
}

type applyModRequest struct {
	Reason          string     `json:"reason" validate:"required,oneof=OTHER NO_SHOW DROPPED MISCONDUCT BONUS"`
	Strikes         int        `json:"strikes" validate:"min=0,max=10"`
	RatingDelta     float64    `json:"rating_delta"`
	Note            string     `json:"note" validate:"max=500"`
	StrikesExpireAt *time.Time `json:"strikes_expire_at"`
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	caller, err := mustCaller(ctx)
	if err != nil {
		h.fail(ctx, w, "get me failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(caller))
}

func (h *Handler) GetMyRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRating")
	defer span.End()

	caller, err := mustCaller(ctx)
	if err != nil {
		h.fail(ctx, w, "get my rating failed", err)
		return
	}

	current, err := h.ratingService.CurrentRating(ctx, caller.ID)
	if err != nil {
		h.fail(ctx, w, "get my rating failed", err, "user_id", caller.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingToDTO(current))
}

func (h *Handler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserRating")
	defer span.End()

	u, err := h.userByExternalID(ctx, r)
	if err != nil {
		h.fail(ctx, w, "get user rating failed", err, "external_id", r.PathValue("externalID"))
		return
	}

	current, err := h.ratingService.CurrentRating(ctx, u.ID)
	if err != nil {
		h.fail(ctx, w, "get user rating failed", err, "user_id", u.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingToDTO(current))
}

func (h *Handler) ListUserRatings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserRatings")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userByExternalID(ctx, r)
	if err != nil {
		h.fail(ctx, w, "list user ratings failed", err, "external_id", r.PathValue("externalID"))
		return
	}

	items, err := h.ratingService.RatingHistory(ctx, u.ID, limit)
	if err != nil {
		h.fail(ctx, w, "list user ratings failed", err, "user_id", u.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingsToDTO(items))
}

func (h *Handler) GetUserStrikes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserStrikes")
	defer span.End()

	u, err := h.userByExternalID(ctx, r)
	if err != nil {
		h.fail(ctx, w, "get user strikes failed", err, "external_id", r.PathValue("externalID"))
		return
	}

	active, err := h.strikeService.ActiveStrikeCount(ctx, u.ID, time.Time{})
	if err != nil {
		h.fail(ctx, w, "get user strikes failed", err, "user_id", u.ID)
		return
	}
	mods, err := h.strikeService.ListMods(ctx, u.ID)
	if err != nil {
		h.fail(ctx, w, "get user strikes failed", err, "user_id", u.ID)
		return
	}

	items := make([]playerModDTO, 0, len(mods))
	for _, m := range mods {
		items = append(items, playerModToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, strikesDTO{
		UserID:        u.ID,
		ActiveStrikes: active,
		Mods:          items,
	})
}

func (h *Handler) CommitRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitRating")
	defer span.End()

	var req ratingValuesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userByExternalID(ctx, r)
	if err != nil {
		h.fail(ctx, w, "commit rating failed", err, "external_id", r.PathValue("externalID"))
		return
	}

	item, err := h.ratingService.CommitRating(ctx, u.ID, *req.Value, *req.Deviation)
	if err != nil {
		h.fail(ctx, w, "commit rating failed", err, "user_id", u.ID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ratingToDTO(item))
}

func (h *Handler) CorrectRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CorrectRating")
	defer span.End()

	ratingID, err := pathInt64(r, "ratingID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req ratingValuesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	correction, err := h.ratingService.RetroactiveCorrect(ctx, ratingID, *req.Value, *req.Deviation)
	if err != nil {
		h.fail(ctx, w, "correct rating failed", err, "rating_id", ratingID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, correctionDTO{
		Rating:    ratingToDTO(correction.Rating),
		Previous:  ratingToDTO(correction.Previous),
		LaterRows: correction.LaterRows,
	})
}

func (h *Handler) ApplyMod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyMod")
	defer span.End()

	var req applyModRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	reason, err := playermod.ParseReason(req.Reason)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	u, err := h.userByExternalID(ctx, r)
	if err != nil {
		h.fail(ctx, w, "apply mod failed", err, "external_id", r.PathValue("externalID"))
		return
	}

	input := usecase.ApplyModInput{
		UserID:      u.ID,
		Reason:      reason,
		Strikes:     req.Strikes,
		RatingDelta: req.RatingDelta,
		Note:        req.Note,
	}
	if req.StrikesExpireAt != nil {
		input.StrikesExpireAt = *req.StrikesExpireAt
	}

	applied, err := h.strikeService.ApplyMod(ctx, input)
	if err != nil {
		h.fail(ctx, w, "apply mod failed", err, "user_id", u.ID)
		return
	}

	out := appliedModDTO{Mod: playerModToDTO(applied.Mod)}
	if applied.Rating != nil {
		item := ratingToDTO(*applied.Rating)
		out.Rating = &item
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}
