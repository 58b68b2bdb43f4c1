package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/gutbuster/internal/domain/user"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

type Handler struct {
	userService   *usecase.UserService
	roomService   *usecase.RoomService
	eventService  *usecase.EventService
	ratingService *usecase.RatingService
	strikeService *usecase.StrikeService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	roomService *usecase.RoomService,
	eventService *usecase.EventService,
	ratingService *usecase.RatingService,
	strikeService *usecase.StrikeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		userService:   userService,
		roomService:   roomService,
		eventService:  eventService,
		ratingService: ratingService,
		strikeService: strikeService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

// fail writes err and logs it. Business-rule rejections log at Warn, the
// rest at Error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err, "code", usecase.Code(err))
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func mustCaller(ctx context.Context) (user.User, error) {
	caller, ok := callerFromContext(ctx)
	if !ok {
		return user.User{}, errors.New("caller is missing from request context")
	}
	return caller, nil
}

// userByExternalID resolves a path parameter holding a chat user id.
func (h *Handler) userByExternalID(ctx context.Context, r *http.Request) (user.User, error) {
	return h.userService.GetUser(ctx, r.PathValue("externalID"))
}
