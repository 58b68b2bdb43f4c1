package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/gutbuster/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "gutbuster"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

type errorStatus struct {
	httpStatus int
	status     string
}

// errorStatuses is keyed by usecase.Code.
var errorStatuses = map[string]errorStatus{
	"INVALID_INPUT":               {http.StatusBadRequest, "INVALID_ARGUMENT"},
	"NOT_FOUND":                   {http.StatusNotFound, "NOT_FOUND"},
	"UNAUTHORIZED":                {http.StatusUnauthorized, "UNAUTHENTICATED"},
	"DEPENDENCY_UNAVAILABLE":      {http.StatusServiceUnavailable, "UNAVAILABLE"},
	"ROOM_BUSY":                   {http.StatusConflict, "ABORTED"},
	"ROOM_DISABLED":               {http.StatusConflict, "FAILED_PRECONDITION"},
	"EVENT_NOT_ACCEPTING_ENTRIES": {http.StatusConflict, "FAILED_PRECONDITION"},
	"ALREADY_ENROLLED":            {http.StatusConflict, "ALREADY_EXISTS"},
	"NOT_ENROLLED":                {http.StatusConflict, "FAILED_PRECONDITION"},
	"INVALID_TRANSITION":          {http.StatusConflict, "FAILED_PRECONDITION"},
	"NO_FORMATS_CONFIGURED":       {http.StatusConflict, "FAILED_PRECONDITION"},
	"NAME_TAKEN":                  {http.StatusConflict, "ALREADY_EXISTS"},
	"DUPLICATE_CHANNEL":           {http.StatusConflict, "ALREADY_EXISTS"},
	"DUPLICATE_SHORT_ID":          {http.StatusConflict, "ABORTED"},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		http.Error(w, `{"apiVersion":"2.0","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	code := usecase.Code(err)
	if errors.Is(err, context.DeadlineExceeded) && code == "INTERNAL" {
		code = "DEPENDENCY_UNAVAILABLE"
	}

	item, ok := errorStatuses[code]
	if !ok {
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
	return mappedError{
		HTTPStatus: item.httpStatus,
		Reason:     reasonFromCode(code),
		Status:     item.status,
	}
}

// reasonFromCode turns ROOM_BUSY into roomBusy.
func reasonFromCode(code string) string {
	parts := strings.Split(strings.ToLower(code), "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i > 0 {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
			continue
		}
		b.WriteString(part)
	}
	return b.String()
}
