package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_InternalErrorHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: relation \"rooms\" does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "rooms") {
		t.Fatalf("internal error leaked detail: %s", got)
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err        error
		httpStatus int
		reason     string
		status     string
	}{
		{fmt.Errorf("%w: room id=1", usecase.ErrRoomBusy), http.StatusConflict, "roomBusy", "ABORTED"},
		{fmt.Errorf("%w: ev", usecase.ErrEventNotAcceptingEntries), http.StatusConflict, "eventNotAcceptingEntries", "FAILED_PRECONDITION"},
		{fmt.Errorf("get room: %w", usecase.ErrNotFound), http.StatusNotFound, "notFound", "NOT_FOUND"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{fmt.Errorf("begin tx: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		got := mapError(tc.err)
		if got.HTTPStatus != tc.httpStatus || got.Reason != tc.reason || got.Status != tc.status {
			t.Fatalf("mapError(%v) = %+v", tc.err, got)
		}
	}
}

func TestReasonFromCode(t *testing.T) {
	if got := reasonFromCode("NO_FORMATS_CONFIGURED"); got != "noFormatsConfigured" {
		t.Fatalf("unexpected reason: %q", got)
	}
	if got := reasonFromCode("NOT_FOUND"); got != "notFound" {
		t.Fatalf("unexpected reason: %q", got)
	}
}
