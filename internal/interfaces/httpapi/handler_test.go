package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gutbuster/internal/domain/rating"
	"github.com/riskibarqy/gutbuster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gutbuster/internal/platform/id"
	"github.com/riskibarqy/gutbuster/internal/platform/logging"
	"github.com/riskibarqy/gutbuster/internal/usecase"
)

const testAdminToken = "admin-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	logger := logging.NewNop()
	users := usecase.NewUserService(store, logger)
	handler := NewHandler(
		users,
		usecase.NewRoomService(store, 0, logger),
		usecase.NewEventService(store, usecase.NewFormatResolver(7), rating.DefaultGlicko(), id.NewNanoGenerator(8), logger),
		usecase.NewRatingService(store, logger),
		usecase.NewStrikeService(store, logger),
		logger,
	)
	return NewRouter(handler, users, logger, []string{"*"}, testAdminToken)
}

type testResponse struct {
	code int
	body map[string]any
}

func (r testResponse) data(t *testing.T) map[string]any {
	t.Helper()
	data, ok := r.body["data"].(map[string]any)
	require.Truef(t, ok, "expected data object, got %v", r.body)
	return data
}

func (r testResponse) reason(t *testing.T) string {
	t.Helper()
	errObj, ok := r.body["error"].(map[string]any)
	require.Truef(t, ok, "expected error object, got %v", r.body)
	items, ok := errObj["errors"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, items)
	reason, _ := items[0].(map[string]any)["reason"].(string)
	return reason
}

func doRequest(t *testing.T, h http.Handler, method, path string, payload any, headers map[string]string) testResponse {
	t.Helper()

	var body *bytes.Reader
	if payload == nil {
		body = bytes.NewReader(nil)
	} else {
		raw, err := sonic.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := testResponse{code: rec.Code}
	if rec.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out.body))
	}
	return out
}

func caller(externalID string) map[string]string {
	return map[string]string{
		headerCallerID:   externalID,
		headerCallerName: "racer-" + externalID,
	}
}

func admin() map[string]string {
	return map[string]string{headerAdminToken: testAdminToken}
}

type formatSpec struct {
	name     string
	teamMode string
}

func setupRoom(t *testing.T, h http.Handler, channelID string, players int, mode string, votes int, formats ...formatSpec) []int64 {
	t.Helper()

	res := doRequest(t, h, http.MethodPut, "/v1/admin/rooms/"+channelID, map[string]any{
		"guild_id":         "guild-1",
		"players_required": players,
		"selection_mode":   mode,
		"votes_required":   votes,
	}, admin())
	require.Equal(t, http.StatusOK, res.code, res.body)

	ids := make([]int64, 0, len(formats))
	for _, f := range formats {
		res = doRequest(t, h, http.MethodPost, "/v1/admin/rooms/"+channelID+"/formats", map[string]any{
			"name":      f.name,
			"team_mode": f.teamMode,
			"servers":   []string{"eu-1"},
		}, admin())
		require.Equal(t, http.StatusCreated, res.code, res.body)
		ids = append(ids, int64(res.data(t)["id"].(float64)))
	}
	return ids
}

func TestNewRouter_PatternsDoNotConflict(t *testing.T) {
	require.NotPanics(t, func() { newTestRouter(t) })
}

func TestRouter_Healthz(t *testing.T) {
	h := newTestRouter(t)

	res := doRequest(t, h, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "ok", res.data(t)["status"])
}

func TestRouter_CallerRoutesRequireIdentity(t *testing.T) {
	h := newTestRouter(t)

	res := doRequest(t, h, http.MethodGet, "/v1/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "unauthorized", res.reason(t))

	res = doRequest(t, h, http.MethodGet, "/v1/me", nil, caller("ext-1"))
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "ext-1", res.data(t)["external_id"])
	assert.Equal(t, "racer-ext-1", res.data(t)["name"])
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)
	payload := map[string]any{"players_required": 4, "selection_mode": "RANDOM"}

	res := doRequest(t, h, http.MethodPut, "/v1/admin/rooms/ch-1", payload, nil)
	require.Equal(t, http.StatusUnauthorized, res.code)

	res = doRequest(t, h, http.MethodPut, "/v1/admin/rooms/ch-1", payload, map[string]string{headerAdminToken: "wrong"})
	require.Equal(t, http.StatusUnauthorized, res.code)

	res = doRequest(t, h, http.MethodPut, "/v1/admin/rooms/ch-1", payload, admin())
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, "RANDOM", res.data(t)["selection_mode"])
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	h := newTestRouter(t)

	res := doRequest(t, h, http.MethodPut, "/v1/admin/rooms/ch-1", map[string]any{
		"players_required": 4,
		"selection_mode":   "RANDOM",
		"colour":           "red",
	}, admin())
	require.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "invalidInput", res.reason(t))
}

func TestRouter_UnknownRoomIsNotFound(t *testing.T) {
	h := newTestRouter(t)

	res := doRequest(t, h, http.MethodPost, "/v1/rooms/missing/join", nil, caller("ext-1"))
	require.Equal(t, http.StatusNotFound, res.code)
	assert.Equal(t, "notFound", res.reason(t))
}

func TestRouter_RandomRoomLifecycle(t *testing.T) {
	h := newTestRouter(t)
	formatIDs := setupRoom(t, h, "ch-random", 2, "RANDOM", 0, formatSpec{"FFA", "FFA"})

	res := doRequest(t, h, http.MethodPost, "/v1/rooms/ch-random/join", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, float64(1), res.data(t)["enrolled"])
	assert.Equal(t, false, res.data(t)["started"])

	res = doRequest(t, h, http.MethodPost, "/v1/rooms/ch-random/join", nil, caller("a"))
	require.Equal(t, http.StatusConflict, res.code)
	assert.Equal(t, "alreadyEnrolled", res.reason(t))

	res = doRequest(t, h, http.MethodPost, "/v1/rooms/ch-random/join", nil, caller("b"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, true, res.data(t)["started"])

	ev := res.data(t)["event"].(map[string]any)
	eventID := int64(ev["id"].(float64))
	shortID := ev["short_id"].(string)

	res = doRequest(t, h, http.MethodGet, "/v1/short-events/"+shortID, nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	detail := res.data(t)
	assert.Equal(t, "STARTED", detail["event"].(map[string]any)["status"])
	assert.Equal(t, float64(formatIDs[0]), detail["event"].(map[string]any)["format_id"])
	assert.Len(t, detail["roster"], 2)

	res = doRequest(t, h, http.MethodGet, fmt.Sprintf("/v1/events/%d/teams", eventID), nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)

	res = doRequest(t, h, http.MethodGet, "/v1/me/events", nil, caller("b"))
	require.Equal(t, http.StatusOK, res.code)
	assert.Len(t, res.body["data"], 1)

	for externalID, score := range map[string]int{"a": 82, "b": 40} {
		res = doRequest(t, h, http.MethodPut, fmt.Sprintf("/v1/admin/events/%d/scores", eventID), map[string]any{
			"external_id": externalID,
			"score":       score,
		}, admin())
		require.Equal(t, http.StatusOK, res.code, res.body)
	}

	res = doRequest(t, h, http.MethodPost, fmt.Sprintf("/v1/admin/events/%d/end", eventID), nil, admin())
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, "ENDED", res.data(t)["event"].(map[string]any)["status"])
	assert.Len(t, res.data(t)["ratings"], 2)

	res = doRequest(t, h, http.MethodGet, "/v1/rooms/ch-random/event", nil, caller("a"))
	require.Equal(t, http.StatusNotFound, res.code)

	res = doRequest(t, h, http.MethodGet, "/v1/users/a/rating", nil, caller("b"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	winner := res.data(t)
	res = doRequest(t, h, http.MethodGet, "/v1/users/b/rating", nil, caller("b"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	loser := res.data(t)
	assert.Equal(t, false, winner["is_default"])
	assert.Greater(t, winner["value"].(float64), loser["value"].(float64))

	res = doRequest(t, h, http.MethodGet, "/v1/users/a/ratings?limit=5", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Len(t, res.body["data"], 1)
}

func TestRouter_VoteResolvesFormat(t *testing.T) {
	h := newTestRouter(t)
	formatIDs := setupRoom(t, h, "ch-vote", 2, "VOTE", 1, formatSpec{"FFA", "FFA"}, formatSpec{"2v2", "HALF_VS_HALF"})

	var eventID int64
	for _, externalID := range []string{"a", "b"} {
		res := doRequest(t, h, http.MethodPost, "/v1/rooms/ch-vote/join", nil, caller(externalID))
		require.Equal(t, http.StatusOK, res.code, res.body)
		eventID = int64(res.data(t)["event"].(map[string]any)["id"].(float64))
	}

	path := fmt.Sprintf("/v1/events/%d/votes/me", eventID)
	res := doRequest(t, h, http.MethodPut, path, map[string]any{"format_id": formatIDs[1]}, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, true, res.data(t)["resolved"])
	assert.Equal(t, float64(formatIDs[1]), res.data(t)["event"].(map[string]any)["format_id"])

	res = doRequest(t, h, http.MethodGet, fmt.Sprintf("/v1/events/%d/teams", eventID), nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Len(t, res.body["data"], 2)
}

func TestRouter_WithdrawLeavesLobby(t *testing.T) {
	h := newTestRouter(t)
	setupRoom(t, h, "ch-lfg", 4, "RANDOM", 0, formatSpec{"FFA", "FFA"})

	res := doRequest(t, h, http.MethodPost, "/v1/rooms/ch-lfg/join", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	eventID := int64(res.data(t)["event"].(map[string]any)["id"].(float64))

	res = doRequest(t, h, http.MethodDelete, fmt.Sprintf("/v1/events/%d/participants/me", eventID), nil, caller("a"))
	require.Equal(t, http.StatusNoContent, res.code)

	res = doRequest(t, h, http.MethodDelete, fmt.Sprintf("/v1/events/%d/participants/me", eventID), nil, caller("a"))
	require.Equal(t, http.StatusConflict, res.code)
	assert.Equal(t, "notEnrolled", res.reason(t))
}

func TestRouter_StrikesAndCorrections(t *testing.T) {
	h := newTestRouter(t)

	res := doRequest(t, h, http.MethodGet, "/v1/me", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code)

	res = doRequest(t, h, http.MethodPost, "/v1/admin/users/a/mods", map[string]any{
		"reason":            "NO_SHOW",
		"strikes":           2,
		"note":              "missed the start",
		"strikes_expire_at": "2099-01-01T00:00:00Z",
	}, admin())
	require.Equal(t, http.StatusCreated, res.code, res.body)

	res = doRequest(t, h, http.MethodGet, "/v1/users/a/strikes", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, float64(2), res.data(t)["active_strikes"])
	assert.Len(t, res.data(t)["mods"], 1)

	res = doRequest(t, h, http.MethodPost, "/v1/admin/users/a/mods", map[string]any{"reason": "LATE"}, admin())
	require.Equal(t, http.StatusBadRequest, res.code)

	res = doRequest(t, h, http.MethodPost, "/v1/admin/users/a/ratings", map[string]any{
		"value":     1600.0,
		"deviation": 120.0,
	}, admin())
	require.Equal(t, http.StatusCreated, res.code, res.body)
	ratingID := int64(res.data(t)["id"].(float64))

	res = doRequest(t, h, http.MethodPut, fmt.Sprintf("/v1/admin/ratings/%d", ratingID), map[string]any{
		"value":     1650.0,
		"deviation": 110.0,
	}, admin())
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, 1650.0, res.data(t)["rating"].(map[string]any)["value"])
	assert.Equal(t, 1600.0, res.data(t)["previous"].(map[string]any)["value"])
	assert.Equal(t, float64(0), res.data(t)["later_rows"])

	res = doRequest(t, h, http.MethodGet, "/v1/me/rating", nil, caller("a"))
	require.Equal(t, http.StatusOK, res.code, res.body)
	assert.Equal(t, 1650.0, res.data(t)["value"])
}
