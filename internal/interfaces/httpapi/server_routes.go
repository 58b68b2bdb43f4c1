package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCallerRoutes(mux *http.ServeMux, handler *Handler, resolver CallerResolver) {
	registerCallerRoomRoutes(mux, handler, resolver)
	registerCallerEventRoutes(mux, handler, resolver)
	registerCallerPlayerRoutes(mux, handler, resolver)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	registerAdminRoomRoutes(mux, handler, adminToken)
	registerAdminEventRoutes(mux, handler, adminToken)
	registerAdminPlayerRoutes(mux, handler, adminToken)
}

func registerCallerRoomRoutes(mux *http.ServeMux, handler *Handler, resolver CallerResolver) {
	mux.Handle("GET /v1/rooms/{channelID}", RequireCaller(resolver, http.HandlerFunc(handler.GetRoom)))
	mux.Handle("GET /v1/rooms/{channelID}/formats", RequireCaller(resolver, http.HandlerFunc(handler.ListFormats)))
	mux.Handle("GET /v1/rooms/{channelID}/event", RequireCaller(resolver, http.HandlerFunc(handler.GetActiveEvent)))
	mux.Handle("POST /v1/rooms/{channelID}/events", RequireCaller(resolver, http.HandlerFunc(handler.CreateEvent)))
	mux.Handle("POST /v1/rooms/{channelID}/join", RequireCaller(resolver, http.HandlerFunc(handler.JoinRoom)))
}

func registerCallerEventRoutes(mux *http.ServeMux, handler *Handler, resolver CallerResolver) {
	mux.Handle("GET /v1/short-events/{shortID}", RequireCaller(resolver, http.HandlerFunc(handler.GetEventByShortID)))
	mux.Handle("GET /v1/events/{eventID}", RequireCaller(resolver, http.HandlerFunc(handler.GetEvent)))
	mux.Handle("GET /v1/events/{eventID}/teams", RequireCaller(resolver, http.HandlerFunc(handler.GetTeams)))
	mux.Handle("PUT /v1/events/{eventID}/participants/me", RequireCaller(resolver, http.HandlerFunc(handler.Enroll)))
	mux.Handle("DELETE /v1/events/{eventID}/participants/me", RequireCaller(resolver, http.HandlerFunc(handler.Withdraw)))
	mux.Handle("PUT /v1/events/{eventID}/votes/me", RequireCaller(resolver, http.HandlerFunc(handler.CastVote)))
	mux.Handle("DELETE /v1/events/{eventID}/votes/me", RequireCaller(resolver, http.HandlerFunc(handler.WithdrawVote)))
	mux.Handle("GET /v1/me/events", RequireCaller(resolver, http.HandlerFunc(handler.ListMyEvents)))
}

func registerCallerPlayerRoutes(mux *http.ServeMux, handler *Handler, resolver CallerResolver) {
	mux.Handle("GET /v1/me", RequireCaller(resolver, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /v1/me/rating", RequireCaller(resolver, http.HandlerFunc(handler.GetMyRating)))
	mux.Handle("GET /v1/users/{externalID}/rating", RequireCaller(resolver, http.HandlerFunc(handler.GetUserRating)))
	mux.Handle("GET /v1/users/{externalID}/ratings", RequireCaller(resolver, http.HandlerFunc(handler.ListUserRatings)))
	mux.Handle("GET /v1/users/{externalID}/strikes", RequireCaller(resolver, http.HandlerFunc(handler.GetUserStrikes)))
}

func registerAdminRoomRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("PUT /v1/admin/rooms/{channelID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.ConfigureRoom)))
	mux.Handle("POST /v1/admin/rooms/{channelID}/enable", RequireAdminToken(adminToken, http.HandlerFunc(handler.EnableRoom)))
	mux.Handle("POST /v1/admin/rooms/{channelID}/disable", RequireAdminToken(adminToken, http.HandlerFunc(handler.DisableRoom)))
	mux.Handle("POST /v1/admin/rooms/{channelID}/formats", RequireAdminToken(adminToken, http.HandlerFunc(handler.AddFormat)))
}

func registerAdminEventRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/events/{eventID}/format", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResolveFormat)))
	mux.Handle("PUT /v1/admin/events/{eventID}/scores", RequireAdminToken(adminToken, http.HandlerFunc(handler.RecordScore)))
	mux.Handle("POST /v1/admin/events/{eventID}/end", RequireAdminToken(adminToken, http.HandlerFunc(handler.EndEvent)))
	mux.Handle("POST /v1/admin/jobs/retry-formats", RequireAdminToken(adminToken, http.HandlerFunc(handler.RetryPendingFormats)))
}

func registerAdminPlayerRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/users/{externalID}/ratings", RequireAdminToken(adminToken, http.HandlerFunc(handler.CommitRating)))
	mux.Handle("PUT /v1/admin/ratings/{ratingID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.CorrectRating)))
	mux.Handle("POST /v1/admin/users/{externalID}/mods", RequireAdminToken(adminToken, http.HandlerFunc(handler.ApplyMod)))
}
