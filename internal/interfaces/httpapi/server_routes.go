package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}/players", handler.ListMatchPlayers)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetOverallLeaderboard)
	mux.HandleFunc("GET /v1/matches/{matchID}/leaderboard", handler.GetMatchLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRoster)))
	mux.Handle("PUT /v1/matches/{matchID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.SubmitRoster)))
	mux.Handle("GET /v1/matches/{matchID}/roster/results", RequireAuth(verifier, http.HandlerFunc(handler.GetRosterResults)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/player-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestPlayerStats)))
	mux.Handle("POST /v1/internal/jobs/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.Recalculate)))
}
