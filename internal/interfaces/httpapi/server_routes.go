package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/live", handler.ListLiveMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/odds", handler.GetMatchOdds)
	mux.HandleFunc("GET /v1/matches/{matchID}/lineups", handler.GetMatchLineups)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/injuries", handler.GetLeagueInjuries)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/head-to-head/{otherTeamID}", handler.GetHeadToHead)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLeaguesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncTeamsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-date", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncDateJob)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/cleanup-stale", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCleanupStaleJob)))
	mux.Handle("POST /v1/internal/jobs/backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillJob)))
}
