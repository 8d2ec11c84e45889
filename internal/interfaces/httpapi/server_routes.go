package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerScoreboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/live", handler.GetLiveScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/today", handler.GetTodayScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/tomorrow", handler.GetTomorrowScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/upcoming", handler.GetUpcomingScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/completed", handler.GetCompletedScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/by-league", handler.GetScoreboardByLeague)
	mux.HandleFunc("GET /v1/scoreboard/by-sport", handler.GetScoreboardBySport)
	mux.HandleFunc("POST /v1/refresh", handler.Refresh)
}

func registerSelectionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("POST /v1/selection/sports/{sportID}/toggle", handler.ToggleSport)
	mux.HandleFunc("POST /v1/selection/leagues/{leagueID}/toggle", handler.ToggleLeague)
	mux.HandleFunc("PUT /v1/selection/filters", handler.PutFilters)
	mux.HandleFunc("PUT /v1/settings/refresh-interval", handler.PutRefreshInterval)
}
