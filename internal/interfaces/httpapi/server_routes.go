package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{number}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/stats/{sheet}", handler.ListSheet)
	mux.HandleFunc("GET /v1/stats/{sheet}/players/{name}", handler.GetPlayerStat)
}

func registerIngestRoutes(mux *http.ServeMux, handler *Handler, token string) {
	mux.Handle("POST /v1/matches/ingest", RequireIngestToken(token, http.HandlerFunc(handler.IngestMatch)))
	mux.Handle("POST /v1/weeks/{week}/ingest", RequireIngestToken(token, http.HandlerFunc(handler.IngestWeek)))
	mux.Handle("POST /v1/roster/refresh", RequireIngestToken(token, http.HandlerFunc(handler.RefreshRoster)))
}
