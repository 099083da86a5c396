package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/matches", handler.ListPlayerMatches)
	mux.HandleFunc("GET /v1/players/{playerID}/matches/details", handler.ListPlayerMatchDetails)
	mux.HandleFunc("GET /v1/players/{playerID}/teammates", handler.ListPlayerTeammates)
	mux.HandleFunc("GET /v1/players/{playerID}/maps", handler.ListPlayerMaps)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

// Debug routes expose rotation state and score resolution internals.
func registerDebugRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/debug/keys", handler.ListKeyHealth)
	mux.HandleFunc("GET /v1/debug/matches/{matchID}/score", handler.InspectMatchScore)
}
