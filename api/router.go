package api

import (
	"github.com/gorilla/mux"
)

// NewRouter creates and configures a new router with all API endpoints.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Apply rate limiting middleware to the report endpoints
	api := r.PathPrefix("/api/v1/rdp").Subrouter()
	api.Use(RateLimit)

	api.HandleFunc("/sessions", h.GroupedSessions).Methods("GET")
	api.HandleFunc("/sessions/flat", h.FlatSessions).Methods("GET")
	api.HandleFunc("/available-dates", h.AvailableDates).Methods("GET")
	api.HandleFunc("/collector/stats", h.CollectorStats).Methods("GET")

	return r
}
