package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rdpstats/rdp-session-stats/collector"
	"github.com/rdpstats/rdp-session-stats/report"
	"github.com/rdpstats/rdp-session-stats/types"
)

// EventSource is the slice of the collector the handlers need.
type EventSource interface {
	Collect(ctx context.Context, start, end time.Time) ([]types.RawEvent, error)
	AvailableDates(ctx context.Context) []collector.ServerLogRange
	Stats() collector.CollectionStats
}

// Handler serves session reports built from freshly collected events.
type Handler struct {
	Events  EventSource
	Reports *report.Builder
	Log     *zap.Logger
}

func NewHandler(events EventSource, reports *report.Builder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if reports == nil {
		reports = report.NewBuilder(log)
	}
	return &Handler{Events: events, Reports: reports, Log: log}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "RDP Sessions API",
		"health":  "/health",
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GroupedSessions handles GET /api/v1/rdp/sessions.
func (h *Handler) GroupedSessions(w http.ResponseWriter, r *http.Request) {
	window, ok := h.reportWindow(w, r)
	if !ok {
		return
	}
	events, ok := h.collect(w, r, window)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Reports.Grouped(events, window))
}

// FlatSessions handles GET /api/v1/rdp/sessions/flat.
func (h *Handler) FlatSessions(w http.ResponseWriter, r *http.Request) {
	window, ok := h.reportWindow(w, r)
	if !ok {
		return
	}
	events, ok := h.collect(w, r, window)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Reports.Flat(events, window))
}

// AvailableDates handles GET /api/v1/rdp/available-dates.
func (h *Handler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	ranges := h.Events.AvailableDates(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"servers": ranges})
}

// CollectorStats handles GET /api/v1/rdp/collector/stats.
func (h *Handler) CollectorStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Events.Stats())
}

func (h *Handler) reportWindow(w http.ResponseWriter, r *http.Request) (report.Window, bool) {
	q := r.URL.Query()
	window, err := report.ParseWindow(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report window", err)
		return report.Window{}, false
	}
	return window, true
}

func (h *Handler) collect(w http.ResponseWriter, r *http.Request, window report.Window) ([]types.RawEvent, bool) {
	h.Log.Info("report requested",
		zap.String("start_date", window.StartDate()),
		zap.String("end_date", window.EndDate()))
	events, err := h.Events.Collect(r.Context(), window.Start, window.End)
	if err != nil {
		h.Log.Error("collection failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build report", err)
		return nil, false
	}
	return events, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	writeJSON(w, status, map[string]string{"error": msg, "detail": err.Error()})
}
