package app

import (
	"net/http"

	"github.com/OneZee23/calendar-summary/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Liveness
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	// Ad-hoc extraction from posted markup
	r.HandleFunc("/api/extract", deps.SummaryHandler.Extract).Methods("POST")

	// Capture runs
	r.HandleFunc("/api/run", deps.RunHandler.TriggerRun).Methods("POST")
	r.HandleFunc("/api/run", deps.RunHandler.ListRuns).Methods("GET")
	r.HandleFunc("/api/run/{runId}", deps.RunHandler.GetRun).Methods("GET")
	r.HandleFunc("/api/run/{runId}", deps.RunHandler.DeleteRun).Methods("DELETE")
	r.HandleFunc("/api/run/{runId}/summary", deps.RunHandler.GetRunSummary).Methods("GET")
	r.HandleFunc("/api/run/{runId}/events", deps.RunHandler.GetRunEvents).Methods("GET")
	r.HandleFunc("/api/run/{runId}/events.ics", deps.RunHandler.GetRunICS).Methods("GET")
}
