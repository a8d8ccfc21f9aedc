package run

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OneZee23/calendar-summary/internal/rest"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/summary"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

type RunDTO struct {
	ID           string    `json:"id"`
	CapturedAt   time.Time `json:"capturedAt"`
	PageURL      string    `json:"pageUrl"`
	EventCount   int       `json:"eventCount"`
	TotalMinutes int       `json:"totalMinutes"`
}

type EventDTO struct {
	Title           string `json:"title"`
	Date            string `json:"date"`
	StartMinutes    int    `json:"startMinutes"`
	EndMinutes      int    `json:"endMinutes"`
	DurationMinutes int    `json:"durationMinutes"`
	Color           string `json:"color,omitempty"`
}

// TriggerRun starts a capture run and responds with the stored run.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.CaptureNow(r.Context())
	if err != nil {
		log.Errorf("capture run failed: %v", err)
		http.Error(w, "Failed to run capture", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(runToDTO(run)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid limit", Details: "'limit' must be a positive integer"}); err != nil {
				log.Errorf("Cannot encode error response: %v", err)
			}
			return
		}
		limit = parsed
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, runToDTO(run))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := h.runID(w, r)
	if !ok {
		return
	}

	run, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(runToDTO(run)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRunSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.runID(w, r)
	if !ok {
		return
	}

	mode, err := summary.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid mode", Details: err.Error()}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return
	}
	rng, err := summary.ParseRangeParams(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid date range", Details: err.Error()}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return
	}

	summaries, err := h.service.SummarizeRun(r.Context(), id, mode, rng)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary.ToActivityDTOs(summaries)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRunEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.runID(w, r)
	if !ok {
		return
	}

	events, err := h.service.GetRunEvents(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRunICS(w http.ResponseWriter, r *http.Request) {
	id, ok := h.runID(w, r)
	if !ok {
		return
	}

	ics, err := h.service.RenderRunICS(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(ics)); err != nil {
		log.Errorf("Cannot write ICS response: %v", err)
	}
}

func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id, ok := h.runID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRun(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runID parses the runId path variable, answering 400 itself when it is not
// a UUID.
func (h *Handler) runID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["runId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid run id", Details: "'runId' must be a UUID"}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrRunNotFound) {
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "run not found"}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func runToDTO(run Run) RunDTO {
	return RunDTO{
		ID:           run.ID.String(),
		CapturedAt:   run.CapturedAt,
		PageURL:      run.PageURL,
		EventCount:   run.EventCount,
		TotalMinutes: run.TotalMinutes,
	}
}

func eventToDTO(e event.CalendarEvent) EventDTO {
	return EventDTO{
		Title:           e.Title,
		Date:            e.Day(),
		StartMinutes:    e.StartMinutes,
		EndMinutes:      e.EndMinutes,
		DurationMinutes: e.DurationMinutes(),
		Color:           e.Color,
	}
}
