package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OneZee23/calendar-summary/internal/rest"
	"github.com/OneZee23/calendar-summary/pkg/event"
	log "github.com/sirupsen/logrus"
)

// maxDocumentBytes bounds uploaded markup. Rendered calendar pages serialize
// to a few megabytes at most.
const maxDocumentBytes = 10 << 20

type SummaryHandler struct {
	service     Service
	csvRenderer CsvSummaryRenderer
}

func NewSummaryHandler(service Service, csvRenderer CsvSummaryRenderer) *SummaryHandler {
	return &SummaryHandler{
		service:     service,
		csvRenderer: csvRenderer,
	}
}

type ActivitySummaryDTO struct {
	Name              string `json:"name"`
	TotalMinutes      int    `json:"totalMinutes"`
	EventCount        int    `json:"eventCount"`
	FormattedDuration string `json:"formattedDuration"`
	Color             string `json:"color,omitempty"`
}

type SummaryResponseDTO struct {
	Mode         string               `json:"mode"`
	From         string               `json:"from,omitempty"`
	To           string               `json:"to,omitempty"`
	TotalEvents  int                  `json:"totalEvents"`
	TotalMinutes int                  `json:"totalMinutes"`
	Summaries    []ActivitySummaryDTO `json:"summaries"`
}

// Extract handles POST requests carrying serialized page markup in the body.
// Query parameters: mode (byName, byColor), from, to (inclusive days) and
// pageUrl for the URL date hint. The Accept header switches JSON to CSV.
func (h *SummaryHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "could not read request body",
			Details: err.Error(),
		})
		if encodeErr != nil {
			log.Errorf("Cannot encode error response: %v", encodeErr)
		}
		return
	}

	mode, err := ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid mode", Details: err.Error()}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return
	}

	rng, err := ParseRangeParams(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "invalid date range", Details: err.Error()}); err != nil {
			log.Errorf("Cannot encode error response: %v", err)
		}
		return
	}

	result, err := h.service.FromHTML(ctx, string(body), r.URL.Query().Get("pageUrl"), mode, rng)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "request body must contain page markup"}); err != nil {
				log.Errorf("Cannot encode error response: %v", err)
			}
			return
		}
		log.Errorf("Extraction failed: %v", err)
		http.Error(w, "Failed to extract events", http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csvData, err := h.csvRenderer.Render(result)
		if err != nil {
			http.Error(w, "Failed to render CSV", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if _, err := w.Write([]byte(csvData)); err != nil {
			log.Errorf("Cannot write CSV response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ToResponseDTO(result)); err != nil {
		log.Errorf("Cannot encode summary response: %v", err)
	}
}

// ToResponseDTO flattens a pipeline result into its wire form.
func ToResponseDTO(result Result) SummaryResponseDTO {
	dto := SummaryResponseDTO{
		Mode:         string(result.Mode),
		TotalEvents:  len(result.Events),
		TotalMinutes: TotalMinutes(result.Events),
		Summaries:    ToActivityDTOs(result.Summaries),
	}
	if result.Range != nil {
		if !result.Range.From.IsZero() {
			dto.From = result.Range.From.Format("2006-01-02")
		}
		if !result.Range.To.IsZero() {
			dto.To = result.Range.To.Format("2006-01-02")
		}
	}
	return dto
}

// ToActivityDTOs converts summaries into their wire form.
func ToActivityDTOs(summaries []ActivitySummary) []ActivitySummaryDTO {
	dtos := make([]ActivitySummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, ActivitySummaryDTO{
			Name:              s.Name,
			TotalMinutes:      s.TotalMinutes,
			EventCount:        s.EventCount,
			FormattedDuration: s.FormattedDuration,
			Color:             s.Color,
		})
	}
	return dtos
}

// ParseRangeParams parses the from/to query parameters into a date range.
// Days come as "2006-01-02"; full RFC3339 timestamps are accepted too.
func ParseRangeParams(fromParam, toParam string) (*event.DateRange, error) {
	if fromParam == "" && toParam == "" {
		return nil, nil
	}
	var rng event.DateRange
	if fromParam != "" {
		t, err := parseDateParam(fromParam)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		rng.From = t
	}
	if toParam != "" {
		t, err := parseDateParam(toParam)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		rng.To = t
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.To.Before(rng.From) {
		return nil, errors.New("from date is after to date")
	}
	return &rng, nil
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expected 2006-01-02 or RFC3339, got %q", s)
}
