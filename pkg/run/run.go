package run

import (
	"time"

	"github.com/google/uuid"
)

// Run is one capture pass over the calendar page: when it happened, where it
// pointed, and how much the extraction recovered. The events themselves are
// stored alongside the run.
type Run struct {
	ID           uuid.UUID
	CapturedAt   time.Time
	PageURL      string
	EventCount   int
	TotalMinutes int
}
