package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OneZee23/calendar-summary/internal/utils"
	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/extractor"
	"github.com/OneZee23/calendar-summary/pkg/locale"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyDocument = errors.New("document is empty")

// Result is the outcome of one extraction pass: the surviving events and
// their aggregation. ExtractedCount counts raw extractions before dedup, so
// callers can see how much the scans overlapped.
type Result struct {
	Mode           Mode
	Range          *event.DateRange
	ExtractedCount int
	Events         []event.CalendarEvent
	Summaries      []ActivitySummary
}

type Service interface {
	// FromHTML runs the pipeline on serialized markup.
	FromHTML(ctx context.Context, html string, pageURL string, mode Mode, rng *event.DateRange) (Result, error)
	// FromSnapshot runs the pipeline on an already parsed page.
	FromSnapshot(ctx context.Context, snap *dom.Snapshot, mode Mode, rng *event.DateRange) (Result, error)
}

type ServiceImpl struct {
	clock   utils.Clock
	locales []locale.Locale
}

func NewServiceImpl(clock utils.Clock, primaryLocale string) *ServiceImpl {
	return &ServiceImpl{
		clock:   clock,
		locales: locale.Ordered(primaryLocale),
	}
}

func (s *ServiceImpl) FromHTML(ctx context.Context, html string, pageURL string, mode Mode, rng *event.DateRange) (Result, error) {
	if strings.TrimSpace(html) == "" {
		return Result{}, ErrEmptyDocument
	}
	snap, err := dom.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		log.Errorf("failed to parse document: %v", err)
		return Result{}, fmt.Errorf("could not parse document: %w", err)
	}
	return s.FromSnapshot(ctx, snap, mode, rng)
}

func (s *ServiceImpl) FromSnapshot(ctx context.Context, snap *dom.Snapshot, mode Mode, rng *event.DateRange) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	extracted := extractor.New(snap, s.clock, s.locales).Extract()
	events := event.FilterByRange(event.Deduplicate(extracted), rng)
	log.Debugf("summary pipeline: %d extracted, %d after dedup and range filter", len(extracted), len(events))
	return Result{
		Mode:           mode,
		Range:          rng,
		ExtractedCount: len(extracted),
		Events:         events,
		Summaries:      Summarize(events, mode),
	}, nil
}
