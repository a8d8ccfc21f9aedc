package run

import (
	"context"
	"fmt"

	"github.com/OneZee23/calendar-summary/internal/event_bus"
	"github.com/OneZee23/calendar-summary/internal/utils"
	"github.com/OneZee23/calendar-summary/pkg/capture"
	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/OneZee23/calendar-summary/pkg/summary"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// CaptureNow captures the configured page, extracts its events, and
	// persists the result as a new run.
	CaptureNow(ctx context.Context) (Run, error)
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetRunEvents(ctx context.Context, id uuid.UUID) ([]event.CalendarEvent, error)
	SummarizeRun(ctx context.Context, id uuid.UUID, mode summary.Mode, rng *event.DateRange) ([]summary.ActivitySummary, error)
	RenderRunICS(ctx context.Context, id uuid.UUID) (string, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	capturer   capture.Capturer
	extraction summary.Service
	repo       Repository
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

func NewServiceImpl(capturer capture.Capturer, extraction summary.Service, repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	if clock == nil {
		clock = &utils.SystemClock{}
	}
	return &ServiceImpl{
		capturer:   capturer,
		extraction: extraction,
		repo:       repo,
		eventBus:   eventBus,
		clock:      clock,
	}
}

func (s *ServiceImpl) CaptureNow(ctx context.Context) (Run, error) {
	log.Debug("starting capture run")
	page, err := s.capturer.Capture(ctx)
	if err != nil {
		return Run{}, fmt.Errorf("capture failed: %w", err)
	}

	result, err := s.extraction.FromHTML(ctx, page.HTML, page.PageURL, summary.ModeByName, nil)
	if err != nil {
		return Run{}, fmt.Errorf("extraction failed: %w", err)
	}

	capturedAt := page.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = s.clock.Now()
	}
	run := Run{
		ID:           uuid.New(),
		CapturedAt:   capturedAt,
		PageURL:      page.PageURL,
		EventCount:   len(result.Events),
		TotalMinutes: summary.TotalMinutes(result.Events),
	}
	if err := s.repo.StoreRun(ctx, run, result.Events); err != nil {
		return Run{}, err
	}
	log.Infof("run %s stored: %d events, %d minutes", run.ID, run.EventCount, run.TotalMinutes)

	// The run is already persisted; a failing subscriber (e.g. a full export
	// disk) must not turn the capture into a failure.
	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		"run.completed",
		event_bus.RunCompleted{
			RunID:      run.ID.String(),
			CapturedAt: run.CapturedAt,
			PageURL:    run.PageURL,
			Events:     result.Events,
		},
	))
	if err != nil {
		log.Errorf("failed to publish run completion event: %v", err)
	}

	return run, nil
}

func (s *ServiceImpl) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	return s.repo.GetRun(ctx, id)
}

func (s *ServiceImpl) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return s.repo.ListRuns(ctx, limit)
}

func (s *ServiceImpl) GetRunEvents(ctx context.Context, id uuid.UUID) ([]event.CalendarEvent, error) {
	if _, err := s.repo.GetRun(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetRunEvents(ctx, id)
}

func (s *ServiceImpl) SummarizeRun(ctx context.Context, id uuid.UUID, mode summary.Mode, rng *event.DateRange) ([]summary.ActivitySummary, error) {
	events, err := s.GetRunEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	return summary.Summarize(event.FilterByRange(events, rng), mode), nil
}

func (s *ServiceImpl) RenderRunICS(ctx context.Context, id uuid.UUID) (string, error) {
	events, err := s.GetRunEvents(ctx, id)
	if err != nil {
		return "", err
	}
	return RenderICS(id.String(), events), nil
}

func (s *ServiceImpl) DeleteRun(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRun(ctx, id)
}
