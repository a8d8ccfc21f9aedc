package run

import (
	"context"
	"sort"

	"github.com/OneZee23/calendar-summary/pkg/event"
	"github.com/google/uuid"
)

// StubRunRepo is an in-memory Repository for tests.
type StubRunRepo struct {
	runs     map[uuid.UUID]Run
	events   map[uuid.UUID][]event.CalendarEvent
	StoreErr error
}

func NewStubRunRepo() *StubRunRepo {
	return &StubRunRepo{
		runs:   map[uuid.UUID]Run{},
		events: map[uuid.UUID][]event.CalendarEvent{},
	}
}

func (s *StubRunRepo) StoreRun(_ context.Context, run Run, events []event.CalendarEvent) error {
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.runs[run.ID] = run
	s.events[run.ID] = append([]event.CalendarEvent(nil), events...)
	return nil
}

func (s *StubRunRepo) GetRun(_ context.Context, id uuid.UUID) (Run, error) {
	run, ok := s.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

func (s *StubRunRepo) ListRuns(_ context.Context, limit int) ([]Run, error) {
	runs := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CapturedAt.After(runs[j].CapturedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *StubRunRepo) GetRunEvents(_ context.Context, id uuid.UUID) ([]event.CalendarEvent, error) {
	return append([]event.CalendarEvent(nil), s.events[id]...), nil
}

func (s *StubRunRepo) DeleteRun(_ context.Context, id uuid.UUID) error {
	if _, ok := s.runs[id]; !ok {
		return ErrRunNotFound
	}
	delete(s.runs, id)
	delete(s.events, id)
	return nil
}

func (s *StubRunRepo) Cleanup() {
	s.runs = map[uuid.UUID]Run{}
	s.events = map[uuid.UUID][]event.CalendarEvent{}
	s.StoreErr = nil
}
