package summary

import (
	"context"

	"github.com/OneZee23/calendar-summary/pkg/dom"
	"github.com/OneZee23/calendar-summary/pkg/event"
)

type serviceStub struct {
	result    Result
	err       error
	lastHTML  string
	lastURL   string
	lastMode  Mode
	lastRange *event.DateRange
}

func newServiceStub() *serviceStub {
	return &serviceStub{}
}

func (s *serviceStub) setResult(result Result) {
	s.result = result
	s.err = nil
}

func (s *serviceStub) setError(err error) {
	s.err = err
}

func (s *serviceStub) FromHTML(_ context.Context, html string, pageURL string, mode Mode, rng *event.DateRange) (Result, error) {
	s.lastHTML = html
	s.lastURL = pageURL
	s.lastMode = mode
	s.lastRange = rng
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}

func (s *serviceStub) FromSnapshot(_ context.Context, _ *dom.Snapshot, mode Mode, rng *event.DateRange) (Result, error) {
	s.lastMode = mode
	s.lastRange = rng
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}
