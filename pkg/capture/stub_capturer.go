package capture

import (
	"context"
	"time"
)

// StubCapturer returns a canned page instead of driving a browser.
type StubCapturer struct {
	Page  Page
	Err   error
	Calls int
}

func NewStubCapturer(html string, pageURL string, capturedAt time.Time) *StubCapturer {
	return &StubCapturer{Page: Page{HTML: html, PageURL: pageURL, CapturedAt: capturedAt}}
}

func (s *StubCapturer) Capture(_ context.Context) (*Page, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	page := s.Page
	return &page, nil
}
