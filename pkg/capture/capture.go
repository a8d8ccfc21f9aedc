package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/OneZee23/calendar-summary/internal/utils"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Defaults sized for a desktop week view, wide enough that day columns get
// distinct horizontal bounds.
const (
	DefaultWidth      = 1440
	DefaultHeight     = 900
	DefaultTimeoutSec = 45
)

// Options defines parameters for one rendered-page capture.
type Options struct {
	// URL of the calendar page to capture.
	URL string

	// WaitSelector, when set, is a CSS selector the capture waits on before
	// serializing, e.g. `[role="grid"]`. When empty the capture waits for
	// document readiness only.
	WaitSelector string

	// Width and Height are the viewport dimensions in pixels. If zero,
	// DefaultWidth / DefaultHeight are used.
	Width  int
	Height int

	// Timeout bounds the entire capture operation. If zero, a sane default
	// (DefaultTimeoutSec) is used.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return o
}

// Page is one serialized rendered page: annotated markup, the final location
// after any redirects, and the capture timestamp.
type Page struct {
	HTML       string
	PageURL    string
	CapturedAt time.Time
}

// Capturer produces rendered-page snapshots.
type Capturer interface {
	Capture(ctx context.Context) (*Page, error)
}

// annotateScript serializes an annotated deep clone of the document element.
// Computed colors and layout geometry exist only in the live browser, so the
// script bakes them into data-snap-* attributes before serializing. It only
// ever writes to the detached clone; both trees enumerate elements in
// document order, so index i of one is index i of the other.
const annotateScript = `(function () {
	var src = document.documentElement;
	var dst = src.cloneNode(true);
	var from = src.getElementsByTagName('*');
	var to = dst.getElementsByTagName('*');
	var n = Math.min(from.length, to.length);
	for (var i = 0; i < n; i++) {
		var cs = window.getComputedStyle(from[i]);
		if (cs) {
			to[i].setAttribute('data-snap-bg', cs.backgroundColor || '');
			to[i].setAttribute('data-snap-border', cs.borderLeftColor || cs.borderColor || '');
		}
		var rect = from[i].getBoundingClientRect();
		if (rect && rect.width > 0) {
			to[i].setAttribute('data-snap-left', String(Math.round(rect.left)));
			to[i].setAttribute('data-snap-right', String(Math.round(rect.right)));
		}
	}
	return '<!DOCTYPE html>' + dst.outerHTML;
})()`

// ChromeCapturer launches a headless Chromium instance via chromedp,
// navigates to the configured URL, waits for the page to render, and
// serializes the annotated clone of the document.
type ChromeCapturer struct {
	opts  Options
	clock utils.Clock
}

func NewChromeCapturer(opts Options, clock utils.Clock) *ChromeCapturer {
	if clock == nil {
		clock = &utils.SystemClock{}
	}
	return &ChromeCapturer{opts: opts, clock: clock}
}

func (c *ChromeCapturer) Capture(parentCtx context.Context) (*Page, error) {
	if c.opts.URL == "" {
		return nil, fmt.Errorf("capture: URL is required")
	}
	opts := c.opts.withDefaults()

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var waitTask chromedp.Action = chromedp.WaitReady("body", chromedp.ByQuery)
	if opts.WaitSelector != "" {
		waitTask = chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery)
	}

	var html, location string
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		waitTask,
		// Small extra delay to allow final paints.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.Evaluate(annotateScript, &html),
		chromedp.Location(&location),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	log.Debugf("captured %d bytes of markup from %s", len(html), location)
	return &Page{HTML: html, PageURL: location, CapturedAt: c.clock.Now()}, nil
}
