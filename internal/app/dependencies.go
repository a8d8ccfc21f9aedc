package app

import (
	"database/sql"
	"time"

	"github.com/OneZee23/calendar-summary/internal/config"
	"github.com/OneZee23/calendar-summary/internal/event_bus"
	"github.com/OneZee23/calendar-summary/internal/utils"
	"github.com/OneZee23/calendar-summary/pkg/capture"
	"github.com/OneZee23/calendar-summary/pkg/run"
	"github.com/OneZee23/calendar-summary/pkg/summary"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	SummaryService summary.Service
	CsvRenderer    *summary.CsvSummaryRendererImpl
	SummaryHandler *summary.SummaryHandler

	Capturer         capture.Capturer
	RunRepo          run.Repository
	RunService       *run.ServiceImpl
	RunHandler       *run.Handler
	ArtifactExporter *run.ArtifactExporter
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.SummaryService = summary.NewServiceImpl(deps.Clock, cfg.Locale.Primary)
	deps.CsvRenderer = summary.NewCsvSummaryRendererImpl()
	deps.SummaryHandler = summary.NewSummaryHandler(deps.SummaryService, deps.CsvRenderer)

	deps.Capturer = capture.NewChromeCapturer(capture.Options{
		URL:          cfg.Capture.URL,
		WaitSelector: cfg.Capture.WaitSelector,
		Width:        cfg.Capture.Width,
		Height:       cfg.Capture.Height,
		Timeout:      time.Duration(cfg.Capture.TimeoutSec) * time.Second,
	}, deps.Clock)
	deps.RunRepo = run.NewRepository(db)
	deps.RunService = run.NewServiceImpl(deps.Capturer, deps.SummaryService, deps.RunRepo, deps.EventBus, deps.Clock)
	deps.RunHandler = run.NewHandler(deps.RunService)

	deps.ArtifactExporter = run.NewArtifactExporter(cfg.Export.Dir, deps.CsvRenderer, deps.EventBus)

	return deps
}
