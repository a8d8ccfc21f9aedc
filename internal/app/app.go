package app

import (
	"context"
	"net/http"
	"time"

	"github.com/OneZee23/calendar-summary/internal/config"
	"github.com/OneZee23/calendar-summary/internal/database"
	"github.com/OneZee23/calendar-summary/internal/scheduler"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, scheduler, and server
// lifecycle.
type Application struct {
	cfg       config.Application
	router    *mux.Router
	srv       *http.Server
	scheduler *scheduler.Scheduler
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(db, cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Scheduled captures
	sched := scheduler.New()
	if cfg.Capture.Cron != "" {
		err := sched.Schedule(cfg.Capture.Cron, "calendar capture", func(ctx context.Context) {
			if _, err := deps.RunService.CaptureNow(ctx); err != nil {
				log.Errorf("scheduled capture failed: %v", err)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	srv := &http.Server{
		Handler: r,
		Addr:    cfg.Server.Addr,
		// Triggering a capture keeps the response open for the whole
		// browser session, so the write timeout must outlast it.
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, scheduler: sched}, nil
}

// Run starts the scheduler and the HTTP server and blocks.
func (a *Application) Run() error {
	a.scheduler.Start()
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
