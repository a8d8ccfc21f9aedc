package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs registered jobs on standard 5-field cron schedules. A tick
// that fires while the previous run of the same job is still in progress is
// skipped, not queued.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Schedule registers job under the given cron spec.
func (s *Scheduler) Schedule(spec string, name string, job func(ctx context.Context)) error {
	guarded := guard(name, job)
	_, err := s.cron.AddFunc(spec, func() {
		guarded(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not schedule %s (%q): %w", name, spec, err)
	}
	log.Infof("scheduled %s with cron spec %q", name, spec)
	return nil
}

// Start begins firing scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new runs. The returned context is done once all
// in-flight jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// guard wraps job so that overlapping ticks are skipped instead of stacked.
func guard(name string, job func(ctx context.Context)) func(ctx context.Context) {
	var running atomic.Bool
	return func(ctx context.Context) {
		if !running.CompareAndSwap(false, true) {
			log.Warnf("skipping %s: previous run still in progress", name)
			return
		}
		defer running.Store(false)
		job(ctx)
	}
}
