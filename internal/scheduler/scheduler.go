// Package scheduler refreshes the cached directory collections on a cron
// schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// DefaultSpec refreshes every five minutes.
const DefaultSpec = "@every 5m"

// Refresher reloads one collection.
type Refresher interface {
	Fetch(ctx context.Context) error
}

// Scheduler wraps robfig/cron and runs the refresh loop.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	targets map[string]Refresher

	wg sync.WaitGroup
}

// New creates a Scheduler for targets, keyed by collection name. An empty
// spec uses DefaultSpec.
func New(spec string, targets map[string]Refresher) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		targets: targets,
	}
}

// Start registers the job, starts the cron and runs one refresh right away
// so the first request does not wait for a load.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RefreshAll(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	logger.Log.Info("directory refresh scheduled", "spec", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RefreshAll(ctx)
	}()
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	logger.Log.Info("directory refresh stopped")
}

// RefreshAll fetches every target. A failure leaves that collection's
// previous list in place.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	for name, target := range s.targets {
		err := target.Fetch(ctx)
		switch {
		case err == nil:
			logger.Log.Debug("collection refreshed", "collection", name)
		case errors.Is(err, store.ErrStale):
			logger.Log.Debug("refresh superseded by a newer fetch", "collection", name)
		default:
			logger.Log.Warn("collection refresh failed", "collection", name, "error", err)
		}
	}
}
