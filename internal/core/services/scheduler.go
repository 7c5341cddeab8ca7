package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// DefaultRefreshInterval is how often snapshots are re-read when the
// provider cannot push changes.
const DefaultRefreshInterval = time.Minute

// watcher is implemented by managers that can follow provider change events.
type watcher interface {
	Watch(ctx context.Context)
}

// Scheduler refreshes source snapshots in the background: on a timer for
// every source, and on change events for sources that push them.
// It is a pure core service with no external control API.
type Scheduler struct {
	sources  []driving.SourceSearch
	interval time.Duration
	changes  chan domain.SourceKind

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler for sources. A non-positive interval
// uses DefaultRefreshInterval.
func NewScheduler(sources []driving.SourceSearch, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Scheduler{
		sources:  sources,
		interval: interval,
		changes:  make(chan domain.SourceKind, len(sources)+1),
	}
}

// Changes receives a source kind whenever a timed refresh changed it.
// Sends are dropped when nobody is reading.
func (s *Scheduler) Changes() <-chan domain.SourceKind {
	return s.changes
}

// Start begins the refresh loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for _, src := range s.sources {
		if w, ok := src.(watcher); ok {
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				w.Watch(watchCtx)
			}()
		}
	}

	err := s.run(ctx, stopCh)
	cancel()
	s.wg.Wait()
	return err
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	close(s.stopCh)
	return nil
}

// run is the main refresh loop.
func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.RefreshAll(ctx)
		}
	}
}

// RefreshAll refreshes every source once. A failing source is logged and
// keeps its previous snapshot.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	for _, src := range s.sources {
		changed, err := src.Refresh(ctx, false)
		if err != nil {
			logger.Warn("scheduler: %v", err)
			continue
		}
		if !changed {
			continue
		}
		select {
		case s.changes <- src.Source():
		default:
		}
	}
}
