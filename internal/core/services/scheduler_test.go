package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

func TestNewScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(nil, 0)
	assert.Equal(t, DefaultRefreshInterval, s.interval)
}

func TestScheduler_RefreshAllReportsChanges(t *testing.T) {
	provider := newMockProvider(domain.SourceApps, "Maps")
	apps := NewSourceManager(provider, nil, exactOnly())
	_, err := apps.Refresh(context.Background(), false)
	require.NoError(t, err)

	s := NewScheduler([]driving.SourceSearch{apps}, time.Hour)

	s.RefreshAll(context.Background())
	select {
	case kind := <-s.Changes():
		t.Fatalf("unexpected change for %s", kind)
	default:
	}

	provider.set(append(provider.items, domain.Candidate{ID: "apps:Mail", Source: domain.SourceApps, DisplayText: "Mail"}), nil)
	s.RefreshAll(context.Background())
	assert.Equal(t, domain.SourceApps, <-s.Changes())
}

func TestScheduler_RefreshAllToleratesFailures(t *testing.T) {
	broken := newMockProvider(domain.SourceContacts)
	broken.loadErr = errors.New("denied")
	ok := newMockProvider(domain.SourceFiles, "a.txt")

	s := NewScheduler([]driving.SourceSearch{
		NewSourceManager(broken, nil, exactOnly()),
		NewSourceManager(ok, nil, exactOnly()),
	}, time.Hour)

	s.RefreshAll(context.Background())
	assert.Equal(t, domain.SourceFiles, <-s.Changes())
}

func TestScheduler_StartStop(t *testing.T) {
	provider := newMockProvider(domain.SourceApps, "Maps")
	s := NewScheduler([]driving.SourceSearch{NewSourceManager(provider, nil, exactOnly())}, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool { return provider.loads.Load() >= 2 }, time.Second, 5*time.Millisecond)

	// Starting twice is a no-op.
	assert.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_StartsWatchers(t *testing.T) {
	base := newMockProvider(domain.SourceFiles, "a.txt")
	provider := &mockNotifyingProvider{mockProvider: base, ch: make(chan struct{}, 1)}
	files := NewSourceManager(provider, nil, exactOnly())
	s := NewScheduler([]driving.SourceSearch{files}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	base.set([]domain.Candidate{{ID: "files:b.txt", Source: domain.SourceFiles, DisplayText: "b.txt"}}, nil)
	provider.ch <- struct{}{}

	assert.Eventually(t, func() bool {
		_, ok := files.Lookup("files:b.txt")
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
