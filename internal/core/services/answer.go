package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService asks the direct-answer engine and keeps the latest state.
// A failed request stays in state with its query so Retry can re-ask it.
type AnswerService struct {
	fetcher  driven.AnswerFetcher
	settings driving.SettingsService

	mu    sync.Mutex
	state domain.AnswerState
	seq   uint64
}

// NewAnswerService creates an answer service. A nil fetcher makes every
// request fail with ErrAnswerUnavailable.
func NewAnswerService(fetcher driven.AnswerFetcher, settings driving.SettingsService) *AnswerService {
	return &AnswerService{fetcher: fetcher, settings: settings}
}

// Ask fetches an answer for query. A later Ask supersedes an earlier one
// still in flight.
func (s *AnswerService) Ask(ctx context.Context, query string) domain.AnswerState {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.finish(s.begin(""), domain.AnswerState{
			Err: fmt.Errorf("%w: question is empty", domain.ErrInvalidInput),
		})
	}

	seq := s.begin(query)
	if err := s.available(); err != nil {
		return s.finish(seq, domain.AnswerState{Query: query, Err: err})
	}

	logger.Debug("answer: asking %q", query)
	answer, err := s.fetcher.FetchAnswer(ctx, query, "")
	if err != nil {
		logger.Warn("answer: %v", err)
		return s.finish(seq, domain.AnswerState{Query: query, Err: err})
	}
	return s.finish(seq, domain.AnswerState{Query: query, Answer: answer})
}

// Retry re-asks the query of the last failed request.
func (s *AnswerService) Retry(ctx context.Context) domain.AnswerState {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	if !state.Retryable() {
		return state
	}
	return s.Ask(ctx, state.Query)
}

// State returns the latest answer state.
func (s *AnswerService) State() domain.AnswerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AnswerService) available() error {
	if s.fetcher == nil {
		return domain.ErrAnswerUnavailable
	}
	if s.settings == nil {
		return nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return fmt.Errorf("load answer settings: %w", err)
	}
	if !settings.Answer.IsConfigured() {
		return fmt.Errorf("%w: set an API key with 'settings answer-key'", domain.ErrAnswerUnavailable)
	}
	return nil
}

func (s *AnswerService) begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = domain.AnswerState{Query: query, Loading: true}
	return s.seq
}

// finish records state unless a newer request has started since seq.
func (s *AnswerService) finish(seq uint64, state domain.AnswerState) domain.AnswerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq {
		s.state = state
	}
	return state
}
