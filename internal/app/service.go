package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/ports"
)

// Service orchestrates the full render path: cache lookup, content fetch,
// composition, sanitize, dispatch, cache update. Both the interactive and
// the scheduled paths go through the same service so the two can never
// drift apart.
type Service struct {
	dispatcher *Dispatcher
	source     ports.ContentSource
	cache      ports.CacheRepository
	clock      ports.Clock
	logger     ports.Logger
	freshness  time.Duration
}

// NewService creates a render service. source may be nil when the caller
// only uses ShowContent; cache may be nil to disable the dispatch cache.
func NewService(
	dispatcher *Dispatcher,
	source ports.ContentSource,
	cache ports.CacheRepository,
	clock ports.Clock,
	freshness time.Duration,
	logger ports.Logger,
) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Service{
		dispatcher: dispatcher,
		source:     source,
		cache:      cache,
		clock:      clock,
		logger:     logger,
		freshness:  freshness,
	}
}

// ShowView renders a scheduled content identity. A fresh cache record lets
// it reuse the previously fetched lines instead of going back upstream; the
// dispatch itself always happens (the board answers 304 on its own when
// nothing changed).
func (s *Service) ShowView(ctx context.Context, view string, stage int) (domain.Outcome, error) {
	id := domain.ContentID{View: view, Stage: stage}

	content, ok := s.cachedContent(ctx, id)
	if !ok {
		if s.source == nil {
			return domain.Outcome{}, fmt.Errorf("show %s: no content source configured", id.Key())
		}
		var err error
		content, err = s.source.Fetch(ctx, id)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("fetch %s: %w", id.Key(), err)
		}
	}

	if content.Empty() {
		return domain.Outcome{}, fmt.Errorf("show %s: %w", id.Key(), domain.ErrNoContent)
	}

	return s.ShowContent(ctx, id, content)
}

// ShowContent renders already-resolved content under the given identity.
// This is the interactive entry point; send commands and spool messages
// arrive here directly.
func (s *Service) ShowContent(ctx context.Context, id domain.ContentID, content domain.Content) (domain.Outcome, error) {
	now := s.clock.Now()

	// Sanitize re-runs even though Compose builds well-formed rows.
	grid := board.Sanitize(Compose(content, now).Ints())

	outcome, err := s.dispatcher.Dispatch(ctx, grid, DispatchRequest{
		Title: content.Title,
		Stage: id.Stage,
	})
	if err != nil {
		return outcome, err
	}

	s.recordDispatch(ctx, id, content, now)
	return outcome, nil
}

// Clear dispatches an all-blank grid through the standard pipeline.
func (s *Service) Clear(ctx context.Context) (domain.Outcome, error) {
	return s.dispatcher.Dispatch(ctx, board.Grid{}, DispatchRequest{})
}

// cachedContent returns the cached lines for id when the record is still
// inside the freshness window. Cache read failures degrade to a miss.
func (s *Service) cachedContent(ctx context.Context, id domain.ContentID) (domain.Content, bool) {
	if s.cache == nil {
		return domain.Content{}, false
	}

	rec, ok, err := s.cache.Lookup(ctx, id)
	if err != nil {
		s.logger.Warn("cache lookup failed", ports.String("id", id.Key()), ports.Err(err))
		return domain.Content{}, false
	}
	if !ok || !rec.FreshAt(s.clock.Now(), s.freshness) {
		return domain.Content{}, false
	}

	s.logger.Debug("reusing cached content",
		ports.String("id", id.Key()),
		ports.Time("updated_at", rec.UpdatedAt),
	)
	return rec.Content, true
}

// recordDispatch updates the dispatch cache after a successful send.
// A write failure is logged, not surfaced: the flaps already moved.
func (s *Service) recordDispatch(ctx context.Context, id domain.ContentID, content domain.Content, now time.Time) {
	if s.cache == nil {
		return
	}
	rec := domain.CacheRecord{ID: id, Content: content, UpdatedAt: now}
	if err := s.cache.Record(ctx, rec); err != nil {
		s.logger.Warn("cache record failed", ports.String("id", id.Key()), ports.Err(err))
	}
}
