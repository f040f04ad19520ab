package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/qonuniy/api/internal/domain"
	"github.com/qonuniy/api/internal/state"
)

// ViewServiceDeps bundles collaborators for the view counter service.
type ViewServiceDeps struct {
	Incrementer ViewIncrementer
	Events      ViewEventPublisher
	Clock       func() time.Time
	Logger      LoggerFunc
}

type viewService struct {
	incrementer ViewIncrementer
	events      ViewEventPublisher
	clock       func() time.Time
	logger      LoggerFunc

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewViewService constructs a view counter service. The events publisher is
// optional.
func NewViewService(deps ViewServiceDeps) (ViewService, error) {
	if deps.Incrementer == nil {
		return nil, errors.New("view service: incrementer is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &viewService{
		incrementer: deps.Incrementer,
		events:      deps.Events,
		clock:       clock,
		logger:      logger,
		pending:     make(map[string]struct{}),
	}, nil
}

// TrackView requests a counter increment for the item unless the ledger
// already marks it counted. The ledger is consulted before the increment is
// dispatched, and a concurrent attempt for the same viewer and item is
// coalesced rather than re-issued. On success the ledger is marked and true
// is returned so the caller can persist it; on failure the ledger stays
// unmarked and the next natural display retries. Counter failures are never
// surfaced to the viewer.
func (s *viewService) TrackView(ctx context.Context, kind domain.Kind, id, viewerID string, ledger state.Ledger) bool {
	id = strings.TrimSpace(id)
	if id == "" || !kind.Valid() || ledger == nil {
		return false
	}
	if ledger.Counted(id) {
		return false
	}

	key := viewerID + "|" + string(kind) + "|" + id
	s.mu.Lock()
	if _, inFlight := s.pending[key]; inFlight {
		s.mu.Unlock()
		return false
	}
	s.pending[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
	}()

	if err := s.incrementer.IncrementViews(ctx, kind, id); err != nil {
		s.logger(ctx, "views.increment_failed", map[string]any{
			"kind":  string(kind),
			"id":    id,
			"error": err.Error(),
		})
		return false
	}

	ledger.MarkCounted(id)
	s.publishEvent(ctx, kind, id, viewerID)
	return true
}

func (s *viewService) publishEvent(ctx context.Context, kind domain.Kind, id, viewerID string) {
	if s.events == nil {
		return
	}
	event := ViewEvent{
		Kind:       string(kind),
		ItemID:     id,
		ViewerID:   viewerID,
		OccurredAt: s.clock().UTC(),
	}
	if _, err := s.events.PublishView(ctx, event); err != nil {
		// Analytics are best-effort; the count itself already succeeded.
		s.logger(ctx, "views.event_publish_failed", map[string]any{
			"kind":  string(kind),
			"id":    id,
			"error": err.Error(),
		})
	}
}
