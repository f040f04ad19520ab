package services

import (
	"context"
	"errors"
	"sync"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
)

// DisplayServiceDeps bundles collaborators for the display service.
type DisplayServiceDeps struct {
	Feed   *content.Feed
	Logger LoggerFunc
}

// displayService keeps the latest sorted snapshot per kind and reconciles it
// with the requested locale and search on demand.
type displayService struct {
	feed   *content.Feed
	logger LoggerFunc

	mu      sync.RWMutex
	latest  map[domain.Kind][]domain.ContentItem
	failed  map[domain.Kind]error
	cancels []func()
}

// NewDisplayService constructs a display service over the given feed.
func NewDisplayService(deps DisplayServiceDeps) (*displayService, error) {
	if deps.Feed == nil {
		return nil, errors.New("display service: feed is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &displayService{
		feed:   deps.Feed,
		logger: logger,
		latest: make(map[domain.Kind][]domain.ContentItem),
		failed: make(map[domain.Kind]error),
	}, nil
}

// Start subscribes to both content kinds. A subscription failure leaves that
// kind serving an empty snapshot; it does not abort the other kind.
func (s *displayService) Start(ctx context.Context) error {
	for _, kind := range []domain.Kind{domain.KindArticle, domain.KindProject} {
		kind := kind
		cancel, err := s.feed.Subscribe(ctx, kind,
			func(items []domain.ContentItem) {
				s.mu.Lock()
				s.latest[kind] = items
				delete(s.failed, kind)
				s.mu.Unlock()
			},
			func(err error) {
				s.mu.Lock()
				s.latest[kind] = nil
				s.failed[kind] = err
				s.mu.Unlock()
				s.logger(ctx, "display.feed_failed", map[string]any{
					"kind":  string(kind),
					"error": err.Error(),
				})
			},
		)
		if err != nil {
			s.Stop()
			return err
		}
		s.cancels = append(s.cancels, cancel)
	}
	return nil
}

// Stop tears down all feed subscriptions.
func (s *displayService) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// Display reconciles the latest snapshot for a kind with the requested
// locale and search query. A not-yet-delivered feed yields the empty display
// state; a failed feed surfaces its terminal error so callers can tell an
// outage apart from an empty collection.
func (s *displayService) Display(kind domain.Kind, locale, search string) (content.DisplayState, error) {
	s.mu.RLock()
	items := s.latest[kind]
	err := s.failed[kind]
	s.mu.RUnlock()
	if err != nil {
		return content.DisplayState{}, err
	}
	return content.Reconcile(items, locale, search), nil
}

var _ DisplayService = (*displayService)(nil)
