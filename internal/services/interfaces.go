// Package services implements the application logic between HTTP handlers
// and the content repositories.
package services

import (
	"context"
	"time"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
	"github.com/qonuniy/api/internal/state"
)

// LoggerFunc receives structured service events for logging.
type LoggerFunc func(ctx context.Context, event string, fields map[string]any)

// ContentReader provides document reads for detail views.
type ContentReader interface {
	GetByID(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error)
	Related(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error)
}

// ViewIncrementer issues the atomic view-counter increment.
type ViewIncrementer interface {
	IncrementViews(ctx context.Context, kind domain.Kind, id string) error
}

// ViewEvent describes one successful counted view, published for analytics.
type ViewEvent struct {
	Kind       string    `json:"kind"`
	ItemID     string    `json:"itemId"`
	ViewerID   string    `json:"viewerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ViewEventPublisher forwards view events to an analytics sink.
type ViewEventPublisher interface {
	PublishView(ctx context.Context, event ViewEvent) (string, error)
}

// DisplayService resolves the current display state for a content kind. A
// terminal feed failure is returned as an error.
type DisplayService interface {
	Display(kind domain.Kind, locale, search string) (content.DisplayState, error)
}

// ContentService serves detail views and listing summaries.
type ContentService interface {
	Detail(ctx context.Context, kind domain.Kind, id string) (ContentDetail, error)
	Summarize(items []domain.ContentItem) []ContentSummary
}

// ViewService counts item views at most once per item per viewer.
type ViewService interface {
	TrackView(ctx context.Context, kind domain.Kind, id, viewerID string, ledger state.Ledger) bool
}
