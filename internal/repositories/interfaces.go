// Package repositories declares the persistence contracts consumed by the
// service layer.
package repositories

import (
	"context"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
)

// ContentRepository provides access to one content collection per kind.
type ContentRepository interface {
	// Watch streams full collection snapshots until ctx is cancelled or the
	// backend fails. The channel is closed on either terminal condition.
	Watch(ctx context.Context, kind domain.Kind) (<-chan content.Snapshot, error)

	// GetByID fetches a single item. Missing documents return an error for
	// which platform firestore.IsNotFound reports true.
	GetByID(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error)

	// Related returns up to limit items sharing the category, excluding the
	// item identified by excludeID.
	Related(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error)

	// IncrementViews atomically adds one to the stored view counter.
	IncrementViews(ctx context.Context, kind domain.Kind, id string) error
}
