package content

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/qonuniy/api/internal/domain"
)

// Snapshot is one complete point-in-time view of a watched collection.
// Err is set at most once, on the terminal delivery.
type Snapshot struct {
	Items []domain.ContentItem
	Err   error
}

// Source provides raw snapshot streams for a content kind. The returned
// channel is closed after a terminal error or when ctx is cancelled.
type Source interface {
	Watch(ctx context.Context, kind domain.Kind) (<-chan Snapshot, error)
}

// Feed wraps a Source and re-delivers each snapshot sorted newest-first.
type Feed struct {
	source Source
	logger *zap.Logger
}

// NewFeed constructs a Feed over the given source.
func NewFeed(source Source, logger *zap.Logger) (*Feed, error) {
	if source == nil {
		return nil, errors.New("content feed: source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{source: source, logger: logger}, nil
}

// Subscribe delivers the full sorted item set on every backend change until
// cancel is called or the source fails. A source failure is reported once
// through onError (which may be nil) and ends delivery; the subscription
// fails open rather than hanging.
func (f *Feed) Subscribe(ctx context.Context, kind domain.Kind, deliver func([]domain.ContentItem), onError func(error)) (func(), error) {
	if deliver == nil {
		return nil, errors.New("content feed: deliver callback is required")
	}
	if !kind.Valid() {
		return nil, errors.New("content feed: unknown content kind")
	}

	subCtx, cancel := context.WithCancel(ctx)
	stream, err := f.source.Watch(subCtx, kind)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		defer cancel()
		for {
			select {
			case <-subCtx.Done():
				return
			case snapshot, ok := <-stream:
				if !ok {
					return
				}
				if snapshot.Err != nil {
					f.logger.Error("feed subscription failed",
						zap.String("kind", string(kind)),
						zap.Error(snapshot.Err),
					)
					if onError != nil {
						onError(snapshot.Err)
					}
					return
				}
				deliver(SortSnapshot(snapshot.Items))
			}
		}
	}()

	return cancel, nil
}
