// Package firestore implements the content repository on Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
	pfirestore "github.com/qonuniy/api/internal/platform/firestore"
)

// contentDocument mirrors the stored document shape. Fields absent from a
// document decode to their zero value, matching the site's defaulting rules.
type contentDocument struct {
	ID       string   `firestore:"id"`
	Title    string   `firestore:"title"`
	Content  string   `firestore:"content"`
	Author   string   `firestore:"author"`
	Date     string   `firestore:"date"`
	Language string   `firestore:"language"`
	Views    int64    `firestore:"views"`
	ImageURL string   `firestore:"imageUrl"`
	VideoURL string   `firestore:"videoUrl"`
	Images   []string `firestore:"images"`
	LinkURL  string   `firestore:"linkUrl"`
	Category string   `firestore:"category"`
}

// ContentRepository reads and updates the article and project collections.
type ContentRepository struct {
	provider    *pfirestore.Provider
	collections map[domain.Kind]string
}

// NewContentRepository constructs a repository over the named collections.
func NewContentRepository(provider *pfirestore.Provider, articlesCollection, projectsCollection string) (*ContentRepository, error) {
	if provider == nil {
		return nil, errors.New("content repository requires firestore provider")
	}
	articlesCollection = strings.TrimSpace(articlesCollection)
	projectsCollection = strings.TrimSpace(projectsCollection)
	if articlesCollection == "" || projectsCollection == "" {
		return nil, errors.New("content repository requires collection names")
	}
	return &ContentRepository{
		provider: provider,
		collections: map[domain.Kind]string{
			domain.KindArticle: articlesCollection,
			domain.KindProject: projectsCollection,
		},
	}, nil
}

func (r *ContentRepository) collection(kind domain.Kind) (string, error) {
	name, ok := r.collections[kind]
	if !ok {
		return "", fmt.Errorf("content repository: unknown kind %q", kind)
	}
	return name, nil
}

// Watch streams full collection snapshots. Every backend change event yields
// the complete current document set, not a diff.
func (r *ContentRepository) Watch(ctx context.Context, kind domain.Kind) (<-chan content.Snapshot, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan content.Snapshot, 1)
	snapshots := client.Collection(coll).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				select {
				case out <- content.Snapshot{Err: pfirestore.WrapError("content watch "+coll, err)}:
				case <-ctx.Done():
				}
				return
			}

			items, err := collectItems(snapshot.Documents)
			if err != nil {
				select {
				case out <- content.Snapshot{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case out <- content.Snapshot{Items: items}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// GetByID fetches one document by its identifier.
func (r *ContentRepository) GetByID(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return domain.ContentItem{}, err
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return domain.ContentItem{}, pfirestore.WrapError("content get", status.Error(codes.NotFound, "document id required"))
	}

	client, err := r.provider.Client(ctx)
	if err != nil {
		return domain.ContentItem{}, err
	}

	snap, err := client.Collection(coll).Doc(trimmed).Get(ctx)
	if err != nil {
		return domain.ContentItem{}, pfirestore.WrapError("content get "+coll, err)
	}
	return itemFromSnapshot(snap)
}

// Related queries items sharing the category, excluding the current document,
// with a result-count limit.
func (r *ContentRepository) Related(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" || limit <= 0 {
		return nil, nil
	}

	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	query := client.Collection(coll).
		Where("category", "==", category).
		Where("id", "!=", strings.TrimSpace(excludeID)).
		Limit(limit)

	items, err := collectItems(query.Documents(ctx))
	if err != nil {
		return nil, pfirestore.WrapError("content related "+coll, err)
	}
	return items, nil
}

// IncrementViews atomically adds one to the stored counter.
func (r *ContentRepository) IncrementViews(ctx context.Context, kind domain.Kind, id string) error {
	coll, err := r.collection(kind)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return errors.New("content repository: document id required")
	}

	client, err := r.provider.Client(ctx)
	if err != nil {
		return err
	}

	_, err = client.Collection(coll).Doc(trimmed).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	return pfirestore.WrapError("content increment "+coll, err)
}

func collectItems(docs *firestore.DocumentIterator) ([]domain.ContentItem, error) {
	defer docs.Stop()

	var items []domain.ContentItem
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		item, err := itemFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func itemFromSnapshot(snap *firestore.DocumentSnapshot) (domain.ContentItem, error) {
	var doc contentDocument
	if err := snap.DataTo(&doc); err != nil {
		return domain.ContentItem{}, fmt.Errorf("content decode %s: %w", snap.Ref.ID, err)
	}
	return domain.ContentItem{
		ID:       snap.Ref.ID,
		Title:    doc.Title,
		Content:  doc.Content,
		Author:   doc.Author,
		Date:     doc.Date,
		Language: doc.Language,
		Views:    doc.Views,
		ImageURL: doc.ImageURL,
		VideoURL: doc.VideoURL,
		Images:   doc.Images,
		LinkURL:  doc.LinkURL,
		Category: doc.Category,
	}, nil
}
