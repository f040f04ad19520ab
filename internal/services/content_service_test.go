package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qonuniy/api/internal/domain"
	pfirestore "github.com/qonuniy/api/internal/platform/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubContentReader struct {
	getFunc     func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error)
	relatedFunc func(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error)
}

func (s *stubContentReader) GetByID(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
	return s.getFunc(ctx, kind, id)
}

func (s *stubContentReader) Related(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error) {
	if s.relatedFunc == nil {
		return nil, nil
	}
	return s.relatedFunc(ctx, kind, category, excludeID, limit)
}

func TestContentServiceDetailSanitisesContent(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{
				ID:      "doc-1",
				Title:   "Soliq yangiliklari",
				Content: `<p>Matn</p><script>alert("x")</script>`,
			}, nil
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader, RelatedLimit: 3})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	detail, err := service.Detail(context.Background(), domain.KindArticle, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(detail.Item.Content, "<script") {
		t.Fatalf("script tags must be stripped, got %q", detail.Item.Content)
	}
	if !strings.Contains(detail.Item.Content, "<p>Matn</p>") {
		t.Fatalf("allowed markup must survive, got %q", detail.Item.Content)
	}
}

func TestContentServiceDetailMapsNotFound(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{}, pfirestore.WrapError("content get", status.Error(codes.NotFound, "missing"))
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	_, err = service.Detail(context.Background(), domain.KindArticle, "missing")
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentServiceDetailResolvesEmbed(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{ID: "doc-1", VideoURL: "https://www.youtube.com/watch?v=abc123"}, nil
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	detail, err := service.Detail(context.Background(), domain.KindArticle, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.EmbedURL != "https://www.youtube.com/embed/abc123" {
		t.Fatalf("unexpected embed url %q", detail.EmbedURL)
	}
}

func TestContentServiceDetailFetchesRelated(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{ID: "doc-1", Category: "soliq"}, nil
		},
		relatedFunc: func(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error) {
			if category != "soliq" {
				t.Fatalf("unexpected category %q", category)
			}
			if excludeID != "doc-1" {
				t.Fatalf("current item must be excluded, got %q", excludeID)
			}
			if limit != 3 {
				t.Fatalf("unexpected limit %d", limit)
			}
			return []domain.ContentItem{{ID: "doc-2", Title: "Related"}}, nil
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader, RelatedLimit: 3})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	detail, err := service.Detail(context.Background(), domain.KindArticle, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Related) != 1 || detail.Related[0].ID != "doc-2" {
		t.Fatalf("unexpected related items %+v", detail.Related)
	}
}

func TestContentServiceDetailRelatedFailureDegrades(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{ID: "doc-1", Category: "soliq"}, nil
		},
		relatedFunc: func(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error) {
			return nil, errors.New("index missing")
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader, RelatedLimit: 3})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	detail, err := service.Detail(context.Background(), domain.KindArticle, "doc-1")
	if err != nil {
		t.Fatalf("related failure must not fail the detail view: %v", err)
	}
	if len(detail.Related) != 0 {
		t.Fatalf("expected empty related list, got %+v", detail.Related)
	}
}

func TestContentServiceDetailSkipsRelatedWithoutCategory(t *testing.T) {
	reader := &stubContentReader{
		getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) {
			return domain.ContentItem{ID: "doc-1"}, nil
		},
		relatedFunc: func(ctx context.Context, kind domain.Kind, category, excludeID string, limit int) ([]domain.ContentItem, error) {
			t.Fatal("related must not be queried without a category")
			return nil, nil
		},
	}

	service, err := NewContentService(ContentServiceDeps{Repository: reader, RelatedLimit: 3})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	if _, err := service.Detail(context.Background(), domain.KindArticle, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummarizeStripsMarkupAndTruncates(t *testing.T) {
	service, err := NewContentService(ContentServiceDeps{
		Repository:    &stubContentReader{getFunc: func(ctx context.Context, kind domain.Kind, id string) (domain.ContentItem, error) { return domain.ContentItem{}, nil }},
		ExcerptLength: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error constructing content service: %v", err)
	}

	summaries := service.Summarize([]domain.ContentItem{
		{ID: "doc-1", Title: "One", Content: "<p>A very long excerpt body</p>", Views: 7},
	})
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	summary := summaries[0]
	if strings.Contains(summary.Excerpt, "<") {
		t.Fatalf("markup must be stripped from excerpts, got %q", summary.Excerpt)
	}
	if summary.Excerpt != "A very lon..." {
		t.Fatalf("unexpected excerpt %q", summary.Excerpt)
	}
	if summary.Views != 7 {
		t.Fatalf("views must carry over, got %d", summary.Views)
	}
}
