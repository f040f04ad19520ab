package services

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"

	"github.com/qonuniy/api/internal/domain"
	pfirestore "github.com/qonuniy/api/internal/platform/firestore"
)

// ErrContentNotFound reports a detail request for an id that does not exist.
var ErrContentNotFound = errors.New("content: not found")

// ContentServiceDeps bundles collaborators for the content service.
type ContentServiceDeps struct {
	Repository    ContentReader
	RelatedLimit  int
	ExcerptLength int
	Logger        LoggerFunc
}

// ContentDetail is a fully prepared detail view payload.
type ContentDetail struct {
	Item     domain.ContentItem
	EmbedURL string
	Related  []ContentSummary
}

// ContentSummary is the listing representation of an item: sanitised plain
// text excerpt instead of the full rich content.
type ContentSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Language string   `json:"language"`
	Views    int64    `json:"views"`
	ImageURL string   `json:"imageUrl,omitempty"`
	VideoURL string   `json:"videoUrl,omitempty"`
	Images   []string `json:"images,omitempty"`
	LinkURL  string   `json:"linkUrl,omitempty"`
	Category string   `json:"category,omitempty"`
}

type contentService struct {
	repo          ContentReader
	relatedLimit  int
	excerptLength int
	logger        LoggerFunc

	// content is stored as rich HTML and rendered verbatim by clients, so it
	// is sanitised on the way out; excerpts are stripped to plain text.
	richPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
}

// NewContentService constructs the detail/listing content service.
func NewContentService(deps ContentServiceDeps) (ContentService, error) {
	if deps.Repository == nil {
		return nil, errors.New("content service: repository is required")
	}
	if deps.RelatedLimit < 0 {
		return nil, errors.New("content service: related limit must not be negative")
	}
	excerptLength := deps.ExcerptLength
	if excerptLength <= 0 {
		excerptLength = 300
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &contentService{
		repo:          deps.Repository,
		relatedLimit:  deps.RelatedLimit,
		excerptLength: excerptLength,
		logger:        logger,
		richPolicy:    bluemonday.UGCPolicy(),
		plainPolicy:   bluemonday.StrictPolicy(),
	}, nil
}

// Detail fetches one item with sanitised content, a resolved video embed,
// and related items sharing its category. A missing related lookup degrades
// to an empty list; a missing item is a distinct not-found condition.
func (s *contentService) Detail(ctx context.Context, kind domain.Kind, id string) (ContentDetail, error) {
	item, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		if pfirestore.IsNotFound(err) {
			return ContentDetail{}, ErrContentNotFound
		}
		return ContentDetail{}, err
	}

	item.Content = s.richPolicy.Sanitize(item.Content)

	detail := ContentDetail{Item: item, Related: []ContentSummary{}}
	if embed, ok := domain.YouTubeEmbedURL(item.VideoURL); ok {
		detail.EmbedURL = embed
	}

	if item.Category != "" && s.relatedLimit > 0 {
		related, err := s.repo.Related(ctx, kind, item.Category, item.ID, s.relatedLimit)
		if err != nil {
			s.logger(ctx, "content.related_failed", map[string]any{
				"kind":  string(kind),
				"id":    item.ID,
				"error": err.Error(),
			})
		} else {
			detail.Related = s.Summarize(related)
		}
	}

	return detail, nil
}

// Summarize converts items to their listing form, stripping markup from the
// excerpt.
func (s *contentService) Summarize(items []domain.ContentItem) []ContentSummary {
	summaries := make([]ContentSummary, 0, len(items))
	for _, item := range items {
		plain := s.plainPolicy.Sanitize(item.Content)
		summaries = append(summaries, ContentSummary{
			ID:       item.ID,
			Title:    item.Title,
			Excerpt:  domain.Excerpt(plain, s.excerptLength),
			Author:   item.Author,
			Date:     item.Date,
			Language: item.Language,
			Views:    item.Views,
			ImageURL: item.ImageURL,
			VideoURL: item.VideoURL,
			Images:   item.Images,
			LinkURL:  item.LinkURL,
			Category: item.Category,
		})
	}
	return summaries
}
