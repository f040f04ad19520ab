// Package handlers wires HTTP endpoints to the content services.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
	"github.com/qonuniy/api/internal/i18n"
	"github.com/qonuniy/api/internal/platform/httpx"
	"github.com/qonuniy/api/internal/platform/requestctx"
	"github.com/qonuniy/api/internal/services"
	"github.com/qonuniy/api/internal/state"
)

// ContentHandlersDeps bundles the services the content endpoints call.
type ContentHandlersDeps struct {
	Display services.DisplayService
	Content services.ContentService
	Views   services.ViewService
	Logger  services.LoggerFunc
}

// ContentHandlers serves the listing and detail endpoints for one content
// kind. The same handlers back both articles and projects; the kind is fixed
// at route registration.
type ContentHandlers struct {
	display services.DisplayService
	content services.ContentService
	views   services.ViewService
	logger  services.LoggerFunc
}

// NewContentHandlers constructs the content endpoint handlers.
func NewContentHandlers(deps ContentHandlersDeps) (*ContentHandlers, error) {
	if deps.Display == nil {
		return nil, errors.New("content handlers: display service is required")
	}
	if deps.Content == nil {
		return nil, errors.New("content handlers: content service is required")
	}
	if deps.Views == nil {
		return nil, errors.New("content handlers: view service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &ContentHandlers{
		display: deps.Display,
		content: deps.Content,
		views:   deps.Views,
		logger:  logger,
	}, nil
}

// Routes returns the route registrar for one content kind.
func (h *ContentHandlers) Routes(kind domain.Kind) RouteRegistrar {
	return func(r chi.Router) {
		r.Get("/", h.List(kind))
		r.Get("/{contentId}", h.Detail(kind))
	}
}

type listResponse struct {
	Locale           string                    `json:"locale"`
	LocaleHasContent bool                      `json:"localeHasContent"`
	Count            int                       `json:"count"`
	Title            string                    `json:"title"`
	Notice           string                    `json:"notice,omitempty"`
	Strings          i18n.UIStrings            `json:"strings"`
	Featured         *services.ContentSummary  `json:"featured,omitempty"`
	Items            []services.ContentSummary `json:"items"`
}

type detailItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
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

type detailResponse struct {
	Item     detailItem                `json:"item"`
	EmbedURL string                    `json:"embedUrl,omitempty"`
	Related  []services.ContentSummary `json:"related"`
}

// List serves the filtered listing for one content kind. When the request
// carries no navigation parameters and the viewer has a saved non-default
// locale, it redirects once to attach the saved locale to the URL. Every
// item actually returned counts as a display, so the view ledger is
// consulted and updated here just as on the detail view.
func (h *ContentHandlers) List(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if target, ok := state.RedirectTarget(r); ok {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		params := state.ReadParams(r)
		locale := h.resolveLocale(w, r, params)
		display, err := h.display.Display(kind, locale, params.Search)
		if err != nil {
			h.logger(ctx, "content.list_failed", map[string]any{
				"kind":  string(kind),
				"error": err.Error(),
			})
			httpx.WriteError(ctx, w, httpx.NewError("content_unavailable", "content feed is unavailable", http.StatusServiceUnavailable))
			return
		}
		strings := i18n.Strings(locale)

		h.trackDisplayed(ctx, w, r, kind, display)

		resp := listResponse{
			Locale:           display.RequestedLocale,
			LocaleHasContent: display.LocaleHasContent,
			Count:            len(display.Items),
			Strings:          strings,
			Items:            []services.ContentSummary{},
		}

		switch {
		case params.SearchSet:
			resp.Title = fmt.Sprintf("%q %s", params.Search, strings.SearchResults)
		case kind == domain.KindProject:
			resp.Title = strings.AllProjects
		default:
			resp.Title = strings.LatestNews
		}

		if !display.LocaleHasContent {
			if kind == domain.KindProject {
				resp.Notice = strings.NoProjectsInLanguage
			} else {
				resp.Notice = strings.NoArticlesInLanguage
			}
		}

		if display.Featured != nil {
			featured := h.content.Summarize([]domain.ContentItem{*display.Featured})
			if len(featured) > 0 {
				resp.Featured = &featured[0]
			}
			resp.Items = h.content.Summarize(display.Secondary)
		}

		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// Detail serves one item with sanitised content and related items, and counts
// the view at most once per viewer via the ledger cookie.
func (h *ContentHandlers) Detail(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := chi.URLParam(r, "contentId")
		if id == "" {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "content id is required", http.StatusBadRequest))
			return
		}

		detail, err := h.content.Detail(ctx, kind, id)
		if err != nil {
			if errors.Is(err, services.ErrContentNotFound) {
				httpx.WriteError(ctx, w, httpx.NewError("content_not_found", fmt.Sprintf("%s %s not found", kind, id), http.StatusNotFound))
				return
			}
			h.logger(ctx, "content.detail_failed", map[string]any{
				"kind":  string(kind),
				"id":    id,
				"error": err.Error(),
			})
			httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to load content", http.StatusInternalServerError))
			return
		}

		viewerID := state.EnsureViewer(w, r)
		ctx = requestctx.WithViewer(ctx, viewerID)
		ledger := state.ReadLedger(r, kind)
		if h.views.TrackView(ctx, kind, detail.Item.ID, viewerID, ledger) {
			state.WriteLedger(w, kind, ledger)
		}

		item := detail.Item
		httpx.WriteJSON(w, http.StatusOK, detailResponse{
			Item: detailItem{
				ID:       item.ID,
				Title:    item.Title,
				Content:  item.Content,
				Author:   item.Author,
				Date:     item.Date,
				Language: item.Language,
				Views:    item.Views,
				ImageURL: item.ImageURL,
				VideoURL: item.VideoURL,
				Images:   item.Images,
				LinkURL:  item.LinkURL,
				Category: item.Category,
			},
			EmbedURL: detail.EmbedURL,
			Related:  detail.Related,
		})
	}
}

// trackDisplayed counts one view per returned item. An item rendered in
// more than one slot still counts once: the first successful attempt marks
// the ledger and later attempts see it counted. The updated ledger is
// written back as a single cookie.
func (h *ContentHandlers) trackDisplayed(ctx context.Context, w http.ResponseWriter, r *http.Request, kind domain.Kind, display content.DisplayState) {
	if display.Featured == nil {
		return
	}

	viewerID := state.EnsureViewer(w, r)
	ctx = requestctx.WithViewer(ctx, viewerID)
	ledger := state.ReadLedger(r, kind)

	counted := h.views.TrackView(ctx, kind, display.Featured.ID, viewerID, ledger)
	for _, item := range display.Secondary {
		if h.views.TrackView(ctx, kind, item.ID, viewerID, ledger) {
			counted = true
		}
	}
	if counted {
		state.WriteLedger(w, kind, ledger)
	}
}

// resolveLocale applies the locale precedence chain: explicit URL parameter,
// then the saved preference cookie, then the Accept-Language header. An
// explicit parameter also refreshes the saved preference.
func (h *ContentHandlers) resolveLocale(w http.ResponseWriter, r *http.Request, params state.Params) string {
	if params.LangSet {
		locale := i18n.Resolve(params.Lang)
		state.SaveLocale(w, locale)
		return locale
	}
	if saved, ok := state.SavedLocale(r); ok {
		return saved
	}
	return i18n.ResolveAcceptLanguage(r.Header.Get("Accept-Language"))
}
