// Package domain defines the content model shared across services and
// repositories.
package domain

import (
	"net/url"
	"strings"
	"time"
)

// Kind distinguishes the two content collections the site publishes.
type Kind string

const (
	// KindArticle identifies news/blog articles.
	KindArticle Kind = "article"
	// KindProject identifies portfolio projects.
	KindProject Kind = "project"
)

// Valid reports whether the kind is one of the known collections.
func (k Kind) Valid() bool {
	return k == KindArticle || k == KindProject
}

// LedgerCookie names the per-kind view ledger cookie. Articles and projects
// keep independent ledgers.
func (k Kind) LedgerCookie() string {
	if k == KindProject {
		return "viewedProjects"
	}
	return "viewedArticles"
}

// ContentItem is one published article or project. The two kinds are
// structurally identical; only their backing collection differs.
type ContentItem struct {
	ID       string
	Title    string
	Content  string
	Author   string
	Date     string
	Language string
	Views    int64
	ImageURL string
	VideoURL string
	Images   []string
	LinkURL  string
	Category string
}

// PublishedAt parses the stored ISO-8601 date. Items with a missing or
// unparseable date report the epoch so they sort last in newest-first order.
func (i ContentItem) PublishedAt() time.Time {
	raw := strings.TrimSpace(i.Date)
	if raw == "" {
		return time.Unix(0, 0).UTC()
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// Excerpt truncates text to limit runes, appending an ellipsis when trimmed.
func Excerpt(text string, limit int) string {
	if limit <= 0 || text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// YouTubeEmbedURL resolves a watch or short-link URL to its embed form.
// Non-YouTube URLs yield no embed.
func YouTubeEmbedURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "youtube.com") && !strings.Contains(raw, "youtu.be") {
		return "", false
	}

	videoID := ""
	switch {
	case strings.Contains(raw, "youtube.com/watch"):
		if parsed, err := url.Parse(raw); err == nil {
			videoID = parsed.Query().Get("v")
		}
	case strings.Contains(raw, "youtu.be/"):
		rest := raw[strings.Index(raw, "youtu.be/")+len("youtu.be/"):]
		if idx := strings.IndexAny(rest, "?&"); idx >= 0 {
			rest = rest[:idx]
		}
		videoID = rest
	}

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", false
	}
	return "https://www.youtube.com/embed/" + videoID, true
}
