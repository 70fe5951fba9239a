package api

import (
	"strings"
	"time"
)

// Generated is the set of channel texts produced for one release.
// JSON names follow the generation webhook's response body.
type Generated struct {
	Title    string `json:"title"`
	News     string `json:"news_data"`
	Check    string `json:"check_data"`
	Insta    string `json:"insta_data"`
	Facebook string `json:"facebook_data"`
	Blog     string `json:"blog_data"`
}

// PlainText is the body of the .txt download: title, blank line, news.
func (g Generated) PlainText() string {
	return g.Title + "\n\n" + g.News
}

// MaxInstaPosts caps how many Instagram/TikTok posts are previewed.
const MaxInstaPosts = 2

// InstaPosts splits the Instagram text on two blank lines and returns at most
// MaxInstaPosts non-empty posts.
func (g Generated) InstaPosts() []string {
	raw := strings.TrimSpace(g.Insta)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n\n\n")
	if len(parts) > MaxInstaPosts {
		parts = parts[:MaxInstaPosts]
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Source records where a release's text came from.
type Source string

const (
	SourceWebhook  Source = "webhook"
	SourceFallback Source = "fallback"
)

// Debug carries raw webhook response details when debugging is enabled.
type Debug struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Raw         string `json:"raw"`
	Error       string `json:"error,omitempty"`
}

// Record is one persisted generation.
type Record struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Source    Source            `json:"source"`
	Notice    string            `json:"notice,omitempty"`
	Hash      string            `json:"hash"`
	Form      map[string]string `json:"form"`
	Generated Generated         `json:"generated"`
	Debug     *Debug            `json:"debug,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ListQuery filters history listings. Limit 0 means the store default and a
// negative Limit means no limit.
type ListQuery struct {
	Kind  string
	Limit int
}
