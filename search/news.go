package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/logger"
)

// News searches financial headlines with the EODHD news API.
type News struct {
	apiKey  string
	baseURL string
	f       fgpt.Fetcher
}

// NewNews returns a News searcher.
func NewNews(cfg Config) *News {
	if cfg.APIKey == "" {
		cfg.APIKey = "demo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://eodhd.com/api"
	}
	return &News{apiKey: cfg.APIKey, baseURL: strings.TrimSuffix(cfg.BaseURL, "/"), f: cfg.fetcher()}
}

// Search implements Searcher. query is either a ticker ("AAPL", "SIE.XETRA"),
// whose news are returned, or a topic ("inflation").
func (n *News) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if max <= 0 {
		max = DefaultMax
	}
	// https://eodhd.com/api/news?s=AAPL.US&limit=5&api_token=demo&fmt=json
	// [{"date":"2024-04-05T20:31:00+00:00","title":"...","content":"...",
	//   "link":"https://...","symbols":["AAPL.US"],"tags":[...]}]
	q := url.Values{
		"limit":     {strconv.Itoa(max)},
		"api_token": {n.apiKey},
		"fmt":       {"json"},
	}
	if isTicker(query) {
		ticker := strings.ToUpper(query)
		if !strings.Contains(ticker, ".") {
			ticker += ".US"
		}
		q.Set("s", ticker)
	} else {
		q.Set("t", strings.ToLower(strings.TrimSpace(query)))
	}

	var items []any
	if err := n.f.GetJSON(ctx, n.baseURL+"/news?"+q.Encode(), &items); err != nil {
		return nil, fmt.Errorf("news %q: %w", query, err)
	}
	var res []Result
	for _, item := range items {
		if len(res) >= max {
			break
		}
		title := fgpt.JSONString(item, "$.title")
		if title == "" {
			continue
		}
		res = append(res, Result{
			Title:   title,
			URL:     fgpt.JSONString(item, "$.link"),
			Snippet: snippet(fgpt.JSONString(item, "$.content"), 200),
		})
	}
	logger.FromContext(ctx).Debug().Str("query", query).Int("results", len(res)).Msg("news search")
	return res, nil
}

// Headlines returns the titles of results.
func Headlines(results []Result) []string {
	res := make([]string, 0, len(results))
	for _, r := range results {
		res = append(res, r.Title)
	}
	return res
}

// isTicker reports whether s looks like a stock symbol rather than words.
func isTicker(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 12 {
		return false
	}
	code, exchange, _ := strings.Cut(s, ".")
	if len(code) == 0 || len(code) > 6 {
		return false
	}
	for _, r := range code + exchange {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// snippet shortens text to about n bytes, on a word boundary.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= n {
		return text
	}
	cut := strings.LastIndex(text[:n], " ")
	if cut <= 0 {
		cut = n
	}
	return text[:cut] + "…"
}
