// Package search looks things up on the web: general questions through the
// DuckDuckGo instant answer API, financial headlines through the EODHD news
// API.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/logger"
)

// ErrUnavailable is returned when the search service cannot be reached.
var ErrUnavailable = fgpt.ErrUnavailable

// DefaultMax is the number of results returned when the caller does not say.
const DefaultMax = 5

// Result is one search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher finds at most max results for query.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}

// Config configures the search clients.
type Config struct {
	BaseURL   string            // empty means the service default
	APIKey    string            // EODHD key, empty means "demo"
	Timeout   time.Duration     // per attempt, zero means fgpt.DefaultTimeout
	Transport http.RoundTripper // nil means http.DefaultTransport
}

func (c Config) fetcher() fgpt.Fetcher {
	return fgpt.Fetcher{Client: &http.Client{Transport: c.Transport}, Timeout: c.Timeout}
}

// DuckDuckGo searches the web with the DuckDuckGo instant answer API.
type DuckDuckGo struct {
	baseURL string
	f       fgpt.Fetcher
}

// NewDuckDuckGo returns a DuckDuckGo searcher.
func NewDuckDuckGo(cfg Config) *DuckDuckGo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.duckduckgo.com/"
	}
	return &DuckDuckGo{baseURL: cfg.BaseURL, f: cfg.fetcher()}
}

// Search implements Searcher. The abstract, when there is one, comes first,
// followed by the related topics.
func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if max <= 0 {
		max = DefaultMax
	}
	q := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}
	var doc any
	if err := d.f.GetJSON(ctx, d.baseURL+"?"+q.Encode(), &doc); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var res []Result
	if abstract := fgpt.JSONString(doc, "$.AbstractText"); abstract != "" {
		res = append(res, Result{
			Title:   fgpt.JSONString(doc, "$.Heading"),
			URL:     fgpt.JSONString(doc, "$.AbstractURL"),
			Snippet: abstract,
		})
	}
	topics, _ := fgpt.JSONGet(doc, "$.RelatedTopics").([]any)
	for _, topic := range flatten(topics) {
		if len(res) >= max {
			break
		}
		text := fgpt.JSONString(topic, "$.Text")
		link := fgpt.JSONString(topic, "$.FirstURL")
		if text == "" || link == "" {
			continue
		}
		title, _, _ := strings.Cut(text, " - ")
		res = append(res, Result{Title: title, URL: link, Snippet: text})
	}
	if len(res) > max {
		res = res[:max]
	}
	logger.FromContext(ctx).Debug().Str("query", query).Int("results", len(res)).Msg("web search")
	return res, nil
}

// flatten expands the topic groups ({"Name": ..., "Topics": [...]}) found in
// related topics.
func flatten(topics []any) []any {
	var res []any
	for _, t := range topics {
		if sub, ok := fgpt.JSONGet(t, "$.Topics").([]any); ok {
			res = append(res, flatten(sub)...)
			continue
		}
		res = append(res, t)
	}
	return res
}
