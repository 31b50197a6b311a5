package market

import (
	"context"
	"net/url"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/logger"
)

// Unknown is the symbol of a company that could not be resolved.
const Unknown = "Unknown"

// shortlist resolves the most asked for companies without a lookup.
var shortlist = map[string]string{
	"infosys":   "INFY",
	"tesla":     "TSLA",
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
}

// Shortlisted returns the symbol of a well known company, and whether name is
// one.
func Shortlisted(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, "'s")
	for _, suffix := range []string{" inc.", " inc", " corporation", " corp.", " corp", " ltd"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if s, ok := shortlist[name]; ok {
		return s, true
	}
	for _, s := range shortlist {
		if strings.EqualFold(name, s) {
			return s, true
		}
	}
	return "", false
}

// ResolveSymbol returns the stock symbol of a company name. The shortlist is
// consulted first, then the EODHD search. It returns Unknown when nothing
// matches or when the search is unavailable.
func (c *Client) ResolveSymbol(ctx context.Context, name string) string {
	if s, ok := Shortlisted(name); ok {
		return s
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Unknown
	}

	// https://eodhd.com/api/search/apple?api_token=demo&fmt=json
	// [{"Code":"AAPL","Exchange":"US","Name":"Apple Inc","Type":"Common Stock",...}]
	q := url.Values{"limit": {"10"}, "type": {"stock"}}
	var results []any
	if err := c.daily.GetJSON(ctx, c.addr("search/"+url.PathEscape(name), q), &results); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("name", name).Msg("symbol search")
		return Unknown
	}
	// Prefer a listing on the US exchanges.
	var first string
	for _, r := range results {
		code := fgpt.JSONString(r, "$.Code")
		if code == "" {
			continue
		}
		if fgpt.JSONString(r, "$.Exchange") == "US" {
			return code
		}
		if first == "" {
			first = code
			if ex := fgpt.JSONString(r, "$.Exchange"); ex != "" {
				first += "." + ex
			}
		}
	}
	if first == "" {
		return Unknown
	}
	return first
}
