package renderer

import (
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/search"
)

// Stock renders what is known about a stock. q or p may be nil when the
// corresponding data is unavailable.
func Stock(symbol string, q *market.Quote, p *market.Profile) string {
	data := struct {
		Symbol      string
		Name        string
		Quote       *market.Quote
		Ratings     *market.Ratings
		Description string
	}{Symbol: symbol, Name: symbol, Quote: q}
	if p != nil {
		if p.Name != "" {
			data.Name = p.Name
		}
		data.Ratings = p.Ratings
		data.Description = p.Description
	}
	return renderTemplate("stock", "stock.md", nil, data)
}

// Results renders search results as a list of links.
func Results(results []search.Result) string {
	if len(results) == 0 {
		return "No results found."
	}
	return renderTemplate("results", "results.md", nil, results)
}
