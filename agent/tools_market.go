package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/market"
	"github.com/etnz/fgpt/renderer"
	"github.com/etnz/fgpt/search"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// NewsHeadlines is the number of headlines scored by news_sentiment.
const NewsHeadlines = 5

// WebResults is the number of results web_search returns by default.
const WebResults = 4

func unavailable(what, subject string) string {
	return fmt.Sprintf("Sorry, %s data unavailable for %s right now. Please try again later.", what, subject)
}

// Symbol resolves a company name to a ticker.
func (t *Tools) Symbol() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_symbol",
			Description: fmt.Sprintf("Finds the stock ticker of a company name. Returns %q when no stock matches.", market.Unknown),
			Parameters: object([]string{"company"}, map[string]*genai.Schema{
				"company": str("company name, e.g. Tesla"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			return t.resolve(ctx, stringArg(args, "company"))
		},
	}
}

func (t *Tools) resolve(ctx context.Context, company string) string {
	if symbol, ok := market.Shortlisted(company); ok {
		return symbol
	}
	if t == nil || t.Market == nil {
		return market.Unknown
	}
	return t.Market.ResolveSymbol(ctx, company)
}

// StockInfo presents the price and the analyst view of a stock.
func (t *Tools) StockInfo() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_stock_info",
			Description: "Returns the latest price, change, volume, analyst ratings and business description of a stock.",
			Parameters: object([]string{"symbol"}, map[string]*genai.Schema{
				"symbol": str("ticker, e.g. AAPL or SIE.XETRA"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			symbol := strings.ToUpper(stringArg(args, "symbol"))
			if symbol == "" || symbol == strings.ToUpper(market.Unknown) {
				return "Which company or ticker do you mean?"
			}
			if t.Market == nil {
				return t.log(ctx, "get_stock_info", fgpt.ErrUnavailable, unavailable("market", symbol))
			}

			// Quote and profile are independent: fetch both, keep what came.
			var (
				quote      *market.Quote
				profile    *market.Profile
				qerr, perr error
				g          errgroup.Group
			)
			g.Go(func() error {
				q, err := t.Market.Quote(ctx, symbol)
				if qerr = err; err == nil {
					quote = &q
				}
				return nil
			})
			g.Go(func() error {
				p, err := t.Market.Profile(ctx, symbol)
				if perr = err; err == nil {
					profile = &p
				}
				return nil
			})
			g.Wait()

			if quote == nil && profile == nil {
				return t.log(ctx, "get_stock_info", qerr, unavailable("market", symbol))
			}
			if qerr != nil || perr != nil {
				t.log(ctx, "get_stock_info", fmt.Errorf("partial data: quote: %v, profile: %v", qerr, perr), "")
			}
			return t.log(ctx, "get_stock_info", nil, renderer.Stock(symbol, quote, profile))
		},
	}
}

// NewsSentiment scores the latest headlines about a company or topic.
func (t *Tools) NewsSentiment() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "news_sentiment",
			Description: fmt.Sprintf("Fetches up to %d recent news headlines about a company, ticker or market topic and scores their sentiment.", NewsHeadlines),
			Parameters: object([]string{"subject"}, map[string]*genai.Schema{
				"subject": str("company name, ticker or topic"),
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			subject := stringArg(args, "subject")
			if subject == "" {
				return "Which company or topic should I check the news for?"
			}
			// Only shortlisted names become tickers, anything else is a topic.
			query := subject
			if symbol, ok := market.Shortlisted(subject); ok {
				query = symbol
			}

			results, err := t.headlines(ctx, query)
			if err != nil {
				return t.log(ctx, "news_sentiment", err, unavailable("news", subject))
			}
			report, err := fgpt.Sentiment(search.Headlines(results))
			if err != nil {
				return t.log(ctx, "news_sentiment", nil, fmt.Sprintf("I found no recent headlines about %s.", subject))
			}
			text := renderer.Sentiment(subject, report) + "\n\n**Sources**\n\n" + renderer.Results(results)
			return t.log(ctx, "news_sentiment", nil, text)
		},
	}
}

// headlines searches the news, then the web when the news has nothing.
func (t *Tools) headlines(ctx context.Context, query string) ([]search.Result, error) {
	var (
		results []search.Result
		err     = fgpt.ErrUnavailable
	)
	if t.News != nil {
		results, err = t.News.Search(ctx, query, NewsHeadlines)
		if err == nil && len(results) > 0 {
			return results, nil
		}
	}
	if t.Web != nil {
		if web, werr := t.Web.Search(ctx, query+" news", NewsHeadlines); werr == nil {
			return web, nil
		}
	}
	return results, err
}

// WebSearch searches the web.
func (t *Tools) WebSearch() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "web_search",
			Description: "Searches the web and returns titles, links and snippets. Cite the links in the answer.",
			Parameters: object([]string{"query"}, map[string]*genai.Schema{
				"query":       str("search query"),
				"max_results": {Type: genai.TypeInteger, Description: fmt.Sprintf("at most %d", search.DefaultMax)},
			}),
		},
		Run: func(ctx context.Context, args map[string]any) string {
			query := stringArg(args, "query")
			limit := WebResults
			if n, ok := intArg(args, "max_results"); ok && n > 0 {
				limit = int(min(n, search.DefaultMax))
			}
			if t.Web == nil {
				return t.log(ctx, "web_search", fgpt.ErrUnavailable, unavailable("search", query))
			}
			results, err := t.Web.Search(ctx, query, limit)
			if err != nil {
				return t.log(ctx, "web_search", err, unavailable("search", query))
			}
			return t.log(ctx, "web_search", nil, renderer.Results(results))
		},
	}
}
