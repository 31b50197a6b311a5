// Package market fetches stock quotes and company information from EOD
// Historical Data (https://eodhd.com).
//
// Real-time quotes are never cached. Fundamentals and symbol searches are
// cached on disk for the day.
package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/fgpt"
	"github.com/etnz/fgpt/logger"
	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned when EODHD cannot be reached.
var ErrUnavailable = fgpt.ErrUnavailable

// DefaultBaseURL is the EODHD api root.
const DefaultBaseURL = "https://eodhd.com/api"

// Config configures a Client.
type Config struct {
	APIKey    string            // empty means the "demo" key
	BaseURL   string            // empty means DefaultBaseURL
	Timeout   time.Duration     // per attempt, zero means fgpt.DefaultTimeout
	CacheDir  string            // empty means the system temp directory
	Transport http.RoundTripper // nil means http.DefaultTransport
}

// Client queries EODHD.
type Client struct {
	apiKey  string
	baseURL string
	live    fgpt.Fetcher
	daily   fgpt.Fetcher
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = "demo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		live:    fgpt.Fetcher{Client: &http.Client{Transport: cfg.Transport}, Timeout: cfg.Timeout},
		daily:   fgpt.Fetcher{Client: fgpt.DailyClient(cfg.CacheDir, cfg.Transport), Timeout: cfg.Timeout},
	}
}

// addr builds the url of an api endpoint.
func (c *Client) addr(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	return c.baseURL + "/" + endpoint + "?" + query.Encode()
}

// Ticker turns a symbol into an EODHD ticker: symbols without an exchange
// are looked up on the US exchanges.
func Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// Quote is the latest trade of a stock.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        int64
	Time          time.Time
}

// Quote returns the latest price of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (Quote, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1712347200,"gmtoffset":0,"open":169.59,
	//  "high":170.39,"low":168.95,"close":169.58,"volume":42104826,
	//  "previousClose":168.82,"change":0.76,"change_p":0.4502}
	ticker := Ticker(symbol)
	var doc any
	if err := c.live.GetJSON(ctx, c.addr("real-time/"+url.PathEscape(ticker), nil), &doc); err != nil {
		return Quote{}, fmt.Errorf("quote %s: %w", ticker, err)
	}

	price, ok := fgpt.JSONNumber(doc, "$.close")
	if !ok {
		// "NA" when the market never traded the symbol.
		return Quote{}, fmt.Errorf("quote %s: no price: %w", ticker, ErrUnavailable)
	}
	q := Quote{Symbol: strings.TrimSuffix(ticker, ".US"), Price: price}
	q.Change, _ = fgpt.JSONNumber(doc, "$.change")
	q.ChangePercent, _ = fgpt.JSONNumber(doc, "$.change_p")
	if v, ok := fgpt.JSONNumber(doc, "$.volume"); ok {
		q.Volume = v.IntPart()
	}
	if ts, ok := fgpt.JSONNumber(doc, "$.timestamp"); ok {
		q.Time = time.Unix(ts.IntPart(), 0).UTC()
	}
	logger.FromContext(ctx).Debug().Str("symbol", q.Symbol).Str("price", q.Price.String()).Msg("quote")
	return q, nil
}

// Ratings is the analysts' consensus on a stock.
type Ratings struct {
	Rating      decimal.Decimal // 1 (strong sell) to 5 (strong buy)
	TargetPrice decimal.Decimal
	StrongBuy   int
	Buy         int
	Hold        int
	Sell        int
	StrongSell  int
}

// Consensus turns the average rating into a recommendation.
func (r Ratings) Consensus() string {
	f := r.Rating.InexactFloat64()
	switch {
	case f >= 4.5:
		return "Strong Buy"
	case f >= 3.5:
		return "Buy"
	case f >= 2.5:
		return "Hold"
	case f >= 1.5:
		return "Sell"
	default:
		return "Strong Sell"
	}
}

// Profile describes a company.
type Profile struct {
	Symbol      string
	Name        string
	Sector      string
	Description string
	Ratings     *Ratings // nil when no analyst covers the stock
}

// Profile returns the company information and analyst ratings of symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (Profile, error) {
	ticker := Ticker(symbol)
	q := url.Values{"filter": {"General,AnalystRatings"}}
	var doc any
	if err := c.daily.GetJSON(ctx, c.addr("fundamentals/"+url.PathEscape(ticker), q), &doc); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", ticker, err)
	}

	p := Profile{
		Symbol:      strings.TrimSuffix(ticker, ".US"),
		Name:        fgpt.JSONString(doc, "$.General.Name"),
		Sector:      fgpt.JSONString(doc, "$.General.Sector"),
		Description: fgpt.JSONString(doc, "$.General.Description"),
	}
	if rating, ok := fgpt.JSONNumber(doc, "$.AnalystRatings.Rating"); ok {
		r := &Ratings{Rating: rating}
		r.TargetPrice, _ = fgpt.JSONNumber(doc, "$.AnalystRatings.TargetPrice")
		r.StrongBuy = count(doc, "$.AnalystRatings.StrongBuy")
		r.Buy = count(doc, "$.AnalystRatings.Buy")
		r.Hold = count(doc, "$.AnalystRatings.Hold")
		r.Sell = count(doc, "$.AnalystRatings.Sell")
		r.StrongSell = count(doc, "$.AnalystRatings.StrongSell")
		p.Ratings = r
	}
	return p, nil
}

func count(doc any, path string) int {
	v, _ := fgpt.JSONNumber(doc, path)
	return int(v.IntPart())
}
