package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/fgpt/market"
	"google.golang.org/genai"
)

// Market questions.
const (
	AskCompany = "Which company or ticker should I look up?"
	AskNews    = "Which company or market topic should I check the news sentiment for?"
)

var (
	quotedRe = regexp.MustCompile(`"([^"]{3,})"|“([^”]{3,})”`)
	bulletRe = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	aboutRe  = regexp.MustCompile(`(?i)\b(?:on|about|for|of|around|regarding|surrounding|into)\s+(.+)$`)

	newsFiller = set("the", "latest", "recent", "current", "news", "headlines", "headline", "sentiment", "today", "now", "right",
		"what's", "whats", "what", "how", "is", "are", "me", "tell", "show", "give", "get", "check", "look", "up", "a", "an", "of",
		"on", "about", "for", "doing", "performing", "mood", "buzz", "around", "in", "its", "their", "please", "lately", "this",
		"week", "like", "any", "there", "should", "i", "can", "you", "find", "do", "does", "and", "with", "to", "analyze",
		"analyse", "gauge", "regarding", "surrounding", "into", "say", "says", "people", "feel", "feeling", "general", "overall",
		"bullish", "bearish", "hype")
	financeFiller = set("stock", "stocks", "share", "shares", "company", "price", "prices", "quote", "ticker", "analyst",
		"analysts", "rating", "ratings", "recommendation", "recommendations", "market", "cap", "info", "information", "data",
		"buy", "sell", "hold", "invest", "much", "cost", "costs", "trading", "at", "valuation", "fundamentals", "overview",
		"worth", "value", "symbol", "trade", "trades", "current", "currently")
)

// subject returns the company, ticker or topic message is about, "" if none.
func subject(message string, filler map[string]bool) string {
	for _, f := range strings.Fields(message) {
		w := cleanWord(f)
		if _, ok := market.Shortlisted(w); ok && w != "" {
			return w
		}
	}
	if t := tickers(message); len(t) > 0 {
		return t[0]
	}
	if m := aboutRe.FindStringSubmatch(message); m != nil {
		if s := cleanPhrase(m[1], filler, false); s != "" {
			return s
		}
	}
	if s := cleanPhrase(message, filler, true); s != "" && len(strings.Fields(s)) <= 3 {
		return s
	}
	return ""
}

func cleanWord(f string) string {
	w := strings.Trim(f, ",.;:!?\"'()")
	w = strings.TrimSuffix(w, "'s")
	return strings.TrimSuffix(w, "’s")
}

// cleanPhrase drops filler words at both ends of s, or everywhere when all
// is set, and stops at the end of the first sentence.
func cleanPhrase(s string, filler map[string]bool, all bool) string {
	if i := strings.IndexAny(s, "?.!;\n"); i >= 0 {
		s = s[:i]
	}
	var words []string
	for _, f := range strings.Fields(s) {
		w := cleanWord(f)
		if w == "" || all && (filler[strings.ToLower(w)] || newsFiller[strings.ToLower(w)]) {
			continue
		}
		words = append(words, w)
	}
	isFiller := func(w string) bool { return filler[strings.ToLower(w)] || newsFiller[strings.ToLower(w)] }
	for len(words) > 0 && isFiller(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isFiller(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func (r *Rules) finance(ctx context.Context, message string) Extraction {
	subj := subject(message, financeFiller)
	if subj == "" {
		return Extraction{Question: AskCompany}
	}
	symbol := r.tools.resolve(ctx, subj)
	if symbol == market.Unknown {
		return Extraction{Question: fmt.Sprintf("I could not find a listed company called %q. Which company do you mean? A ticker like AAPL works too.", subj)}
	}
	return Extraction{Calls: []*genai.FunctionCall{call("get_stock_info", map[string]any{"symbol": symbol})}}
}

// headlinesOf returns the headlines quoted or listed in message.
func headlinesOf(message string) []any {
	var res []any
	for _, m := range quotedRe.FindAllStringSubmatch(message, -1) {
		res = append(res, m[1]+m[2])
	}
	if len(res) > 0 {
		return res
	}
	for _, m := range bulletRe.FindAllStringSubmatch(message, -1) {
		res = append(res, strings.TrimSpace(m[1]))
	}
	return res
}

func sentiment(message string) Extraction {
	if hs := headlinesOf(message); len(hs) > 0 {
		return Extraction{Calls: []*genai.FunctionCall{call("analyze_sentiment", map[string]any{"headlines": hs})}}
	}
	subj := subject(message, newsFiller)
	if subj == "" {
		return Extraction{Question: AskNews}
	}
	return Extraction{Calls: []*genai.FunctionCall{call("news_sentiment", map[string]any{"subject": subj})}}
}
