package fgpt

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoHeadlines is returned by Sentiment when there is nothing to score.
var ErrNoHeadlines = errors.New("No headlines provided.")

// Label is the overall mood of a set of headlines.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// LabelThreshold is the absolute average polarity above which the mood is no
// longer Neutral.
const LabelThreshold = 0.2

// Headline is a scored headline.
type Headline struct {
	Text     string
	Polarity float64 // in [-1, +1]
}

// SentimentReport is the result of Sentiment.
type SentimentReport struct {
	Headlines []Headline
	Average   float64
	Label     Label
}

// Opinion returns the buy/avoid lean that goes with the label.
func (r SentimentReport) Opinion() string {
	switch r.Label {
	case Positive:
		return "News flow is positive: sentiment leans towards buying."
	case Negative:
		return "News flow is negative: sentiment leans towards avoiding it for now."
	default:
		return "News flow is mixed: no strong signal either way."
	}
}

// Sentiment scores every headline and labels the average polarity: Positive
// above LabelThreshold, Negative below -LabelThreshold, Neutral otherwise.
// Blank headlines are ignored; if none is left it returns ErrNoHeadlines.
func Sentiment(headlines []string) (SentimentReport, error) {
	var r SentimentReport
	var sum float64
	for _, h := range headlines {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		p := Polarity(h)
		r.Headlines = append(r.Headlines, Headline{Text: h, Polarity: p})
		sum += p
	}
	if len(r.Headlines) == 0 {
		return SentimentReport{}, ErrNoHeadlines
	}
	r.Average = sum / float64(len(r.Headlines))
	switch {
	case r.Average > LabelThreshold:
		r.Label = Positive
	case r.Average < -LabelThreshold:
		r.Label = Negative
	default:
		r.Label = Neutral
	}
	return r, nil
}

// Polarity scores a text in [-1, +1] as the average polarity of the words
// found in the lexicon. An intensifier ("very") multiplies the next scored
// word, a negation ("not", "won't") flips it and halves it. A text with no
// scored word is 0.
func Polarity(text string) float64 {
	var (
		sum       float64
		n         int
		negate    bool
		intensity = 1.0
	)
	for _, tok := range words(text) {
		if isNegation(tok) {
			negate = true
			continue
		}
		if f, ok := intensifiers[tok]; ok {
			intensity *= f
			continue
		}
		p, ok := lookup(tok)
		if !ok {
			continue
		}
		p *= intensity
		if negate {
			p *= -0.5
		}
		sum += clamp(p)
		n++
		negate, intensity = false, 1
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func isNegation(tok string) bool {
	switch tok {
	case "not", "no", "never", "without", "nor", "cannot":
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

// lookup finds a word or its naive stem in the lexicon.
func lookup(tok string) (float64, bool) {
	tok = strings.Trim(tok, "'")
	if p, ok := lexicon[tok]; ok {
		return p, true
	}
	for _, suffix := range []string{"s", "es", "ed", "d", "ing"} {
		if stem, ok := strings.CutSuffix(tok, suffix); ok && len(stem) > 2 {
			if p, ok := lexicon[stem]; ok {
				return p, true
			}
		}
	}
	return 0, false
}

func clamp(p float64) float64 {
	return max(-1, min(1, p))
}
