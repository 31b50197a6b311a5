package fgpt

import (
	"errors"
	"testing"
)

func TestSentiment(t *testing.T) {
	tests := []struct {
		name      string
		headlines []string
		want      Label
		err       error
	}{
		{"empty", nil, "", ErrNoHeadlines},
		{"blank only", []string{" ", ""}, "", ErrNoHeadlines},
		{"great news", []string{"great news", "great news"}, Positive, nil},
		{"bad", []string{"Shares plunge after fraud probe", "Analysts downgrade stock"}, Negative, nil},
		{"nothing to score", []string{"Company holds annual meeting"}, Neutral, nil},
		{"mixed", []string{"Great quarter", "Terrible guidance"}, Neutral, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sentiment(tt.headlines)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Sentiment() error = %v, want %v", err, tt.err)
			}
			if err == nil && got.Label != tt.want {
				t.Errorf("Sentiment() = %v (avg %.2f), want %v", got.Label, got.Average, tt.want)
			}
		})
	}
	if ErrNoHeadlines.Error() != "No headlines provided." {
		t.Errorf("unexpected message %q", ErrNoHeadlines)
	}
}

func TestPolarity(t *testing.T) {
	tests := []struct {
		text     string
		min, max float64
	}{
		{"great", 0.79, 0.81},
		{"not great", -0.41, -0.39},
		{"very good", 0.9, 0.92},
		{"extremely excellent", 1, 1},
		{"Revenue surged to a record", 0.39, 0.41},
		{"the meeting is on tuesday", 0, 0},
		{"Shares won't recover", -0.16, -0.14},
	}
	for _, tt := range tests {
		if got := Polarity(tt.text); got < tt.min || got > tt.max {
			t.Errorf("Polarity(%q) = %.3f, want in [%.2f, %.2f]", tt.text, got, tt.min, tt.max)
		}
	}
}

func TestSentimentReport_Opinion(t *testing.T) {
	for label, want := range map[Label]string{
		Positive: "News flow is positive: sentiment leans towards buying.",
		Negative: "News flow is negative: sentiment leans towards avoiding it for now.",
		Neutral:  "News flow is mixed: no strong signal either way.",
	} {
		if got := (SentimentReport{Label: label}).Opinion(); got != want {
			t.Errorf("Opinion(%s) = %q, want %q", label, got, want)
		}
	}
}
