package agent

import (
	"slices"
	"testing"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		text    string
		want    []string
		percent []bool
		years   []bool
	}{
		{"I spent 50 on groceries", []string{"50"}, []bool{false}, []bool{false}},
		{"$1200 and 45.5", []string{"1200", "45.5"}, []bool{false, false}, []bool{false, false}},
		{"a 5k bonus, a 2 million house", []string{"5000", "2000000"}, []bool{false, false}, []bool{false, false}},
		{"at 7% over 10 years", []string{"7", "10"}, []bool{true, false}, []bool{false, true}},
		{"22 percent", []string{"22"}, []bool{true}, []bool{false}},
		{"Q3 results on mp3 players", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := numbers(ungroup(tt.text))
			if len(got) != len(tt.want) {
				t.Fatalf("numbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i, n := range got {
				if n.Value.String() != tt.want[i] || n.Percent != tt.percent[i] || n.Years != tt.years[i] {
					t.Errorf("numbers(%q)[%d] = %s percent %v years %v, want %s %v %v",
						tt.text, i, n.Value, n.Percent, n.Years, tt.want[i], tt.percent[i], tt.years[i])
				}
			}
		})
	}
}

func TestUngroup(t *testing.T) {
	for in, want := range map[string]string{
		"10,000":           "10000",
		"$1,234,567.89":    "$1234567.89",
		"apples, 3 pears":  "apples, 3 pears",
		"1,2,3":            "1,2,3",
		"rent 1,200, food": "rent 1200, food",
	} {
		if got := ungroup(in); got != want {
			t.Errorf("ungroup(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCutDate(t *testing.T) {
	tests := []struct {
		text, when, rest string
	}{
		{"I spent 50 on groceries yesterday", "yesterday", "I spent 50 on groceries  "},
		{"paid rent on 2025-04-01", "2025-04-01", "paid rent  "},
		{"I spent 45.5 on books on April 3", "April 3", "I spent 45.5 on books  "},
		{"earned 300 in March 2025", "March 2025", "earned 300  "},
		{"you may spend less", "", "you may spend less"},
		{"I spent 50 on groceries", "", "I spent 50 on groceries"},
	}
	for _, tt := range tests {
		when, rest := cutDate(tt.text)
		if when != tt.when || rest != tt.rest {
			t.Errorf("cutDate(%q) = %q, %q, want %q, %q", tt.text, when, rest, tt.when, tt.rest)
		}
	}
}

func TestMonths(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"summary for April 2025", []string{"2025-04"}},
		{"summary for April and May 2025", []string{"2025-04", "2025-05"}},
		{"compare 2025-03 with 2025-04", []string{"2025-03", "2025-04"}},
		{"jan 2024, feb 2024 and jan 2024", []string{"2024-01", "2024-02"}},
		{"may I see my budget for 2025-03", []string{"2025-03"}},
		{"give me my budget summary", nil},
	}
	for _, tt := range tests {
		if got := months(tt.text); !slices.Equal(got, tt.want) {
			t.Errorf("months(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPhrase(t *testing.T) {
	for in, want := range map[string]string{
		" on groceries":                   "groceries",
		" for the rent, and then some":    "rent",
		" on a new phone yesterday":       "new phone",
		" into my index fund":             "index fund",
		" dollars":                        "",
		" on coffee with friends":         "coffee",
		" at the farmers market. Thanks!": "farmers market",
	} {
		if got := phrase(in); got != want {
			t.Errorf("phrase(%q) = %q, want %q", in, got, want)
		}
	}
}
