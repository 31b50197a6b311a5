package agent

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name, reply, want string
	}{
		{"plain text", "Your balance is $2,950.00.", "Your balance is $2,950.00."},
		{"markdown table", "| Category | Amount |\n|---|---:|\n| rent | $1,200.00 |", "| Category | Amount |\n|---|---:|\n| rent | $1,200.00 |"},
		{"link", "See [the IRS](https://irs.gov) for limits [2025].", "See [the IRS](https://irs.gov) for limits [2025]."},
		{"fenced json", "Done.\n\n```json\n{\"id\": 3}\n```\n\nAnything else?", "Done.\n\nAnything else?"},
		{"fenced json without language", "Done.\n```\n[{\"id\": 3}]\n```", "Done."},
		{"fenced code is kept", "Try:\n```\nfgpt list\n```", "Try:\n```\nfgpt list\n```"},
		{"inline object", `Recorded {"type": "expense", "amount": 50} for you.`, "Recorded  for you."},
		{"array of objects", `Loans: [{"name": "car"}, {"name": "card"}] sorted.`, "Loans:  sorted."},
		{"array of numbers is kept", "Scores [1, 2, 3] and {braces}.", "Scores [1, 2, 3] and {braces}."},
		{"only a payload", `{"output": "hello"}`, Unsanitizable},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.reply); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}
