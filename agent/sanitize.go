package agent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fenced matches a fenced code block; group 1 is its language, group 2 its
// content.
var fenced = regexp.MustCompile("(?s)```([a-zA-Z]*)[ \t]*\n?(.*?)```")

var blankLines = regexp.MustCompile(`\n{3,}`)

// Unsanitizable replaces a reply that was nothing but a payload.
const Unsanitizable = "Sorry, I could not put that into words. Please try again."

// Sanitize removes raw payloads from a reply: fenced json blocks, and JSON
// objects or arrays of objects embedded in the text. Markdown, including
// links and tables, is left alone.
func Sanitize(reply string) string {
	if strings.TrimSpace(reply) == "" {
		return reply
	}
	s := fenced.ReplaceAllStringFunc(reply, func(block string) string {
		m := fenced.FindStringSubmatch(block)
		if strings.EqualFold(m[1], "json") || json.Valid([]byte(strings.TrimSpace(m[2]))) {
			return ""
		}
		return block
	})
	s = stripJSON(s)
	s = strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
	if s == "" {
		return Unsanitizable
	}
	return s
}

// stripJSON removes every JSON value starting with '{', or with '[' when it
// is an array of objects or arrays.
func stripJSON(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '{' && c != '[' {
			b.WriteByte(c)
			i++
			continue
		}
		n := payloadLen(s[i:])
		if n == 0 {
			b.WriteByte(c)
			i++
			continue
		}
		i += n
	}
	return b.String()
}

// payloadLen returns the length of the payload at the start of s, 0 if there
// is none.
func payloadLen(s string) int {
	dec := json.NewDecoder(strings.NewReader(s))
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0
	}
	switch v := v.(type) {
	case map[string]any:
	case []any:
		if len(v) == 0 {
			return 0
		}
		switch v[0].(type) {
		case map[string]any, []any:
		default:
			return 0
		}
	default:
		return 0
	}
	return int(dec.InputOffset())
}
