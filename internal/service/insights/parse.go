package insights

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// formatMarker introduces the labelled lines a reply must use
const formatMarker = "Respond using exactly these labelled lines:"

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// field is one labelled line requested from the model
type field struct {
	label string
	hint  string
}

// withFormat appends the reply format to a prompt
func withFormat(prompt string, fields ...field) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(formatMarker)
	for _, f := range fields {
		fmt.Fprintf(&b, "\n%s: <%s>", f.label, f.hint)
	}
	return b.String()
}

// parseLabelled splits a reply into sections keyed by label. A section runs
// until the next labelled line. Labels match case-insensitively and may be
// wrapped in markdown emphasis.
func parseLabelled(text string, fields ...field) map[string]string {
	out := make(map[string]string, len(fields))
	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.Trim(strings.TrimSpace(line), "*-# ")
		if label, rest, ok := matchLabel(trimmed, fields); ok {
			current = label
			out[current] = rest
			continue
		}
		if current != "" {
			out[current] += "\n" + line
		}
	}
	for k, v := range out {
		out[k] = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "*"))
	}
	return out
}

func matchLabel(line string, fields []field) (string, string, bool) {
	lower := strings.ToLower(line)
	for _, f := range fields {
		prefix := strings.ToLower(f.label)
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		rest := strings.TrimLeft(line[len(prefix):], "* ")
		if strings.HasPrefix(rest, ":") {
			return f.label, strings.TrimSpace(rest[1:]), true
		}
	}
	return "", "", false
}

// parseNumber returns the first number in s, ignoring thousands separators
func parseNumber(s string) (float64, bool) {
	m := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseConfidence reads a score in [0, 1]. Percentages are scaled down.
func parseConfidence(s string) float64 {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0
	}
	if v > 1 {
		v /= 100
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseYes reports whether s opens with an affirmative answer
func parseYes(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, yes := range []string{"yes", "true", "compliant", "consistent"} {
		if strings.HasPrefix(lower, yes) {
			return true
		}
	}
	return false
}
