// Package extract pulls a single executable SQL statement out of
// free-form model output.
package extract

import (
	"regexp"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/errors"
)

// fenceRegex matches a markdown code fence, capturing the language tag and body.
var fenceRegex = regexp.MustCompile("(?s)```([a-zA-Z]*)[ \t]*\r?\n?(.*?)```")

// Statement locates exactly one SQL statement in model-generated text.
// Preference order: the first fenced block tagged sql, then the first
// untagged fenced block that starts with SELECT or WITH, then the first
// SELECT-shaped run of plain lines. Returns an extraction error when no
// statement is found; ambiguity is resolved as first match wins.
func Statement(text string) (string, error) {
	if statement, ok := fromFences(text); ok {
		return statement, nil
	}

	if statement, ok := fromPlainText(text); ok {
		return statement, nil
	}

	return "", errors.New(errors.ErrTypeExtraction,
		"could not identify a query in the model response")
}

// fromFences scans fenced code blocks in order of appearance
func fromFences(text string) (string, bool) {
	matches := fenceRegex.FindAllStringSubmatch(text, -1)

	// Tagged sql blocks take priority over untagged ones
	for _, m := range matches {
		if strings.EqualFold(m[1], "sql") {
			if statement := strings.TrimSpace(m[2]); statement != "" {
				return statement, true
			}
		}
	}

	for _, m := range matches {
		if m[1] != "" {
			continue
		}

		statement := strings.TrimSpace(m[2])
		if isSelectShaped(statement) {
			return statement, true
		}
	}

	return "", false
}

// fromPlainText falls back to scanning raw lines for a SELECT statement,
// taking the contiguous run up to a terminating semicolon, a blank line,
// or end of text.
func fromPlainText(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if !isSelectShaped(strings.TrimSpace(line)) {
			continue
		}

		var parts []string

		for j := i; j < len(lines); j++ {
			current := strings.TrimSpace(lines[j])
			if current == "" {
				break
			}

			if idx := strings.Index(current, ";"); idx >= 0 {
				parts = append(parts, current[:idx])
				return strings.TrimSpace(strings.Join(parts, "\n")), true
			}

			parts = append(parts, current)
		}

		return strings.TrimSpace(strings.Join(parts, "\n")), true
	}

	return "", false
}

// isSelectShaped reports whether text begins like a read query
func isSelectShaped(text string) bool {
	upper := strings.ToUpper(text)
	return strings.HasPrefix(upper, "SELECT ") ||
		upper == "SELECT" ||
		strings.HasPrefix(upper, "SELECT\n") ||
		strings.HasPrefix(upper, "WITH ")
}
