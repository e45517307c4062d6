// Package safety enforces the read-only statement policy. Nothing
// reaches the database unless it passes here first; user confirmation
// gates execution timing, not this policy.
package safety

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/errors"
)

// Verdict is the outcome of validating a candidate statement
type Verdict struct {
	Approved bool
	Reason   string
}

// Approve returns an approving verdict
func Approve() Verdict {
	return Verdict{Approved: true}
}

// Reject returns a rejecting verdict with the violated rule
func Reject(reason string) Verdict {
	return Verdict{Approved: false, Reason: reason}
}

// bannedKeywords are rejected when present as standalone tokens outside
// string literals and quoted identifiers.
var bannedKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER",
	"TRUNCATE", "MERGE", "EXEC", "CREATE", "GRANT", "REVOKE",
}

var (
	bannedRegex = regexp.MustCompile(`(?i)\b(` + strings.Join(bannedKeywords, "|") + `)\b`)
	selectRegex = regexp.MustCompile(`(?i)^\s*select\b`)
	cteRegex    = regexp.MustCompile(`(?i)^\s*with\b`)
)

// Check classifies a statement as read-only-safe or rejected
func Check(statement string) Verdict {
	trimmed := strings.TrimSpace(statement)
	if trimmed == "" {
		return Reject("statement is empty")
	}

	// String literals and quoted identifiers are masked so keywords inside
	// them do not trigger the scan.
	masked := maskQuoted(trimmed)

	if m := bannedRegex.FindString(masked); m != "" {
		return Reject(fmt.Sprintf("write operation or DDL is not permitted (found %s)", strings.ToUpper(m)))
	}

	switch {
	case selectRegex.MatchString(masked):
		// plain SELECT
	case cteRegex.MatchString(masked):
		if !strings.Contains(strings.ToUpper(masked), "SELECT") {
			return Reject("WITH clause must resolve to a SELECT statement")
		}
	default:
		return Reject("statement must begin with SELECT (or WITH ... SELECT)")
	}

	if err := checkSingleStatement(masked); err != "" {
		return Reject(err)
	}

	return Approve()
}

// Validate returns a validation error when the statement is rejected
func Validate(statement string) error {
	verdict := Check(statement)
	if verdict.Approved {
		return nil
	}

	return errors.New(errors.ErrTypeValidation, verdict.Reason)
}

// checkSingleStatement rejects stacked statements: a semicolon followed by
// further non-whitespace content.
func checkSingleStatement(masked string) string {
	idx := strings.Index(masked, ";")
	if idx < 0 {
		return ""
	}

	if strings.TrimSpace(masked[idx+1:]) != "" {
		return "only one statement is allowed per query"
	}

	return ""
}

// maskQuoted replaces the contents of single-quoted literals,
// double-quoted identifiers, and bracketed identifiers with spaces,
// preserving string length. Doubled quotes escape inside literals.
func maskQuoted(statement string) string {
	out := []rune(statement)
	i := 0

	for i < len(out) {
		switch out[i] {
		case '\'':
			i = maskUntil(out, i+1, '\'', true)
		case '"':
			i = maskUntil(out, i+1, '"', true)
		case '[':
			i = maskUntil(out, i+1, ']', false)
		default:
			i++
		}
	}

	return string(out)
}

// maskUntil blanks runes from start until the closing delimiter,
// returning the index just past it. When doubling is set, a doubled
// delimiter is an escape and masking continues.
func maskUntil(out []rune, start int, closing rune, doubling bool) int {
	i := start
	for i < len(out) {
		if out[i] != closing {
			out[i] = ' '
			i++

			continue
		}

		if doubling && i+1 < len(out) && out[i+1] == closing {
			out[i] = ' '
			out[i+1] = ' '
			i += 2

			continue
		}

		return i + 1
	}

	return i
}
