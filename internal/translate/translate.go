// Package translate turns natural-language questions into SQL
// candidates, either in a single model round trip or through a bounded
// multi-step reasoning loop.
package translate

import (
	"context"
	"regexp"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/extract"
)

// fenceRegexAll matches fenced code blocks for removal from rationale text
var fenceRegexAll = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\r?\n?.*?```")

// Path identifies which translation strategy handles a question
type Path string

const (
	PathFast      Path = "fast"
	PathReasoning Path = "reasoning"
)

// Candidate is a not-yet-validated SQL statement proposed by a
// translator, paired with its rationale. SQL stays empty until the
// extractor succeeds. A candidate never outlives its turn.
type Candidate struct {
	Question         string
	RawModelText     string
	SQL              string
	Rationale        string
	SuggestedActions []string
	Path             Path
}

// Translator converts a question into a Candidate
type Translator interface {
	Translate(ctx context.Context, question string) (*Candidate, error)
}

// Prober executes a validated exploratory statement and returns a compact
// textual rendering of its result, for feeding back into the next prompt.
type Prober interface {
	Probe(ctx context.Context, statement string) (string, error)
}

const suggestionPrefix = "Follow-up:"

// newCandidate assembles a candidate from raw model output, deriving the
// rationale from the prose around the code fence and collecting any
// follow-up suggestions the model offered.
func newCandidate(question, raw string, path Path) *Candidate {
	return &Candidate{
		Question:         question,
		RawModelText:     raw,
		Rationale:        rationaleFrom(raw),
		SuggestedActions: suggestionsFrom(raw),
		Path:             path,
	}
}

// rationaleFrom strips code fences and suggestion lines from the model
// text, leaving the explanation prose.
func rationaleFrom(raw string) string {
	withoutFences := fenceRegexAll.ReplaceAllString(raw, "")

	var lines []string

	for _, line := range strings.Split(withoutFences, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, suggestionPrefix) {
			continue
		}

		lines = append(lines, trimmed)
	}

	return strings.Join(lines, " ")
}

// suggestionsFrom collects Follow-up lines from the model text
func suggestionsFrom(raw string) []string {
	var suggestions []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, suggestionPrefix) {
			continue
		}

		suggestion := strings.TrimSpace(strings.TrimPrefix(trimmed, suggestionPrefix))
		if suggestion != "" {
			suggestions = append(suggestions, suggestion)
		}
	}

	return suggestions
}

// ExtractSQL runs the extractor over the candidate's raw text and records
// the result on the candidate.
func (c *Candidate) ExtractSQL() error {
	statement, err := extract.Statement(c.RawModelText)
	if err != nil {
		return err
	}

	c.SQL = statement

	return nil
}
