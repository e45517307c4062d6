// Package summarize renders a result set as human-readable answer text.
// A single all-numeric column gets a statistical digest, everything
// else gets a bounded listing.
package summarize

import (
	"fmt"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/executor"
)

// EmptyResultMessage is returned for result sets with no rows
const EmptyResultMessage = "The query returned no rows."

// Summarizer converts result sets into answer text with a cap on how
// many rows a listing renders.
type Summarizer struct {
	rowRenderLimit int
}

// New creates a summarizer with the given row render cap
func New(rowRenderLimit int) *Summarizer {
	if rowRenderLimit <= 0 {
		rowRenderLimit = 100
	}

	return &Summarizer{rowRenderLimit: rowRenderLimit}
}

// Summarize renders a result set as answer text
func (s *Summarizer) Summarize(result *executor.ResultSet) string {
	if result == nil || result.Empty() {
		return EmptyResultMessage
	}

	if len(result.Columns) == 1 {
		column := result.Columns[0]

		if summary, ok := s.summarizeNumericColumn(result, column); ok {
			return summary
		}

		if len(result.Rows) == 1 {
			return fmt.Sprintf("%s: %s", column, formatCell(result.Rows[0][column]))
		}
	}

	return s.renderListing(result)
}

// summarizeNumericColumn computes the statistical digest for a single
// column when every non-null value is numeric. Nulls are excluded from
// the statistics; an all-null column reports "no numeric data".
func (s *Summarizer) summarizeNumericColumn(result *executor.ResultSet, column string) (string, bool) {
	var values []float64

	nulls := 0

	for _, row := range result.Rows {
		value := row[column]
		if value == nil {
			nulls++
			continue
		}

		f, ok := toFloat(value)
		if !ok {
			return "", false
		}

		values = append(values, f)
	}

	if len(values) == 0 {
		if nulls > 0 {
			return fmt.Sprintf("The %q column contains no numeric data (%d null values).", column, nulls), true
		}

		return "", false
	}

	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}

		sum += v
	}

	mean := sum / float64(len(values))

	return fmt.Sprintf("Based on %d measurements, the average was %.2f, ranging from %.2f to %.2f", len(values), mean, min, max), true
}

// renderListing renders rows as a pipe-separated table capped at the
// configured row limit, with a truncation notice when rows are omitted.
func (s *Summarizer) renderListing(result *executor.ResultSet) string {
	var sb strings.Builder

	sb.WriteString(strings.Join(result.Columns, " | "))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(strings.Join(result.Columns, " | "))))
	sb.WriteString("\n")

	rendered := len(result.Rows)
	if rendered > s.rowRenderLimit {
		rendered = s.rowRenderLimit
	}

	for _, row := range result.Rows[:rendered] {
		cells := make([]string, len(result.Columns))
		for i, column := range result.Columns {
			cells[i] = formatCell(row[column])
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}

	if rendered < len(result.Rows) {
		fmt.Fprintf(&sb, "(showing first %d of %d rows)\n", rendered, len(result.Rows))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// toFloat converts a scanned scalar to float64 when it is numeric
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// formatCell renders a scalar for listing output
func formatCell(value interface{}) string {
	if value == nil {
		return "NULL"
	}

	return fmt.Sprintf("%v", value)
}
