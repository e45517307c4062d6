// Package executor runs approved statements against the reporting
// database. Callers are responsible for validating statements first;
// nothing here re-checks the safety policy.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/drshika/warm-ai-agent/internal/errors"
)

// Row maps column names to typed scalar values
type Row map[string]interface{}

// ResultSet is an ordered sequence of rows with their column order
// preserved. Produced by Execute, consumed once by the summarizer, never
// persisted across turns.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result set has no rows
func (rs *ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Executor executes statements with a per-query timeout
type Executor struct {
	db            *sql.DB
	queryTimeout  time.Duration
	probeRowLimit int
}

// New creates an executor over an open database connection
func New(db *sql.DB, queryTimeout time.Duration, probeRowLimit int) *Executor {
	return &Executor{
		db:            db,
		queryTimeout:  queryTimeout,
		probeRowLimit: probeRowLimit,
	}
}

// Execute runs one approved statement and returns its rows. The statement
// is executed exactly as generated; no user-supplied values are
// interpolated at this stage. Driver errors are reported verbatim and
// never retried.
func (e *Executor) Execute(ctx context.Context, statement string) (*ResultSet, error) {
	if e.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.queryTimeout)
		defer cancel()
	}

	rows, err := e.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeExecution, "query execution failed")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeExecution, "failed to read result columns")
	}

	result := &ResultSet{Columns: columns}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeExecution, "failed to scan result row")
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}

		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeExecution, "failed to read result rows")
	}

	return result, nil
}

// Probe runs a validated exploratory statement and renders a compact
// textual result for the reasoning loop, capped at the probe row limit.
func (e *Executor) Probe(ctx context.Context, statement string) (string, error) {
	result, err := e.Execute(ctx, statement)
	if err != nil {
		return "", err
	}

	if result.Empty() {
		return "(no rows)", nil
	}

	var sb strings.Builder

	sb.WriteString(strings.Join(result.Columns, " | "))
	sb.WriteString("\n")

	for i, row := range result.Rows {
		if i >= e.probeRowLimit {
			fmt.Fprintf(&sb, "... (%d more rows)\n", len(result.Rows)-e.probeRowLimit)
			break
		}

		cells := make([]string, len(result.Columns))
		for j, column := range result.Columns {
			cells[j] = formatValue(row[column])
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// normalizeValue converts driver-specific scan results to plain scalars
func normalizeValue(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}

	return value
}

// formatValue renders a scalar for textual display
func formatValue(value interface{}) string {
	if value == nil {
		return "NULL"
	}

	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339)
	}

	return fmt.Sprintf("%v", value)
}
