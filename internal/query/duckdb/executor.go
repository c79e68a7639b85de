// Package duckdb runs synthesized SQL against the embedded DuckDB store.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/shopql/shopql/internal/query"
)

// Open opens the DuckDB database file shared by both front ends.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %q: %w", path, err)
	}
	return db, nil
}

type Options struct {
	// ReadOnly rejects anything that is not a SELECT/WITH statement before
	// it reaches the engine. Generated SQL is otherwise executed as-is.
	ReadOnly bool
}

// Executor materializes result sets from untrusted statement text. The
// statement text comes from a language model and is not validated here;
// invalid SQL surfaces as an ExecutionError when the engine rejects it.
type Executor struct {
	db   *sql.DB
	opts Options

	// DuckDB cursors over one connection are not safe under concurrent use,
	// so execute-and-fetch is serialized across the GUI and HTTP callers.
	mu sync.Mutex
}

func NewExecutor(db *sql.DB, opts Options) *Executor {
	return &Executor{db: db, opts: opts}
}

// Execute runs a single statement and returns all rows. Every engine fault
// is returned as a *query.ExecutionError; this boundary never panics.
func (e *Executor) Execute(ctx context.Context, sqlText string) (query.ResultSet, error) {
	statement := stripTrailingSemicolons(sqlText)
	if statement == "" {
		return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: "empty statement"}
	}
	if e.opts.ReadOnly && !isReadOnlySQL(statement) {
		return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: "only read-only SELECT/WITH statements are allowed"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := e.db.QueryContext(ctx, statement)
	if err != nil {
		return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: err.Error()}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: err.Error()}
	}

	collected := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: err.Error()}
		}
		collected = append(collected, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return query.ResultSet{}, &query.ExecutionError{SQL: sqlText, Message: err.Error()}
	}

	return query.New(columns, collected), nil
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func isReadOnlySQL(sqlText string) bool {
	normalized := strings.ToLower(strings.TrimSpace(sqlText))
	return strings.HasPrefix(normalized, "select") || strings.HasPrefix(normalized, "with")
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}
