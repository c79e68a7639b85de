// Package ingest loads the source CSV files into the DuckDB store. It leans
// on DuckDB's read_csv_auto for type sniffing instead of parsing the files
// itself.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Source pairs a CSV file with the table it populates.
type Source struct {
	Table string
	Path  string
}

// LoadCSV replaces the named table with the contents of the CSV file. The
// table is rebuilt on every run so repeated ingests stay idempotent.
func LoadCSV(ctx context.Context, db *sql.DB, table, path string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("table name is required")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("csv path is required for table %s", table)
	}
	statement := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s)",
		quoteIdent(table),
		quoteString(path),
	)
	if _, err := db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("load %s from %s: %w", table, path, err)
	}
	return nil
}

// LoadAll ingests every source in order, stopping at the first failure.
func LoadAll(ctx context.Context, db *sql.DB, sources []Source) error {
	for _, source := range sources {
		if err := LoadCSV(ctx, db, source.Table, source.Path); err != nil {
			return err
		}
	}
	return nil
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
