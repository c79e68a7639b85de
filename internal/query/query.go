// Package query defines the in-memory result set produced by executing a
// synthesized statement, with a column kind tagged once at construction so
// downstream consumers never re-inspect row values to decide how to render.
package query

import (
	"fmt"
	"time"
)

type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

type Column struct {
	Name string
	Kind Kind
}

// ResultSet holds fully materialized rows in the order the store returned
// them. It is created once per request and never mutated by presentation.
type ResultSet struct {
	Columns []Column
	Rows    [][]any
}

// New builds a ResultSet and infers each column's kind from the scanned Go
// values. A column is numeric only if every non-NULL value is a numeric Go
// type, a date only if every non-NULL value is a time.Time; anything mixed,
// textual, or entirely NULL is text.
func New(names []string, rows [][]any) ResultSet {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Kind: inferKind(i, rows)}
	}
	return ResultSet{Columns: columns, Rows: rows}
}

func (rs ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// AsFloat converts a scanned cell value from a numeric column to float64.
func AsFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func inferKind(column int, rows [][]any) Kind {
	kind := KindText
	seen := false
	for _, row := range rows {
		if column >= len(row) || row[column] == nil {
			continue
		}
		var current Kind
		if _, ok := AsFloat(row[column]); ok {
			current = KindNumeric
		} else if _, ok := row[column].(time.Time); ok {
			current = KindDate
		} else {
			return KindText
		}
		if !seen {
			kind = current
			seen = true
			continue
		}
		if kind != current {
			return KindText
		}
	}
	return kind
}

// ExecutionError reports a statement the store rejected. The message is the
// engine's own text, passed through verbatim; no attempt is made to separate
// bad queries from infrastructure faults.
type ExecutionError struct {
	SQL     string
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute statement: %s", e.Message)
}
