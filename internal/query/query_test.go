package query

import (
	"testing"
	"time"
)

func TestNewInfersNumericColumn(t *testing.T) {
	rs := New([]string{"date", "ad_sales"}, [][]any{
		{"2024-01-01", int64(120)},
		{"2024-01-02", 99.5},
		{"2024-01-03", nil},
	})
	if rs.Columns[0].Kind != KindText {
		t.Fatalf("date kind = %v, want text", rs.Columns[0].Kind)
	}
	if rs.Columns[1].Kind != KindNumeric {
		t.Fatalf("ad_sales kind = %v, want numeric", rs.Columns[1].Kind)
	}
}

func TestNewInfersDateColumn(t *testing.T) {
	rs := New([]string{"day"}, [][]any{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	})
	if rs.Columns[0].Kind != KindDate {
		t.Fatalf("day kind = %v, want date", rs.Columns[0].Kind)
	}
}

func TestNewMixedValuesFallBackToText(t *testing.T) {
	rs := New([]string{"value"}, [][]any{
		{int64(1)},
		{"two"},
	})
	if rs.Columns[0].Kind != KindText {
		t.Fatalf("value kind = %v, want text", rs.Columns[0].Kind)
	}
}

func TestNewAllNullColumnIsText(t *testing.T) {
	rs := New([]string{"value"}, [][]any{{nil}, {nil}})
	if rs.Columns[0].Kind != KindText {
		t.Fatalf("value kind = %v, want text", rs.Columns[0].Kind)
	}
}

func TestNewEmptyResultSet(t *testing.T) {
	rs := New([]string{"total"}, nil)
	if !rs.Empty() {
		t.Fatal("expected empty result set")
	}
	if len(rs.Columns) != 1 || rs.Columns[0].Name != "total" {
		t.Fatalf("columns = %+v", rs.Columns)
	}
}

func TestAsFloatCoversIntegerWidths(t *testing.T) {
	values := []any{int(1), int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint16(1), uint32(1), uint64(1), float32(1), float64(1)}
	for _, value := range values {
		got, ok := AsFloat(value)
		if !ok || got != 1 {
			t.Fatalf("AsFloat(%T) = %v, %v", value, got, ok)
		}
	}
	if _, ok := AsFloat("1"); ok {
		t.Fatal("AsFloat should reject strings")
	}
}

func TestExecutionErrorMessage(t *testing.T) {
	err := &ExecutionError{SQL: "SELEKT 1", Message: "syntax error at or near \"SELEKT\""}
	if got := err.Error(); got != "execute statement: syntax error at or near \"SELEKT\"" {
		t.Fatalf("Error() = %q", got)
	}
}
