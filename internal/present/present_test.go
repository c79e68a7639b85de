package present

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopql/shopql/internal/query"
)

func twoColumnNumeric() query.ResultSet {
	return query.New([]string{"date", "ad_sales"}, [][]any{
		{"2024-06-01", 120.5},
		{"2024-06-02", int64(90)},
		{"2024-06-03", 140.25},
	})
}

func TestDisplayTextContainsHeadersAndCells(t *testing.T) {
	rs := twoColumnNumeric()
	text := DisplayText(rs)

	for _, column := range rs.Columns {
		if got := strings.Count(text, column.Name); got != 1 {
			t.Fatalf("header %q appears %d times:\n%s", column.Name, got, text)
		}
	}
	for _, cell := range []string{"2024-06-01", "2024-06-02", "2024-06-03", "120.5", "90", "140.25"} {
		if !strings.Contains(text, cell) {
			t.Fatalf("display text missing cell %q:\n%s", cell, text)
		}
	}
}

func TestDisplayTextRendersNulls(t *testing.T) {
	rs := query.New([]string{"message"}, [][]any{{nil}})
	if !strings.Contains(DisplayText(rs), "NULL") {
		t.Fatal("expected NULL placeholder for nil cell")
	}
}

func TestRecordsPreserveRowOrder(t *testing.T) {
	rs := twoColumnNumeric()
	records := Records(rs)

	if len(records) != 3 {
		t.Fatalf("record count = %d", len(records))
	}
	want := []any{"2024-06-01", "2024-06-02", "2024-06-03"}
	for i, record := range records {
		if record["date"] != want[i] {
			t.Fatalf("record %d date = %v, want %v", i, record["date"], want[i])
		}
	}
	if records[1]["ad_sales"] != int64(90) {
		t.Fatalf("ad_sales = %v", records[1]["ad_sales"])
	}
}

func TestPlotTwoColumnNumericProducesLineChart(t *testing.T) {
	spec, ok := Plot(twoColumnNumeric())
	if !ok {
		t.Fatal("expected a chart")
	}
	if spec.Kind != ChartLine {
		t.Fatalf("kind = %q", spec.Kind)
	}
	if spec.Title != "ad_sales by date" {
		t.Fatalf("title = %q", spec.Title)
	}
	if !reflect.DeepEqual(spec.Labels, []string{"2024-06-01", "2024-06-02", "2024-06-03"}) {
		t.Fatalf("labels = %v", spec.Labels)
	}
	if !reflect.DeepEqual(spec.Values, []float64{120.5, 90, 140.25}) {
		t.Fatalf("values = %v", spec.Values)
	}
}

func TestPlotSingleNumericColumnProducesPoint(t *testing.T) {
	rs := query.New([]string{"total"}, [][]any{{1234.5}, {99.0}})
	spec, ok := Plot(rs)
	if !ok {
		t.Fatal("expected a chart")
	}
	if spec.Kind != ChartPoint {
		t.Fatalf("kind = %q", spec.Kind)
	}
	if spec.Title != "total" || len(spec.Values) != 1 || spec.Values[0] != 1234.5 {
		t.Fatalf("spec = %+v", spec)
	}
}

func TestPlotUnplottableShapesDegradeSilently(t *testing.T) {
	cases := map[string]query.ResultSet{
		"empty": query.New([]string{"date", "ad_sales"}, nil),
		"three columns": query.New([]string{"date", "item_id", "ad_sales"}, [][]any{
			{"2024-06-01", int64(1), 120.5},
		}),
		"second column not numeric": query.New([]string{"date", "message"}, [][]any{
			{"2024-06-01", "suppressed"},
		}),
		"single text column": query.New([]string{"message"}, [][]any{{"hello"}}),
	}
	for name, rs := range cases {
		if _, ok := Plot(rs); ok {
			t.Errorf("%s: expected no chart", name)
		}
	}
}

func TestPlotSkipsNullValues(t *testing.T) {
	rs := query.New([]string{"date", "clicks"}, [][]any{
		{"2024-06-01", int64(10)},
		{"2024-06-02", nil},
		{"2024-06-03", int64(30)},
	})
	spec, ok := Plot(rs)
	if !ok {
		t.Fatal("expected a chart")
	}
	if len(spec.Values) != 2 || spec.Values[1] != 30 {
		t.Fatalf("values = %v", spec.Values)
	}
	if len(spec.Labels) != 2 || spec.Labels[1] != "2024-06-03" {
		t.Fatalf("labels = %v", spec.Labels)
	}
}

func TestPresentationDoesNotMutateResultSet(t *testing.T) {
	rs := twoColumnNumeric()
	before := make([][]any, len(rs.Rows))
	for i, row := range rs.Rows {
		before[i] = append([]any(nil), row...)
	}

	_ = DisplayText(rs)
	_ = Records(rs)
	_, _ = Plot(rs)
	_, _ = Plot(rs)

	if !reflect.DeepEqual(before, rs.Rows) {
		t.Fatal("presentation mutated the result set")
	}
}
