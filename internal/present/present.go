// Package present derives user-facing artifacts from a result set: an
// aligned text table for the desktop transcript, ordered records for the
// HTTP response, and an optional chart description. All functions are pure
// with respect to the result set.
package present

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/shopql/shopql/internal/query"
)

// DisplayText renders the rows as an aligned plain-text table with column
// headers and no index column.
func DisplayText(rs query.ResultSet) string {
	if len(rs.Columns) == 0 {
		return "No results found"
	}

	headers := make([]string, len(rs.Columns))
	for i, column := range rs.Columns {
		headers[i] = column.Name
	}

	buf := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buf)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for _, row := range rs.Rows {
		cells := make([]string, len(rs.Columns))
		for i := range rs.Columns {
			if i < len(row) {
				cells[i] = cellString(row[i])
			}
		}
		table.Append(cells)
	}

	table.Render()
	return buf.String()
}

// Records returns one column->value mapping per row, preserving row order.
func Records(rs query.ResultSet) []map[string]any {
	records := make([]map[string]any, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		record := make(map[string]any, len(rs.Columns))
		for i, column := range rs.Columns {
			if i < len(row) {
				record[column.Name] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartPoint ChartKind = "point"
)

// ChartSpec describes a chart without rendering it; the desktop front end
// turns it into canvas objects.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

// Plot decides from the shape of the result set whether a chart can be
// drawn. Two columns with a numeric second column become a line chart over
// the first column's values in row order; a single numeric column becomes a
// one-point chart of the first row. Every other shape yields no chart, by
// design rather than as an error.
func Plot(rs query.ResultSet) (ChartSpec, bool) {
	if rs.Empty() {
		return ChartSpec{}, false
	}

	switch {
	case len(rs.Columns) == 2 && rs.Columns[1].Kind == query.KindNumeric:
		xCol, yCol := rs.Columns[0], rs.Columns[1]
		labels := make([]string, 0, len(rs.Rows))
		values := make([]float64, 0, len(rs.Rows))
		for _, row := range rs.Rows {
			if len(row) < 2 || row[1] == nil {
				continue
			}
			value, ok := query.AsFloat(row[1])
			if !ok {
				continue
			}
			labels = append(labels, cellString(row[0]))
			values = append(values, value)
		}
		if len(values) == 0 {
			return ChartSpec{}, false
		}
		return ChartSpec{
			Kind:   ChartLine,
			Title:  fmt.Sprintf("%s by %s", yCol.Name, xCol.Name),
			XLabel: xCol.Name,
			YLabel: yCol.Name,
			Labels: labels,
			Values: values,
		}, true

	case len(rs.Columns) == 1 && rs.Columns[0].Kind == query.KindNumeric:
		value, ok := query.AsFloat(rs.Rows[0][0])
		if !ok {
			return ChartSpec{}, false
		}
		name := rs.Columns[0].Name
		return ChartSpec{
			Kind:   ChartPoint,
			Title:  name,
			Labels: []string{name},
			Values: []float64{value},
		}, true

	default:
		return ChartSpec{}, false
	}
}

func cellString(value any) string {
	switch typed := value.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 {
			return typed.Format("2006-01-02")
		}
		return typed.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", typed)
	}
}
