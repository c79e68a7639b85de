// Package schema describes the fixed e-commerce reporting tables that SQL
// synthesis is allowed to reference. The table and column names must match
// what the ingest step creates in the store exactly; the synthesizer has no
// way to detect a drift between this description and the real database.
package schema

import "strings"

type Table struct {
	Name    string
	Columns []string
}

var tables = []Table{
	{
		Name:    "AdSales",
		Columns: []string{"date", "item_id", "ad_sales", "impressions", "ad_spend", "clicks", "units_sold"},
	},
	{
		Name:    "TotalSales",
		Columns: []string{"date", "item_id", "total_sales", "total_units_ordered"},
	},
	{
		Name:    "Eligibility",
		Columns: []string{"eligibility_datetime_utc", "item_id", "eligibility", "message"},
	},
}

// Tables returns a copy of the table descriptors so callers cannot mutate the
// process-wide schema.
func Tables() []Table {
	out := make([]Table, len(tables))
	for i, table := range tables {
		columns := make([]string, len(table.Columns))
		copy(columns, table.Columns)
		out[i] = Table{Name: table.Name, Columns: columns}
	}
	return out
}

// Render produces the human-readable schema text injected into every
// synthesis prompt.
func Render() string {
	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Table: ")
		b.WriteString(table.Name)
		b.WriteString("\n")
		for _, column := range table.Columns {
			b.WriteString("- ")
			b.WriteString(column)
			b.WriteString("\n")
		}
	}
	return b.String()
}
