package present

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/shopql/shopql/internal/query"
)

// EncodeParquet serializes a result set as a parquet file. Numeric columns
// become optional doubles, everything else an optional string; NULL cells
// are omitted from their row.
func EncodeParquet(rs query.ResultSet) ([]byte, error) {
	if len(rs.Columns) == 0 {
		return nil, fmt.Errorf("result set has no columns")
	}

	group := parquet.Group{}
	for _, column := range rs.Columns {
		switch column.Kind {
		case query.KindNumeric:
			group[column.Name] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		default:
			group[column.Name] = parquet.Optional(parquet.String())
		}
	}
	schema := parquet.NewSchema("result", group)

	rows := make([]map[string]any, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		record := make(map[string]any, len(rs.Columns))
		for i, column := range rs.Columns {
			if i >= len(row) || row[i] == nil {
				continue
			}
			if column.Kind == query.KindNumeric {
				if value, ok := query.AsFloat(row[i]); ok {
					record[column.Name] = value
				}
				continue
			}
			record[column.Name] = cellString(row[i])
		}
		rows = append(rows, record)
	}

	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[map[string]any](buf, schema)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return nil, fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}
