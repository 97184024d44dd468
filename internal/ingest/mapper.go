package ingest

import (
	"fmt"
	"strings"

	"pagu/internal/core"
)

// MappedSheet is a validated worksheet with canonical headers. Rows keep
// their original order and the full schema width.
type MappedSheet struct {
	Region  core.Region
	Schema  Schema
	Headers []string
	Rows    [][]any

	index map[string]int
}

// MapSheet validates raw worksheet values (header row first) against the
// layout expected for region and applies the column mapping: the account
// name column becomes the expense type and program names are normalized.
func MapSheet(region core.Region, values [][]any) (*MappedSheet, error) {
	rows, width, err := dataRows(values)
	if err != nil {
		return nil, err
	}
	schema, err := SelectSchema(region, width)
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(schema.Columns))
	index := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		if c == ColAccountName {
			c = ColExpenseType
		}
		headers[i] = c
		index[c] = i
	}

	programCol := index[ColProgram]
	for _, r := range rows {
		r[programCol] = core.NormalizeProgram(cellText(r[programCol]))
	}

	return &MappedSheet{
		Region:  region,
		Schema:  schema,
		Headers: headers,
		Rows:    rows,
		index:   index,
	}, nil
}

// Index returns the position of a mapped column.
func (m *MappedSheet) Index(column string) (int, bool) {
	i, ok := m.index[column]
	return i, ok
}

// Cell returns the value of column in row, or nil when the column is absent.
func (m *MappedSheet) Cell(row []any, column string) any {
	i, ok := m.index[column]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

// Text returns the trimmed string form of a cell.
func (m *MappedSheet) Text(row []any, column string) string {
	return cellText(m.Cell(row, column))
}

// ExpenseRows returns the rows whose expense type is not blank.
func (m *MappedSheet) ExpenseRows() [][]any {
	out := make([][]any, 0, len(m.Rows))
	for _, r := range m.Rows {
		if m.Text(r, ColExpenseType) != "" {
			out = append(out, r)
		}
	}
	return out
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
