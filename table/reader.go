package table

import (
	"context"
	"fmt"
)

// Source is anything that can provide a snapshot of a worksheet grid: row 1 is the header,
// the remaining rows are data. Rows may be ragged.
type Source interface {
	Values(ctx context.Context) ([][]string, error)
}

// Read takes a snapshot of a worksheet and converts it to a typed table.
func Read(ctx context.Context, src Source) (*Table, error) {
	values, err := src.Values(ctx)
	if err != nil {
		return nil, err
	}

	return MakeTable(values)
}

// MakeTable builds a typed table from a worksheet grid. Header cells are used verbatim as
// column names (blank and duplicate names are replaced by unique placeholders), data rows
// end at the first fully blank row and the kind of each column is inferred from its values.
func MakeTable(values [][]string) (*Table, error) {
	if len(values) == 0 || isBlankRow(values[0]) {
		return nil, ErrEmptySheet
	}

	header := Names(values[0])
	records := DataRows(values)

	return makeTable(header, records), nil
}

// Names converts a header row to unique column names. A blank header becomes column_<n>
// (1-based position) and the second and later occurrences of a name become <name>_<k>.
func Names(header []string) []string {
	names := make([]string, len(header))
	taken := map[string]bool{}

	for _, h := range header {
		if !blank(h) {
			taken[h] = true
		}
	}

	seen := map[string]bool{}
	for i, h := range header {
		name := h
		if blank(h) {
			name = unique(fmt.Sprintf("column_%d", i+1), taken)
		} else if seen[h] {
			for k := 2; ; k++ {
				if candidate := fmt.Sprintf("%s_%d", h, k); !taken[candidate] {
					name = candidate
					break
				}
			}
		}

		seen[h] = true
		taken[name] = true
		names[i] = name
	}

	return names
}

// DataRows returns the data rows of a worksheet grid, i.e. the rows after the header up to
// (but not including) the first fully blank row.
func DataRows(values [][]string) [][]string {
	if len(values) < 2 {
		return [][]string{}
	}

	rows := [][]string{}
	for _, row := range values[1:] {
		if isBlankRow(row) {
			break
		}

		rows = append(rows, row)
	}

	return rows
}

func makeTable(header []string, records [][]string) *Table {
	columns := make([]Column, len(header))
	cells := make([]string, len(records))

	for i, name := range header {
		for j, record := range records {
			cells[j] = cell(record, i)
		}

		columns[i] = Column{Name: name, Kind: Infer(cells)}
	}

	rows := make([][]Value, len(records))
	for j, record := range records {
		row := make([]Value, len(columns))
		for i, c := range columns {
			row[i] = Convert(cell(record, i), c.Kind)
		}

		rows[j] = row
	}

	return &Table{
		Columns: columns,
		Rows:    rows,
	}
}

func unique(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}

	for k := 2; ; k++ {
		if candidate := fmt.Sprintf("%s_%d", name, k); !taken[candidate] {
			return candidate
		}
	}
}

func cell(row []string, ix int) string {
	if ix < len(row) {
		return row[ix]
	}

	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if !blank(v) {
			return false
		}
	}

	return true
}
