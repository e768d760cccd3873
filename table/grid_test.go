package table

import (
	"context"
	"fmt"
)

// grid is an in-memory worksheet used to exercise the reader and merge engine.
type grid struct {
	cells       [][]string
	unavailable bool
	failOn      int
	writes      int
	resizes     int
}

type batchGrid struct {
	*grid
	batches int
	fail    bool
}

func newGrid(cells [][]string) *grid {
	g := grid{}
	for _, row := range cells {
		g.cells = append(g.cells, append([]string{}, row...))
	}

	return &g
}

// Values returns the used range in the same shape as the Sheets API: trailing empty cells
// and trailing empty rows are dropped.
func (g *grid) Values(ctx context.Context) ([][]string, error) {
	if g.unavailable {
		return nil, fmt.Errorf("unreachable")
	}

	values := [][]string{}
	for _, row := range g.cells {
		n := len(row)
		for n > 0 && row[n-1] == "" {
			n--
		}

		values = append(values, append([]string{}, row[:n]...))
	}

	for len(values) > 0 && len(values[len(values)-1]) == 0 {
		values = values[:len(values)-1]
	}

	return values, nil
}

func (g *grid) WriteColumn(ctx context.Context, column int, values []string) error {
	g.writes++
	if g.failOn > 0 && g.writes == g.failOn {
		return fmt.Errorf("write failed")
	}

	for i, v := range values {
		g.set(i+1, column, v)
	}

	return nil
}

func (g *grid) Resize(ctx context.Context, from, to int) error {
	g.resizes++

	lo, hi := to+1, from
	if to > from {
		lo, hi = from+1, to
	}

	for r := lo; r <= hi && r < len(g.cells); r++ {
		for c := range g.cells[r] {
			g.cells[r][c] = ""
		}
	}

	return nil
}

func (g *grid) set(row, column int, v string) {
	for len(g.cells) <= row {
		g.cells = append(g.cells, []string{})
	}

	for len(g.cells[row]) <= column {
		g.cells[row] = append(g.cells[row], "")
	}

	g.cells[row][column] = v
}

func (g *grid) column(ix int) []string {
	values, _ := g.Values(context.Background())
	column := []string{}
	for _, row := range DataRows(values) {
		column = append(column, cell(row, ix))
	}

	return column
}

func (b *batchGrid) WriteColumns(ctx context.Context, columns []ColumnWrite) error {
	b.batches++
	if b.fail {
		return fmt.Errorf("batch failed")
	}

	for _, c := range columns {
		for i, v := range c.Values {
			b.set(i+1, c.Index, v)
		}
	}

	return nil
}
