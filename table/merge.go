package table

import (
	"context"
	"fmt"
)

// Destination is a live handle to a worksheet that a table can be merged into.
//
// WriteColumn overwrites data rows 1..len(values) (i.e. sheet rows 2..len(values)+1) of the
// column at the zero-based index. Resize changes the number of data rows from 'from' to 'to':
// rows past 'to' are cleared and rows added when growing are blank.
type Destination interface {
	Source
	WriteColumn(ctx context.Context, column int, values []string) error
	Resize(ctx context.Context, from, to int) error
}

// BatchWriter is implemented by destinations that can write several columns in a single
// round trip. The batch is expected to be all-or-nothing.
type BatchWriter interface {
	WriteColumns(ctx context.Context, columns []ColumnWrite) error
}

// ColumnWrite is a single column update: the values for data rows 1..len(Values) of the
// destination column at Index.
type ColumnWrite struct {
	Name   string
	Index  int
	Values []string
}

// Result summarises a merge: the change in the number of destination data rows, the columns
// that were written and the source columns that had no matching destination column.
type Result struct {
	RowDiff int
	Updated []string
	Skipped []string
}

// Plan computes the result of merging 'src' into a destination with the given grid snapshot
// without writing anything.
func Plan(src *Table, snapshot [][]string) Result {
	result, _ := plan(src, snapshot)

	return result
}

// Merge writes the columns of 'src' into the destination columns with the same (exact, case
// sensitive) header and resizes the destination so that it has as many data rows as 'src'.
// Destination columns without a source counterpart are not touched and source columns
// without a destination counterpart are reported as skipped.
//
// Merge is not atomic: a failure after the first write is returned as a *PartialMergeFailure.
func Merge(ctx context.Context, src *Table, dst Destination) (*Result, error) {
	snapshot, err := dst.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", ErrDestinationUnavailable, err)
	}

	result, writes := plan(src, snapshot)
	before := usedRows(snapshot)
	after := before + result.RowDiff

	if after > before {
		if err := dst.Resize(ctx, before, after); err != nil {
			return nil, &PartialMergeFailure{Written: []string{}, Err: err}
		}
	}

	if batch, ok := dst.(BatchWriter); ok && len(writes) > 0 {
		if err := batch.WriteColumns(ctx, writes); err != nil {
			return nil, &PartialMergeFailure{Written: []string{}, Err: err}
		}
	} else {
		written := []string{}
		for _, w := range writes {
			if len(w.Values) > 0 {
				if err := dst.WriteColumn(ctx, w.Index, w.Values); err != nil {
					return nil, &PartialMergeFailure{Written: written, Column: w.Name, Err: err}
				}
			}

			written = append(written, w.Name)
		}
	}

	if after < before {
		if err := dst.Resize(ctx, before, after); err != nil {
			return nil, &PartialMergeFailure{Written: result.Updated, Err: err}
		}
	}

	return &result, nil
}

func plan(src *Table, snapshot [][]string) (Result, []ColumnWrite) {
	var header []string
	if len(snapshot) > 0 {
		header = snapshot[0]
	}

	index := map[string]int{}
	for j, h := range header {
		if _, ok := index[h]; !ok && h != "" {
			index[h] = j
		}
	}

	result := Result{
		Updated: []string{},
		Skipped: []string{},
	}

	writes := []ColumnWrite{}
	for i, c := range src.Columns {
		if j, ok := index[c.Name]; ok {
			writes = append(writes, ColumnWrite{
				Name:   c.Name,
				Index:  j,
				Values: src.Strings(i),
			})

			result.Updated = append(result.Updated, c.Name)
		} else {
			result.Skipped = append(result.Skipped, c.Name)
		}
	}

	rows := len(src.Rows)
	if len(src.Columns) == 0 {
		rows = 0
	}

	result.RowDiff = rows - usedRows(snapshot)

	return result, writes
}

// usedRows returns the number of data rows in the used range of a worksheet grid, i.e. up to
// the last row with any non-empty cell. Unlike DataRows it does not stop at blank rows, so that
// a merge resizes (and clears) the whole of the existing data.
func usedRows(snapshot [][]string) int {
	n := len(snapshot)
	for n > 1 && isEmptyRow(snapshot[n-1]) {
		n--
	}

	if n < 2 {
		return 0
	}

	return n - 1
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}

	return true
}
