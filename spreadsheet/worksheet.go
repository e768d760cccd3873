package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/sheetsync/sheetsync/table"
)

// Worksheet is a live handle to a single sheet in a spreadsheet. It implements
// table.Source, table.Destination and table.BatchWriter.
type Worksheet struct {
	google      *sheets.Service
	spreadsheet string
	properties  *sheets.SheetProperties
}

func (w *Worksheet) Title() string {
	return w.properties.Title
}

func (w *Worksheet) ID() int64 {
	return w.properties.SheetId
}

func (w *Worksheet) URL() string {
	return fmt.Sprintf("%v%v#gid=%v", URL, w.spreadsheet, w.properties.SheetId)
}

// Values retrieves the used range of the worksheet as formatted text.
func (w *Worksheet) Values(ctx context.Context) ([][]string, error) {
	response, err := w.google.Spreadsheets.Values.Get(w.spreadsheet, quote(w.Title())).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet '%v' (%w)", w.Title(), err)
	}

	values := make([][]string, len(response.Values))
	for i, row := range response.Values {
		values[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				values[i][j] = fmt.Sprintf("%v", v)
			}
		}
	}

	return values, nil
}

// Header returns the worksheet header row as displayed.
func (w *Worksheet) Header(ctx context.Context) ([]string, error) {
	response, err := w.google.Spreadsheets.Values.Get(w.spreadsheet, rows(w.Title(), 1, 1)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve header from sheet '%v' (%w)", w.Title(), err)
	}

	header := []string{}
	if len(response.Values) > 0 {
		for _, v := range response.Values[0] {
			header = append(header, fmt.Sprintf("%v", v))
		}
	}

	return header, nil
}

func (w *Worksheet) WriteColumn(ctx context.Context, col int, values []string) error {
	if len(values) == 0 {
		return nil
	}

	rq := w.column(col, values)

	if _, err := w.google.Spreadsheets.Values.Update(w.spreadsheet, rq.Range, rq).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error updating %v (%w)", rq.Range, err)
	}

	return nil
}

// WriteColumns writes all the columns in a single (atomic) batch update.
func (w *Worksheet) WriteColumns(ctx context.Context, columns []table.ColumnWrite) error {
	data := []*sheets.ValueRange{}
	for _, c := range columns {
		if len(c.Values) > 0 {
			data = append(data, w.column(c.Index, c.Values))
		}
	}

	if len(data) == 0 {
		return nil
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	if _, err := w.google.Spreadsheets.Values.BatchUpdate(w.spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error updating sheet '%v' (%w)", w.Title(), err)
	}

	return nil
}

// Resize changes the number of data rows from 'from' to 'to'. Rows past 'to' are cleared,
// rows added are cleared and the grid is extended if it is too small to hold them.
func (w *Worksheet) Resize(ctx context.Context, from, to int) error {
	switch {
	case to > from:
		required := int64(to + 1)
		if grid := w.properties.GridProperties; grid != nil && grid.RowCount < required {
			if err := appendRows(w.google, w.spreadsheet, w.ID(), required-grid.RowCount, ctx); err != nil {
				return fmt.Errorf("error extending sheet '%v' (%w)", w.Title(), err)
			}

			grid.RowCount = required
		}

		if err := clear(w.google, w.spreadsheet, []string{rows(w.Title(), from+2, to+1)}, ctx); err != nil {
			return fmt.Errorf("error clearing new rows in sheet '%v' (%w)", w.Title(), err)
		}

	case to < from:
		if err := clear(w.google, w.spreadsheet, []string{rows(w.Title(), to+2, from+1)}, ctx); err != nil {
			return fmt.Errorf("error clearing trailing rows in sheet '%v' (%w)", w.Title(), err)
		}
	}

	return nil
}

func (w *Worksheet) column(col int, values []string) *sheets.ValueRange {
	data := make([][]interface{}, len(values))
	for i, v := range values {
		data[i] = []interface{}{literal(v)}
	}

	return &sheets.ValueRange{
		Range:  cells(w.Title(), col, 2, len(values)+1),
		Values: data,
	}
}

// literal quotes cell text that Sheets would otherwise store as a different value when
// written USER_ENTERED: numbers it would reformat (e.g. 007, 1.50, 2.5e3 or integers with
// more digits than a float64 holds) and text that already starts with an apostrophe.
func literal(v string) string {
	if strings.HasPrefix(v, "'") {
		return "'" + v
	}

	trimmed := strings.TrimSpace(v)
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return v
	}

	if trimmed != v || err != nil || strconv.FormatFloat(f, 'f', -1, 64) != v {
		return "'" + v
	}

	return v
}
