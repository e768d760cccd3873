package sheetstest

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

func (ss *spreadsheet) metadata() *sheets.Spreadsheet {
	response := sheets.Spreadsheet{
		SpreadsheetId:  ss.id,
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/" + ss.id + "/edit",
		Properties: &sheets.SpreadsheetProperties{
			Title: ss.title,
		},
	}

	for i, sh := range ss.sheets {
		response.Sheets = append(response.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				SheetId:   sh.id,
				Title:     sh.title,
				Index:     int64(i),
				SheetType: "GRID",
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(sh.rows),
					ColumnCount: int64(sh.columns),
				},
			},
		})
	}

	return &response
}

func (ss *spreadsheet) sheet(title string) *sheet {
	for _, sh := range ss.sheets {
		if sh.title == title {
			return sh
		}
	}

	return nil
}

func (ss *spreadsheet) sheetByID(gid int64) *sheet {
	for _, sh := range ss.sheets {
		if sh.id == gid {
			return sh
		}
	}

	return nil
}

func (ss *spreadsheet) area(rng string) (*area, *sheet, error) {
	a, err := parseRange(rng)
	if err != nil {
		return nil, nil, invalid(fmt.Sprintf("Unable to parse range: %v", rng))
	}

	sh := ss.sheet(a.title)
	if sh == nil {
		return nil, nil, invalid(fmt.Sprintf("Unable to parse range: %v", rng))
	}

	return a, sh, nil
}

// update applies the appendDimension and deleteDimension requests of a spreadsheet
// batchUpdate. Any other request is rejected.
func (ss *spreadsheet) update(requests []*sheets.Request) error {
	for _, rq := range requests {
		switch {
		case rq.AppendDimension != nil:
			sh := ss.sheetByID(rq.AppendDimension.SheetId)
			if sh == nil {
				return invalid(fmt.Sprintf("No grid with id: %v", rq.AppendDimension.SheetId))
			}

			if rq.AppendDimension.Dimension == "ROWS" {
				sh.rows += int(rq.AppendDimension.Length)
			} else {
				sh.columns += int(rq.AppendDimension.Length)
			}

		case rq.DeleteDimension != nil && rq.DeleteDimension.Range != nil:
			r := rq.DeleteDimension.Range
			sh := ss.sheetByID(r.SheetId)
			if sh == nil {
				return invalid(fmt.Sprintf("No grid with id: %v", r.SheetId))
			}

			start, end := int(r.StartIndex), int(r.EndIndex)
			if r.Dimension != "ROWS" || start < 0 || end <= start || end > sh.rows {
				return invalid(fmt.Sprintf("Invalid dimension range %v..%v", start, end))
			}

			if start < len(sh.cells) {
				if end > len(sh.cells) {
					sh.cells = sh.cells[:start]
				} else {
					sh.cells = append(sh.cells[:start], sh.cells[end:]...)
				}
			}

			sh.rows -= end - start

		default:
			return invalid("Unsupported request")
		}
	}

	return nil
}

// read returns the cells in an area with trailing empty cells and rows removed.
func (sh *sheet) read(a *area) [][]string {
	bottom, right := sh.bounds(a)

	values := [][]string{}
	for r := a.top; r <= bottom; r++ {
		row := []string{}
		for c := a.left; c <= right; c++ {
			row = append(row, sh.get(r, c))
		}

		for len(row) > 0 && row[len(row)-1] == "" {
			row = row[:len(row)-1]
		}

		values = append(values, row)
	}

	for len(values) > 0 && len(values[len(values)-1]) == 0 {
		values = values[:len(values)-1]
	}

	return values
}

// check verifies that 'values' fits inside the worksheet grid.
func (sh *sheet) check(a *area, values [][]interface{}) error {
	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	if len(values) > 0 && a.top+len(values)-1 > sh.rows {
		return invalid(fmt.Sprintf("Range (%v!R%vC%v) exceeds grid limits. Max rows: %v, max columns: %v", sh.title, a.top+len(values)-1, a.left, sh.rows, sh.columns))
	}

	if width > 0 && a.left+width-1 > sh.columns {
		return invalid(fmt.Sprintf("Range (%v!R%vC%v) exceeds grid limits. Max rows: %v, max columns: %v", sh.title, a.top, a.left+width-1, sh.rows, sh.columns))
	}

	return nil
}

// write stores 'values' in 'a'. For USER_ENTERED values a leading apostrophe marks literal
// text and is not stored, the same as Sheets.
func (sh *sheet) write(a *area, values [][]interface{}, entered bool) error {
	if err := sh.check(a, values); err != nil {
		return err
	}

	for i, row := range values {
		for j, v := range row {
			if s, ok := v.(string); ok && entered {
				v = strings.TrimPrefix(s, "'")
			}

			sh.set(a.top+i, a.left+j, v)
		}
	}

	return nil
}

func (sh *sheet) clear(a *area) {
	bottom, right := sh.bounds(a)

	for r := a.top; r <= bottom; r++ {
		for c := a.left; c <= right; c++ {
			if r <= len(sh.cells) && c <= len(sh.cells[r-1]) {
				sh.cells[r-1][c-1] = ""
			}
		}
	}
}

// append adds rows after the last non-empty row of the table in 'a', extending the grid
// as required.
func (sh *sheet) append(a *area, values [][]interface{}, insert bool) {
	bottom, _ := sh.bounds(a)
	last := a.top - 1
	for r := a.top; r <= bottom; r++ {
		if len(sh.read(&area{title: a.title, top: r, left: a.left, bottom: r, right: a.right})) > 0 {
			last = r
		}
	}

	if insert && last < len(sh.cells) {
		blank := make([][]string, len(values))
		tail := append(blank, sh.cells[last:]...)
		sh.cells = append(sh.cells[:last], tail...)
		sh.rows += len(values)
	} else if last+len(values) > sh.rows {
		sh.rows = last + len(values)
	}

	for i, row := range values {
		for j, v := range row {
			sh.set(last+1+i, a.left+j, v)
		}
	}
}

func (sh *sheet) bounds(a *area) (int, int) {
	bottom, right := a.bottom, a.right
	if bottom == 0 || bottom > sh.rows {
		bottom = sh.rows
	}

	if right == 0 || right > sh.columns {
		right = sh.columns
	}

	return bottom, right
}

func (sh *sheet) get(row, col int) string {
	if row <= len(sh.cells) && col <= len(sh.cells[row-1]) {
		return sh.cells[row-1][col-1]
	}

	return ""
}

func (sh *sheet) set(row, col int, v interface{}) {
	for len(sh.cells) < row {
		sh.cells = append(sh.cells, []string{})
	}

	for len(sh.cells[row-1]) < col {
		sh.cells[row-1] = append(sh.cells[row-1], "")
	}

	if v == nil {
		sh.cells[row-1][col-1] = ""
	} else {
		sh.cells[row-1][col-1] = fmt.Sprintf("%v", v)
	}
}
