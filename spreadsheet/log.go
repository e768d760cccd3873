package spreadsheet

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/sheetsync/sheetsync/table"
)

// LogEntry is a single row in a sync log worksheet.
type LogEntry struct {
	Timestamp   time.Time
	Source      string
	Destination string
	Result      table.Result
}

const timestamp = "2006-01-02 15:04:05"

var areaRegex = regexp.MustCompile(`^(.+?)!([a-zA-Z]+)([0-9]+)(?::([a-zA-Z]+)([0-9]+)?)?$`)

// ValidateArea checks that a log range looks like 'Log!A1:F'.
func ValidateArea(area string) error {
	if match := areaRegex.FindStringSubmatch(strings.TrimSpace(area)); len(match) < 4 {
		return fmt.Errorf("invalid range '%s' - expected something like 'Log!A1:F'", area)
	}

	return nil
}

// Log appends an entry to the sync log in 'area' (e.g. Log!A1:F). If the first row of the
// area has column headers the entry fields are written to the matching columns, otherwise
// the default column order (timestamp, source, destination, rows, updated, skipped) is used.
func (s *Spreadsheet) Log(ctx context.Context, area string, entry LogEntry) error {
	response, err := s.google.Spreadsheets.Values.Get(s.ID(), area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log sheet (%w)", err)
	}

	index := logColumns(response.Values)

	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	row := make([]interface{}, columns)
	for i := range row {
		row[i] = ""
	}

	skipped := "-"
	if len(entry.Result.Skipped) > 0 {
		skipped = strings.Join(entry.Result.Skipped, ", ")
	}

	fields := map[string]interface{}{
		"timestamp":   entry.Timestamp.Format(timestamp),
		"source":      entry.Source,
		"destination": entry.Destination,
		"rows":        entry.Result.RowDiff,
		"updated":     strings.Join(entry.Result.Updated, ", "),
		"skipped":     skipped,
	}

	for k, ix := range index {
		row[ix] = fields[k]
	}

	rows := sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	if _, err := s.google.Spreadsheets.Values.Append(s.ID(), area, &rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing sync log (%w)", err)
	}

	return nil
}

// Prune deletes the sync log rows in 'area' with a timestamp before the start of the day
// 'retention' days before 'now'. Returns the number of rows deleted.
func (s *Spreadsheet) Prune(ctx context.Context, area string, retention uint, now time.Time) (int, error) {
	match := areaRegex.FindStringSubmatch(strings.TrimSpace(area))
	if len(match) < 4 {
		return 0, fmt.Errorf("invalid range '%s' - expected something like 'Log!A1:F'", area)
	}

	worksheet, err := s.Worksheet(match[1])
	if err != nil {
		return 0, err
	}

	top, _ := strconv.Atoi(match[3])

	response, err := s.google.Spreadsheets.Values.Get(s.ID(), area).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve data from log sheet (%w)", err)
	}

	before := now.In(time.Local).AddDate(0, 0, -int(retention))
	cutoff := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, before.Location())

	ix, ok := logColumns(response.Values)["timestamp"]
	if !ok {
		return 0, nil
	}

	list := []int64{}
	for row, record := range response.Values {
		if len(record) == 0 {
			continue
		}

		if ix >= len(record) {
			continue
		}

		t, err := time.ParseInLocation(timestamp, fmt.Sprintf("%v", record[ix]), time.Local)
		if err == nil && t.Before(cutoff) {
			list = append(list, int64(top-1+row))
		}
	}

	if len(list) == 0 {
		return 0, nil
	}

	// ... coalesce into contiguous ranges, deleted bottom up so that indices stay valid
	ranges := [][2]int64{}
	start, last := list[0], list[0]
	for _, row := range list[1:] {
		if row != last+1 {
			ranges = append(ranges, [2]int64{start, last + 1})
			start = row
		}

		last = row
	}

	ranges = append(ranges, [2]int64{start, last + 1})

	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] > ranges[j][0] })

	if err := deleteRows(s.google, s.ID(), worksheet.ID(), ranges, ctx); err != nil {
		return 0, fmt.Errorf("error pruning sync log (%w)", err)
	}

	return len(list), nil
}

// logColumns maps the sync log fields to columns using the headers in the first row of the
// log area, matched case-insensitively and ignoring spaces. Falls back to the default column
// order if the first row has no recognisable headers.
func logColumns(values [][]interface{}) map[string]int {
	index := map[string]int{
		"timestamp":   0,
		"source":      1,
		"destination": 2,
		"rows":        3,
		"updated":     4,
		"skipped":     5,
	}

	if len(values) > 0 {
		xref := map[string]int{}

		for i, v := range values[0] {
			k := strings.ToLower(strings.ReplaceAll(fmt.Sprintf("%v", v), " ", ""))
			if _, ok := index[k]; ok {
				xref[k] = i
			}
		}

		if len(xref) > 0 {
			return xref
		}
	}

	return index
}
