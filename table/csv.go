package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadCSV reads a CSV file (or a TSV file if the file extension is .tsv) into a typed table.
func LoadCSV(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}

			return nil, fmt.Errorf("%w (%v)", ErrFileNotFound, path)
		}

		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}

	return ReadCSV(f, comma)
}

// ReadCSV parses delimited text into a typed table. A byte order mark at the start of the
// input selects the matching Unicode decoding, otherwise the input is treated as UTF-8.
// The first record is the header. Fully blank records are ignored.
func ReadCSV(f io.Reader, comma rune) (*Table, error) {
	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.Comma = comma
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 || isBlankRow(records[0]) {
		return nil, fmt.Errorf("%w (missing header)", ErrEmptySheet)
	}

	header := Names(records[0])
	rows := [][]string{}
	for _, record := range records[1:] {
		if !isBlankRow(record) {
			rows = append(rows, record)
		}
	}

	return makeTable(header, rows), nil
}

// WriteCSV writes a table as delimited text, header first.
func WriteCSV(f io.Writer, t *Table, comma rune) error {
	w := csv.NewWriter(f)
	w.Comma = comma

	if err := w.Write(t.Header()); err != nil {
		return err
	}

	for i := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, v := range t.Rows[i] {
			record[j] = v.Cell()
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
