package table

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	expected := Table{
		Columns: []Column{
			{Name: "id", Kind: Integer},
			{Name: "name", Kind: String},
			{Name: "score", Kind: Float},
		},
		Rows: [][]Value{
			{{Kind: Integer, Int: 1}, {Kind: String, Text: "Alice"}, {Kind: Float, Float: 9.5}},
			{{Kind: Integer, Int: 2}, {Kind: String, Text: "Bob, Jr"}, {Kind: Null}},
		},
	}

	csv := "id,name,score\n1,Alice,9.5\n,,\n2,\"Bob, Jr\"\n"

	table, err := ReadCSV(strings.NewReader(csv), ',')
	if err != nil {
		t.Fatalf("Unexpected error returned from ReadCSV (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %+v\n   got:      %+v\n", expected, *table)
	}
}

func TestReadCSVWithByteOrderMark(t *testing.T) {
	csv := "\ufeffid,name\n1,Alice\n"

	table, err := ReadCSV(strings.NewReader(csv), ',')
	if err != nil {
		t.Fatalf("Unexpected error returned from ReadCSV (%v)", err)
	}

	if header := table.Header(); !reflect.DeepEqual(header, []string{"id", "name"}) {
		t.Errorf("Incorrect header - expected:%q, got:%q", []string{"id", "name"}, header)
	}
}

func TestReadCSVWithUTF16(t *testing.T) {
	// "id\n7\n" as UTF-16LE with a byte order mark
	utf16 := string([]byte{0xff, 0xfe, 'i', 0, 'd', 0, '\n', 0, '7', 0, '\n', 0})

	table, err := ReadCSV(strings.NewReader(utf16), ',')
	if err != nil {
		t.Fatalf("Unexpected error returned from ReadCSV (%v)", err)
	}

	if v, ok := table.Get(0, "id"); !ok || v.Kind != Integer || v.Int != 7 {
		t.Errorf("Incorrect value - expected:%v, got:%+v", 7, v)
	}
}

func TestReadCSVWithEmptyFile(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), ','); !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("Expected ErrEmptySheet for empty file, got %v", err)
	}
}

func TestLoadCSVWithTSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte("Card Number\tFrom\n6001001\t2020-01-01\n"), 0644); err != nil {
		t.Fatalf("Error creating test file (%v)", err)
	}

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("Unexpected error returned from LoadCSV (%v)", err)
	}

	if header := table.Header(); !reflect.DeepEqual(header, []string{"Card Number", "From"}) {
		t.Errorf("Incorrect header - expected:%q, got:%q", []string{"Card Number", "From"}, header)
	}
}

func TestLoadCSVWithMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	if _, err := LoadCSV(path); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	expected := `Card Number	From	To	Gate
6001001	2020-01-01	2020-12-31	Y
6001002	2020-02-03	2020-11-30	
`

	table, _ := MakeTable([][]string{
		{"Card Number", "From", "To", "Gate"},
		{"6001001", "2020-01-01", "2020-12-31", "Y"},
		{"6001002", "2020-02-03", "2020-11-30"},
	})

	var f strings.Builder
	if err := WriteCSV(&f, table, '\t'); err != nil {
		t.Fatalf("Unexpected error returned from WriteCSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}
