package table

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMakeTable(t *testing.T) {
	expected := Table{
		Columns: []Column{
			{Name: "id", Kind: Integer},
			{Name: "name", Kind: String},
			{Name: "score", Kind: Float},
		},
		Rows: [][]Value{
			{{Kind: Integer, Int: 1}, {Kind: String, Text: "Alice"}, {Kind: Float, Float: 9.5}},
			{{Kind: Integer, Int: 2}, {Kind: String, Text: "Bob"}, {Kind: Null}},
			{{Kind: Integer, Int: 3}, {Kind: String, Text: ""}, {Kind: Float, Float: 7}},
		},
	}

	data := [][]string{
		{"id", "name", "score"},
		{"1", "Alice", "9.5"},
		{"2", "Bob"},
		{"3", "", "7"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %+v\n   got:      %+v\n", expected, *table)
	}
}

func TestMakeTableStopsAtBlankRow(t *testing.T) {
	data := [][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"", "  "},
		{"3", "Carol"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Rows) != 1 {
		t.Errorf("Incorrect number of rows - expected:%v, got:%v", 1, len(table.Rows))
	}
}

func TestMakeTableWithNullableIntegerColumn(t *testing.T) {
	data := [][]string{
		{"n"},
		{"1"},
		{"2"},
		{""},
	}

	// a trailing blank cell in a single column sheet is a blank row
	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if table.Columns[0].Kind != Integer {
		t.Errorf("Incorrect column kind - expected:%v, got:%v", Integer, table.Columns[0].Kind)
	}

	data = [][]string{
		{"n", "x"},
		{"1", "a"},
		{"2", "b"},
		{"", "c"},
	}

	table, err = MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	expected := []Value{{Kind: Integer, Int: 1}, {Kind: Integer, Int: 2}, {Kind: Null}}
	for i, v := range expected {
		if got, _ := table.Get(i, "n"); !reflect.DeepEqual(got, v) {
			t.Errorf("Incorrect value for row %v - expected:%+v, got:%+v", i, v, got)
		}
	}
}

func TestMakeTableWithBlankAndDuplicateHeaders(t *testing.T) {
	expected := []string{"id", "column_2", "id_3", "name", "id_4", "id_2"}

	data := [][]string{
		{"id", "", "id", "name", "id", "id_2"},
		{"1", "2", "3", "4", "5", "6"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if header := table.Header(); !reflect.DeepEqual(header, expected) {
		t.Errorf("Incorrect header\n   expected: %q\n   got:      %q\n", expected, header)
	}
}

func TestMakeTableHeaderOnly(t *testing.T) {
	table, err := MakeTable([][]string{{"id", "name"}})
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Columns) != 2 || len(table.Rows) != 0 {
		t.Errorf("Incorrect table - expected 2 columns and 0 rows, got %v columns and %v rows", len(table.Columns), len(table.Rows))
	}

	for _, c := range table.Columns {
		if c.Kind != String {
			t.Errorf("Incorrect kind for empty column %v - expected:%v, got:%v", c.Name, String, c.Kind)
		}
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	if _, err := MakeTable([][]string{}); !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("Expected ErrEmptySheet for empty sheet, got %v", err)
	}
}

func TestMakeTableWithoutHeaders(t *testing.T) {
	data := [][]string{
		{"", " "},
		{"1", "2"},
	}

	if _, err := MakeTable(data); !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("Expected ErrEmptySheet for missing headers, got %v", err)
	}
}

func TestRead(t *testing.T) {
	g := newGrid([][]string{
		{"id", "name"},
		{"1", "Alice"},
	})

	table, err := Read(context.Background(), g)
	if err != nil {
		t.Fatalf("Unexpected error returned from Read (%v)", err)
	}

	if v, ok := table.Get(0, "name"); !ok || v.Text != "Alice" {
		t.Errorf("Incorrect value - expected:%v, got:%v", "Alice", v)
	}
}

func TestReadWithUnavailableSource(t *testing.T) {
	g := newGrid(nil)
	g.unavailable = true

	if _, err := Read(context.Background(), g); err == nil {
		t.Fatalf("Expected error reading unavailable source, got %v", err)
	}
}
