package table

import (
	"fmt"
	"strconv"
)

// Kind is the type of a table column (and of the values in it).
type Kind uint8

const (
	Null Kind = iota
	Integer
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single cell value. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
}

func (v Value) IsNull() bool {
	return v.Kind == Null
}

// String formats the value for display. Values converted from a cell keep the cell text
// (e.g. "007" or "1.50") and Null values are formatted as an empty string.
func (v Value) String() string {
	switch {
	case v.Kind == Null:
		return ""
	case v.Text != "" || v.Kind == String:
		return v.Text
	case v.Kind == Integer:
		return strconv.FormatInt(v.Int, 10)
	case v.Kind == Float:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	default:
		return ""
	}
}

// Cell returns the text written back to a worksheet: the original cell text if the value
// was converted from a cell, otherwise the formatted value.
func (v Value) Cell() string {
	if v.Kind == Null {
		return v.Text
	}

	return v.String()
}

type Column struct {
	Name string
	Kind Kind
}

// Table is an immutable, typed, column oriented snapshot of tabular data. Column names are
// unique and every row holds exactly one value per column, in column order.
type Table struct {
	Columns []Column
	Rows    [][]Value
}

// Header returns the column names in column order.
func (t *Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}

	return header
}

// Index returns the position of the named column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}

	return -1
}

// Get returns the value of the named column in row 'row'.
func (t *Table) Get(row int, name string) (Value, bool) {
	ix := t.Index(name)
	if ix < 0 || row < 0 || row >= len(t.Rows) {
		return Value{}, false
	}

	return t.Rows[row][ix], true
}

// Strings returns the cell text of column 'ix', top to bottom.
func (t *Table) Strings(ix int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[ix].Cell()
	}

	return values
}
