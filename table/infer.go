package table

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	integerRegex = regexp.MustCompile(`^[+-]?[0-9]+$`)
	numericRegex = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Infer chooses the kind of a column from its raw cell text: Integer if every non-empty
// value is an integer, Float if every non-empty value is a decimal number and String
// otherwise. A column with no non-empty values is a String column.
func Infer(cells []string) Kind {
	kind := Null

	for _, cell := range cells {
		if blank(cell) {
			continue
		}

		v := strings.TrimSpace(cell)

		switch kind {
		case Null, Integer:
			if isInteger(v) {
				kind = Integer
			} else if isFloat(v) {
				kind = Float
			} else {
				return String
			}

		case Float:
			if !isFloat(v) {
				return String
			}
		}
	}

	if kind == Null {
		return String
	}

	return kind
}

// Convert converts the raw text of a cell to a value of the given kind. Blank cells are
// Null in numeric columns and "" in String columns. The cell text is kept in Text for every
// kind so that it can be written back unchanged.
func Convert(cell string, kind Kind) Value {
	switch kind {
	case Integer:
		if blank(cell) {
			return Value{Kind: Null, Text: cell}
		} else if v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64); err == nil {
			return Value{Kind: Integer, Int: v, Text: cell}
		}

	case Float:
		if blank(cell) {
			return Value{Kind: Null, Text: cell}
		} else if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return Value{Kind: Float, Float: v, Text: cell}
		}
	}

	return Value{Kind: String, Text: cell}
}

func isInteger(v string) bool {
	if !integerRegex.MatchString(v) {
		return false
	}

	_, err := strconv.ParseInt(v, 10, 64)

	return err == nil
}

func isFloat(v string) bool {
	if !numericRegex.MatchString(v) {
		return false
	}

	_, err := strconv.ParseFloat(v, 64)

	return err == nil
}

func blank(cell string) bool {
	return strings.TrimSpace(cell) == ""
}
