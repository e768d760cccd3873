package spreadsheet

import (
	"fmt"
	"strings"
)

// column converts a zero-based column index to A1 notation (0 -> A, 26 -> AA).
func column(ix int) string {
	name := ""
	for n := ix + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}

	return name
}

func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// cells returns the A1 range for rows 'top'..'bottom' (1-based, inclusive) of a single column.
func cells(title string, col int, top, bottom int) string {
	c := column(col)

	return fmt.Sprintf("%s!%s%d:%s%d", quote(title), c, top, c, bottom)
}

// rows returns the A1 range for complete rows 'top'..'bottom' (1-based, inclusive).
func rows(title string, top, bottom int) string {
	return fmt.Sprintf("%s!%d:%d", quote(title), top, bottom)
}
