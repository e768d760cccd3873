package table

import (
	"strings"
)

// Markdown renders a table as a pipe delimited Markdown table. Null values are rendered as
// empty cells.
func Markdown(t *Table) string {
	if len(t.Columns) == 0 {
		return ""
	}

	var b strings.Builder

	header := make([]string, len(t.Columns))
	separator := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = escape(c.Name)
		separator[i] = "---"
	}

	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Join(separator, "|") + "|")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = escape(v.String())
		}

		b.WriteString("\n| " + strings.Join(cells, " | ") + " |")
	}

	return b.String()
}

var escaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escape(v string) string {
	return escaper.Replace(v)
}
