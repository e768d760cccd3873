package sheetstest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// area is a parsed A1 range. Rows and columns are 1-based; a zero 'bottom' or 'right' is
// unbounded.
type area struct {
	title  string
	top    int
	left   int
	bottom int
	right  int
}

var refRegex = regexp.MustCompile(`^([A-Za-z]*)([0-9]*)$`)

func parseRange(s string) (*area, error) {
	title, ref, err := splitRange(s)
	if err != nil {
		return nil, err
	}

	a := area{title: title, top: 1, left: 1}
	if ref == "" {
		return &a, nil
	}

	parts := strings.SplitN(ref, ":", 2)

	col, row, err := parseRef(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range '%v' (%v)", s, err)
	}

	if col > 0 {
		a.left = col
	}

	if row > 0 {
		a.top = row
	}

	if len(parts) == 1 {
		a.right = col
		a.bottom = row
		return &a, nil
	}

	col, row, err = parseRef(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid range '%v' (%v)", s, err)
	}

	a.right = col
	a.bottom = row

	return &a, nil
}

func splitRange(s string) (string, string, error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					b.WriteByte('\'')
					i++
					continue
				}

				rest := s[i+1:]
				if rest == "" {
					return b.String(), "", nil
				} else if strings.HasPrefix(rest, "!") {
					return b.String(), rest[1:], nil
				}

				return "", "", fmt.Errorf("invalid range '%v'", s)
			}

			b.WriteByte(s[i])
		}

		return "", "", fmt.Errorf("unterminated sheet name in range '%v'", s)
	}

	if ix := strings.LastIndex(s, "!"); ix >= 0 {
		return s[:ix], s[ix+1:], nil
	}

	return s, "", nil
}

func parseRef(ref string) (int, int, error) {
	match := refRegex.FindStringSubmatch(ref)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid cell reference '%v'", ref)
	}

	col := 0
	for _, ch := range strings.ToUpper(match[1]) {
		col = col*26 + int(ch-'A') + 1
	}

	row := 0
	if match[2] != "" {
		row, _ = strconv.Atoi(match[2])
	}

	return col, row, nil
}
