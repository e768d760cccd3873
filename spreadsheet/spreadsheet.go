// Package spreadsheet adapts Google Sheets worksheets to the table package.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

const URL = "https://docs.google.com/spreadsheets/d/"

var ErrSheetNotFound = errors.New("sheet not found")

var (
	urlRegex = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/([a-zA-Z0-9_-]+)(?:[/?#].*)?$`)
	idRegex  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	gidRegex = regexp.MustCompile(`[?#&]gid=([0-9]+)`)
)

type Spreadsheet struct {
	google      *sheets.Service
	spreadsheet *sheets.Spreadsheet
}

// ParseURL extracts the spreadsheet ID and (optional) worksheet gid from a spreadsheet URL
// e.g. https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0.
// A bare spreadsheet ID is also accepted.
func ParseURL(ref string) (string, *int64, error) {
	ref = strings.TrimSpace(ref)

	if idRegex.MatchString(ref) {
		return ref, nil, nil
	}

	match := urlRegex.FindStringSubmatch(ref)
	if len(match) < 2 {
		return "", nil, fmt.Errorf("invalid spreadsheet URL '%v' - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", ref)
	}

	id := match[1]

	if match := gidRegex.FindStringSubmatch(ref); len(match) > 1 {
		gid, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid sheet ID '%v' (%w)", match[1], err)
		}

		return id, &gid, nil
	}

	return id, nil, nil
}

// Open resolves a spreadsheet URL. The returned worksheet is the sheet identified by the
// gid in the URL, or nil if the URL does not identify a sheet.
func Open(ctx context.Context, google *sheets.Service, ref string) (*Spreadsheet, *Worksheet, error) {
	id, gid, err := ParseURL(ref)
	if err != nil {
		return nil, nil, err
	}

	spreadsheet, err := Get(ctx, google, id)
	if err != nil {
		return nil, nil, err
	}

	if gid == nil {
		return spreadsheet, nil, nil
	}

	worksheet, err := spreadsheet.WorksheetByID(*gid)
	if err != nil {
		return nil, nil, err
	}

	return spreadsheet, worksheet, nil
}

func Get(ctx context.Context, google *sheets.Service, id string) (*Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return &Spreadsheet{
		google:      google,
		spreadsheet: spreadsheet,
	}, nil
}

func (s *Spreadsheet) ID() string {
	return s.spreadsheet.SpreadsheetId
}

func (s *Spreadsheet) Title() string {
	if s.spreadsheet.Properties != nil {
		return s.spreadsheet.Properties.Title
	}

	return ""
}

func (s *Spreadsheet) URL() string {
	return URL + s.spreadsheet.SpreadsheetId
}

// Worksheets returns the worksheets in tab order.
func (s *Spreadsheet) Worksheets() []*Worksheet {
	list := []*Worksheet{}
	for _, sheet := range s.spreadsheet.Sheets {
		if sheet.Properties != nil {
			list = append(list, s.worksheet(sheet))
		}
	}

	return list
}

// First returns the first worksheet, for references that do not name a sheet.
func (s *Spreadsheet) First() (*Worksheet, error) {
	if list := s.Worksheets(); len(list) > 0 {
		return list[0], nil
	}

	return nil, fmt.Errorf("%w (spreadsheet %v has no worksheets)", ErrSheetNotFound, s.ID())
}

// Worksheet finds a worksheet by title. An exact match is preferred, failing which the
// titles are compared ignoring case and surrounding whitespace.
func (s *Spreadsheet) Worksheet(title string) (*Worksheet, error) {
	for _, sheet := range s.spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return s.worksheet(sheet), nil
		}
	}

	for _, sheet := range s.spreadsheet.Sheets {
		if sheet.Properties != nil && normalise(sheet.Properties.Title) == normalise(title) {
			return s.worksheet(sheet), nil
		}
	}

	return nil, fmt.Errorf("%w (no worksheet '%v')", ErrSheetNotFound, title)
}

func (s *Spreadsheet) WorksheetByID(gid int64) (*Worksheet, error) {
	for _, sheet := range s.spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.SheetId == gid {
			return s.worksheet(sheet), nil
		}
	}

	return nil, fmt.Errorf("%w (no worksheet with gid %v)", ErrSheetNotFound, gid)
}

func (s *Spreadsheet) worksheet(sheet *sheets.Sheet) *Worksheet {
	return &Worksheet{
		google:      s.google,
		spreadsheet: s.spreadsheet.SpreadsheetId,
		properties:  sheet.Properties,
	}
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
