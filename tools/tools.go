// Package tools implements the sheet tools: typed operations that resolve spreadsheet URLs,
// read worksheets and merge CSV files or other worksheets into a destination worksheet.
package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/sheetsync/sheetsync/spreadsheet"
	"github.com/sheetsync/sheetsync/table"
)

type Options struct {
	// DryRun computes the merge result without writing to the destination
	DryRun bool

	// LogRange is the sync log area (e.g. Log!A1:F) in the destination spreadsheet. Blank
	// disables the sync log.
	LogRange string

	// LogRetention is the number of days sync log rows are kept. 0 disables pruning.
	LogRetention uint
}

type Tools struct {
	google  *sheets.Service
	options Options
	now     func() time.Time
}

func NewTools(google *sheets.Service, options Options) *Tools {
	return &Tools{
		google:  google,
		options: options,
		now:     time.Now,
	}
}

// Open resolves a spreadsheet URL to a worksheet, falling back to the first worksheet when
// the URL does not include a gid.
func (t *Tools) Open(ctx context.Context, url string) (*spreadsheet.Spreadsheet, *spreadsheet.Worksheet, error) {
	s, w, err := spreadsheet.Open(ctx, t.google, url)
	if err != nil {
		return nil, nil, err
	}

	if w == nil {
		if w, err = s.First(); err != nil {
			return nil, nil, err
		}
	}

	return s, w, nil
}

// LoadSheet reads the worksheet as a typed table.
func (t *Tools) LoadSheet(ctx context.Context, url string) (*table.Table, error) {
	_, w, err := t.Open(ctx, url)
	if err != nil {
		return nil, err
	}

	return table.Read(ctx, w)
}

// ColumnNames returns the worksheet header row as displayed, without normalisation.
func (t *Tools) ColumnNames(ctx context.Context, url string) ([]string, error) {
	_, w, err := t.Open(ctx, url)
	if err != nil {
		return nil, err
	}

	return w.Header(ctx)
}

// SheetURL returns the URL of the named worksheet in the spreadsheet. Any gid in 'url' is
// ignored.
func (t *Tools) SheetURL(ctx context.Context, url string, name string) (string, error) {
	s, _, err := spreadsheet.Open(ctx, t.google, strip(url))
	if err != nil {
		return "", err
	}

	w, err := s.Worksheet(name)
	if err != nil {
		return "", err
	}

	return w.URL(), nil
}

// SheetNames returns the worksheet titles in tab order.
func (t *Tools) SheetNames(ctx context.Context, url string) ([]string, error) {
	s, _, err := spreadsheet.Open(ctx, t.google, strip(url))
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, w := range s.Worksheets() {
		names = append(names, w.Title())
	}

	return names, nil
}

// UploadCSV merges a local CSV (or TSV) file into the worksheet identified by 'url'.
func (t *Tools) UploadCSV(ctx context.Context, file string, url string) (*table.Result, error) {
	src, err := table.LoadCSV(file)
	if err != nil {
		return nil, err
	}

	s, w, err := t.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", table.ErrDestinationUnavailable, err)
	}

	source := file
	if abs, err := filepath.Abs(file); err == nil {
		source = abs
	}

	return t.merge(ctx, src, source, s, w)
}

// CopySheet merges the contents of the 'from' worksheet into the 'to' worksheet.
func (t *Tools) CopySheet(ctx context.Context, from string, to string) (*table.Result, error) {
	_, source, err := t.Open(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("error opening source sheet (%w)", err)
	}

	src, err := table.Read(ctx, source)
	if err != nil {
		return nil, err
	}

	s, w, err := t.Open(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening destination sheet (%w)", table.ErrDestinationUnavailable, err)
	}

	return t.merge(ctx, src, source.URL(), s, w)
}

func (t *Tools) merge(ctx context.Context, src *table.Table, source string, s *spreadsheet.Spreadsheet, w *spreadsheet.Worksheet) (*table.Result, error) {
	if t.options.DryRun {
		snapshot, err := w.Values(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w (%w)", table.ErrDestinationUnavailable, err)
		}

		result := table.Plan(src, snapshot)

		return &result, nil
	}

	result, err := table.Merge(ctx, src, w)
	if err != nil {
		return nil, err
	}

	if area := strings.TrimSpace(t.options.LogRange); area != "" {
		entry := spreadsheet.LogEntry{
			Timestamp:   t.now(),
			Source:      source,
			Destination: w.URL(),
			Result:      *result,
		}

		if err := s.Log(ctx, area, entry); err != nil {
			return result, err
		}

		if t.options.LogRetention > 0 {
			if _, err := s.Prune(ctx, area, t.options.LogRetention, t.now()); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// Summary formats a merge result for display.
func Summary(result *table.Result) string {
	skipped := "none"
	if len(result.Skipped) > 0 {
		skipped = strings.Join(result.Skipped, ", ")
	}

	var b strings.Builder

	fmt.Fprintln(&b, "Sheet updated.")
	fmt.Fprintf(&b, "- Row change: %v\n", result.RowDiff)
	fmt.Fprintf(&b, "- Updated columns: %v\n", strings.Join(result.Updated, ", "))
	fmt.Fprintf(&b, "- Skipped columns: %v", skipped)

	return b.String()
}

// strip removes the fragment (and with it any gid) from a spreadsheet URL.
func strip(url string) string {
	if ix := strings.Index(url, "#"); ix >= 0 {
		return url[:ix]
	}

	return url
}
