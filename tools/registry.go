package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sheetsync/sheetsync/table"
)

// Tool describes a remote-callable tool. Invoke never fails: errors are returned to the
// caller as a descriptive message in place of the result.
type Tool struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Args        []string `json:"args"`

	invoke func(ctx context.Context, t *Tools, args map[string]string) any
}

var ErrUnknownTool = errors.New("unknown tool")

var registry = []Tool{
	{
		Name:        "load_sheet",
		Description: "Retrieves the data in a Google Spreadsheet worksheet and returns it as a Markdown table",
		Args:        []string{"spreadsheet_url"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.LoadSheet(ctx, args["spreadsheet_url"]); err != nil {
				return fmt.Sprintf("Error loading sheet: %v", err)
			} else {
				return table.Markdown(v)
			}
		},
	},
	{
		Name:        "get_column_names",
		Description: "Returns the column names (header row) of a Google Spreadsheet worksheet",
		Args:        []string{"spreadsheet_url"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.ColumnNames(ctx, args["spreadsheet_url"]); err != nil {
				return []string{fmt.Sprintf("Error getting column names: %v", err)}
			} else {
				return v
			}
		},
	},
	{
		Name:        "detect_sheet_url",
		Description: "Returns the URL of the named worksheet in a Google Spreadsheet",
		Args:        []string{"spreadsheet_url", "sheet_name"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.SheetURL(ctx, args["spreadsheet_url"], args["sheet_name"]); err != nil {
				return fmt.Sprintf("Error detecting sheet URL: %v", err)
			} else {
				return v
			}
		},
	},
	{
		Name:        "get_sheet_names",
		Description: "Returns the names of the worksheets in a Google Spreadsheet",
		Args:        []string{"spreadsheet_url"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.SheetNames(ctx, args["spreadsheet_url"]); err != nil {
				return []string{fmt.Sprintf("Error getting sheet names: %v", err)}
			} else {
				return v
			}
		},
	},
	{
		Name:        "upload_csv_to_spreadsheet",
		Description: "Uploads a local CSV file to a Google Spreadsheet worksheet, replacing the matching columns",
		Args:        []string{"file_name", "spreadsheet_url"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.UploadCSV(ctx, args["file_name"], args["spreadsheet_url"]); err != nil {
				return fmt.Sprintf("Error uploading CSV: %v", err)
			} else {
				return Summary(v)
			}
		},
	},
	{
		Name:        "upload_spreadsheet_to_spreadsheet",
		Description: "Copies the contents of a Google Spreadsheet worksheet to another worksheet, replacing the matching columns",
		Args:        []string{"from_spreadsheet_url", "to_spreadsheet_url"},
		invoke: func(ctx context.Context, t *Tools, args map[string]string) any {
			if v, err := t.CopySheet(ctx, args["from_spreadsheet_url"], args["to_spreadsheet_url"]); err != nil {
				return fmt.Sprintf("Error uploading spreadsheet: %v", err)
			} else {
				return Summary(v)
			}
		},
	},
}

// List returns the available tools.
func List() []Tool {
	return append([]Tool{}, registry...)
}

// Call invokes a tool by name. The returned error is only for requests that cannot be
// dispatched (unknown tool or missing argument), tool failures are returned as the result.
func (t *Tools) Call(ctx context.Context, name string, args map[string]string) (any, error) {
	for _, tool := range registry {
		if tool.Name == name {
			for _, arg := range tool.Args {
				if _, ok := args[arg]; !ok {
					return nil, fmt.Errorf("%v: missing argument '%v'", name, arg)
				}
			}

			return tool.invoke(ctx, t, args), nil
		}
	}

	return nil, fmt.Errorf("%w '%v'", ErrUnknownTool, strings.TrimSpace(name))
}
