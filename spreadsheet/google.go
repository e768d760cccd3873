package spreadsheet

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

func clear(google *sheets.Service, spreadsheet string, ranges []string, ctx context.Context) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := google.Spreadsheets.Values.BatchClear(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func appendRows(google *sheets.Service, spreadsheet string, sheetId int64, count int64, ctx context.Context) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				AppendDimension: &sheets.AppendDimensionRequest{
					SheetId:   sheetId,
					Dimension: "ROWS",
					Length:    count,
				},
			},
		},
	}

	if _, err := google.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func deleteRows(google *sheets.Service, spreadsheet string, sheetId int64, ranges [][2]int64, ctx context.Context) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{},
	}

	for _, r := range ranges {
		rq.Requests = append(rq.Requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetId,
					Dimension:  "ROWS",
					StartIndex: r[0],
					EndIndex:   r[1],
				},
			},
		})
	}

	if _, err := google.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}
