// Copyright 2024 sheetsync. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package sheetsync synchronises tabular data (CSV files and other worksheets) into Google Sheets worksheets.

A sync replaces the destination worksheet columns that match the source columns by header name, leaves the
other destination columns as is and resizes the destination to the number of source rows. The result is
reported as the row change and the lists of updated and skipped columns.

sheetsync supports the following commands:

  - authorise, to authorise access to Google Sheets
  - get, to download a Google Sheets worksheet as a TSV or CSV file
  - load-sheet, to display a worksheet as a Markdown table
  - get-column-names, to list the column names of a worksheet
  - detect-sheet-url, to find the URL of a worksheet by name
  - get-sheet-names, to list the worksheets in a spreadsheet
  - upload-csv, to sync a CSV or TSV file to a worksheet
  - upload-sheet, to sync a worksheet to another worksheet
  - serve, to serve the sheet tools over HTTP
*/
package sheetsync
