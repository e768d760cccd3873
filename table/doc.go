/*
Package table implements the typed tabular snapshot of a worksheet and the engine that merges
a table into an existing worksheet.

A merge matches source columns to destination header cells by exact name, overwrites the
matched destination columns, leaves every other destination column alone and makes the number
of destination data rows equal to the number of source rows. The result reports the change in
row count, the columns that were written and the source columns that were skipped.
*/
package table
