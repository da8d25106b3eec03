// Package table reads the delimited text files (and spreadsheet workbooks)
// that feed a scatter plot.
//
// Two kinds of input go through this package:
//
//   - measurement files: a key column and a numeric column, loaded with [Load]
//   - specification files: arbitrary named columns, read raw with [ReadRows]
//     and interpreted by package plotspec
//
// # Delimiters
//
// Text files are tab or comma separated. The delimiter is chosen once from the
// header line by [DetectDelimiter]: if the header does not split into more
// than one field on tab, the file is treated as comma separated.
//
// # Workbooks
//
// Files ending in .xlsx or .xlsm are read from their first worksheet. Cells are
// already separated, so no delimiter detection takes place.
package table
