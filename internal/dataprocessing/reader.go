package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/schema"
)

// rawTable is one sheet read verbatim: the header row plus a string cell
// matrix. Rows are padded to the header width so column indexes are always
// addressable.
type rawTable struct {
	table   schema.Table
	columns []string
	rows    [][]string
}

// readTable reads an entity sheet into a rawTable. A missing sheet is a
// source-format error naming the sheet and workbook.
func readTable(f *excelize.File, table schema.Table, path string) (rawTable, error) {
	rows, err := readSheet(f, schema.SheetName(table), path)
	if err != nil {
		return rawTable{}, err
	}
	if len(rows) == 0 {
		return rawTable{table: table}, nil
	}
	columns := trimTrailingBlanks(rows[0])
	return rawTable{
		table:   table,
		columns: columns,
		rows:    padRows(rows[1:], len(columns)),
	}, nil
}

// readSheet returns every row of a sheet as formatted strings.
func readSheet(f *excelize.File, sheet, path string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("the sheet %q was not found in the Excel file %s", sheet, path), err)
	}
	return rows, nil
}

// trimTrailingBlanks drops empty trailing header cells left behind by
// formatting on otherwise unused columns.
func trimTrailingBlanks(header []string) []string {
	end := len(header)
	for end > 0 && strings.TrimSpace(header[end-1]) == "" {
		end--
	}
	columns := make([]string, end)
	for i := 0; i < end; i++ {
		columns[i] = strings.TrimSpace(header[i])
	}
	return columns
}

// padRows right-pads every row with empty cells up to width. Excelize trims
// trailing empty cells per row, so short rows are expected.
func padRows(rows [][]string, width int) [][]string {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			padded[i] = row
			continue
		}
		p := make([]string, width)
		copy(p, row)
		padded[i] = p
	}
	return padded
}

// cell returns the trimmed value at a column index, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseOptFloat parses an optional numeric cell; a blank cell is nil.
func parseOptFloat(table schema.Table, column, raw string, rowNum int) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("non-numeric value %q in column %q of table %q (row %d)",
				raw, column, table, rowNum), err)
	}
	return &v, nil
}

// parseOptInt parses an optional integer cell; a blank cell is zero. The null
// audit reports blanks separately, so decoding stays lenient about them.
func parseOptInt(table schema.Table, column, raw string, rowNum int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, apperrors.NewSourceFormat(
			fmt.Sprintf("non-integer value %q in column %q of table %q (row %d)",
				raw, column, table, rowNum), err)
	}
	return v, nil
}
