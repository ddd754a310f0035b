package validation

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"ceabcli/internal/schema"
	"ceabcli/pkg/contracts/domain"
)

// AuditNulls scans a raw table for blank cells in required, non-nullable
// columns and records one warning per finding. Rows are identified by their
// primary-key value. Must run after CheckColumns, which guarantees every
// registry column is present. Processing continues; rows are never dropped.
func AuditNulls(table schema.Table, columns []string, rows [][]string, source string, diags *Diagnostics) {
	nullable := schema.NullableColumns(table)
	pkIdx := slices.Index(columns, schema.PrimaryKey(table))

	for colIdx, column := range columns {
		if slices.Contains(nullable, column) {
			continue
		}
		for _, row := range rows {
			if colIdx < len(row) && strings.TrimSpace(row[colIdx]) != "" {
				continue
			}
			rowID := ""
			if pkIdx >= 0 && pkIdx < len(row) {
				rowID = row[pkIdx]
			}
			diags.NullValue(string(table), column, rowID, source)
		}
	}
}

// AuditRange records a warning for every data point whose normalized value is
// not an integer in [1,4]. Offending rows are kept, not corrected.
func AuditRange(points []domain.DataPoint, source string, diags *Diagnostics) {
	for _, p := range points {
		if p.Value >= 1 && p.Value <= 4 && p.Value == math.Trunc(p.Value) {
			continue
		}
		diags.OutOfRange(strconv.Itoa(p.DataID), p.MeasurementID, p.Value, source)
	}
}
