package validation

import (
	"fmt"
	"slices"

	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/schema"
)

// CheckColumns verifies that a loaded table's column set exactly matches the
// registry: no extras, no omissions. It must run before normalization, which
// assumes the exact schema shape.
func CheckColumns(table schema.Table, columns []string) error {
	valid := schema.RequiredColumns(table)
	for _, column := range columns {
		if !slices.Contains(valid, column) {
			return apperrors.NewSchema(
				fmt.Sprintf("invalid column %q in table %q, valid columns are %v",
					column, table, valid), nil)
		}
	}
	for _, column := range valid {
		if !slices.Contains(columns, column) {
			return apperrors.NewSchema(
				fmt.Sprintf("missing column %q in table %q, valid columns are %v",
					column, table, valid), nil)
		}
	}
	return nil
}
