// Package validation holds the non-structural checks of the loading
// pipeline: column conformance against the schema registry, the null audit
// on required fields, and the post-normalization range audit. Non-fatal
// findings are collected in a Diagnostics value instead of being raised,
// so diagnostic capture is deterministic and testable.
package validation

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// WarningKind classifies a non-fatal finding.
type WarningKind string

const (
	// WarnNullValue marks a blank cell in a required, non-nullable column.
	WarnNullValue WarningKind = "null_value"
	// WarnOutOfRange marks a data point whose normalized value is not an
	// integer in [1,4].
	WarnOutOfRange WarningKind = "out_of_range"
)

// Warning is one non-fatal finding. The row is identified by the value of
// its table's primary key; Source names the workbook the row came from.
type Warning struct {
	Kind    WarningKind
	Table   string
	Column  string
	RowID   string
	Value   float64
	Source  string
	Message string
}

// Diagnostics collects warnings across one or more loads. It is safe for
// concurrent use so parallel batch loads can share a single collector.
type Diagnostics struct {
	mu       sync.Mutex
	logger   *slog.Logger
	warnings []Warning
}

// NewDiagnostics creates a collector that also logs each warning.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{logger: logger}
}

// Add records a warning and logs it.
func (d *Diagnostics) Add(w Warning) {
	d.mu.Lock()
	d.warnings = append(d.warnings, w)
	d.mu.Unlock()

	d.logger.Warn(w.Message,
		slog.String("kind", string(w.Kind)),
		slog.String("table", w.Table),
		slog.String("column", w.Column),
		slog.String("row_id", w.RowID),
		slog.String("source", w.Source))
}

// NullValue records a blank required cell.
func (d *Diagnostics) NullValue(table, column, rowID, source string) {
	d.Add(Warning{
		Kind:   WarnNullValue,
		Table:  table,
		Column: column,
		RowID:  rowID,
		Source: source,
		Message: fmt.Sprintf("null found in column %q of table %q (row %s, file %s)",
			column, table, rowID, source),
	})
}

// OutOfRange records a data point whose final value violates the 1-4 scale.
func (d *Diagnostics) OutOfRange(dataID, measurementID string, value float64, source string) {
	d.Add(Warning{
		Kind:   WarnOutOfRange,
		Table:  "data",
		Column: "value",
		RowID:  dataID,
		Value:  value,
		Source: source,
		Message: fmt.Sprintf("value %v out of range in dataID %s for measurementID %s (file %s)",
			value, dataID, measurementID, source),
	})
}

// Warnings returns a copy of the collected warnings in emission order.
func (d *Diagnostics) Warnings() []Warning {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.warnings)
}

// Len returns the number of collected warnings.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.warnings)
}
