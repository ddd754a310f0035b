package validation

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/schema"
	"ceabcli/pkg/contracts/domain"
)

func TestCheckColumns(t *testing.T) {
	tests := []struct {
		name    string
		table   schema.Table
		columns []string
		wantErr string
	}{
		{
			name:    "exact set passes",
			table:   schema.TableInstructor,
			columns: []string{"instructorID", "firstName", "lastName"},
		},
		{
			name:    "order does not matter",
			table:   schema.TableInstructor,
			columns: []string{"lastName", "instructorID", "firstName"},
		},
		{
			name:    "extra column",
			table:   schema.TableInstructor,
			columns: []string{"instructorID", "firstName", "lastName", "email"},
			wantErr: `invalid column "email"`,
		},
		{
			name:    "missing column",
			table:   schema.TableInstructor,
			columns: []string{"instructorID", "firstName"},
			wantErr: `missing column "lastName"`,
		},
		{
			name:    "empty table reports first missing column",
			table:   schema.TableData,
			columns: nil,
			wantErr: `missing column "dataID"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckColumns(tt.table, tt.columns)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsSchema(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), string(tt.table))
		})
	}
}

func TestAuditNulls(t *testing.T) {
	diags := NewDiagnostics(slog.Default())
	columns := schema.RequiredColumns(schema.TableMeasurement)
	rows := [][]string{
		// Healthy row: nullable config columns blank, everything else set.
		{"M1", "C1", "KB", "KB-1", "Exam", "Final", "2024-04-20", "CEAB (1-4)", "", "", "", "", ""},
		// Blank indicator and date.
		{"M2", "C1", "PA", "", "Quiz", "Quiz 3", "", "CEAB (1-4)", "", "", "", "", ""},
	}

	AuditNulls(schema.TableMeasurement, columns, rows, "ceab.xlsx", diags)

	warnings := diags.Warnings()
	require.Len(t, warnings, 2, "nullable scale configuration columns are skipped")
	// The audit scans column-major, so findings are ordered by column.
	assert.Equal(t, "indicator", warnings[0].Column)
	assert.Equal(t, "M2", warnings[0].RowID)
	assert.Equal(t, "date", warnings[1].Column)
	assert.Equal(t, "ceab.xlsx", warnings[1].Source)
	for _, w := range warnings {
		assert.Equal(t, WarnNullValue, w.Kind)
		assert.Equal(t, "measurement", w.Table)
	}
}

func TestAuditNullsShortRows(t *testing.T) {
	diags := NewDiagnostics(slog.Default())
	columns := schema.RequiredColumns(schema.TableInstructor)

	AuditNulls(schema.TableInstructor, columns, [][]string{{"I1"}}, "ceab.xlsx", diags)

	warnings := diags.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "firstName", warnings[0].Column)
	assert.Equal(t, "lastName", warnings[1].Column)
	assert.Equal(t, "I1", warnings[0].RowID)
}

func TestAuditRange(t *testing.T) {
	diags := NewDiagnostics(slog.Default())
	points := []domain.DataPoint{
		{DataID: 0, MeasurementID: "M1", Value: 1},
		{DataID: 1, MeasurementID: "M1", Value: 4},
		{DataID: 2, MeasurementID: "M1", Value: 0.5},
		{DataID: 3, MeasurementID: "M2", Value: 5},
		{DataID: 4, MeasurementID: "M2", Value: 2.5},
	}

	AuditRange(points, "ceab.xlsx", diags)

	warnings := diags.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "2", warnings[0].RowID)
	assert.Equal(t, 0.5, warnings[0].Value)
	assert.Equal(t, "3", warnings[1].RowID)
	assert.Equal(t, "4", warnings[2].RowID, "non-integers inside [1,4] are violations too")
	for _, w := range warnings {
		assert.Equal(t, WarnOutOfRange, w.Kind)
	}
}

func TestDiagnosticsWarningsReturnsCopy(t *testing.T) {
	diags := NewDiagnostics(slog.Default())
	diags.NullValue("instructor", "firstName", "I1", "ceab.xlsx")

	warnings := diags.Warnings()
	warnings[0].Column = "mutated"

	assert.Equal(t, "firstName", diags.Warnings()[0].Column)
	assert.Equal(t, 1, diags.Len())
}
