// Package schema is the registry of the four CEAB tables: their workbook
// sheet names, required column sets, and primary keys. Loaded tables are
// validated round-trip against this registry; typed code elsewhere never
// consults it for columns it already knows statically.
package schema

import (
	"fmt"
	"slices"

	apperrors "ceabcli/internal/errors"
)

// Table identifies one of the four CEAB tables.
type Table string

const (
	TableInstructor  Table = "instructor"
	TableCourse      Table = "course"
	TableMeasurement Table = "measurement"
	TableData        Table = "data"
)

// sheetNames maps each table to its workbook sheet.
var sheetNames = map[Table]string{
	TableInstructor:  "1 - Instructor",
	TableCourse:      "2 - Course",
	TableMeasurement: "3 - Measurement",
	TableData:        "4 - Data",
}

// requiredColumns is the exact column set each loaded table must carry.
// The measurement entry includes the five scale-configuration columns; they
// are validated on input and dropped once normalization has consumed them.
var requiredColumns = map[Table][]string{
	TableInstructor: {"instructorID", "firstName", "lastName"},
	TableCourse: {"courseID", "instructorID", "prefix", "number", "suffix",
		"academicYear", "yearInProgram"},
	TableMeasurement: {"measurementID", "courseID", "attribute", "indicator",
		"deliverableType", "deliverableName", "date", "gradeScale", "maxScore",
		"minPercentScore2", "minPercentScore3", "minPercentScore4",
		"improvementTheme"},
	TableData: {"dataID", "studentID", "measurementID", "value"},
}

// nullableColumns lists the columns the null audit skips: the scale
// configuration is only meaningful for some grade scales, and the
// improvement theme is optional.
var nullableColumns = map[Table][]string{
	TableMeasurement: {"maxScore", "minPercentScore2", "minPercentScore3",
		"minPercentScore4", "improvementTheme"},
}

// persistedColumns is the column set each table carries after loading
// completes. It differs from requiredColumns only for the measurement table,
// which sheds its scale configuration.
var persistedColumns = map[Table][]string{
	TableInstructor: requiredColumns[TableInstructor],
	TableCourse:     requiredColumns[TableCourse],
	TableMeasurement: {"measurementID", "courseID", "attribute", "indicator",
		"deliverableType", "deliverableName", "date", "improvementTheme"},
	TableData: requiredColumns[TableData],
}

// Tables returns the four table identifiers in load order.
func Tables() []Table {
	return []Table{TableInstructor, TableCourse, TableMeasurement, TableData}
}

// TableByName resolves a table name to its identifier. Unknown names yield an
// invalid-argument error.
func TableByName(name string) (Table, error) {
	t := Table(name)
	if _, ok := requiredColumns[t]; !ok {
		return "", apperrors.NewInvalidArgument(
			fmt.Sprintf("unknown table %q, valid tables are %v", name, Tables()), nil)
	}
	return t, nil
}

// SheetName returns the workbook sheet holding a table.
func SheetName(t Table) string {
	return sheetNames[t]
}

// RequiredColumns returns the exact column set a freshly loaded table must
// carry. The returned slice is a copy.
func RequiredColumns(t Table) []string {
	return slices.Clone(requiredColumns[t])
}

// PersistedColumns returns the column set a table carries after loading.
// The returned slice is a copy.
func PersistedColumns(t Table) []string {
	return slices.Clone(persistedColumns[t])
}

// NullableColumns returns the columns the null audit must skip for a table.
func NullableColumns(t Table) []string {
	return slices.Clone(nullableColumns[t])
}

// PrimaryKey returns the primary-key column of a table.
func PrimaryKey(t Table) string {
	return string(t) + "ID"
}

// IsColumn reports whether name is a persisted column of t.
func IsColumn(t Table, name string) bool {
	return slices.Contains(persistedColumns[t], name)
}
