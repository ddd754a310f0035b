package dataset

import (
	"fmt"
	"strconv"

	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/schema"
	"ceabcli/pkg/contracts/domain"
)

// RowIDsMatching returns the primary-key values of every row in the named
// table that satisfies all equality criteria (logical AND). Criteria map
// persisted column names to values in their canonical string form; numeric
// fields compare against strconv formatting. An unknown table or criteria
// column yields an invalid-argument error.
func (d *Dataset) RowIDsMatching(table string, criteria map[string]string) ([]string, error) {
	t, err := schema.TableByName(table)
	if err != nil {
		return nil, err
	}
	for column := range criteria {
		if !schema.IsColumn(t, column) {
			return nil, apperrors.NewInvalidArgument(
				fmt.Sprintf("unknown column %q for table %q, valid columns are %v",
					column, t, schema.PersistedColumns(t)), nil)
		}
	}

	switch t {
	case schema.TableInstructor:
		return matchRows(d.Instructors, instructorField, criteria), nil
	case schema.TableCourse:
		return matchRows(d.Courses, courseField, criteria), nil
	case schema.TableMeasurement:
		return matchRows(d.Measurements, measurementField, criteria), nil
	default:
		return matchRows(d.DataPoints, dataPointField, criteria), nil
	}
}

// matchRows collects the primary-key value of every row whose fields equal
// all criteria. The field function returns a row's column value in canonical
// string form, with the primary key under its own column name.
func matchRows[T any](rows []T, field func(T, string) string, criteria map[string]string) []string {
	ids := make([]string, 0)
	for _, row := range rows {
		matched := true
		for column, want := range criteria {
			if field(row, column) != want {
				matched = false
				break
			}
		}
		if matched {
			ids = append(ids, field(row, "__pk"))
		}
	}
	return ids
}

func instructorField(r domain.Instructor, column string) string {
	switch column {
	case "instructorID", "__pk":
		return r.InstructorID
	case "firstName":
		return r.FirstName
	case "lastName":
		return r.LastName
	}
	return ""
}

func courseField(r domain.Course, column string) string {
	switch column {
	case "courseID", "__pk":
		return r.CourseID
	case "instructorID":
		return r.InstructorID
	case "prefix":
		return r.Prefix
	case "number":
		return r.Number
	case "suffix":
		return r.Suffix
	case "academicYear":
		return strconv.Itoa(r.AcademicYear)
	case "yearInProgram":
		return strconv.Itoa(r.YearInProgram)
	}
	return ""
}

func measurementField(r domain.Measurement, column string) string {
	switch column {
	case "measurementID", "__pk":
		return r.MeasurementID
	case "courseID":
		return r.CourseID
	case "attribute":
		return r.Attribute
	case "indicator":
		return r.Indicator
	case "deliverableType":
		return r.DeliverableType
	case "deliverableName":
		return r.DeliverableName
	case "date":
		return r.Date
	case "improvementTheme":
		return r.ImprovementTheme
	}
	return ""
}

func dataPointField(r domain.DataPoint, column string) string {
	switch column {
	case "dataID", "__pk":
		return strconv.Itoa(r.DataID)
	case "studentID":
		return r.StudentID
	case "measurementID":
		return r.MeasurementID
	case "value":
		return strconv.FormatFloat(r.Value, 'g', -1, 64)
	}
	return ""
}
