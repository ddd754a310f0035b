// Package dataset holds one loaded or combined collection of the four CEAB
// tables. A Dataset is fully constructed in one pass by the loader and is
// immutable afterwards except through Combine, which builds a new instance.
package dataset

import (
	"strconv"

	"ceabcli/pkg/contracts/domain"
)

// Dataset is one collection of the four CEAB tables.
type Dataset struct {
	Instructors  []domain.Instructor
	Courses      []domain.Course
	Measurements []domain.Measurement
	DataPoints   []domain.DataPoint
}

// New returns the all-empty-tables dataset, the identity element for Combine.
func New() *Dataset {
	return &Dataset{}
}

// Combine concatenates a's tables with b's and deduplicates each by its
// primary key, keeping the first occurrence: on a key collision a's row wins.
// Surviving rows keep their original relative order, a's rows first. Neither
// input is modified.
func Combine(a, b *Dataset) *Dataset {
	return &Dataset{
		Instructors: dedupByKey(a.Instructors, b.Instructors,
			func(r domain.Instructor) string { return r.InstructorID }),
		Courses: dedupByKey(a.Courses, b.Courses,
			func(r domain.Course) string { return r.CourseID }),
		Measurements: dedupByKey(a.Measurements, b.Measurements,
			func(r domain.Measurement) string { return r.MeasurementID }),
		DataPoints: dedupByKey(a.DataPoints, b.DataPoints,
			func(r domain.DataPoint) string { return strconv.Itoa(r.DataID) }),
	}
}

// Merge is the additive convenience form of Combine.
func (d *Dataset) Merge(other *Dataset) *Dataset {
	return Combine(d, other)
}

func dedupByKey[T any](a, b []T, key func(T) string) []T {
	out := make([]T, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, rows := range [2][]T{a, b} {
		for _, row := range rows {
			k := key(row)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}
