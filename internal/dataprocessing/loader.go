// Package dataprocessing implements the CEAB ingestion pipeline: it reads a
// workbook's four sheets, reshapes the wide score matrix into long form,
// validates column conformance, audits required fields, normalizes all
// scores onto the 1-4 scale, and assembles the resulting Dataset.
package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"ceabcli/internal/dataset"
	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/schema"
	"ceabcli/internal/validation"
	"ceabcli/pkg/contracts/domain"
)

// Loader reads CEAB workbooks into Datasets.
type Loader struct {
	logger  *slog.Logger
	workers int
}

// LoaderConfig configures loader behavior.
type LoaderConfig struct {
	// Workers bounds how many workbooks a batch load reads concurrently.
	Workers int
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{Workers: 4}
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger, cfg LoaderConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Loader{logger: logger, workers: cfg.Workers}
}

// measurementRecord pairs a persisted measurement with the scale
// configuration that drives its normalization. The configuration is consumed
// during loading and never reaches the Dataset.
type measurementRecord struct {
	domain.Measurement
	scale domain.ScaleConfig
}

// LoadWorkbook reads one .xlsx workbook into a Dataset. Fatal findings abort
// the load; non-fatal findings (null audit, range audit) are collected in
// diags and processing continues.
func (l *Loader) LoadWorkbook(ctx context.Context, path string, diags *validation.Diagnostics) (*dataset.Dataset, error) {
	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".xlsx") {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("file %s has the invalid extension %q, loading requires an Excel workbook with the extension .xlsx",
				path, ext), nil)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	l.logger.InfoContext(ctx, "loading workbook", slog.String("path", path))

	raw := make(map[schema.Table]rawTable, 3)
	for _, table := range []schema.Table{schema.TableInstructor, schema.TableCourse, schema.TableMeasurement} {
		rt, err := readTable(f, table, path)
		if err != nil {
			return nil, err
		}
		raw[table] = rt
	}

	points, err := l.readDataPoints(f, path)
	if err != nil {
		return nil, err
	}

	// Column conformance on all four tables. The data table's columns are
	// canonical by construction of the melt, but it is checked the same way.
	for _, table := range []schema.Table{schema.TableInstructor, schema.TableCourse, schema.TableMeasurement} {
		if err := validation.CheckColumns(table, raw[table].columns); err != nil {
			return nil, err
		}
	}
	if err := validation.CheckColumns(schema.TableData, schema.RequiredColumns(schema.TableData)); err != nil {
		return nil, err
	}

	// Null audit on the entity tables. Warnings only, rows are kept.
	for _, table := range []schema.Table{schema.TableInstructor, schema.TableCourse, schema.TableMeasurement} {
		validation.AuditNulls(table, raw[table].columns, raw[table].rows, path, diags)
	}

	instructors := decodeInstructors(raw[schema.TableInstructor])
	courses, err := decodeCourses(raw[schema.TableCourse])
	if err != nil {
		return nil, err
	}
	measurements, err := decodeMeasurements(raw[schema.TableMeasurement])
	if err != nil {
		return nil, err
	}

	if err := normalizeScores(measurements, points); err != nil {
		return nil, err
	}

	validation.AuditRange(points, path, diags)

	ds := &dataset.Dataset{
		Instructors:  instructors,
		Courses:      courses,
		Measurements: persistedMeasurements(measurements),
		DataPoints:   points,
	}

	l.logger.InfoContext(ctx, "workbook loaded",
		slog.String("path", path),
		slog.Int("instructors", len(ds.Instructors)),
		slog.Int("courses", len(ds.Courses)),
		slog.Int("measurements", len(ds.Measurements)),
		slog.Int("data_points", len(ds.DataPoints)))

	return ds, nil
}

// readDataPoints reads the wide "4 - Data" sheet and melts it into long
// form. The sheet's first row is a human-readable instruction row and is
// skipped; the second row holds the headers: studentID plus one column per
// measurementID. Blank and exactly-zero cells mean "not assessed" and
// produce no row, and a row with a blank studentID carries no attributable
// scores so it produces none either. Surviving rows receive contiguous
// 0-based dataIDs in melt order (column-major: all students for one
// measurement, then the next measurement).
func (l *Loader) readDataPoints(f *excelize.File, path string) ([]domain.DataPoint, error) {
	rows, err := readSheet(f, schema.SheetName(schema.TableData), path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, apperrors.NewSourceFormat(
			fmt.Sprintf("the sheet %q in the Excel file %s has no header row below the instruction row",
				schema.SheetName(schema.TableData), path), nil)
	}

	columns := trimTrailingBlanks(rows[1])
	body := padRows(rows[2:], len(columns))

	studentIdx := slices.Index(columns, "studentID")
	if studentIdx < 0 {
		return nil, apperrors.NewSchema(
			fmt.Sprintf("missing column %q in table %q, the wide data sheet must carry a studentID column",
				"studentID", schema.TableData), nil)
	}

	var points []domain.DataPoint
	for colIdx, measurementID := range columns {
		if colIdx == studentIdx || measurementID == "" {
			continue
		}
		for rowIdx, row := range body {
			if cell(row, studentIdx) == "" {
				continue
			}
			raw := cell(row, colIdx)
			if raw == "" {
				continue
			}
			value, err := parseOptFloat(schema.TableData, measurementID, raw, rowIdx+3)
			if err != nil {
				return nil, err
			}
			if *value == 0 {
				continue
			}
			points = append(points, domain.DataPoint{
				StudentID:     cell(row, studentIdx),
				MeasurementID: measurementID,
				Value:         *value,
			})
		}
	}
	for i := range points {
		points[i].DataID = i
	}
	return points, nil
}

func decodeInstructors(rt rawTable) []domain.Instructor {
	idx := columnIndex(rt.columns)
	instructors := make([]domain.Instructor, 0, len(rt.rows))
	for _, row := range rt.rows {
		instructors = append(instructors, domain.Instructor{
			InstructorID: cell(row, idx["instructorID"]),
			FirstName:    cell(row, idx["firstName"]),
			LastName:     cell(row, idx["lastName"]),
		})
	}
	return instructors
}

func decodeCourses(rt rawTable) ([]domain.Course, error) {
	idx := columnIndex(rt.columns)
	courses := make([]domain.Course, 0, len(rt.rows))
	for rowNum, row := range rt.rows {
		year, err := parseOptInt(rt.table, "academicYear", cell(row, idx["academicYear"]), rowNum+2)
		if err != nil {
			return nil, err
		}
		inProgram, err := parseOptInt(rt.table, "yearInProgram", cell(row, idx["yearInProgram"]), rowNum+2)
		if err != nil {
			return nil, err
		}
		courses = append(courses, domain.Course{
			CourseID:      cell(row, idx["courseID"]),
			InstructorID:  cell(row, idx["instructorID"]),
			Prefix:        cell(row, idx["prefix"]),
			Number:        cell(row, idx["number"]),
			Suffix:        cell(row, idx["suffix"]),
			AcademicYear:  year,
			YearInProgram: inProgram,
		})
	}
	return courses, nil
}

func decodeMeasurements(rt rawTable) ([]measurementRecord, error) {
	idx := columnIndex(rt.columns)
	measurements := make([]measurementRecord, 0, len(rt.rows))
	for rowNum, row := range rt.rows {
		record := measurementRecord{
			Measurement: domain.Measurement{
				MeasurementID:    cell(row, idx["measurementID"]),
				CourseID:         cell(row, idx["courseID"]),
				Attribute:        cell(row, idx["attribute"]),
				Indicator:        cell(row, idx["indicator"]),
				DeliverableType:  cell(row, idx["deliverableType"]),
				DeliverableName:  cell(row, idx["deliverableName"]),
				Date:             cell(row, idx["date"]),
				ImprovementTheme: cell(row, idx["improvementTheme"]),
			},
			scale: domain.ScaleConfig{
				GradeScale: domain.GradeScale(cell(row, idx["gradeScale"])),
			},
		}
		var err error
		for column, target := range map[string]**float64{
			"maxScore":         &record.scale.MaxScore,
			"minPercentScore2": &record.scale.MinPercentScore2,
			"minPercentScore3": &record.scale.MinPercentScore3,
			"minPercentScore4": &record.scale.MinPercentScore4,
		} {
			*target, err = parseOptFloat(rt.table, column, cell(row, idx[column]), rowNum+2)
			if err != nil {
				return nil, err
			}
		}
		measurements = append(measurements, record)
	}
	return measurements, nil
}

// persistedMeasurements strips the consumed scale configuration.
func persistedMeasurements(records []measurementRecord) []domain.Measurement {
	measurements := make([]domain.Measurement, 0, len(records))
	for _, r := range records {
		measurements = append(measurements, r.Measurement)
	}
	return measurements
}

func columnIndex(columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, column := range columns {
		idx[column] = i
	}
	return idx
}
