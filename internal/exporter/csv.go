// Package exporter writes a loaded Dataset out as one CSV file per table.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ceabcli/internal/dataset"
	"ceabcli/internal/schema"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer targeting outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteDataset writes the four tables as <table>.csv under the output
// directory, with the persisted column set as headers.
func (w *CSVWriter) WriteDataset(ds *dataset.Dataset) error {
	tables := []struct {
		table   schema.Table
		records [][]string
	}{
		{schema.TableInstructor, instructorRecords(ds)},
		{schema.TableCourse, courseRecords(ds)},
		{schema.TableMeasurement, measurementRecords(ds)},
		{schema.TableData, dataRecords(ds)},
	}
	for _, t := range tables {
		name := string(t.table) + ".csv"
		if err := w.writeFile(name, schema.PersistedColumns(t.table), t.records); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes one CSV file with headers and records. A UTF-8 BOM is
// prefixed so Excel recognizes the encoding.
func (w *CSVWriter) writeFile(name string, headers []string, records [][]string) error {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(w.outDir, name)

	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

func instructorRecords(ds *dataset.Dataset) [][]string {
	records := make([][]string, 0, len(ds.Instructors))
	for _, r := range ds.Instructors {
		records = append(records, []string{r.InstructorID, r.FirstName, r.LastName})
	}
	return records
}

func courseRecords(ds *dataset.Dataset) [][]string {
	records := make([][]string, 0, len(ds.Courses))
	for _, r := range ds.Courses {
		records = append(records, []string{
			r.CourseID, r.InstructorID, r.Prefix, r.Number, r.Suffix,
			strconv.Itoa(r.AcademicYear), strconv.Itoa(r.YearInProgram)})
	}
	return records
}

func measurementRecords(ds *dataset.Dataset) [][]string {
	records := make([][]string, 0, len(ds.Measurements))
	for _, r := range ds.Measurements {
		records = append(records, []string{
			r.MeasurementID, r.CourseID, r.Attribute, r.Indicator,
			r.DeliverableType, r.DeliverableName, r.Date, r.ImprovementTheme})
	}
	return records
}

func dataRecords(ds *dataset.Dataset) [][]string {
	records := make([][]string, 0, len(ds.DataPoints))
	for _, r := range ds.DataPoints {
		records = append(records, []string{
			strconv.Itoa(r.DataID), r.StudentID, r.MeasurementID,
			strconv.FormatFloat(r.Value, 'g', -1, 64)})
	}
	return records
}
