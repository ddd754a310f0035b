package dataprocessing

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ceabcli/internal/errors"
	"ceabcli/internal/validation"
)

func TestLoadTree(t *testing.T) {
	root := t.TempDir()

	first := buildFixtureWorkbook(t)
	require.NoError(t, first.SaveAs(filepath.Join(root, "a.xlsx")))

	// The second workbook shares instructor I1 with different fields and
	// adds I9; its data points collide on dataID with the first workbook's.
	second := buildFixtureWorkbook(t)
	require.NoError(t, second.SetCellValue("1 - Instructor", "B2", "Alicia"))
	require.NoError(t, second.SetCellValue("1 - Instructor", "A3", "I9"))
	require.NoError(t, second.SaveAs(filepath.Join(root, "b.xlsx")))

	// A file the pattern must ignore.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	diags := validation.NewDiagnostics(slog.Default())
	ds, err := newTestLoader().LoadTree(context.Background(), root, `.*\.xlsx$`, diags)
	require.NoError(t, err)

	// The lexical walk puts a.xlsx before b.xlsx, so a's I1 wins and only
	// I9 survives from b.
	require.Len(t, ds.Instructors, 3)
	assert.Equal(t, "Alice", ds.Instructors[0].FirstName)
	assert.Equal(t, "I2", ds.Instructors[1].InstructorID)
	assert.Equal(t, "I9", ds.Instructors[2].InstructorID)

	// Both workbooks assign dataIDs 0..5, so b's points all collide and are
	// dropped first-wins; dataIDs are only unique within one load.
	assert.Len(t, ds.DataPoints, 6)
	assert.Len(t, ds.Courses, 1)
	assert.Len(t, ds.Measurements, 3)
}

func TestLoadTreeSubdirectoryPattern(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024"), 0755))

	f := buildFixtureWorkbook(t)
	require.NoError(t, f.SaveAs(filepath.Join(root, "a.xlsx")))
	g := buildFixtureWorkbook(t)
	require.NoError(t, g.SaveAs(filepath.Join(root, "2024", "b.xlsx")))

	diags := validation.NewDiagnostics(slog.Default())
	ds, err := newTestLoader().LoadTree(context.Background(), root, `^2024/`, diags)
	require.NoError(t, err)
	assert.Len(t, ds.Instructors, 2, "only the subdirectory workbook matches")
}

func TestLoadTreePatternAnchoredAtStart(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive2024"), 0755))

	f := buildFixtureWorkbook(t)
	require.NoError(t, f.SaveAs(filepath.Join(root, "2024", "a.xlsx")))

	// If pattern matching were unanchored, the archived workbook would leak
	// into the batch and contribute instructor I9.
	g := buildFixtureWorkbook(t)
	require.NoError(t, g.SetCellValue("1 - Instructor", "A3", "I9"))
	require.NoError(t, g.SaveAs(filepath.Join(root, "archive2024", "b.xlsx")))

	diags := validation.NewDiagnostics(slog.Default())
	ds, err := newTestLoader().LoadTree(context.Background(), root, `2024`, diags)
	require.NoError(t, err)
	require.Len(t, ds.Instructors, 2)
	assert.Equal(t, "I2", ds.Instructors[1].InstructorID)
}

func TestLoadTreeNoMatches(t *testing.T) {
	diags := validation.NewDiagnostics(slog.Default())
	ds, err := newTestLoader().LoadTree(context.Background(), t.TempDir(), `.*\.xlsx$`, diags)
	require.NoError(t, err)
	assert.Empty(t, ds.Instructors)
	assert.Empty(t, ds.Courses)
	assert.Empty(t, ds.Measurements)
	assert.Empty(t, ds.DataPoints)
}

func TestLoadTreeInvalidPattern(t *testing.T) {
	diags := validation.NewDiagnostics(slog.Default())
	_, err := newTestLoader().LoadTree(context.Background(), t.TempDir(), `([`, diags)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestLoadTreeEmptyPatternIsSingleFile(t *testing.T) {
	path := saveWorkbook(t, buildFixtureWorkbook(t), "ceab.xlsx")

	diags := validation.NewDiagnostics(slog.Default())
	ds, err := newTestLoader().LoadTree(context.Background(), path, "", diags)
	require.NoError(t, err)
	assert.Len(t, ds.DataPoints, 6)
}

func TestLoadTreeAbortsOnFirstFailure(t *testing.T) {
	root := t.TempDir()

	good := buildFixtureWorkbook(t)
	require.NoError(t, good.SaveAs(filepath.Join(root, "a.xlsx")))

	bad := buildFixtureWorkbook(t)
	require.NoError(t, bad.SetCellValue("3 - Measurement", "I3", "")) // drop M2's maxScore
	require.NoError(t, bad.SaveAs(filepath.Join(root, "b.xlsx")))

	diags := validation.NewDiagnostics(slog.Default())
	_, err := newTestLoader().LoadTree(context.Background(), root, `.*\.xlsx$`, diags)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfig(err))
	assert.Contains(t, err.Error(), "b.xlsx")
}
