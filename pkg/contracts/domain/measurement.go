package domain

// GradeScale identifies the encoding convention of a measurement's raw scores.
type GradeScale string

const (
	// GradeScaleCEAB marks scores already recorded on the 1-4 ordinal scale.
	GradeScaleCEAB GradeScale = "CEAB (1-4)"
	// GradeScaleStandardBins marks raw scores binned with the fixed
	// 0/50/60/85/100 percentage breakpoints.
	GradeScaleStandardBins GradeScale = "Raw Scores (Standard Bins)"
	// GradeScaleCustomBins marks raw scores binned with per-measurement
	// percentage breakpoints.
	GradeScaleCustomBins GradeScale = "Raw Scores (Custom Bins)"
)

// Measurement represents one assessment instrument from the "3 - Measurement"
// sheet after normalization. The grade scale and its configuration fields are
// consumed during loading and are not part of the persisted record.
type Measurement struct {
	MeasurementID    string `json:"measurementID" validate:"required"`
	CourseID         string `json:"courseID" validate:"required"`
	Attribute        string `json:"attribute" validate:"required"`
	Indicator        string `json:"indicator" validate:"required"`
	DeliverableType  string `json:"deliverableType" validate:"required"`
	DeliverableName  string `json:"deliverableName" validate:"required"`
	Date             string `json:"date" validate:"required"`
	ImprovementTheme string `json:"improvementTheme,omitempty"`
}

// ScaleConfig carries the per-measurement grading configuration read from the
// workbook. Threshold fields are nil when the corresponding cell is blank;
// which fields are required depends on the grade scale.
type ScaleConfig struct {
	GradeScale       GradeScale
	MaxScore         *float64
	MinPercentScore2 *float64
	MinPercentScore3 *float64
	MinPercentScore4 *float64
}
