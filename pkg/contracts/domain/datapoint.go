package domain

// DataPoint is one (student, measurement, score) triple produced by melting
// the wide "4 - Data" sheet. DataID is the row's 0-based position in the
// reshaped table; it is unique within one load only, and under combine the
// first occurrence of a DataID wins.
type DataPoint struct {
	DataID        int     `json:"dataID"`
	StudentID     string  `json:"studentID" validate:"required"`
	MeasurementID string  `json:"measurementID" validate:"required"`
	Value         float64 `json:"value" validate:"required"`
}
