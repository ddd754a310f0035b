package dataprocessing

import (
	"fmt"
	"math"

	apperrors "ceabcli/internal/errors"
	"ceabcli/pkg/contracts/domain"
)

// standardBreakpoints are the fixed percentage cuts for the standard bins
// scale: (0,50]->1, (50,60]->2, (60,85]->3, (85,100]->4, with the lowest bin
// closed on zero.
var standardBreakpoints = [5]float64{0, 50, 60, 85, 100}

// normalizeScores converts every data point onto the 1-4 scale using its
// measurement's grade scale. Points are mutated in place. A measurement
// whose scale lacks required configuration, or whose scale is unrecognized,
// aborts normalization with a config error. Points referencing a
// measurementID with no measurement row are left untouched; the range audit
// reports them.
func normalizeScores(measurements []measurementRecord, points []domain.DataPoint) error {
	byMeasurement := make(map[string][]int, len(measurements))
	for i, p := range points {
		byMeasurement[p.MeasurementID] = append(byMeasurement[p.MeasurementID], i)
	}

	for _, m := range measurements {
		indexes := byMeasurement[m.MeasurementID]

		switch m.scale.GradeScale {
		case domain.GradeScaleCEAB:
			// Already ordinal. Round half away from zero, which is
			// round-half-up on the non-negative score domain.
			for _, i := range indexes {
				points[i].Value = math.Round(points[i].Value)
			}
		case domain.GradeScaleStandardBins:
			if m.scale.MaxScore == nil {
				return apperrors.NewConfig(
					fmt.Sprintf("the maxScore is missing for measurement %s", m.MeasurementID), nil)
			}
			binPoints(points, indexes, *m.scale.MaxScore, standardBreakpoints)
		case domain.GradeScaleCustomBins:
			breaks, err := customBreakpoints(m)
			if err != nil {
				return err
			}
			binPoints(points, indexes, *m.scale.MaxScore, breaks)
		default:
			return apperrors.NewConfig(
				fmt.Sprintf("unknown grade scale %q for measurement %s", m.scale.GradeScale, m.MeasurementID), nil)
		}
	}
	return nil
}

// customBreakpoints assembles and validates the per-measurement cuts for the
// custom bins scale. All four configuration fields must be present and the
// resulting breakpoints strictly increasing.
func customBreakpoints(m measurementRecord) ([5]float64, error) {
	required := []struct {
		column string
		value  *float64
	}{
		{"maxScore", m.scale.MaxScore},
		{"minPercentScore2", m.scale.MinPercentScore2},
		{"minPercentScore3", m.scale.MinPercentScore3},
		{"minPercentScore4", m.scale.MinPercentScore4},
	}
	for _, f := range required {
		if f.value == nil {
			return [5]float64{}, apperrors.NewConfig(
				fmt.Sprintf("the %s is missing for measurement %s", f.column, m.MeasurementID), nil)
		}
	}

	breaks := [5]float64{0, *m.scale.MinPercentScore2, *m.scale.MinPercentScore3, *m.scale.MinPercentScore4, 100}
	for i := 0; i < len(breaks)-1; i++ {
		if breaks[i+1] <= breaks[i] {
			return [5]float64{}, apperrors.NewConfig(
				fmt.Sprintf("the percentage thresholds for measurement %s are not strictly increasing: %v",
					m.MeasurementID, breaks), nil)
		}
	}
	return breaks, nil
}

// binPoints converts each point's raw score to a percentage of maxScore and
// bins it. A percentage above the top breakpoint fits no bin; the raw value
// is kept so the range audit reports it rather than silently clamping.
func binPoints(points []domain.DataPoint, indexes []int, maxScore float64, breaks [5]float64) {
	for _, i := range indexes {
		percent := points[i].Value / maxScore * 100
		if score, ok := binScore(percent, breaks); ok {
			points[i].Value = float64(score)
		}
	}
}

// binScore maps a percentage into the 1-4 ordinal scale. Each internal
// boundary belongs to the lower bin, and the lowest bin is closed on both
// ends, so any percentage at or below zero maps to 1.
func binScore(percent float64, breaks [5]float64) (int, bool) {
	for score := 1; score <= 4; score++ {
		if percent <= breaks[score] {
			return score, true
		}
	}
	return 0, false
}
