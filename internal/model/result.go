package model

import (
	"encoding/json"
	"math"
)

// PRFResult holds match counts and the derived precision, recall and
// F-measure. Ratios with a zero denominator are NaN.
type PRFResult struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

// Add returns the element-wise sum of two results
func (r PRFResult) Add(o PRFResult) PRFResult {
	return PRFResult{
		TruePositives:  r.TruePositives + o.TruePositives,
		FalsePositives: r.FalsePositives + o.FalsePositives,
		FalseNegatives: r.FalseNegatives + o.FalseNegatives,
	}
}

// Precision returns TP / (TP + FP)
func (r PRFResult) Precision() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalsePositives)
}

// Recall returns TP / (TP + FN)
func (r PRFResult) Recall() float64 {
	return ratio(r.TruePositives, r.TruePositives+r.FalseNegatives)
}

// FMeasure returns the harmonic mean 2PR / (P + R). NaN in either input,
// or P = R = 0, yields NaN.
func (r PRFResult) FMeasure() float64 {
	p, rec := r.Precision(), r.Recall()
	return 2 * p * rec / (p + rec)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// MarshalJSON writes counts and ratios; NaN ratios are encoded as null
func (r PRFResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TruePositives  int      `json:"true_positives"`
		FalsePositives int      `json:"false_positives"`
		FalseNegatives int      `json:"false_negatives"`
		Precision      *float64 `json:"precision"`
		Recall         *float64 `json:"recall"`
		FMeasure       *float64 `json:"f_measure"`
	}{
		TruePositives:  r.TruePositives,
		FalsePositives: r.FalsePositives,
		FalseNegatives: r.FalseNegatives,
		Precision:      nanToNil(r.Precision()),
		Recall:         nanToNil(r.Recall()),
		FMeasure:       nanToNil(r.FMeasure()),
	})
}

// UnmarshalJSON reads the counts; ratios are always recomputed
func (r *PRFResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		TruePositives  int `json:"true_positives"`
		FalsePositives int `json:"false_positives"`
		FalseNegatives int `json:"false_negatives"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = PRFResult{
		TruePositives:  raw.TruePositives,
		FalsePositives: raw.FalsePositives,
		FalseNegatives: raw.FalseNegatives,
	}
	return nil
}

func nanToNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
