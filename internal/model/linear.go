package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/scamradar/scamradar/internal/scoring"
)

const linearFileName = "linear.json"

// Default class labels when the manifest does not override them.
var defaultLabels = []string{"legit", "scam"}

// Linear is a logistic-regression classifier over the fixed 12-feature
// layout. Weights are read once from the bundle and never change, so a
// single Linear is safe for concurrent use.
type Linear struct {
	weights []float64
	bias    float64
	labels  []string
}

type linearFile struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// LoadLinear reads linear.json from the bundle directory. labels may be
// nil; the positive class is always the last label.
func LoadLinear(dir string, labels []string) (*Linear, error) {
	data, err := os.ReadFile(filepath.Join(dir, linearFileName))
	if err != nil {
		return nil, fmt.Errorf("read coefficients: %w", err)
	}

	var lf linearFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("decode coefficients: %w", err)
	}
	if len(lf.Weights) != scoring.FeatureCount {
		return nil, fmt.Errorf("expected %d weights, got %d", scoring.FeatureCount, len(lf.Weights))
	}

	if len(labels) != 2 {
		labels = defaultLabels
	}

	return &Linear{weights: lf.Weights, bias: lf.Bias, labels: labels}, nil
}

// PredictProba implements scoring.ProbabilityEstimator: a two-class
// distribution with the positive class probability from the logistic of
// the linear score.
func (m *Linear) PredictProba(features []float64) (map[string]float64, error) {
	if len(features) != len(m.weights) {
		return nil, fmt.Errorf("expected %d features, got %d", len(m.weights), len(features))
	}

	score := m.bias
	for i, w := range m.weights {
		score += w * features[i]
	}
	p := 1 / (1 + math.Exp(-score))

	return map[string]float64{
		m.labels[0]: 1 - p,
		m.labels[1]: p,
	}, nil
}
