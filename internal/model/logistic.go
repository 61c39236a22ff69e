package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Logistic is an in-process classifier loaded from a JSON weight file
// exported by the training pipeline.
type Logistic struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// LoadLogistic reads a logistic model from a JSON weight file.
func LoadLogistic(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var m Logistic
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model file %s has no weights", path)
	}
	for i, w := range m.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("model file %s: weight[%d] is %v", path, i, w)
		}
	}
	return &m, nil
}

// CheckDimensions verifies the model matches the feature schema. Called
// at startup together with the artifact integrity checks.
func (m *Logistic) CheckDimensions(featureCount int) error {
	if len(m.Weights) != featureCount {
		return fmt.Errorf("model expects %d features, preprocessor produces %d",
			len(m.Weights), featureCount)
	}
	return nil
}

// PredictProba computes sigmoid(intercept + w·x).
func (m *Logistic) PredictProba(_ context.Context, features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model expects %d",
			ErrMalformedOutput, len(features), len(m.Weights))
	}

	z := m.Intercept
	for i, w := range m.Weights {
		z += w * features[i]
	}

	p := 1.0 / (1.0 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("%w: probability is NaN", ErrMalformedOutput)
	}
	return p, nil
}
