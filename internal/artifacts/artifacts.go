// Package artifacts loads the preprocessing bundle produced at training time.
//
// The bundle fixes the feature schema the classifier was trained against:
// the ordered feature column list, which of those columns are categorical
// (with a label encoder each), which are numeric, and the standard scaler
// for the numeric group. It is loaded once at startup, integrity-checked,
// and shared read-only by every request.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrIntegrity marks a structurally inconsistent artifact bundle. It is
// fatal at startup: the service must not serve with partial artifacts.
var ErrIntegrity = errors.New("artifact bundle inconsistent")

// LabelEncoder maps category values to the integer codes assigned during
// training. Classes are ordered; a value's code is its index.
type LabelEncoder struct {
	Classes []string `json:"classes"`

	codes map[string]int
}

// Encode returns the training-time code for a value. ok is false for
// values never seen during training.
func (e *LabelEncoder) Encode(value string) (code int, ok bool) {
	code, ok = e.codes[value]
	return code, ok
}

func (e *LabelEncoder) buildIndex() {
	e.codes = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.codes[c] = i
	}
}

// Scaler is the standard scaler fitted on the numeric column group.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform standardizes values in place. values must be ordered like
// the bundle's numeric column list.
func (s *Scaler) Transform(values []float64) {
	for i := range values {
		values[i] = (values[i] - s.Mean[i]) / s.Scale[i]
	}
}

// Bundle is the immutable preprocessing artifact set.
type Bundle struct {
	FeatureColumns  []string                 `json:"feature_columns"`
	CategoricalCols []string                 `json:"categorical_cols"`
	NumericCols     []string                 `json:"numeric_cols"`
	Encoders        map[string]*LabelEncoder `json:"label_encoders"`
	Scaler          *Scaler                  `json:"scaler"`

	colIndex    map[string]int
	categorical map[string]bool
}

// Load reads and validates a preprocessing bundle from a JSON file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preprocessor bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse preprocessor bundle: %w", err)
	}

	return NewBundle(b)
}

// NewBundle validates a bundle and prepares its lookup indexes.
// Tests and embedders can use it to build bundles without a file.
func NewBundle(b Bundle) (*Bundle, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.buildIndexes()
	return &b, nil
}

// Validate checks the bundle's internal consistency. Violations wrap
// ErrIntegrity so callers can refuse to start serving.
func (b *Bundle) Validate() error {
	if len(b.FeatureColumns) == 0 {
		return fmt.Errorf("%w: feature_columns is empty", ErrIntegrity)
	}

	seen := make(map[string]bool, len(b.FeatureColumns))
	for _, col := range b.FeatureColumns {
		if seen[col] {
			return fmt.Errorf("%w: duplicate feature column %q", ErrIntegrity, col)
		}
		seen[col] = true
	}

	for _, col := range b.CategoricalCols {
		if !seen[col] {
			return fmt.Errorf("%w: categorical column %q not in feature_columns", ErrIntegrity, col)
		}
		enc, ok := b.Encoders[col]
		if !ok || enc == nil {
			return fmt.Errorf("%w: missing encoder for categorical column %q", ErrIntegrity, col)
		}
		if len(enc.Classes) == 0 {
			return fmt.Errorf("%w: encoder for %q has no classes", ErrIntegrity, col)
		}
	}

	cat := make(map[string]bool, len(b.CategoricalCols))
	for _, col := range b.CategoricalCols {
		cat[col] = true
	}
	for _, col := range b.NumericCols {
		if !seen[col] {
			return fmt.Errorf("%w: numeric column %q not in feature_columns", ErrIntegrity, col)
		}
		if cat[col] {
			return fmt.Errorf("%w: column %q is both categorical and numeric", ErrIntegrity, col)
		}
	}

	if len(b.NumericCols) > 0 {
		if b.Scaler == nil {
			return fmt.Errorf("%w: numeric columns declared but scaler missing", ErrIntegrity)
		}
		if len(b.Scaler.Mean) != len(b.NumericCols) || len(b.Scaler.Scale) != len(b.NumericCols) {
			return fmt.Errorf("%w: scaler dimensions (%d/%d) do not match %d numeric columns",
				ErrIntegrity, len(b.Scaler.Mean), len(b.Scaler.Scale), len(b.NumericCols))
		}
		for i, s := range b.Scaler.Scale {
			if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
				return fmt.Errorf("%w: scaler scale[%d] is %v", ErrIntegrity, i, s)
			}
		}
		for i, m := range b.Scaler.Mean {
			if math.IsNaN(m) || math.IsInf(m, 0) {
				return fmt.Errorf("%w: scaler mean[%d] is %v", ErrIntegrity, i, m)
			}
		}
	}

	return nil
}

func (b *Bundle) buildIndexes() {
	b.colIndex = make(map[string]int, len(b.FeatureColumns))
	for i, col := range b.FeatureColumns {
		b.colIndex[col] = i
	}
	b.categorical = make(map[string]bool, len(b.CategoricalCols))
	for _, col := range b.CategoricalCols {
		b.categorical[col] = true
		b.Encoders[col].buildIndex()
	}
}

// ColumnIndex returns the position of a column in the feature vector.
func (b *Bundle) ColumnIndex(name string) (int, bool) {
	i, ok := b.colIndex[name]
	return i, ok
}

// IsCategorical reports whether a feature column is label-encoded.
func (b *Bundle) IsCategorical(name string) bool {
	return b.categorical[name]
}

// ModelConfig is the training-run metadata reported by the health endpoint.
type ModelConfig struct {
	ModelName   string  `json:"model_name"`
	TestF1Score float64 `json:"test_f1_score"`
}

// LoadModelConfig reads the model config JSON written by the training run.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}

	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model config missing model_name", ErrIntegrity)
	}
	return &cfg, nil
}
