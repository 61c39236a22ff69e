// Package model adapts the trained binary classifier behind a small
// interface so the scoring pipeline does not care whether inference runs
// in-process or on an external model server.
package model

import (
	"context"
	"errors"
)

// ErrMalformedOutput marks a classifier invocation that returned output
// of the wrong shape or non-numeric values.
var ErrMalformedOutput = errors.New("classifier returned malformed output")

// Classifier produces the probability of the fraud class for an encoded
// feature vector. Implementations are stateless per call and deterministic
// for the same vector and loaded model artifact.
type Classifier interface {
	PredictProba(ctx context.Context, features []float64) (float64, error)
}
