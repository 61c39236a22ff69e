package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLogistic(t *testing.T) {
	path := writeModelFile(t, `{"intercept": -1.5, "weights": [0.2, -0.4, 1.1]}`)

	m, err := LoadLogistic(path)
	require.NoError(t, err)
	assert.Equal(t, -1.5, m.Intercept)
	assert.Len(t, m.Weights, 3)

	assert.NoError(t, m.CheckDimensions(3))
	assert.Error(t, m.CheckDimensions(5))
}

func TestLoadLogistic_Invalid(t *testing.T) {
	_, err := LoadLogistic(writeModelFile(t, `{"intercept": 0, "weights": []}`))
	assert.Error(t, err)

	_, err = LoadLogistic(writeModelFile(t, `not json`))
	assert.Error(t, err)

	_, err = LoadLogistic(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLogistic_PredictProba(t *testing.T) {
	m := &Logistic{Intercept: 0, Weights: []float64{1, 1}}

	// z = 0 → p = 0.5
	p, err := m.PredictProba(context.Background(), []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)

	// Larger z → larger p, always within (0, 1)
	p2, err := m.PredictProba(context.Background(), []float64{3, 3})
	require.NoError(t, err)
	assert.Greater(t, p2, p)
	assert.Less(t, p2, 1.0)
}

func TestLogistic_Deterministic(t *testing.T) {
	m := &Logistic{Intercept: -0.3, Weights: []float64{0.5, -1.2, 0.07}}
	x := []float64{1.5, -3, 42}

	first, err := m.PredictProba(context.Background(), x)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		p, err := m.PredictProba(context.Background(), x)
		require.NoError(t, err)
		assert.Equal(t, first, p)
	}
}

func TestLogistic_DimensionMismatch(t *testing.T) {
	m := &Logistic{Intercept: 0, Weights: []float64{1, 1}}
	_, err := m.PredictProba(context.Background(), []float64{1})
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestHTTPClassifier_PredictProba(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"probabilities": [[0.75, 0.25]]}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL)
	p, err := c.PredictProba(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)
}

func TestHTTPClassifier_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty rows", `{"probabilities": []}`},
		{"single class", `{"probabilities": [[0.9]]}`},
		{"not json", `oops`},
		{"out of range", `{"probabilities": [[0.5, 1.5]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClassifier(srv.URL)
			_, err := c.PredictProba(context.Background(), []float64{1})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}

func TestHTTPClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL)
	_, err := c.PredictProba(context.Background(), []float64{1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedOutput)
}
