package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
)

// HTTPClassifier calls an external inference server. The server takes the
// encoded feature vector and returns a two-class probability row; the
// second column is the fraud class.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier creates a classifier client for the given predict URL.
func NewHTTPClassifier(url string) *HTTPClassifier {
	return &HTTPClassifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// PredictProba sends the vector to the inference server and extracts the
// fraud-class probability.
func (c *HTTPClassifier) PredictProba(ctx context.Context, features []float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if len(out.Probabilities) < 1 || len(out.Probabilities[0]) < 2 {
		return 0, fmt.Errorf("%w: expected a two-class probability row, got %v",
			ErrMalformedOutput, out.Probabilities)
	}

	p := out.Probabilities[0][1]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: probability %v out of range", ErrMalformedOutput, p)
	}
	return p, nil
}
