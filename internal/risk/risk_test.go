package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssess_ScoreIsFloorOfProbability(t *testing.T) {
	tests := []struct {
		probability float64
		wantScore   int
	}{
		{0.0, 0},
		{0.009, 0},
		{0.25, 25},
		{0.259, 25},
		{0.5, 50},
		{0.509, 50},
		{0.51, 51},
		{0.999, 99},
		{1.0, 100},
	}

	for _, tt := range tests {
		got := Assess(tt.probability)
		assert.Equal(t, tt.wantScore, got.Score, "probability %v", tt.probability)
	}
}

func TestAssess_ScoreMonotonic(t *testing.T) {
	prev := -1
	for p := 0.0; p <= 1.0; p += 0.001 {
		score := Assess(p).Score
		assert.GreaterOrEqual(t, score, prev, "probability %v", p)
		prev = score
	}
}

func TestLevelForScore_ExactBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelLow},
		{30, LevelLow},
		{31, LevelMedium},
		{60, LevelMedium},
		{61, LevelHigh},
		{80, LevelHigh},
		{81, LevelCritical},
		{100, LevelCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestAssess_FraudFlagIndependentOfBucket(t *testing.T) {
	// Score 50 buckets MEDIUM but is not flagged
	at50 := Assess(0.50)
	assert.Equal(t, 50, at50.Score)
	assert.Equal(t, LevelMedium, at50.Level)
	assert.False(t, at50.IsFraud)

	// Score 51 buckets MEDIUM and is flagged
	at51 := Assess(0.51)
	assert.Equal(t, 51, at51.Score)
	assert.Equal(t, LevelMedium, at51.Level)
	assert.True(t, at51.IsFraud)
}

func TestAssess_Examples(t *testing.T) {
	low := Assess(0.25)
	assert.Equal(t, 25, low.Score)
	assert.Equal(t, LevelLow, low.Level)
	assert.False(t, low.IsFraud)
	assert.Equal(t, recommendations[LevelLow], low.Recommendation)

	critical := Assess(0.85)
	assert.Equal(t, 85, critical.Score)
	assert.Equal(t, LevelCritical, critical.Level)
	assert.True(t, critical.IsFraud)
	assert.Equal(t, recommendations[LevelCritical], critical.Recommendation)
}

func TestRecommendation_UnknownLevel(t *testing.T) {
	assert.Equal(t, "Unknown risk level", Recommendation(Level("BOGUS")))
}

func TestRecommendation_OnePerLevel(t *testing.T) {
	seen := map[string]Level{}
	for _, level := range []Level{LevelLow, LevelMedium, LevelHigh, LevelCritical} {
		r := Recommendation(level)
		assert.NotEmpty(t, r)
		if prior, dup := seen[r]; dup {
			t.Errorf("levels %s and %s share recommendation %q", prior, level, r)
		}
		seen[r] = level
	}
}
