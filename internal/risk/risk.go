// Package risk converts a fraud probability into the score, severity
// level, fraud flag, and recommendation returned to callers.
//
// The policy is pure and fixed: score = floor(probability * 100); levels
// bucket the score; the fraud flag uses a strict majority threshold of
// score > 50 that is independent of the level boundaries. A score of
// exactly 50 buckets as MEDIUM but is not flagged — intentional, observed
// behavior of the deployed policy.
package risk

// Level is the ordinal severity bucket of a fraud score.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// FraudThreshold is the score above which a transaction is flagged.
const FraudThreshold = 50

// Assessment is the scored verdict for a single transaction.
type Assessment struct {
	Probability    float64 `json:"fraud_probability"`
	Score          int     `json:"fraud_score"`
	Level          Level   `json:"fraud_level"`
	IsFraud        bool    `json:"is_fraud"`
	Recommendation string  `json:"recommendation"`
}

var recommendations = map[Level]string{
	LevelLow:      "Low risk. Transaction appears normal. Proceed with approval.",
	LevelMedium:   "Medium risk. Monitor transaction or request additional authentication.",
	LevelHigh:     "High risk. Strong user verification recommended before approval.",
	LevelCritical: "Critical risk. Block transaction immediately and investigate fraud.",
}

// Assess derives the full verdict from a fraud probability in [0, 1].
func Assess(probability float64) Assessment {
	score := int(probability * 100)
	level := LevelForScore(score)

	return Assessment{
		Probability:    probability,
		Score:          score,
		Level:          level,
		IsFraud:        score > FraudThreshold,
		Recommendation: Recommendation(level),
	}
}

// LevelForScore buckets a 0–100 score into a severity level.
func LevelForScore(score int) Level {
	switch {
	case score <= 30:
		return LevelLow
	case score <= 60:
		return LevelMedium
	case score <= 80:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Recommendation returns the fixed action text for a level.
func Recommendation(level Level) string {
	if r, ok := recommendations[level]; ok {
		return r
	}
	return "Unknown risk level"
}
