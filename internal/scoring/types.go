package scoring

import (
	"time"

	"github.com/mbd888/fraudscore/internal/risk"
)

// ScoreRequest is an inbound card transaction to score.
type ScoreRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerState string  `json:"customer_state" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	CardType      string  `json:"card_type" binding:"required"`
	BankName      string  `json:"bank_name" binding:"required"`
	MerchantName  string  `json:"merchant_name" binding:"required"`
	MerchantState string  `json:"merchant_state" binding:"required"`
	Amount        float64 `json:"amount"`
	Hour          int     `json:"hour"`
	CardPresent   bool    `json:"card_present"`
	International bool    `json:"international"`
}

// ScoreResponse is returned to the caller after scoring.
type ScoreResponse struct {
	TransactionID string `json:"transaction_id"`
	risk.Assessment
}

// ScoredTransaction is the finalized record persisted for every
// successfully scored request. The raw probability is not stored, only
// the derived score and bucket.
type ScoredTransaction struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerState string    `json:"customer_state"`
	BankID        string    `json:"bank_id"`
	BankName      string    `json:"bank_name"`
	MerchantID    string    `json:"merchant_id"`
	MerchantName  string    `json:"merchant_name"`
	MerchantState string    `json:"merchant_state"`
	Timestamp     time.Time `json:"timestamp"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	CardType      string    `json:"card_type"`
	IsFraud       bool      `json:"is_fraud"`
	FraudScore    int       `json:"fraud_score"`
	FraudLevel    string    `json:"fraud_level"`
	Hour          int       `json:"hour"`
	CardPresent   bool      `json:"card_present"`
	International bool      `json:"international"`
}
