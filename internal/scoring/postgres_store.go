package scoring

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store with PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL-backed store. The
// scored_transactions table is created by the migrations under
// migrations/.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert records a scored transaction
func (p *PostgresStore) Insert(ctx context.Context, tx *ScoredTransaction) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO scored_transactions (
			id, customer_name, customer_state, bank_id, bank_name,
			merchant_id, merchant_name, merchant_state, scored_at,
			amount, category, card_type, is_fraud, fraud_score,
			fraud_level, txn_hour, card_present, international
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		tx.ID, tx.CustomerName, tx.CustomerState, tx.BankID, tx.BankName,
		tx.MerchantID, tx.MerchantName, tx.MerchantState, tx.Timestamp,
		tx.Amount, tx.Category, tx.CardType, tx.IsFraud, tx.FraudScore,
		tx.FraudLevel, tx.Hour, tx.CardPresent, tx.International,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scored transaction: %w", err)
	}
	return nil
}

// List returns the most recent transactions, newest first
func (p *PostgresStore) List(ctx context.Context, limit int) ([]*ScoredTransaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_state, bank_id, bank_name,
		       merchant_id, merchant_name, merchant_state, scored_at,
		       amount, category, card_type, is_fraud, fraud_score,
		       fraud_level, txn_hour, card_present, international
		FROM scored_transactions
		ORDER BY scored_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scored transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ScoredTransaction
	for rows.Next() {
		tx := &ScoredTransaction{}
		if err := rows.Scan(
			&tx.ID, &tx.CustomerName, &tx.CustomerState, &tx.BankID, &tx.BankName,
			&tx.MerchantID, &tx.MerchantName, &tx.MerchantState, &tx.Timestamp,
			&tx.Amount, &tx.Category, &tx.CardType, &tx.IsFraud, &tx.FraudScore,
			&tx.FraudLevel, &tx.Hour, &tx.CardPresent, &tx.International,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scored transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
