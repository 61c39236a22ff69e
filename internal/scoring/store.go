package scoring

import "context"

// Store persists scored transactions
type Store interface {
	// Insert records one scored transaction. Called exactly once per
	// successfully scored request, before the response is returned.
	Insert(ctx context.Context, tx *ScoredTransaction) error
	// List returns the most recent scored transactions, newest first.
	List(ctx context.Context, limit int) ([]*ScoredTransaction, error)
}
