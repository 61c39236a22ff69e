package scoring

import (
	"context"
	"sync"
)

// maxRetained caps the in-memory history; oldest entries are dropped.
const maxRetained = 10000

// MemoryStore implements Store in memory for development and tests
type MemoryStore struct {
	mu  sync.RWMutex
	txs []*ScoredTransaction
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert records a scored transaction
func (m *MemoryStore) Insert(_ context.Context, tx *ScoredTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *tx
	m.txs = append(m.txs, &cp)
	if len(m.txs) > maxRetained {
		m.txs = m.txs[len(m.txs)-maxRetained:]
	}
	return nil
}

// List returns the most recent transactions, newest first
func (m *MemoryStore) List(_ context.Context, limit int) ([]*ScoredTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.txs)
	if limit > n {
		limit = n
	}

	out := make([]*ScoredTransaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *m.txs[i]
		out = append(out, &cp)
	}
	return out, nil
}
