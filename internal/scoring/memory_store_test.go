package scoring

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx(id string) *ScoredTransaction {
	return &ScoredTransaction{
		ID:           id,
		BankID:       "B001",
		BankName:     "ICICI Bank",
		MerchantID:   "M001",
		MerchantName: "Uber",
		Timestamp:    time.Now().UTC(),
		Amount:       500,
		FraudScore:   25,
		FraudLevel:   "LOW",
	}
}

func TestMemoryStore_InsertAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleTx("txn_1")))
	require.NoError(t, s.Insert(ctx, sampleTx("txn_2")))
	require.NoError(t, s.Insert(ctx, sampleTx("txn_3")))

	txs, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Newest first
	assert.Equal(t, "txn_3", txs[0].ID)
	assert.Equal(t, "txn_2", txs[1].ID)
}

func TestMemoryStore_ListBeyondSize(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleTx("txn_1")))

	txs, err := s.List(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestMemoryStore_Copies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tx := sampleTx("txn_1")
	require.NoError(t, s.Insert(ctx, tx))
	tx.FraudScore = 99 // caller mutation must not leak into the store

	txs, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, txs[0].FraudScore)

	txs[0].FraudScore = 77 // reader mutation must not leak either
	again, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, again[0].FraudScore)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Insert(ctx, sampleTx(fmt.Sprintf("txn_%d", n)))
		}(i)
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.List(ctx, 10)
		}()
	}
	wg.Wait()

	txs, err := s.List(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, txs, 20)
}
