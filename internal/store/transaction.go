package store

import (
	"sync"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

// TransactionStore is a thread-safe append-only store for completed
// trades, with a primary chronological list per commodity and a secondary
// index by actor. Records are immutable once appended.
type TransactionStore struct {
	mu          sync.RWMutex
	byCommodity map[domain.CommodityID][]*domain.Transaction
	byActor     map[string][]*domain.Transaction
	count       int
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		byCommodity: make(map[domain.CommodityID][]*domain.Transaction),
		byActor:     make(map[string][]*domain.Transaction),
	}
}

// Append adds a transaction to the commodity's chronological list and to
// both parties' actor indexes.
func (s *TransactionStore) Append(t *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byCommodity[t.CommodityID] = append(s.byCommodity[t.CommodityID], t)
	s.byActor[t.BuyerID] = append(s.byActor[t.BuyerID], t)
	if t.SellerID != t.BuyerID {
		s.byActor[t.SellerID] = append(s.byActor[t.SellerID], t)
	}
	s.count++
}

// GetByCommodity returns all transactions for a commodity in chronological
// order. Returns an empty slice if none exist.
func (s *TransactionStore) GetByCommodity(id domain.CommodityID) []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := s.byCommodity[id]
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)
	return out
}

// GetByActor returns all transactions the actor participated in, as buyer
// or seller, in chronological order.
func (s *TransactionStore) GetByActor(actorID string) []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := s.byActor[actorID]
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)
	return out
}

// Count returns the total number of transactions recorded.
func (s *TransactionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
