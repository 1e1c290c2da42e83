package store

import (
	"testing"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

func newTransaction(id, buyer, seller string, commodity domain.CommodityID) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		BuyerID:       buyer,
		SellerID:      seller,
		CommodityID:   commodity,
		Quantity:      1,
		Price:         10,
		TotalAmount:   10,
		Turn:          1,
	}
}

func TestTransactionStore_AppendAndGetByCommodity(t *testing.T) {
	s := NewTransactionStore()
	s.Append(newTransaction("t1", "a", "b", "food"))
	s.Append(newTransaction("t2", "c", "d", "food"))
	s.Append(newTransaction("t3", "a", "b", "fuel"))

	food := s.GetByCommodity("food")
	if len(food) != 2 {
		t.Fatalf("expected 2 food transactions, got %d", len(food))
	}
	if food[0].TransactionID != "t1" || food[1].TransactionID != "t2" {
		t.Error("expected chronological order t1, t2")
	}
	if got := len(s.GetByCommodity("ore")); got != 0 {
		t.Errorf("expected empty slice for unknown commodity, got %d", got)
	}
	if s.Count() != 3 {
		t.Errorf("expected count 3, got %d", s.Count())
	}
}

func TestTransactionStore_GetByActorIndexesBothParties(t *testing.T) {
	s := NewTransactionStore()
	s.Append(newTransaction("t1", "alice", "bob", "food"))
	s.Append(newTransaction("t2", "bob", "carol", "food"))

	if got := len(s.GetByActor("alice")); got != 1 {
		t.Errorf("expected 1 for alice, got %d", got)
	}
	if got := len(s.GetByActor("bob")); got != 2 {
		t.Errorf("expected 2 for bob, got %d", got)
	}
	if got := len(s.GetByActor("nobody")); got != 0 {
		t.Errorf("expected 0 for unknown actor, got %d", got)
	}
}

func TestTransactionStore_SelfTradeIndexedOnce(t *testing.T) {
	s := NewTransactionStore()
	s.Append(newTransaction("t1", "alice", "alice", "food"))

	if got := len(s.GetByActor("alice")); got != 1 {
		t.Errorf("expected a self-trade indexed once, got %d", got)
	}
}
