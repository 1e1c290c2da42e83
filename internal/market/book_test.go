package market

import (
	"fmt"
	"testing"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

func newBookOrder(id string, side domain.OrderSide, price, qty, turn int64, seq uint64) *domain.Order {
	return &domain.Order{
		OrderID:     id,
		ActorID:     "actor-" + id,
		CommodityID: food,
		Side:        side,
		Quantity:    qty,
		Price:       price,
		TurnCreated: turn,
		Seq:         seq,
	}
}

func TestOrderBook_BidPriority(t *testing.T) {
	ob := newOrderBook(food)
	ob.insert(newBookOrder("low", domain.OrderSideBuy, 5, 1, 1, 1))
	ob.insert(newBookOrder("high", domain.OrderSideBuy, 9, 1, 2, 2))
	ob.insert(newBookOrder("mid", domain.OrderSideBuy, 7, 1, 1, 3))

	best, ok := ob.bestBid()
	if !ok {
		t.Fatal("expected a best bid")
	}
	if best.Order.OrderID != "high" {
		t.Errorf("expected the highest price first, got %s", best.Order.OrderID)
	}
}

func TestOrderBook_AskPriority(t *testing.T) {
	ob := newOrderBook(food)
	ob.insert(newBookOrder("high", domain.OrderSideSell, 9, 1, 1, 1))
	ob.insert(newBookOrder("low", domain.OrderSideSell, 5, 1, 2, 2))

	best, ok := ob.bestAsk()
	if !ok {
		t.Fatal("expected a best ask")
	}
	if best.Order.OrderID != "low" {
		t.Errorf("expected the lowest price first, got %s", best.Order.OrderID)
	}
}

func TestOrderBook_TurnThenSeqTieBreak(t *testing.T) {
	ob := newOrderBook(food)
	ob.insert(newBookOrder("later-turn", domain.OrderSideBuy, 7, 1, 3, 1))
	ob.insert(newBookOrder("early-seq", domain.OrderSideBuy, 7, 1, 1, 2))
	ob.insert(newBookOrder("late-seq", domain.OrderSideBuy, 7, 1, 1, 5))

	best, _ := ob.bestBid()
	if best.Order.OrderID != "early-seq" {
		t.Errorf("expected the earliest turn and seq first, got %s", best.Order.OrderID)
	}

	ob.remove("early-seq")
	best, _ = ob.bestBid()
	if best.Order.OrderID != "late-seq" {
		t.Errorf("expected seq to order within a turn, got %s", best.Order.OrderID)
	}
}

func TestOrderBook_RemoveIsIdempotent(t *testing.T) {
	ob := newOrderBook(food)
	ob.insert(newBookOrder("a", domain.OrderSideBuy, 7, 1, 1, 1))

	ob.remove("a")
	ob.remove("a")
	ob.remove("never-existed")

	if _, ok := ob.bestBid(); ok {
		t.Error("expected an empty bid side")
	}
	if ob.bidCount() != 0 {
		t.Errorf("expected 0 bids, got %d", ob.bidCount())
	}
}

func TestOrderBook_TopLevelsAggregation(t *testing.T) {
	ob := newOrderBook(food)
	ob.insert(newBookOrder("a", domain.OrderSideSell, 10, 3, 1, 1))
	ob.insert(newBookOrder("b", domain.OrderSideSell, 10, 2, 1, 2))
	ob.insert(newBookOrder("c", domain.OrderSideSell, 12, 4, 1, 3))
	ob.insert(newBookOrder("d", domain.OrderSideSell, 15, 1, 1, 4))

	levels := ob.topAsks(2)
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Price != 10 || levels[0].TotalQuantity != 5 || levels[0].OrderCount != 2 {
		t.Errorf("unexpected first level: %+v", levels[0])
	}
	if levels[1].Price != 12 || levels[1].TotalQuantity != 4 || levels[1].OrderCount != 1 {
		t.Errorf("unexpected second level: %+v", levels[1])
	}
}

func TestOrderBook_TopBidsDescending(t *testing.T) {
	ob := newOrderBook(food)
	for i := int64(1); i <= 5; i++ {
		id := fmt.Sprintf("bid-%d", i)
		ob.insert(newBookOrder(id, domain.OrderSideBuy, i*10, 1, 1, uint64(i)))
	}

	levels := ob.topBids(10)
	if len(levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].Price >= levels[i-1].Price {
			t.Fatal("expected bid levels in descending price order")
		}
	}
}
