package market

import (
	"github.com/google/btree"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

// bookEntry is a single order resting on one side of the book. Price,
// TurnCreated, and Seq are the priority key and never change while the
// entry is on the tree; the order's remaining quantity is mutated through
// the Order pointer.
type bookEntry struct {
	Price       int64
	TurnCreated int64
	Seq         uint64
	Order       *domain.Order
}

// PriceLevel is an aggregated price level in a book snapshot.
type PriceLevel struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// bidLess defines ordering for the bid side: price descending, then
// turn_created ascending, then seq ascending. Min() returns the best bid
// (highest price, earliest turn, earliest submission).
func bidLess(a, b bookEntry) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if a.TurnCreated != b.TurnCreated {
		return a.TurnCreated < b.TurnCreated
	}
	return a.Seq < b.Seq
}

// askLess defines ordering for the ask side: price ascending, then
// turn_created ascending, then seq ascending. Min() returns the best ask.
func askLess(a, b bookEntry) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.TurnCreated != b.TurnCreated {
		return a.TurnCreated < b.TurnCreated
	}
	return a.Seq < b.Seq
}

// OrderBook maintains the bid and ask sides for a single commodity using
// B-trees, with a secondary index for O(log n) removal by order ID. The
// owning Market serializes all access.
type OrderBook struct {
	commodity domain.CommodityID
	bids      *btree.BTreeG[bookEntry]
	asks      *btree.BTreeG[bookEntry]
	index     map[string]bookEntry // order_id → entry
}

// newOrderBook creates an order book for the given commodity.
func newOrderBook(commodity domain.CommodityID) *OrderBook {
	const degree = 32
	return &OrderBook{
		commodity: commodity,
		bids:      btree.NewG[bookEntry](degree, bidLess),
		asks:      btree.NewG[bookEntry](degree, askLess),
		index:     make(map[string]bookEntry),
	}
}

// insert adds an order to the side of the book matching its Side field.
func (ob *OrderBook) insert(o *domain.Order) {
	entry := bookEntry{
		Price:       o.Price,
		TurnCreated: o.TurnCreated,
		Seq:         o.Seq,
		Order:       o,
	}
	if o.Side == domain.OrderSideBuy {
		ob.bids.ReplaceOrInsert(entry)
	} else {
		ob.asks.ReplaceOrInsert(entry)
	}
	ob.index[o.OrderID] = entry
}

// remove deletes an order from the book by order ID using the secondary
// index. Delete is a no-op on the side the order isn't on.
func (ob *OrderBook) remove(orderID string) {
	entry, ok := ob.index[orderID]
	if !ok {
		return
	}
	delete(ob.index, orderID)
	ob.bids.Delete(entry)
	ob.asks.Delete(entry)
}

// bestBid returns the highest-priority bid (highest price, earliest turn).
func (ob *OrderBook) bestBid() (bookEntry, bool) {
	return ob.bids.Min()
}

// bestAsk returns the highest-priority ask (lowest price, earliest turn).
func (ob *OrderBook) bestAsk() (bookEntry, bool) {
	return ob.asks.Min()
}

func (ob *OrderBook) bidCount() int {
	return ob.bids.Len()
}

func (ob *OrderBook) askCount() int {
	return ob.asks.Len()
}

// topBids returns up to n aggregated price levels from the bid side,
// ordered by price descending.
func (ob *OrderBook) topBids(n int) []PriceLevel {
	return topLevels(ob.bids, n)
}

// topAsks returns up to n aggregated price levels from the ask side,
// ordered by price ascending.
func (ob *OrderBook) topAsks(n int) []PriceLevel {
	return topLevels(ob.asks, n)
}

// topLevels iterates a tree in priority order and aggregates entries into
// at most n price levels.
func topLevels(tree *btree.BTreeG[bookEntry], n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	levels := make([]PriceLevel, 0, n)
	tree.Ascend(func(entry bookEntry) bool {
		if len(levels) > 0 && levels[len(levels)-1].Price == entry.Price {
			levels[len(levels)-1].TotalQuantity += entry.Order.Quantity
			levels[len(levels)-1].OrderCount++
			return true
		}
		if len(levels) >= n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:         entry.Price,
			TotalQuantity: entry.Order.Quantity,
			OrderCount:    1,
		})
		return true
	})
	return levels
}
