package market

import (
	"github.com/google/uuid"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

// MatchOrders runs one batch clearing pass over every commodity and
// returns the transactions it produced. The orchestrator calls this once
// per turn after all actors have acted; matching never happens at
// placement time, so within a turn submission order does not affect which
// orders cross.
//
// Commodities are processed in sorted-ID order and orders match under
// strict (price, turn, seq) priority, so a pass is fully deterministic
// given the resting state. Unmatched remainders persist into the next
// turn unchanged. After all commodities are processed, one aggregate
// (volume and volume-weighted price) per commodity is appended to the
// long-horizon history.
func (m *Market) MatchOrders() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cleared []*domain.Transaction
	for _, cid := range m.registry.IDs() {
		txs := m.matchCommodity(cid)
		cleared = append(cleared, txs...)
		m.statsFor(cid).closeTurn(m.currentTurn, txs, m.registry.BasePrice(cid))
	}
	return cleared
}

// matchCommodity clears one commodity's book: while the best bid covers
// the best ask, trade min(remaining) at the ask's price, settle, and drop
// filled orders from every index.
func (m *Market) matchCommodity(cid domain.CommodityID) []*domain.Transaction {
	book, ok := m.books[cid]
	if !ok {
		return nil
	}

	var txs []*domain.Transaction
	for {
		bid, hasBid := book.bestBid()
		ask, hasAsk := book.bestAsk()
		if !hasBid || !hasAsk {
			break
		}
		if bid.Price < ask.Price {
			break
		}

		buyOrder := bid.Order
		sellOrder := ask.Order

		qty := buyOrder.Quantity
		if sellOrder.Quantity < qty {
			qty = sellOrder.Quantity
		}
		// Seller-side pricing: the trade clears at the ask's price. The
		// buyer's surplus over the clearing price is refunded in settle.
		price := sellOrder.Price

		tx := m.settle(buyOrder, sellOrder, qty, price)
		txs = append(txs, tx)

		buyOrder.Quantity -= qty
		sellOrder.Quantity -= qty
		m.statsFor(cid).recordTrade(price)

		if buyOrder.Quantity == 0 {
			m.unindexOrder(buyOrder)
		}
		if sellOrder.Quantity == 0 {
			m.unindexOrder(sellOrder)
		}
	}
	return txs
}

// settle transfers money and goods for one matched fill and appends the
// transaction to history.
//
// The buyer escrowed qty*bid_price at placement; exactly the filled
// portion of that escrow leaves ReservedMoney, the seller is credited the
// trade's notional (qty*price), and the difference — the amount the buyer
// quoted above the clearing price — returns to the buyer's spendable
// money. The seller's goods were already debited from available inventory
// at placement, so settlement only consumes the reserved quantity and
// credits the buyer's inventory.
func (m *Market) settle(buyOrder, sellOrder *domain.Order, qty, price int64) *domain.Transaction {
	notional := qty * price

	if buyer, err := m.actors.Get(buyOrder.ActorID); err == nil {
		escrowed := qty * buyOrder.Price
		buyer.ReservedMoney -= escrowed
		buyer.Money += escrowed - notional
		buyer.Inventory.Add(buyOrder.CommodityID, qty)
	}

	if seller, err := m.actors.Get(sellOrder.ActorID); err == nil {
		seller.Money += notional
		seller.Inventory.ConsumeReserved(sellOrder.CommodityID, qty)
	}

	tx := &domain.Transaction{
		TransactionID: uuid.New().String(),
		BuyerID:       buyOrder.ActorID,
		SellerID:      sellOrder.ActorID,
		CommodityID:   buyOrder.CommodityID,
		Quantity:      qty,
		Price:         price,
		TotalAmount:   notional,
		Turn:          m.currentTurn,
	}
	m.transactions.Append(tx)
	return tx
}
