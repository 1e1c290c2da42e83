package market

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/store"
)

// Market is the order-matching engine for one trading location. It owns
// one order book per commodity, the flat order-id index, the per-actor
// order indexes, the transaction history, and per-commodity rolling
// statistics.
//
// The market is the sole mutator of every actor's reserved money and
// reserved inventory. Placement debits the spendable pool into escrow
// atomically with order creation; every destruction path (fill, cancel,
// clear) releases exactly the unconsumed escrow. All operations either
// succeed with their documented effect or fail with no effect.
//
// The engine is invoked synchronously by the turn orchestrator. The RWMutex
// exists so the read-only monitor API can snapshot state between
// operations; it does not make concurrent mutation part of the contract.
type Market struct {
	mu            sync.RWMutex
	registry      *domain.Registry
	actors        *store.ActorStore
	books         map[domain.CommodityID]*OrderBook
	ordersByID    map[string]*domain.Order
	ordersByActor map[string]*actorOrderIndex
	transactions  *store.TransactionStore
	stats         map[domain.CommodityID]*commodityStats
	currentTurn   int64
	nextSeq       uint64
}

// actorOrderIndex holds one actor's resting orders, split by side.
type actorOrderIndex struct {
	buy  map[string]*domain.Order
	sell map[string]*domain.Order
}

// ActorOrders is the result of GetActorOrders: the actor's resting orders
// split by side, in submission order.
type ActorOrders struct {
	Buy  []*domain.Order
	Sell []*domain.Order
}

// New creates a Market over the given commodity registry and actor store.
func New(registry *domain.Registry, actors *store.ActorStore) *Market {
	return &Market{
		registry:      registry,
		actors:        actors,
		books:         make(map[domain.CommodityID]*OrderBook),
		ordersByID:    make(map[string]*domain.Order),
		ordersByActor: make(map[string]*actorOrderIndex),
		transactions:  store.NewTransactionStore(),
		stats:         make(map[domain.CommodityID]*commodityStats),
	}
}

// PlaceBuyOrder places a bid for the actor. If the nominal cost exceeds the
// actor's spendable money, the quantity is silently clamped down to what
// the actor can afford; callers need not pre-validate affordability. Only
// a clamped quantity of zero fails, with no side effects. On success the
// cost is moved from Money to ReservedMoney atomically with order creation
// and the new order's ID is returned.
func (m *Market) PlaceBuyOrder(actor *domain.Actor, commodity domain.CommodityID, qty, price int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validatePlacement(actor, commodity, price); err != nil {
		return "", err
	}

	if qty*price > actor.Money {
		qty = actor.Money / price
	}
	if qty <= 0 {
		return "", domain.ErrOrderRejected
	}

	cost := qty * price
	actor.Money -= cost
	actor.ReservedMoney += cost

	order := m.newOrder(actor, commodity, domain.OrderSideBuy, qty, price)
	m.indexOrder(order)
	return order.OrderID, nil
}

// PlaceSellOrder places an ask for the actor. The quantity is silently
// clamped down to the actor's available inventory; a clamped quantity of
// zero fails with no side effects. On success the quantity is moved from
// available to reserved inventory atomically with order creation.
func (m *Market) PlaceSellOrder(actor *domain.Actor, commodity domain.CommodityID, qty, price int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validatePlacement(actor, commodity, price); err != nil {
		return "", err
	}

	if available := actor.Inventory.AvailableQuantity(commodity); qty > available {
		qty = available
	}
	if qty <= 0 {
		return "", domain.ErrOrderRejected
	}

	if !actor.Inventory.Reserve(commodity, qty) {
		return "", domain.ErrOrderRejected
	}

	order := m.newOrder(actor, commodity, domain.OrderSideSell, qty, price)
	m.indexOrder(order)
	return order.OrderID, nil
}

func (m *Market) validatePlacement(actor *domain.Actor, commodity domain.CommodityID, price int64) error {
	if actor == nil || !m.actors.Exists(actor.ActorID) {
		return domain.ErrActorNotFound
	}
	if !m.registry.Exists(commodity) {
		return domain.ErrUnknownCommodity
	}
	if price <= 0 {
		return domain.ErrOrderRejected
	}
	return nil
}

// newOrder builds an order stamped with the current turn and the next
// sequence number. Seq is the stable tie-break that keeps matching
// deterministic within a turn.
func (m *Market) newOrder(actor *domain.Actor, commodity domain.CommodityID, side domain.OrderSide, qty, price int64) *domain.Order {
	m.nextSeq++
	return &domain.Order{
		OrderID:     uuid.New().String(),
		ActorID:     actor.ActorID,
		CommodityID: commodity,
		Side:        side,
		Quantity:    qty,
		Price:       price,
		TurnCreated: m.currentTurn,
		Seq:         m.nextSeq,
	}
}

// indexOrder inserts the order into the book and every index.
func (m *Market) indexOrder(o *domain.Order) {
	book, ok := m.books[o.CommodityID]
	if !ok {
		book = newOrderBook(o.CommodityID)
		m.books[o.CommodityID] = book
	}
	book.insert(o)
	m.ordersByID[o.OrderID] = o

	idx, ok := m.ordersByActor[o.ActorID]
	if !ok {
		idx = &actorOrderIndex{
			buy:  make(map[string]*domain.Order),
			sell: make(map[string]*domain.Order),
		}
		m.ordersByActor[o.ActorID] = idx
	}
	if o.Side == domain.OrderSideBuy {
		idx.buy[o.OrderID] = o
	} else {
		idx.sell[o.OrderID] = o
	}
}

// unindexOrder removes the order from the book and every index.
func (m *Market) unindexOrder(o *domain.Order) {
	if book, ok := m.books[o.CommodityID]; ok {
		book.remove(o.OrderID)
	}
	delete(m.ordersByID, o.OrderID)
	if idx, ok := m.ordersByActor[o.ActorID]; ok {
		delete(idx.buy, o.OrderID)
		delete(idx.sell, o.OrderID)
	}
}

// CancelOrder cancels a resting order, releasing its entire outstanding
// reservation back to the actor's spendable pools and removing it from
// every index. A second cancel on the same ID returns
// domain.ErrOrderNotFound with no further state change.
func (m *Market) CancelOrder(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.ordersByID[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	m.releaseReservation(order)
	m.unindexOrder(order)
	return nil
}

// releaseReservation returns the order's outstanding escrow to its actor:
// remaining notional for a buy order, remaining quantity for a sell order.
func (m *Market) releaseReservation(o *domain.Order) {
	actor, err := m.actors.Get(o.ActorID)
	if err != nil {
		return
	}
	if o.Side == domain.OrderSideBuy {
		refund := o.Notional()
		actor.ReservedMoney -= refund
		actor.Money += refund
	} else {
		actor.Inventory.Unreserve(o.CommodityID, o.Quantity)
	}
}

// ModifyOrder changes a resting order's limit price. For a buy order the
// escrow delta must be affordable from spendable money or the modification
// fails outright; sell-order escrow is quantity-based and unaffected.
// Either way the order forfeits its queue position: its time-priority
// stamp is reset to the current turn with a fresh sequence number.
func (m *Market) ModifyOrder(orderID string, newPrice int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.ordersByID[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if newPrice <= 0 {
		return domain.ErrOrderRejected
	}

	if order.Side == domain.OrderSideBuy {
		delta := order.Quantity * (newPrice - order.Price)
		actor, err := m.actors.Get(order.ActorID)
		if err != nil {
			return err
		}
		if delta > 0 && actor.Money < delta {
			return domain.ErrInsufficientFunds
		}
		actor.Money -= delta
		actor.ReservedMoney += delta
	}

	// Re-key on the book: the priority fields are immutable while the
	// entry rests on the tree.
	book := m.books[order.CommodityID]
	book.remove(order.OrderID)
	m.nextSeq++
	order.Price = newPrice
	order.TurnCreated = m.currentTurn
	order.Seq = m.nextSeq
	book.insert(order)
	return nil
}

// ClearOrders removes every resting order and releases all reservations.
// Administrative reset only — running this mid-simulation discards the
// persistent order state that strategies depend on.
func (m *Market) ClearOrders() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, order := range m.ordersByID {
		m.releaseReservation(order)
	}
	m.books = make(map[domain.CommodityID]*OrderBook)
	m.ordersByID = make(map[string]*domain.Order)
	m.ordersByActor = make(map[string]*actorOrderIndex)
}

// GetActorOrders returns the actor's resting orders split by side, sorted
// by sequence number (submission order). The returned orders are live
// records; callers treat them as read-only.
func (m *Market) GetActorOrders(actor *domain.Actor) ActorOrders {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out ActorOrders
	idx, ok := m.ordersByActor[actor.ActorID]
	if !ok {
		return out
	}
	for _, o := range idx.buy {
		out.Buy = append(out.Buy, o)
	}
	for _, o := range idx.sell {
		out.Sell = append(out.Sell, o)
	}
	sort.Slice(out.Buy, func(i, j int) bool { return out.Buy[i].Seq < out.Buy[j].Seq })
	sort.Slice(out.Sell, func(i, j int) bool { return out.Sell[i].Seq < out.Sell[j].Seq })
	return out
}

// GetActorTransactions returns every transaction the actor participated
// in, in chronological order.
func (m *Market) GetActorTransactions(actor *domain.Actor) []*domain.Transaction {
	return m.transactions.GetByActor(actor.ActorID)
}

// Transactions returns the full trade history for a commodity.
func (m *Market) Transactions(commodity domain.CommodityID) []*domain.Transaction {
	return m.transactions.GetByCommodity(commodity)
}

// GetOrder returns a resting order by ID, or domain.ErrOrderNotFound once
// the order has filled or been cancelled.
func (m *Market) GetOrder(orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.ordersByID[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// SetCurrentTurn sets the turn counter used for time-priority stamps and
// transaction records. The orchestrator advances it once per turn.
func (m *Market) SetCurrentTurn(turn int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTurn = turn
}

// CurrentTurn returns the market's current turn counter.
func (m *Market) CurrentTurn() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTurn
}

// OpenOrderCount returns the number of resting orders across all books.
func (m *Market) OpenOrderCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ordersByID)
}

// TopBids returns up to n aggregated bid price levels for a commodity,
// best first.
func (m *Market) TopBids(commodity domain.CommodityID, n int) []PriceLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[commodity]
	if !ok {
		return nil
	}
	return book.topBids(n)
}

// TopAsks returns up to n aggregated ask price levels for a commodity,
// best first.
func (m *Market) TopAsks(commodity domain.CommodityID, n int) []PriceLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[commodity]
	if !ok {
		return nil
	}
	return book.topAsks(n)
}
