package domain

// OrderSide indicates whether an order is a bid (buy) or ask (sell).
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// Order is a resting limit order on a commodity market. Quantity is the
// remaining unfilled quantity and is always positive while the order rests;
// an order that reaches zero is removed from every index immediately.
//
// Seq is a market-assigned monotonic sequence number. Together with
// TurnCreated it forms the time-priority key: among equal prices, earlier
// turns match first, and within a turn earlier submissions match first.
// Modifying an order's price resets both, forfeiting queue position.
type Order struct {
	OrderID     string
	ActorID     string
	CommodityID CommodityID
	Side        OrderSide
	Quantity    int64
	Price       int64
	TurnCreated int64
	Seq         uint64
}

// Notional returns the order's remaining escrow value at its quoted price.
// For a buy order this is exactly the money held in reserve for it.
func (o *Order) Notional() int64 {
	return o.Quantity * o.Price
}
