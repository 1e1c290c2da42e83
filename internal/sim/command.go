package sim

import (
	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/market"
)

// Command is one action an actor takes during its turn. Execute returns an
// error when the action had no effect; the turn loop logs and continues —
// a rejected command is never fatal to the simulation.
type Command interface {
	Execute(actor *domain.Actor, mkt *market.Market) error
}

// GovernmentWorkCommand credits the actor a fixed wage. This is the
// simulation's external money injection: the one path by which total money
// across actors changes.
type GovernmentWorkCommand struct {
	Wage int64
}

func (c GovernmentWorkCommand) Execute(actor *domain.Actor, _ *market.Market) error {
	actor.Money += c.Wage
	return nil
}

// ConsumeCommand removes goods from the actor's available inventory, e.g.
// a colonist eating food. This is the external commodity-removal path.
type ConsumeCommand struct {
	Commodity domain.CommodityID
	Quantity  int64
}

func (c ConsumeCommand) Execute(actor *domain.Actor, _ *market.Market) error {
	if !actor.Inventory.Remove(c.Commodity, c.Quantity) {
		return domain.ErrOrderRejected
	}
	return nil
}

// PlaceBuyCommand submits a buy order at a limit price. The market clamps
// the quantity to what the actor can afford.
type PlaceBuyCommand struct {
	Commodity domain.CommodityID
	Quantity  int64
	Price     int64
}

func (c PlaceBuyCommand) Execute(actor *domain.Actor, mkt *market.Market) error {
	_, err := mkt.PlaceBuyOrder(actor, c.Commodity, c.Quantity, c.Price)
	return err
}

// PlaceSellCommand submits a sell order at a limit price. The market
// clamps the quantity to the actor's available inventory.
type PlaceSellCommand struct {
	Commodity domain.CommodityID
	Quantity  int64
	Price     int64
}

func (c PlaceSellCommand) Execute(actor *domain.Actor, mkt *market.Market) error {
	_, err := mkt.PlaceSellOrder(actor, c.Commodity, c.Quantity, c.Price)
	return err
}

// CancelOrderCommand cancels one of the actor's resting orders.
type CancelOrderCommand struct {
	OrderID string
}

func (c CancelOrderCommand) Execute(_ *domain.Actor, mkt *market.Market) error {
	return mkt.CancelOrder(c.OrderID)
}
