package sim

import (
	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/market"
)

const (
	// governmentWage is the fixed income from a turn of government work.
	governmentWage = 10
	// foodTargetStock is how much food a colonist tries to keep on hand.
	foodTargetStock = 5
)

// ColonistBrain is the baseline actor behavior: work for a wage, eat one
// food per turn, buy food back up to a target stock, and sell anything
// held well above it.
type ColonistBrain struct {
	Food domain.CommodityID
}

// NewColonistBrain creates a colonist brain consuming the given food
// commodity.
func NewColonistBrain(food domain.CommodityID) *ColonistBrain {
	return &ColonistBrain{Food: food}
}

func (b *ColonistBrain) DecideEconomicAction(actor *domain.Actor, _ *market.Market) Command {
	return GovernmentWorkCommand{Wage: governmentWage}
}

func (b *ColonistBrain) DecideMarketActions(actor *domain.Actor, mkt *market.Market) []Command {
	var commands []Command

	// Cancel and requote each turn rather than managing stale orders.
	resting := mkt.GetActorOrders(actor)
	for _, o := range append(resting.Buy, resting.Sell...) {
		commands = append(commands, CancelOrderCommand{OrderID: o.OrderID})
	}

	// Eat before restocking so the shortfall reflects this turn's meal.
	if actor.Inventory.AvailableQuantity(b.Food) > 0 {
		commands = append(commands, ConsumeCommand{Commodity: b.Food, Quantity: 1})
	}

	held := actor.Inventory.Quantity(b.Food)
	spot := mkt.AvgPrice(b.Food)

	if held < foodTargetStock {
		// Quote a premium over spot to cross resting asks; the surplus over
		// the clearing price comes back at settlement.
		bid := spot + spot/5 + 1
		commands = append(commands, PlaceBuyCommand{
			Commodity: b.Food,
			Quantity:  foodTargetStock - held,
			Price:     bid,
		})
	} else if surplus := held - 2*foodTargetStock; surplus > 0 {
		ask := spot - spot/10
		if ask < 1 {
			ask = 1
		}
		commands = append(commands, PlaceSellCommand{
			Commodity: b.Food,
			Quantity:  surplus,
			Price:     ask,
		})
	}

	return commands
}
