package sim

import (
	"math/rand"

	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/market"
)

// MarketMakerBrain provides liquidity by quoting both sides of every
// commodity around the 30-day average, widened by observed volatility.
// Until a commodity has accumulated enough turn history it bootstraps
// with one-unit probes around the base price instead of trusting the
// statistics.
type MarketMakerBrain struct {
	registry *domain.Registry
	// spreadPct is the maker's half-spread as a fraction of the average
	// price, drawn once per maker from the injected rng so makers differ.
	spreadPct float64
	// cashFraction is the share of spendable money committed per
	// commodity's bid each turn.
	cashFraction float64
}

// NewMarketMakerBrain creates a maker with a spread drawn from rng in the
// 10–30% range.
func NewMarketMakerBrain(registry *domain.Registry, rng *rand.Rand) *MarketMakerBrain {
	return &MarketMakerBrain{
		registry:     registry,
		spreadPct:    0.10 + rng.Float64()*0.20,
		cashFraction: 0.15,
	}
}

func (b *MarketMakerBrain) DecideEconomicAction(actor *domain.Actor, _ *market.Market) Command {
	return GovernmentWorkCommand{Wage: governmentWage}
}

func (b *MarketMakerBrain) DecideMarketActions(actor *domain.Actor, mkt *market.Market) []Command {
	var commands []Command

	// Cancel/replace: requote everything from scratch each turn.
	resting := mkt.GetActorOrders(actor)
	for _, o := range append(resting.Buy, resting.Sell...) {
		commands = append(commands, CancelOrderCommand{OrderID: o.OrderID})
	}

	for _, commodity := range b.registry.All() {
		if mkt.HasHistory(commodity.ID) {
			commands = append(commands, b.quote(actor, mkt, commodity.ID)...)
		} else {
			commands = append(commands, b.probe(actor, commodity)...)
		}
	}
	return commands
}

// probe places one-unit discovery quotes bracketing the base price.
func (b *MarketMakerBrain) probe(actor *domain.Actor, commodity *domain.Commodity) []Command {
	var commands []Command

	bid := commodity.BasePrice - 1
	if bid < 1 {
		bid = 1
	}
	commands = append(commands, PlaceBuyCommand{
		Commodity: commodity.ID,
		Quantity:  1,
		Price:     bid,
	})

	if actor.Inventory.AvailableQuantity(commodity.ID) > 0 {
		commands = append(commands, PlaceSellCommand{
			Commodity: commodity.ID,
			Quantity:  1,
			Price:     commodity.BasePrice + 1,
		})
	}
	return commands
}

// quote places a bid and an ask around the 30-day average, with the
// half-spread widened by the observed standard deviation.
func (b *MarketMakerBrain) quote(actor *domain.Actor, mkt *market.Market, commodity domain.CommodityID) []Command {
	avg := mkt.ThirtyDayAveragePrice(commodity)
	sigma := mkt.ThirtyDayStandardDeviation(commodity)
	if sigma < 1 {
		sigma = 1
	}

	halfSpread := int64(float64(avg)*b.spreadPct/2 + sigma/2)
	if halfSpread < 1 {
		halfSpread = 1
	}

	bid := avg - halfSpread
	if bid < 1 {
		bid = 1
	}
	ask := avg + halfSpread
	if ask <= bid {
		ask = bid + 1
	}

	var commands []Command

	budget := int64(float64(actor.Money) * b.cashFraction)
	if qty := budget / bid; qty > 0 {
		commands = append(commands, PlaceBuyCommand{
			Commodity: commodity,
			Quantity:  qty,
			Price:     bid,
		})
	}

	// Offer half the held inventory, keeping the rest against a drought.
	if held := actor.Inventory.AvailableQuantity(commodity); held > 0 {
		qty := held / 2
		if qty < 1 {
			qty = 1
		}
		commands = append(commands, PlaceSellCommand{
			Commodity: commodity,
			Quantity:  qty,
			Price:     ask,
		})
	}
	return commands
}
