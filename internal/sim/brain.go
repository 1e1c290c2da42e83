package sim

import (
	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/market"
)

// Brain decides an actor's actions each turn. Brains are external to the
// market engine: they consume its public operations and statistics and
// never touch reserved money or reserved inventory directly.
type Brain interface {
	// DecideEconomicAction returns the actor's one economic action for the
	// turn, or nil to do nothing.
	DecideEconomicAction(actor *domain.Actor, mkt *market.Market) Command
	// DecideMarketActions returns the actor's market actions for the turn,
	// executed in order before the matching pass.
	DecideMarketActions(actor *domain.Actor, mkt *market.Market) []Command
}
