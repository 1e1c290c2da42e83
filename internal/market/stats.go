package market

import (
	"math"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

const (
	// spotWindow caps the rolling window of recent trade prices behind
	// AvgPrice.
	spotWindow = 10
	// historyWindow caps how many turn aggregates the long-horizon
	// statistics look back over.
	historyWindow = 30
	// historyMinimum is how many turn aggregates a commodity needs before
	// HasHistory reports true and price-discovery strategies trust the
	// statistics.
	historyMinimum = 5
)

// TurnAggregate is one turn's cleared volume and volume-weighted price
// for a commodity. On turns with no trades the volume is zero and the
// price repeats the last known price (or the base price if no trade ever
// cleared).
type TurnAggregate struct {
	Turn   int64
	Volume int64
	Price  int64
	Trades int
}

// commodityStats tracks one commodity's rolling trade statistics: a short
// spot window of recent trade prices and the per-turn aggregate history.
type commodityStats struct {
	recentPrices []int64
	history      []TurnAggregate
}

// statsFor returns the stats tracker for a commodity, creating it on
// first use. Caller holds the market lock.
func (m *Market) statsFor(cid domain.CommodityID) *commodityStats {
	s, ok := m.stats[cid]
	if !ok {
		s = &commodityStats{}
		m.stats[cid] = s
	}
	return s
}

// recordTrade pushes a cleared trade price into the spot window, dropping
// the oldest once the window is full.
func (s *commodityStats) recordTrade(price int64) {
	s.recentPrices = append(s.recentPrices, price)
	if len(s.recentPrices) > spotWindow {
		s.recentPrices = s.recentPrices[1:]
	}
}

// closeTurn appends the turn's aggregate. With no trades the last known
// price carries forward so moving averages stay defined.
func (s *commodityStats) closeTurn(turn int64, txs []*domain.Transaction, basePrice int64) {
	var volume, amount int64
	for _, tx := range txs {
		volume += tx.Quantity
		amount += tx.TotalAmount
	}

	price := basePrice
	if volume > 0 {
		price = amount / volume
	} else if len(s.history) > 0 {
		price = s.history[len(s.history)-1].Price
	}

	s.history = append(s.history, TurnAggregate{
		Turn:   turn,
		Volume: volume,
		Price:  price,
		Trades: len(txs),
	})
}

// window returns the last ≤historyWindow turn aggregates.
func (s *commodityStats) window() []TurnAggregate {
	if len(s.history) > historyWindow {
		return s.history[len(s.history)-historyWindow:]
	}
	return s.history
}

// AvgPrice returns the spot average: the mean of the last ≤10 cleared
// trade prices for the commodity, falling back to the configured base
// price if no trade has ever cleared.
func (m *Market) AvgPrice(commodity domain.CommodityID) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	if !ok || len(s.recentPrices) == 0 {
		return m.registry.BasePrice(commodity)
	}
	var sum int64
	for _, p := range s.recentPrices {
		sum += p
	}
	return sum / int64(len(s.recentPrices))
}

// BidAskSpread returns the best resting bid and ask prices. ok is false
// when either side of the book is empty.
func (m *Market) BidAskSpread(commodity domain.CommodityID) (bid, ask int64, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	book, found := m.books[commodity]
	if !found {
		return 0, 0, false
	}
	bestBid, hasBid := book.bestBid()
	bestAsk, hasAsk := book.bestAsk()
	if !hasBid || !hasAsk {
		return 0, 0, false
	}
	return bestBid.Price, bestAsk.Price, true
}

// ThirtyDayAveragePrice returns the mean aggregate price over the last
// ≤30 turns, or the base price when no aggregates exist yet.
func (m *Market) ThirtyDayAveragePrice(commodity domain.CommodityID) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	if !ok || len(s.history) == 0 {
		return m.registry.BasePrice(commodity)
	}
	win := s.window()
	var sum int64
	for _, agg := range win {
		sum += agg.Price
	}
	return sum / int64(len(win))
}

// ThirtyDayAverageVolume returns the mean cleared volume over the last
// ≤30 turns, or 1 when no aggregates exist yet.
func (m *Market) ThirtyDayAverageVolume(commodity domain.CommodityID) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	if !ok || len(s.history) == 0 {
		return 1
	}
	win := s.window()
	var sum int64
	for _, agg := range win {
		sum += agg.Volume
	}
	return sum / int64(len(win))
}

// ThirtyDayStandardDeviation returns the population standard deviation of
// the aggregate prices over the last ≤30 turns. With fewer than two
// aggregates the history is too short to be meaningful, so a default
// spread of 10% of the base price (at least 1) is returned instead.
func (m *Market) ThirtyDayStandardDeviation(commodity domain.CommodityID) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	if !ok || len(s.history) < 2 {
		fallback := float64(m.registry.BasePrice(commodity)) * 0.1
		if fallback < 1 {
			fallback = 1
		}
		return fallback
	}

	win := s.window()
	var sum float64
	for _, agg := range win {
		sum += float64(agg.Price)
	}
	mean := sum / float64(len(win))

	var variance float64
	for _, agg := range win {
		d := float64(agg.Price) - mean
		variance += d * d
	}
	variance /= float64(len(win))
	return math.Sqrt(variance)
}

// HasHistory reports whether the commodity has accumulated enough turn
// aggregates for the long-horizon statistics to be trusted. Strategies
// below this threshold fall back to bootstrapping behavior.
func (m *Market) HasHistory(commodity domain.CommodityID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	return ok && len(s.history) >= historyMinimum
}

// TurnAggregates returns a copy of the commodity's turn-aggregate history.
func (m *Market) TurnAggregates(commodity domain.CommodityID) []TurnAggregate {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stats[commodity]
	if !ok {
		return nil
	}
	out := make([]TurnAggregate, len(s.history))
	copy(out, s.history)
	return out
}
