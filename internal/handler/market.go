package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/sim"
)

// MarketHandler serves simulation status and per-planet market views.
type MarketHandler struct {
	sim *sim.Simulation
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(s *sim.Simulation) *MarketHandler {
	return &MarketHandler{sim: s}
}

// statusResponse is the JSON response for GET /status.
type statusResponse struct {
	Turn    int64    `json:"turn"`
	Planets []string `json:"planets"`
	Actors  int      `json:"actors"`
}

// commodityResponse is one entry in GET /commodities.
type commodityResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Transportable bool   `json:"transportable"`
	BasePrice     int64  `json:"base_price"`
}

// statsResponse is the JSON response for commodity stats.
type statsResponse struct {
	Planet           string  `json:"planet"`
	Commodity        string  `json:"commodity"`
	Turn             int64   `json:"turn"`
	SpotPrice        int64   `json:"spot_price"`
	BestBid          *int64  `json:"best_bid"`
	BestAsk          *int64  `json:"best_ask"`
	AveragePrice30   int64   `json:"average_price_30"`
	AverageVolume30  int64   `json:"average_volume_30"`
	StdDeviation30   float64 `json:"std_deviation_30"`
	HasHistory       bool    `json:"has_history"`
	TransactionCount int     `json:"transaction_count"`
}

// bookLevelResponse is a single price level in the book response.
type bookLevelResponse struct {
	Price         int64 `json:"price"`
	TotalQuantity int64 `json:"total_quantity"`
	OrderCount    int   `json:"order_count"`
}

// bookResponse is the JSON response for a commodity's order book.
type bookResponse struct {
	Planet    string              `json:"planet"`
	Commodity string              `json:"commodity"`
	Turn      int64               `json:"turn"`
	Bids      []bookLevelResponse `json:"bids"`
	Asks      []bookLevelResponse `json:"asks"`
}

// GetStatus handles GET /status.
func (h *MarketHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	names := make([]string, 0, len(h.sim.Planets()))
	for _, p := range h.sim.Planets() {
		names = append(names, p.Name)
	}
	WriteJSON(w, http.StatusOK, statusResponse{
		Turn:    h.sim.CurrentTurn(),
		Planets: names,
		Actors:  len(h.sim.Actors().All()),
	})
}

// ListCommodities handles GET /commodities.
func (h *MarketHandler) ListCommodities(w http.ResponseWriter, r *http.Request) {
	all := h.sim.Registry().All()
	out := make([]commodityResponse, 0, len(all))
	for _, c := range all {
		out = append(out, commodityResponse{
			ID:            string(c.ID),
			Name:          c.Name,
			Transportable: c.Transportable,
			BasePrice:     c.BasePrice,
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetStats handles GET /planets/{planet}/commodities/{commodity}/stats.
func (h *MarketHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	planet, commodity, ok := h.resolve(w, r)
	if !ok {
		return
	}

	mkt := planet.Market
	resp := statsResponse{
		Planet:           planet.Name,
		Commodity:        string(commodity),
		Turn:             mkt.CurrentTurn(),
		SpotPrice:        mkt.AvgPrice(commodity),
		AveragePrice30:   mkt.ThirtyDayAveragePrice(commodity),
		AverageVolume30:  mkt.ThirtyDayAverageVolume(commodity),
		StdDeviation30:   mkt.ThirtyDayStandardDeviation(commodity),
		HasHistory:       mkt.HasHistory(commodity),
		TransactionCount: len(mkt.Transactions(commodity)),
	}
	if bid, ask, hasSpread := mkt.BidAskSpread(commodity); hasSpread {
		resp.BestBid = &bid
		resp.BestAsk = &ask
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetBook handles GET /planets/{planet}/commodities/{commodity}/book.
func (h *MarketHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	planet, commodity, ok := h.resolve(w, r)
	if !ok {
		return
	}

	depth := 10
	if v := r.URL.Query().Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > 50 {
			WriteError(w, http.StatusBadRequest, "invalid_request",
				"depth must be an integer between 1 and 50")
			return
		}
		depth = d
	}

	mkt := planet.Market
	bids := mkt.TopBids(commodity, depth)
	asks := mkt.TopAsks(commodity, depth)

	resp := bookResponse{
		Planet:    planet.Name,
		Commodity: string(commodity),
		Turn:      mkt.CurrentTurn(),
		Bids:      make([]bookLevelResponse, len(bids)),
		Asks:      make([]bookLevelResponse, len(asks)),
	}
	for i, pl := range bids {
		resp.Bids[i] = bookLevelResponse{Price: pl.Price, TotalQuantity: pl.TotalQuantity, OrderCount: pl.OrderCount}
	}
	for i, pl := range asks {
		resp.Asks[i] = bookLevelResponse{Price: pl.Price, TotalQuantity: pl.TotalQuantity, OrderCount: pl.OrderCount}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// resolve extracts and validates the planet and commodity URL params,
// writing the error response itself when either is unknown.
func (h *MarketHandler) resolve(w http.ResponseWriter, r *http.Request) (*sim.Planet, domain.CommodityID, bool) {
	planet := h.sim.Planet(chi.URLParam(r, "planet"))
	if planet == nil {
		WriteError(w, http.StatusNotFound, "planet_not_found", "No planet with that name")
		return nil, "", false
	}
	commodity := domain.CommodityID(chi.URLParam(r, "commodity"))
	if !h.sim.Registry().Exists(commodity) {
		WriteError(w, http.StatusNotFound, "unknown_commodity", "No commodity with that ID")
		return nil, "", false
	}
	return planet, commodity, true
}
