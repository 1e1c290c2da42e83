package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/sim"
)

// ActorHandler serves actor balances, holdings, and resting orders.
type ActorHandler struct {
	sim *sim.Simulation
}

// NewActorHandler creates a new ActorHandler.
func NewActorHandler(s *sim.Simulation) *ActorHandler {
	return &ActorHandler{sim: s}
}

// actorSummaryResponse is one entry in GET /actors.
type actorSummaryResponse struct {
	ActorID       string `json:"actor_id"`
	Name          string `json:"name"`
	Money         int64  `json:"money"`
	ReservedMoney int64  `json:"reserved_money"`
}

// holdingResponse is one commodity position in an actor detail response.
type holdingResponse struct {
	Commodity string `json:"commodity"`
	Available int64  `json:"available"`
	Reserved  int64  `json:"reserved"`
}

// actorDetailResponse is the JSON response for GET /actors/{actor_id}.
type actorDetailResponse struct {
	ActorID       string            `json:"actor_id"`
	Name          string            `json:"name"`
	Money         int64             `json:"money"`
	ReservedMoney int64             `json:"reserved_money"`
	Holdings      []holdingResponse `json:"holdings"`
}

// orderResponse is one resting order in GET /actors/{actor_id}/orders.
type orderResponse struct {
	OrderID     string `json:"order_id"`
	Commodity   string `json:"commodity"`
	Side        string `json:"side"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	TurnCreated int64  `json:"turn_created"`
}

// List handles GET /actors.
func (h *ActorHandler) List(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	all := h.sim.Actors().All()
	out := make([]actorSummaryResponse, 0, len(all))
	for _, a := range all {
		out = append(out, actorSummaryResponse{
			ActorID:       a.ActorID,
			Name:          a.Name,
			Money:         a.Money,
			ReservedMoney: a.ReservedMoney,
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

// Get handles GET /actors/{actor_id}.
func (h *ActorHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	actor, ok := h.lookup(w, r)
	if !ok {
		return
	}

	holdings := make([]holdingResponse, 0)
	for _, id := range actor.Inventory.Commodities() {
		holdings = append(holdings, holdingResponse{
			Commodity: string(id),
			Available: actor.Inventory.AvailableQuantity(id),
			Reserved:  actor.Inventory.ReservedQuantity(id),
		})
	}

	WriteJSON(w, http.StatusOK, actorDetailResponse{
		ActorID:       actor.ActorID,
		Name:          actor.Name,
		Money:         actor.Money,
		ReservedMoney: actor.ReservedMoney,
		Holdings:      holdings,
	})
}

// ListOrders handles GET /actors/{actor_id}/orders. Orders are collected
// across every planet's market.
func (h *ActorHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	h.sim.RLock()
	defer h.sim.RUnlock()

	actor, ok := h.lookup(w, r)
	if !ok {
		return
	}

	buy := make([]orderResponse, 0)
	sell := make([]orderResponse, 0)
	for _, p := range h.sim.Planets() {
		orders := p.Market.GetActorOrders(actor)
		for _, o := range orders.Buy {
			buy = append(buy, toOrderResponse(o))
		}
		for _, o := range orders.Sell {
			sell = append(sell, toOrderResponse(o))
		}
	}

	WriteJSON(w, http.StatusOK, map[string][]orderResponse{
		"buy":  buy,
		"sell": sell,
	})
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:     o.OrderID,
		Commodity:   string(o.CommodityID),
		Side:        string(o.Side),
		Quantity:    o.Quantity,
		Price:       o.Price,
		TurnCreated: o.TurnCreated,
	}
}

// lookup resolves the actor_id URL param, writing the error response
// itself when the actor is unknown.
func (h *ActorHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Actor, bool) {
	actor, err := h.sim.Actors().Get(chi.URLParam(r, "actor_id"))
	if err != nil {
		if errors.Is(err, domain.ErrActorNotFound) {
			WriteError(w, http.StatusNotFound, "actor_not_found", "No actor with that ID")
		} else {
			WriteError(w, http.StatusInternalServerError, "internal_error", "Unexpected error")
		}
		return nil, false
	}
	return actor, true
}
