package domain

// Inventory tracks an actor's commodity holdings, split into an available
// pool and a reserved pool. The reserved pool is escrow held against the
// actor's resting sell orders: only the Market moves quantity between the
// pools, while actor decision logic spends from the available pool.
type Inventory struct {
	available map[CommodityID]int64
	reserved  map[CommodityID]int64
}

// NewInventory creates an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{
		available: make(map[CommodityID]int64),
		reserved:  make(map[CommodityID]int64),
	}
}

// Add credits quantity to the available pool. Non-positive quantities are
// ignored.
func (inv *Inventory) Add(id CommodityID, qty int64) {
	if qty <= 0 {
		return
	}
	inv.available[id] += qty
}

// Remove debits quantity from the available pool. Returns false without
// any change if not enough is available.
func (inv *Inventory) Remove(id CommodityID, qty int64) bool {
	if qty <= 0 {
		return true
	}
	if inv.available[id] < qty {
		return false
	}
	inv.available[id] -= qty
	if inv.available[id] == 0 {
		delete(inv.available, id)
	}
	return true
}

// Reserve moves quantity from the available pool to the reserved pool.
// Returns false without any change if not enough is available.
func (inv *Inventory) Reserve(id CommodityID, qty int64) bool {
	if qty <= 0 {
		return true
	}
	if inv.available[id] < qty {
		return false
	}
	inv.available[id] -= qty
	if inv.available[id] == 0 {
		delete(inv.available, id)
	}
	inv.reserved[id] += qty
	return true
}

// Unreserve moves quantity from the reserved pool back to the available
// pool. Clamps at the currently reserved quantity.
func (inv *Inventory) Unreserve(id CommodityID, qty int64) {
	if qty <= 0 {
		return
	}
	if qty > inv.reserved[id] {
		qty = inv.reserved[id]
	}
	inv.reserved[id] -= qty
	if inv.reserved[id] == 0 {
		delete(inv.reserved, id)
	}
	inv.available[id] += qty
}

// ConsumeReserved removes quantity from the reserved pool without
// returning it to the available pool. Called by settlement when a sell
// order fills: the goods leave the seller entirely. Returns false if the
// reserved pool holds less than qty.
func (inv *Inventory) ConsumeReserved(id CommodityID, qty int64) bool {
	if qty <= 0 {
		return true
	}
	if inv.reserved[id] < qty {
		return false
	}
	inv.reserved[id] -= qty
	if inv.reserved[id] == 0 {
		delete(inv.reserved, id)
	}
	return true
}

// AvailableQuantity returns the unreserved quantity held for the commodity.
func (inv *Inventory) AvailableQuantity(id CommodityID) int64 {
	return inv.available[id]
}

// ReservedQuantity returns the quantity escrowed for resting sell orders.
func (inv *Inventory) ReservedQuantity(id CommodityID) int64 {
	return inv.reserved[id]
}

// Quantity returns the total quantity held (available + reserved).
func (inv *Inventory) Quantity(id CommodityID) int64 {
	return inv.available[id] + inv.reserved[id]
}

// Commodities returns the IDs of every commodity with a non-zero total
// quantity.
func (inv *Inventory) Commodities() []CommodityID {
	seen := make(map[CommodityID]bool)
	for id := range inv.available {
		seen[id] = true
	}
	for id := range inv.reserved {
		seen[id] = true
	}
	out := make([]CommodityID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out
}
