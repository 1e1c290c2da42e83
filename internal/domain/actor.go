package domain

import (
	"time"

	"github.com/google/uuid"
)

// Actor represents an economic participant in the simulation. Money is the
// spendable balance; ReservedMoney is escrow held against the actor's
// resting buy orders. Only the Market moves funds between the two pools —
// decision logic spends from Money and never touches ReservedMoney.
type Actor struct {
	ActorID       string
	Name          string
	Money         int64
	ReservedMoney int64
	Inventory     *Inventory
	CreatedAt     time.Time
}

// NewActor creates an actor with the given name and starting money.
func NewActor(name string, money int64) *Actor {
	return &Actor{
		ActorID:   uuid.New().String(),
		Name:      name,
		Money:     money,
		Inventory: NewInventory(),
		CreatedAt: time.Now(),
	}
}

// TotalMoney returns the actor's money across both pools. Conservation
// arguments are stated in terms of this sum.
func (a *Actor) TotalMoney() int64 {
	return a.Money + a.ReservedMoney
}
