package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/tcgarvin/spacesim2/internal/domain"
	"github.com/tcgarvin/spacesim2/internal/market"
	"github.com/tcgarvin/spacesim2/internal/store"
)

// Planet is one trading location: a market plus the actors based there.
type Planet struct {
	Name   string
	Market *market.Market
	Actors []*domain.Actor
}

// Simulation is the turn-loop orchestrator. Each turn it shuffles the
// actors on every planet with its injected rng, lets each actor's brain
// submit market commands, then runs one batch matching pass per market.
//
// The simulation holds the write lock for the duration of a turn; the
// monitor API takes the read lock to snapshot state between turns.
type Simulation struct {
	mu       sync.RWMutex
	registry *domain.Registry
	actors   *store.ActorStore
	planets  []*Planet
	brains   map[string]Brain // actor_id → brain
	rng      *rand.Rand
	logger   *slog.Logger
	turn     int64
}

// New creates an empty simulation. The rng is the single source of
// randomness: turn-order shuffling and brain parameter draws all come from
// it, so a fixed seed reproduces a run exactly.
func New(registry *domain.Registry, rng *rand.Rand, logger *slog.Logger) *Simulation {
	return &Simulation{
		registry: registry,
		actors:   store.NewActorStore(),
		brains:   make(map[string]Brain),
		rng:      rng,
		logger:   logger,
	}
}

// RLock acquires the read lock for monitor snapshots.
func (s *Simulation) RLock() {
	s.mu.RLock()
}

// RUnlock releases the read lock.
func (s *Simulation) RUnlock() {
	s.mu.RUnlock()
}

// Registry returns the commodity registry.
func (s *Simulation) Registry() *domain.Registry {
	return s.registry
}

// Actors returns the actor store.
func (s *Simulation) Actors() *store.ActorStore {
	return s.actors
}

// Planets returns the planet list. Fixed after setup.
func (s *Simulation) Planets() []*Planet {
	return s.planets
}

// Planet returns a planet by name, or nil.
func (s *Simulation) Planet(name string) *Planet {
	for _, p := range s.planets {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// CurrentTurn returns the number of completed turns. Callers racing the
// turn loop hold RLock; the method itself does not lock so it can be
// used inside a monitor snapshot.
func (s *Simulation) CurrentTurn() int64 {
	return s.turn
}

// AddPlanet creates a planet with its own market and returns it.
func (s *Simulation) AddPlanet(name string) *Planet {
	p := &Planet{
		Name:   name,
		Market: market.New(s.registry, s.actors),
	}
	s.planets = append(s.planets, p)
	return p
}

// AddActor registers an actor on a planet with the brain that will drive
// it.
func (s *Simulation) AddActor(p *Planet, actor *domain.Actor, brain Brain) error {
	if err := s.actors.Create(actor); err != nil {
		return err
	}
	p.Actors = append(p.Actors, actor)
	s.brains[actor.ActorID] = brain
	return nil
}

// RunTurn advances the simulation by one turn.
func (s *Simulation) RunTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turn++
	for _, p := range s.planets {
		p.Market.SetCurrentTurn(s.turn)

		// Shuffled submission order for fairness across turns.
		order := make([]*domain.Actor, len(p.Actors))
		copy(order, p.Actors)
		s.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, actor := range order {
			s.runActor(p, actor)
		}

		txs := p.Market.MatchOrders()
		var volume int64
		for _, tx := range txs {
			volume += tx.Quantity
		}
		s.logger.Debug("turn matched",
			slog.Int64("turn", s.turn),
			slog.String("planet", p.Name),
			slog.Int("trades", len(txs)),
			slog.Int64("volume", volume),
			slog.Int("open_orders", p.Market.OpenOrderCount()),
		)
	}
}

// runActor executes one actor's economic action and market commands.
// Rejected commands are expected (clamps, stale cancels) and only logged.
func (s *Simulation) runActor(p *Planet, actor *domain.Actor) {
	brain, ok := s.brains[actor.ActorID]
	if !ok {
		return
	}

	if cmd := brain.DecideEconomicAction(actor, p.Market); cmd != nil {
		if err := cmd.Execute(actor, p.Market); err != nil {
			s.logger.Debug("economic action rejected",
				slog.String("actor", actor.Name),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, cmd := range brain.DecideMarketActions(actor, p.Market) {
		if err := cmd.Execute(actor, p.Market); err != nil && !errors.Is(err, domain.ErrOrderRejected) {
			s.logger.Debug("market action rejected",
				slog.String("actor", actor.Name),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Run executes the given number of turns.
func (s *Simulation) Run(turns int) {
	for i := 0; i < turns; i++ {
		s.RunTurn()
	}
}

// SetupSimple populates the simulation with the requested planets, each
// holding colonists and market makers with modest starting money and
// goods. Colonists start with a food buffer; makers hold inventory in
// every commodity so both sides of each book see liquidity from turn one.
func (s *Simulation) SetupSimple(planets, colonists, makers int) error {
	const (
		colonistMoney = 100
		makerMoney    = 1000
		makerStock    = 20
	)

	food := domain.CommodityID("food")

	for pi := 1; pi <= planets; pi++ {
		p := s.AddPlanet(fmt.Sprintf("Planet-%d", pi))

		for i := 1; i <= colonists; i++ {
			actor := domain.NewActor(fmt.Sprintf("%s Colonist-%d", p.Name, i), colonistMoney)
			actor.Inventory.Add(food, 10)
			if err := s.AddActor(p, actor, NewColonistBrain(food)); err != nil {
				return err
			}
		}

		for i := 1; i <= makers; i++ {
			actor := domain.NewActor(fmt.Sprintf("%s Maker-%d", p.Name, i), makerMoney)
			for _, c := range s.registry.All() {
				actor.Inventory.Add(c.ID, makerStock)
			}
			if err := s.AddActor(p, actor, NewMarketMakerBrain(s.registry, s.rng)); err != nil {
				return err
			}
		}
	}
	return nil
}
