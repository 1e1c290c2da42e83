package store

import (
	"sort"
	"sync"

	"github.com/tcgarvin/spacesim2/internal/domain"
)

// ActorStore is a thread-safe in-memory store for actors, keyed by
// actor_id. The simulation registers actors at setup; markets look them up
// at settlement time.
type ActorStore struct {
	mu     sync.RWMutex
	actors map[string]*domain.Actor
}

// NewActorStore creates an empty ActorStore.
func NewActorStore() *ActorStore {
	return &ActorStore{
		actors: make(map[string]*domain.Actor),
	}
}

// Create adds an actor to the store. It returns
// domain.ErrActorAlreadyExists if an actor with the same ID already exists.
func (s *ActorStore) Create(a *domain.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.actors[a.ActorID]; exists {
		return domain.ErrActorAlreadyExists
	}
	s.actors[a.ActorID] = a
	return nil
}

// Get retrieves an actor by ID. It returns domain.ErrActorNotFound if the
// actor does not exist.
func (s *ActorStore) Get(id string) (*domain.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.actors[id]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	return a, nil
}

// Exists returns true if an actor with the given ID exists.
func (s *ActorStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.actors[id]
	return ok
}

// All returns every actor, sorted by name for deterministic iteration.
func (s *ActorStore) All() []*domain.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
