// Package state keeps the latest snapshot of every Home Assistant entity.
package state

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"yandexsmarthome/internal/ha"
)

// ChangeHandler is called after a snapshot is replaced. newState is nil when
// the entity was removed.
type ChangeHandler func(entityID string, oldState, newState *ha.State)

// Subscription represents an active change subscription
type Subscription interface {
	Unsubscribe()
}

type subscription struct {
	id    int
	store *Store
}

func (s *subscription) Unsubscribe() {
	s.store.unsubscribe(s.id)
}

// Store caches entity snapshots, seeded by get_states and kept current from
// state_changed events. Snapshots are replaced, never mutated.
type Store struct {
	client ha.HAClient
	logger *zap.Logger

	states   map[string]*ha.State
	statesMu sync.RWMutex

	handlers  map[int]ChangeHandler
	nextSubID int
	subsMu    sync.RWMutex

	haSub ha.Subscription
}

// NewStore creates an empty store backed by client
func NewStore(client ha.HAClient, logger *zap.Logger) *Store {
	return &Store{
		client:   client,
		logger:   logger,
		states:   make(map[string]*ha.State),
		handlers: make(map[int]ChangeHandler),
	}
}

// Start subscribes to every state change and loads the current states.
func (s *Store) Start() error {
	if s.haSub == nil {
		sub, err := s.client.SubscribeStateChanges(ha.AllEntities, s.handleStateChange)
		if err != nil {
			return fmt.Errorf("failed to subscribe to state changes: %w", err)
		}
		s.haSub = sub
	}
	return s.Sync()
}

// Stop drops the Home Assistant subscription.
func (s *Store) Stop() {
	if s.haSub != nil {
		if err := s.haSub.Unsubscribe(); err != nil {
			s.logger.Warn("Failed to unsubscribe from state changes", zap.Error(err))
		}
		s.haSub = nil
	}
}

// Sync replaces the cache with the current states from Home Assistant
func (s *Store) Sync() error {
	s.logger.Info("Syncing states from Home Assistant...")

	states, err := s.client.GetAllStates()
	if err != nil {
		return fmt.Errorf("failed to get states: %w", err)
	}

	fresh := make(map[string]*ha.State, len(states))
	for _, st := range states {
		if st == nil || st.EntityID == "" {
			continue
		}
		fresh[st.EntityID] = st
	}

	s.statesMu.Lock()
	s.states = fresh
	s.statesMu.Unlock()

	s.logger.Info("State sync complete", zap.Int("entities", len(fresh)))
	return nil
}

// Get returns the latest snapshot of an entity
func (s *Store) Get(entityID string) (*ha.State, bool) {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()
	st, ok := s.states[entityID]
	return st, ok
}

// EntityIDs returns every known entity id, sorted
func (s *Store) EntityIDs() []string {
	s.statesMu.RLock()
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	s.statesMu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Len returns the number of cached entities
func (s *Store) Len() int {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()
	return len(s.states)
}

// Subscribe registers a handler for snapshot changes
func (s *Store) Subscribe(handler ChangeHandler) Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.handlers[id] = handler
	return &subscription{id: id, store: s}
}

func (s *Store) unsubscribe(id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	delete(s.handlers, id)
}

func (s *Store) handleStateChange(entityID string, oldState, newState *ha.State) {
	s.statesMu.Lock()
	previous := s.states[entityID]
	if newState == nil {
		delete(s.states, entityID)
	} else {
		s.states[entityID] = newState
	}
	s.statesMu.Unlock()

	if previous == nil {
		previous = oldState
	}

	s.logger.Debug("State changed", zap.String("entity_id", entityID))

	s.subsMu.RLock()
	handlers := make([]ChangeHandler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.subsMu.RUnlock()

	for _, h := range handlers {
		h(entityID, previous, newState)
	}
}
