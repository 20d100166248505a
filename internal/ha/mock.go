package ha

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"
)

// MockClient implements HAClient interface for testing
type MockClient struct {
	states       map[string]*State
	statesMu     sync.RWMutex
	subscribers  map[string][]subscriberEntry
	subsMu       sync.RWMutex
	nextSubID    int
	connected    bool
	connMu       sync.RWMutex
	serviceCalls []ServiceCall
	serviceErr   error
	streamURLs   map[string]string
	callsMu      sync.Mutex
}

// ServiceCall records a service call for testing
type ServiceCall struct {
	Domain  string
	Service string
	Data    map[string]any
	Time    time.Time
}

type mockSubscription struct {
	entityID string
	subID    int
	mock     *MockClient
}

func (s *mockSubscription) Unsubscribe() error {
	s.mock.unsubscribe(s.entityID, s.subID)
	return nil
}

// NewMockClient creates a new mock HA client
func NewMockClient() *MockClient {
	return &MockClient{
		states:      make(map[string]*State),
		subscribers: make(map[string][]subscriberEntry),
		streamURLs:  make(map[string]string),
	}
}

// Connect simulates connecting to Home Assistant
func (m *MockClient) Connect() error {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	m.connected = true
	return nil
}

// Disconnect simulates disconnecting
func (m *MockClient) Disconnect() error {
	m.connMu.Lock()
	defer m.connMu.Unlock()
	m.connected = false
	return nil
}

// IsConnected returns connection status
func (m *MockClient) IsConnected() bool {
	m.connMu.RLock()
	defer m.connMu.RUnlock()
	return m.connected
}

// GetState retrieves a mock state
func (m *MockClient) GetState(entityID string) (*State, error) {
	m.statesMu.RLock()
	defer m.statesMu.RUnlock()

	state, ok := m.states[entityID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", entityID, ErrEntityNotFound)
	}
	return state, nil
}

// GetAllStates retrieves all mock states
func (m *MockClient) GetAllStates() ([]*State, error) {
	m.statesMu.RLock()
	defer m.statesMu.RUnlock()

	states := make([]*State, 0, len(m.states))
	for _, state := range m.states {
		states = append(states, state)
	}
	return states, nil
}

// CallService records a service call. turn_on / turn_off also flip the
// target entity's state so follow-up queries observe the command.
func (m *MockClient) CallService(ctx context.Context, domain, service string, data map[string]any) error {
	m.callsMu.Lock()
	m.serviceCalls = append(m.serviceCalls, ServiceCall{
		Domain:  domain,
		Service: service,
		Data:    data,
		Time:    time.Now(),
	})
	err := m.serviceErr
	m.callsMu.Unlock()

	if err != nil {
		return fmt.Errorf("%s.%s: %w", domain, service, err)
	}

	if entityID, ok := data[AttrEntityID].(string); ok {
		switch service {
		case ServiceTurnOn:
			m.updateState(entityID, StateOn)
		case ServiceTurnOff:
			m.updateState(entityID, StateOff)
		}
	}
	return nil
}

// CameraStreamURL returns the stream path registered with SetStreamURL.
func (m *MockClient) CameraStreamURL(ctx context.Context, entityID string) (string, error) {
	m.callsMu.Lock()
	defer m.callsMu.Unlock()

	url, ok := m.streamURLs[entityID]
	if !ok {
		return "", fmt.Errorf("camera stream for %s: %w", entityID, ErrEntityNotFound)
	}
	return url, nil
}

// SubscribeStateChanges subscribes to state changes
func (m *MockClient) SubscribeStateChanges(entityID string, handler StateChangeHandler) (Subscription, error) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	subID := m.nextSubID
	m.nextSubID++
	m.subscribers[entityID] = append(m.subscribers[entityID], subscriberEntry{subID: subID, handler: handler})

	return &mockSubscription{entityID: entityID, subID: subID, mock: m}, nil
}

func (m *MockClient) unsubscribe(entityID string, subID int) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	entries := m.subscribers[entityID]
	for i, entry := range entries {
		if entry.subID == subID {
			m.subscribers[entityID] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(m.subscribers[entityID]) == 0 {
		delete(m.subscribers, entityID)
	}
}

// SetState sets a mock state and notifies subscribers
func (m *MockClient) SetState(entityID string, stateValue string, attributes map[string]any) {
	now := time.Now()
	newState := NewState(entityID, stateValue, attributes)
	newState.LastChanged = now
	newState.LastUpdated = now

	m.statesMu.Lock()
	oldState := m.states[entityID]
	m.states[entityID] = newState
	m.statesMu.Unlock()

	m.notifySubscribers(entityID, oldState, newState)
}

// RemoveState deletes a mock entity and notifies subscribers with a nil new state
func (m *MockClient) RemoveState(entityID string) {
	m.statesMu.Lock()
	oldState, ok := m.states[entityID]
	delete(m.states, entityID)
	m.statesMu.Unlock()

	if ok {
		m.notifySubscribers(entityID, oldState, nil)
	}
}

// SetServiceError makes every following CallService fail with err
func (m *MockClient) SetServiceError(err error) {
	m.callsMu.Lock()
	defer m.callsMu.Unlock()
	m.serviceErr = err
}

// SetStreamURL registers the stream path returned for a camera
func (m *MockClient) SetStreamURL(entityID, url string) {
	m.callsMu.Lock()
	defer m.callsMu.Unlock()
	m.streamURLs[entityID] = url
}

// GetServiceCalls returns all recorded service calls
func (m *MockClient) GetServiceCalls() []ServiceCall {
	m.callsMu.Lock()
	defer m.callsMu.Unlock()

	calls := make([]ServiceCall, len(m.serviceCalls))
	copy(calls, m.serviceCalls)
	return calls
}

// ClearServiceCalls clears the service call history
func (m *MockClient) ClearServiceCalls() {
	m.callsMu.Lock()
	defer m.callsMu.Unlock()
	m.serviceCalls = nil
}

func (m *MockClient) updateState(entityID, stateValue string) {
	m.statesMu.Lock()
	oldState, ok := m.states[entityID]
	if !ok {
		m.statesMu.Unlock()
		return
	}
	now := time.Now()
	newState := &State{
		EntityID:    entityID,
		State:       stateValue,
		Attributes:  maps.Clone(oldState.Attributes),
		LastChanged: now,
		LastUpdated: now,
	}
	m.states[entityID] = newState
	m.statesMu.Unlock()

	m.notifySubscribers(entityID, oldState, newState)
}

func (m *MockClient) notifySubscribers(entityID string, oldState, newState *State) {
	m.subsMu.RLock()
	entries := append([]subscriberEntry(nil), m.subscribers[entityID]...)
	entries = append(entries, m.subscribers[AllEntities]...)
	m.subsMu.RUnlock()

	for _, entry := range entries {
		entry.handler(entityID, oldState, newState)
	}
}
