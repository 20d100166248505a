package ha

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Message represents a base WebSocket message to/from Home Assistant
type Message struct {
	ID      int             `json:"id,omitempty"`
	Type    string          `json:"type"`
	Success *bool           `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	Event   *Event          `json:"event,omitempty"`
}

// Error represents an error response from Home Assistant
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AuthMessage represents authentication request
type AuthMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token,omitempty"`
}

// Event represents an event message from Home Assistant
type Event struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	Origin    string          `json:"origin"`
	TimeFired time.Time       `json:"time_fired"`
}

// StateChangedEvent represents a state_changed event
type StateChangedEvent struct {
	EntityID string `json:"entity_id"`
	NewState *State `json:"new_state"`
	OldState *State `json:"old_state"`
}

// State is a read-only snapshot of one entity: its domain (derived from the
// entity id), state string and attribute map. Snapshots are never mutated
// after they are received.
type State struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
	LastUpdated time.Time      `json:"last_updated"`
}

// NewState builds a snapshot, mostly for tests and custom sources.
func NewState(entityID, state string, attributes map[string]any) *State {
	if attributes == nil {
		attributes = map[string]any{}
	}
	return &State{EntityID: entityID, State: state, Attributes: attributes}
}

// Domain returns the part of the entity id before the first dot.
func (s *State) Domain() string {
	domain, _, _ := strings.Cut(s.EntityID, ".")
	return domain
}

// Attr returns a raw attribute value.
func (s *State) Attr(name string) (any, bool) {
	v, ok := s.Attributes[name]
	if ok && v == nil {
		return nil, false
	}
	return v, ok
}

// HasAttr reports whether a non-null attribute is present.
func (s *State) HasAttr(name string) bool {
	_, ok := s.Attr(name)
	return ok
}

// AttrString returns a string attribute or "".
func (s *State) AttrString(name string) string {
	v, ok := s.Attr(name)
	if !ok {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}

// AttrFloat returns a numeric attribute. Numeric strings are accepted.
func (s *State) AttrFloat(name string) (float64, bool) {
	v, ok := s.Attr(name)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// AttrBool returns a boolean attribute.
func (s *State) AttrBool(name string) (bool, bool) {
	v, ok := s.Attr(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// AttrStrings returns a list attribute as strings, skipping non-string items.
func (s *State) AttrStrings(name string) []string {
	v, ok := s.Attr(name)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			return strs
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// DeviceClass returns the device_class attribute.
func (s *State) DeviceClass() string {
	return s.AttrString(AttrDeviceClass)
}

// UnitOfMeasurement returns the unit_of_measurement attribute.
func (s *State) UnitOfMeasurement() string {
	return s.AttrString(AttrUnitOfMeasurement)
}

// SupportedFeatures returns the supported_features bitmask.
func (s *State) SupportedFeatures() int {
	f, ok := s.AttrFloat(AttrSupportedFeatures)
	if !ok {
		return 0
	}
	return int(f)
}

// Supports reports whether every bit of feature is set.
func (s *State) Supports(feature int) bool {
	return s.SupportedFeatures()&feature == feature
}

// ToFloat converts JSON-decoded numbers and numeric strings.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// CallServiceRequest represents a call_service request
type CallServiceRequest struct {
	ID          int            `json:"id"`
	Type        string         `json:"type"`
	Domain      string         `json:"domain"`
	Service     string         `json:"service"`
	ServiceData map[string]any `json:"service_data,omitempty"`
	Target      *ServiceTarget `json:"target,omitempty"`
}

// ServiceTarget represents service call target
type ServiceTarget struct {
	EntityID []string `json:"entity_id,omitempty"`
}

// GetStatesRequest represents a get_states request
type GetStatesRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// SubscribeEventsRequest represents a subscribe_events request
type SubscribeEventsRequest struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	EventType string `json:"event_type,omitempty"`
}

// CameraStreamRequest asks Home Assistant to start an HLS stream for a camera
type CameraStreamRequest struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	EntityID string `json:"entity_id"`
	Format   string `json:"format,omitempty"`
}

// CameraStreamResult is the result of a camera/stream request
type CameraStreamResult struct {
	URL string `json:"url"`
}

func (r *CallServiceRequest) messageID() int     { return r.ID }
func (r *GetStatesRequest) messageID() int       { return r.ID }
func (r *SubscribeEventsRequest) messageID() int { return r.ID }
func (r *CameraStreamRequest) messageID() int    { return r.ID }

// request is any outgoing message that expects a result
type request interface {
	messageID() int
}

// StateChangeHandler is called when a state change event is received
type StateChangeHandler func(entityID string, oldState, newState *State)

// Subscription represents an active event subscription
type Subscription interface {
	Unsubscribe() error
}
