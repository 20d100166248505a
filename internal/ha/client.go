package ha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AllEntities subscribes a handler to state changes of every entity.
const AllEntities = "*"

const requestTimeout = 10 * time.Second

var (
	// ErrNotConnected is returned by requests issued while the socket is down.
	ErrNotConnected = errors.New("not connected to Home Assistant")
	// ErrEntityNotFound is returned when Home Assistant has no such entity.
	ErrEntityNotFound = errors.New("entity not found")
)

// HAClient defines the interface for Home Assistant WebSocket client
type HAClient interface {
	Connect() error
	Disconnect() error
	IsConnected() bool
	GetState(entityID string) (*State, error)
	GetAllStates() ([]*State, error)
	CallService(ctx context.Context, domain, service string, data map[string]any) error
	CameraStreamURL(ctx context.Context, entityID string) (string, error)
	SubscribeStateChanges(entityID string, handler StateChangeHandler) (Subscription, error)
}

type subscriberEntry struct {
	subID   int
	handler StateChangeHandler
}

// Client implements HAClient over the Home Assistant websocket API
type Client struct {
	url         string
	token       string
	logger      *zap.Logger
	conn        *websocket.Conn
	connected   bool
	connMu      sync.RWMutex
	msgID       int
	msgIDMu     sync.Mutex
	pending     map[int]chan Message
	pendingMu   sync.Mutex
	subscribers map[string][]subscriberEntry
	subsMu      sync.RWMutex
	nextSubID   int
	ctx         context.Context
	cancel      context.CancelFunc
	reconnect   bool
	writeMu     sync.Mutex // Protects websocket writes
}

// NewClient creates a new Home Assistant WebSocket client
func NewClient(url, token string, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:         url,
		token:       token,
		logger:      logger,
		pending:     make(map[int]chan Message),
		subscribers: make(map[string][]subscriberEntry),
		ctx:         ctx,
		cancel:      cancel,
		reconnect:   true,
	}
}

// Connect dials the websocket, runs the auth handshake and subscribes to
// state_changed events. Subscribers registered before Connect are kept.
func (c *Client) Connect() error {
	c.connMu.Lock()
	if c.connected {
		c.connMu.Unlock()
		return fmt.Errorf("already connected")
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		c.connMu.Unlock()
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}

	if err := c.authenticate(conn); err != nil {
		conn.Close()
		c.connMu.Unlock()
		return err
	}

	c.conn = conn
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.connected = true
	c.reconnect = true
	c.logger.Info("Connected to Home Assistant", zap.String("url", c.url))

	go c.receiveMessages(conn)
	c.connMu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, requestTimeout)
	defer cancel()
	if _, err := c.sendMessage(ctx, &SubscribeEventsRequest{
		ID:        c.nextMsgID(),
		Type:      "subscribe_events",
		EventType: "state_changed",
	}); err != nil {
		c.logger.Warn("Failed to subscribe to state changes", zap.Error(err))
	}
	return nil
}

func (c *Client) authenticate(conn *websocket.Conn) error {
	var authRequired Message
	if err := conn.ReadJSON(&authRequired); err != nil {
		return fmt.Errorf("failed to read auth_required: %w", err)
	}
	if authRequired.Type != "auth_required" {
		return fmt.Errorf("expected auth_required, got %s", authRequired.Type)
	}

	if err := conn.WriteJSON(AuthMessage{Type: "auth", AccessToken: c.token}); err != nil {
		return fmt.Errorf("failed to send auth: %w", err)
	}

	var authResponse Message
	if err := conn.ReadJSON(&authResponse); err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}
	switch authResponse.Type {
	case "auth_ok":
		return nil
	case "auth_invalid":
		return fmt.Errorf("authentication failed: invalid token")
	default:
		return fmt.Errorf("expected auth_ok, got %s", authResponse.Type)
	}
}

// Disconnect closes the WebSocket connection and stops reconnecting
func (c *Client) Disconnect() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.reconnect = false
	c.cancel()
	if !c.connected {
		return nil
	}
	c.connected = false

	if c.conn != nil {
		c.writeMu.Lock()
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		c.conn.Close()
		c.conn = nil
	}

	c.logger.Info("Disconnected from Home Assistant")
	return nil
}

// IsConnected returns true if client is connected
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected
}

func (c *Client) nextMsgID() int {
	c.msgIDMu.Lock()
	defer c.msgIDMu.Unlock()
	c.msgID++
	return c.msgID
}

// sendMessage writes req and blocks until its result arrives, ctx expires or
// the client disconnects.
func (c *Client) sendMessage(ctx context.Context, req request) (*Message, error) {
	c.connMu.RLock()
	conn := c.conn
	connected := c.connected
	clientCtx := c.ctx
	c.connMu.RUnlock()
	if !connected || conn == nil {
		return nil, ErrNotConnected
	}

	msgID := req.messageID()
	respChan := make(chan Message, 1)
	c.pendingMu.Lock()
	c.pending[msgID] = respChan
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, msgID)
		c.pendingMu.Unlock()
	}()

	c.writeMu.Lock()
	err := conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	select {
	case resp := <-respChan:
		if resp.Success != nil && !*resp.Success {
			if resp.Error != nil {
				return nil, fmt.Errorf("HA error: %s - %s", resp.Error.Code, resp.Error.Message)
			}
			return nil, fmt.Errorf("request failed")
		}
		return &resp, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for response %d: %w", msgID, ctx.Err())
	case <-clientCtx.Done():
		return nil, fmt.Errorf("client disconnected")
	}
}

func (c *Client) receiveMessages(conn *websocket.Conn) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.ctx.Done():
				return
			default:
			}
			c.logger.Error("Failed to read message", zap.Error(err))
			c.handleDisconnect()
			return
		}

		if msg.Type == "event" {
			c.handleEvent(&msg)
			continue
		}

		if msg.ID > 0 {
			c.pendingMu.Lock()
			if ch, ok := c.pending[msg.ID]; ok {
				select {
				case ch <- msg:
				default:
					c.logger.Warn("Response channel full", zap.Int("msg_id", msg.ID))
				}
			}
			c.pendingMu.Unlock()
		}
	}
}

func (c *Client) handleEvent(msg *Message) {
	if msg.Event == nil || msg.Event.EventType != "state_changed" {
		return
	}

	var eventData StateChangedEvent
	if err := json.Unmarshal(msg.Event.Data, &eventData); err != nil {
		c.logger.Error("Failed to unmarshal state_changed event", zap.Error(err))
		return
	}

	c.subsMu.RLock()
	entries := append([]subscriberEntry(nil), c.subscribers[eventData.EntityID]...)
	entries = append(entries, c.subscribers[AllEntities]...)
	c.subsMu.RUnlock()

	for _, entry := range entries {
		entry.handler(eventData.EntityID, eventData.OldState, eventData.NewState)
	}
}

func (c *Client) handleDisconnect() {
	c.connMu.Lock()
	c.connected = false
	c.conn = nil
	reconnect := c.reconnect
	c.connMu.Unlock()

	c.logger.Warn("Connection lost")
	if reconnect {
		go c.attemptReconnect()
	}
}

// attemptReconnect tries to reconnect with exponential backoff
func (c *Client) attemptReconnect() {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		c.connMu.RLock()
		ctx := c.ctx
		c.connMu.RUnlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		c.logger.Info("Attempting to reconnect", zap.Duration("backoff", backoff))
		if err := c.Connect(); err != nil {
			c.logger.Error("Reconnection failed", zap.Error(err))
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		c.logger.Info("Reconnected successfully")
		return
	}
}

// GetState retrieves the state of an entity
func (c *Client) GetState(entityID string) (*State, error) {
	states, err := c.GetAllStates()
	if err != nil {
		return nil, err
	}
	for _, state := range states {
		if state.EntityID == entityID {
			return state, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", entityID, ErrEntityNotFound)
}

// GetAllStates retrieves all entity states
func (c *Client) GetAllStates() ([]*State, error) {
	resp, err := c.sendMessage(context.Background(), &GetStatesRequest{
		ID:   c.nextMsgID(),
		Type: "get_states",
	})
	if err != nil {
		return nil, err
	}

	var states []*State
	if err := json.Unmarshal(resp.Result, &states); err != nil {
		return nil, fmt.Errorf("failed to unmarshal states: %w", err)
	}
	return states, nil
}

// CallService calls a Home Assistant service
func (c *Client) CallService(ctx context.Context, domain, service string, data map[string]any) error {
	_, err := c.sendMessage(ctx, &CallServiceRequest{
		ID:          c.nextMsgID(),
		Type:        "call_service",
		Domain:      domain,
		Service:     service,
		ServiceData: data,
	})
	if err != nil {
		return fmt.Errorf("%s.%s: %w", domain, service, err)
	}
	return nil
}

// CameraStreamURL asks Home Assistant to start an HLS stream and returns its
// path, relative to the Home Assistant base URL.
func (c *Client) CameraStreamURL(ctx context.Context, entityID string) (string, error) {
	resp, err := c.sendMessage(ctx, &CameraStreamRequest{
		ID:       c.nextMsgID(),
		Type:     "camera/stream",
		EntityID: entityID,
		Format:   "hls",
	})
	if err != nil {
		return "", fmt.Errorf("camera stream for %s: %w", entityID, err)
	}

	var result CameraStreamResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal camera stream: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("camera stream for %s: empty url", entityID)
	}
	return result.URL, nil
}

// SubscribeStateChanges subscribes to state changes for a specific entity, or
// for every entity when entityID is AllEntities.
func (c *Client) SubscribeStateChanges(entityID string, handler StateChangeHandler) (Subscription, error) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	subID := c.nextSubID
	c.nextSubID++
	c.subscribers[entityID] = append(c.subscribers[entityID], subscriberEntry{subID: subID, handler: handler})

	return &subscription{entityID: entityID, subID: subID, client: c}, nil
}

func (c *Client) unsubscribe(entityID string, subID int) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	entries := c.subscribers[entityID]
	for i, entry := range entries {
		if entry.subID == subID {
			c.subscribers[entityID] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(c.subscribers[entityID]) == 0 {
		delete(c.subscribers, entityID)
	}
}

type subscription struct {
	entityID string
	subID    int
	client   *Client
}

func (s *subscription) Unsubscribe() error {
	s.client.unsubscribe(s.entityID, s.subID)
	return nil
}
