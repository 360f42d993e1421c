package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client is a connection to the flowboard daemon for live board updates.
// It batches outgoing events within a debounce window, reconnects with
// exponential backoff, and filters duplicate events by sequence number.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue chan Event
	debounce   time.Duration
	closed     bool

	maxRetries int
	baseDelay  time.Duration

	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc

	batcherDone chan struct{}
}

// NewClient creates a new event client but does not connect.
// FLOWBOARD_EVENT_DEBOUNCE_MS overrides the 100ms default batching window.
func NewClient(socketPath string) (*Client, error) {
	debounceMs := 100
	if envVal := os.Getenv("FLOWBOARD_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}, nil
}

// Connect establishes a connection to the daemon socket and sends an
// initial subscription for all projects.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{ProjectKey: ""},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error closing connection", "error", closeErr)
		}
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	go c.startBatcher()

	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Returns an error if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return fmt.Errorf("event queue full")
	}
}

// startBatcher collapses queued events into at most one notification per
// debounce window. Events for different projects collapse into a single
// all-projects notification.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending bool
	var eventType EventType
	var projectKey string

	flushPending := func() {
		if !pending {
			return
		}
		if err := c.sendToSocket(Event{
			Type:       eventType,
			ProjectKey: projectKey,
			Timestamp:  time.Now(),
		}); err != nil {
			if !isConnectionError(err) {
				slog.Error("failed to send batched event", "error", err)
			}
		}
		pending = false
	}

	merge := func(event Event) {
		if !pending {
			pending = true
			eventType = event.Type
			projectKey = event.ProjectKey
			return
		}
		if projectKey != event.ProjectKey {
			projectKey = "" // different projects in one window: notify all
		}
		if eventType != event.Type {
			eventType = EventIssueChanged
		}
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			merge(event)

			// Drain whatever else queued up during this window
		drainLoop:
			for {
				select {
				case evt, ok := <-c.eventQueue:
					if !ok {
						break drainLoop
					}
					merge(evt)
				default:
					break drainLoop
				}
			}

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendToSocket writes an event to the daemon socket.
func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to daemon")
	}

	// Short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msg := Message{Version: ProtocolVersion, Type: "event", Event: &event}
	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon. The returned channel
// receives events and is closed when the context is done or reconnection
// gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.readEvents(ctx, eventChan); err != nil {
				slog.Warn("connection lost, reconnecting", "error", err)

				if c.reconnect(ctx) {
					continue
				}

				slog.Warn("failed to reconnect, giving up", "attempts", c.maxRetries)
				return
			}
		}
	}
}

// readEvents reads messages from the socket and forwards them to eventChan.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return fmt.Errorf("connection closed")
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event != nil && msg.Event.SequenceID > c.lastSequence {
				c.lastSequence = msg.Event.SequenceID
				select {
				case eventChan <- *msg.Event:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong}); err != nil {
				// Broken pipe is expected during disconnection
				if !isConnectionError(err) {
					slog.Error("failed to send pong", "error", err)
				}
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "use of closed network connection")
}

// reconnect attempts to reconnect with exponential backoff, up to maxRetries.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				if err := c.conn.Close(); err != nil {
					slog.Error("error closing connection during reconnect", "error", err)
				}
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1)
				return true
			}

			delay *= 2 // 1s, 2s, 4s, 8s, 16s
		}
	}

	return false
}

// Subscribe changes the subscription to a specific project key.
// An empty key subscribes to all projects.
func (c *Client) Subscribe(projectKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to daemon")
	}

	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{ProjectKey: projectKey},
	}
	return c.encoder.Encode(msg)
}

// Close closes the connection to the daemon and stops all goroutines.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	// Closing the queue lets the batcher flush pending events before exiting
	if c.eventQueue != nil {
		close(c.eventQueue)
	}
	c.mu.Unlock()

	c.cancel()
	<-c.batcherDone

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}
