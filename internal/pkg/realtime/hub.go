package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	broadcastBuffer    = 256
	subscriptionBuffer = 32
)

// Hub maintains the set of active clients and routes events to them
type Hub struct {
	// Registered clients. Mutated only by the Run goroutine.
	clients map[*Client]struct{}

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	reply      chan outbound

	// guards clients for readers outside Run
	mu sync.RWMutex

	subsMu sync.Mutex
	subs   map[*subscription]struct{}

	done     chan struct{}
	stopOnce sync.Once

	logger zerolog.Logger
}

type outbound struct {
	client *Client
	data   []byte
}

type subscription struct {
	names map[string]struct{}
	ch    chan Event
}

func (s *subscription) wants(name string) bool {
	if len(s.names) == 0 {
		return true
	}
	_, ok := s.names[name]
	return ok
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		reply:      make(chan outbound),
		subs:       make(map[*subscription]struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled,
// then disconnects every client and closes every subscription.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.dispatch(event)

		case out := <-h.reply:
			if _, ok := h.clients[out.client]; ok {
				h.trySend(out.client, out.data)
			}
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	h.logger.Info().
		Str("userID", client.userID).
		Str("role", client.role).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Str("userID", client.userID).
			Msg("Client unregistered")
	}
}

// dispatch runs on the Run goroutine
func (h *Hub) dispatch(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Name).Msg("Failed to marshal event for broadcast")
		return
	}

	delivered := 0
	for client := range h.clients {
		if !event.deliversTo(client.userID, client.role) {
			continue
		}
		if h.trySend(client, data) {
			delivered++
		}
	}

	h.logger.Debug().
		Str("event", event.Name).
		Int("clientCount", delivered).
		Msg("Event broadcasted")
}

// trySend drops the client when its send buffer is full
func (h *Hub) trySend(client *Client, data []byte) bool {
	select {
	case client.send <- data:
		return true
	default:
		h.logger.Warn().Str("userID", client.userID).Msg("Dropping slow client")
		h.unregisterClient(client)
		return false
	}
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		h.mu.Unlock()

		h.subsMu.Lock()
		for sub := range h.subs {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.subsMu.Unlock()

		h.logger.Info().Msg("Realtime hub stopped")
	})
}

// Publish notifies in-process subscribers and queues the event for connected clients.
// It never blocks: when the queue is full the event is dropped.
func (h *Hub) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	h.notifySubscribers(e)

	select {
	case <-h.done:
	case h.broadcast <- e:
	default:
		h.logger.Warn().Str("event", e.Name).Msg("Broadcast queue full, event dropped")
	}
}

// Subscribe returns a channel receiving the named events (all events when
// no name is given). The channel is closed once ctx is cancelled or the hub
// stops, and nothing is delivered after that.
func (h *Hub) Subscribe(ctx context.Context, names ...string) <-chan Event {
	sub := &subscription{
		names: make(map[string]struct{}, len(names)),
		ch:    make(chan Event, subscriptionBuffer),
	}
	for _, n := range names {
		sub.names[n] = struct{}{}
	}

	h.subsMu.Lock()
	select {
	case <-h.done:
		h.subsMu.Unlock()
		close(sub.ch)
		return sub.ch
	default:
	}
	h.subs[sub] = struct{}{}
	h.subsMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-h.done:
		}
		h.subsMu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.subsMu.Unlock()
	}()

	return sub.ch
}

func (h *Hub) notifySubscribers(e Event) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()

	for sub := range h.subs {
		if !sub.wants(e.Name) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			h.logger.Warn().Str("event", e.Name).Msg("Skipped slow subscriber")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Online reports whether the user has at least one open connection
func (h *Hub) Online(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.userID == userID {
			return true
		}
	}
	return false
}

func (h *Hub) sendReply(c *Client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case h.reply <- outbound{client: c, data: data}:
	case <-h.done:
	}
}
