package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TopicAll receives every class event regardless of class id.
const TopicAll = "all"

// Event types
const (
	EventSeats  = "seats"
	EventStatus = "status"
)

// Hub maintains the set of active subscribers and fans class events out to them
type Hub struct {
	// Registered clients keyed by topic (a class id or TopicAll)
	clients map[string]map[*Client]bool

	broadcast  chan *ClassEvent
	register   chan *Client
	unregister chan *Client

	// Guards clients
	mu sync.RWMutex

	listenersMu sync.RWMutex
	listeners   []chan *ClassEvent

	// Closed when Run returns
	done chan struct{}

	logger zerolog.Logger
}

// ClassEvent is pushed to subscribers when a class changes
type ClassEvent struct {
	Type           string    `json:"type"`
	ClassID        string    `json:"classId"`
	AvailableSeats int       `json:"availableSeats"`
	TotalEnrolled  int       `json:"totalEnrolled"`
	Status         string    `json:"status,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *ClassEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.topic]; !ok {
		h.clients[client.topic] = make(map[*Client]bool)
	}
	h.clients[client.topic][client] = true

	h.logger.Debug().
		Str("topic", client.topic).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked expects h.mu to be held for writing
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.topic]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.topic)
	}

	h.logger.Debug().Str("topic", client.topic).Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// broadcastEvent writes to the class topic and TopicAll. Clients with a full
// buffer are dropped.
func (h *Hub) broadcastEvent(event *ClassEvent) {
	h.notifyListeners(event)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("classId", event.ClassID).Msg("Failed to marshal class event")
		return
	}

	var stale []*Client
	delivered := 0

	h.mu.RLock()
	for _, topic := range []string{event.ClassID, TopicAll} {
		for client := range h.clients[topic] {
			select {
			case client.send <- data:
				delivered++
			default:
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(stale) > 0 {
		h.mu.Lock()
		for _, client := range stale {
			h.removeLocked(client)
		}
		h.mu.Unlock()
	}

	h.logger.Debug().
		Str("classId", event.ClassID).
		Str("type", event.Type).
		Int("delivered", delivered).
		Msg("Class event broadcasted")
}

func (h *Hub) notifyListeners(event *ClassEvent) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow class event listener")
		}
	}
}

// PublishClassEvent queues an event without blocking the caller.
// Events are dropped when the queue is full.
func (h *Hub) PublishClassEvent(event ClassEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- &event:
	default:
		h.logger.Warn().Str("classId", event.ClassID).Msg("Class event queue full, dropping event")
	}
}

// ClientCount returns the number of subscribers on a topic
func (h *Hub) ClientCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

// AddListener registers a channel that receives every event before fan-out
func (h *Hub) AddListener(listener chan *ClassEvent) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan *ClassEvent) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
