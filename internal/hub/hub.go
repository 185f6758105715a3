package hub

import (
	"encoding/json"
	"sync"

	"github.com/jason-czar/Sportstreams/internal/config"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// Hub is the real-time fan-out registry. It owns the per-event channel sets
// and the subscription side-table; no other component mutates either. One Hub
// instance is constructed at startup and torn down at shutdown.
type Hub struct {
	clients       map[string]*Client            // clientID -> client
	channels      map[string]map[string]*Client // eventID -> clientID -> client
	subscriptions map[string]string             // clientID -> eventID

	broadcast chan *eventMessage
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	config config.WebSocketConfig
}

type eventMessage struct {
	EventID string
	Message []byte
}

// NewHub creates an empty registry. Call Run in its own goroutine.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:       make(map[string]*Client),
		channels:      make(map[string]map[string]*Client),
		subscriptions: make(map[string]string),
		broadcast:     make(chan *eventMessage, 256),
		done:          make(chan struct{}),
		config:        cfg,
	}
}

// Run consumes broadcast requests until Shutdown. Broadcasts are drained in
// FIFO order by this single goroutine, so the order in which callers enqueue
// messages for an event is the order in which subscribers observe them.
func (h *Hub) Run() {
	for {
		select {
		case msg := <-h.broadcast:
			h.deliver(msg)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Shutdown stops the Run loop and closes every connected client.
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Register adds a connection in the connected-but-unsubscribed state.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	log.L().Debug().Str(log.FieldClientID, client.ID).Msg("client registered")
}

// Unregister removes a connection and its subscription, if any. Safe to call
// more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.removeClient(client)
}

// Subscribe adds the client to an event's channel set. A client occupies at
// most one channel: joining a new event first leaves the previous one.
func (h *Hub) Subscribe(client *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.subscriptions[client.ID]; ok && prev != eventID {
		h.leaveLocked(client.ID, prev)
	}

	if _, ok := h.channels[eventID]; !ok {
		h.channels[eventID] = make(map[string]*Client)
	}
	h.channels[eventID][client.ID] = client
	h.subscriptions[client.ID] = eventID

	log.L().Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldEventID, eventID).
		Msg("client joined event channel")
}

// Unsubscribe removes the client from an event's channel set. A no-op when
// the client is not subscribed to that event.
func (h *Hub) Unsubscribe(client *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscriptions[client.ID] != eventID {
		return
	}
	h.leaveLocked(client.ID, eventID)

	log.L().Info().
		Str(log.FieldClientID, client.ID).
		Str(log.FieldEventID, eventID).
		Msg("client left event channel")
}

// SubscribedEvent returns the event the client currently occupies, if any.
func (h *Hub) SubscribedEvent(client *Client) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eventID, ok := h.subscriptions[client.ID]
	return eventID, ok
}

// Broadcast delivers message to every client currently subscribed to the
// event's channel, best effort. Marshal failures are the only reported error;
// per-client delivery failures are skipped silently.
func (h *Hub) Broadcast(eventID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- &eventMessage{EventID: eventID, Message: data}:
	case <-h.done:
	}
	return nil
}

// Count returns the number of clients subscribed to an event's channel.
func (h *Hub) Count(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[eventID])
}

// ActiveChannels returns the event IDs that currently have subscribers.
func (h *Hub) ActiveChannels() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.channels))
	for id := range h.channels {
		ids = append(ids, id)
	}
	return ids
}

// leaveLocked removes a client from a channel set and discards the channel
// when its set becomes empty. Caller holds h.mu.
func (h *Hub) leaveLocked(clientID, eventID string) {
	if members, ok := h.channels[eventID]; ok {
		delete(members, clientID)
		if len(members) == 0 {
			delete(h.channels, eventID)
		}
	}
	delete(h.subscriptions, clientID)
}

func (h *Hub) deliver(msg *eventMessage) {
	h.mu.RLock()
	var stale []*Client
	for _, client := range h.channels[msg.EventID] {
		if !client.trySend(msg.Message) {
			// Send buffer full: the transport is stalled or gone. Skip this
			// client and drop it; the rest of the set still gets the message.
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.removeClient(client)
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; ok {
		if eventID, subscribed := h.subscriptions[client.ID]; subscribed {
			h.leaveLocked(client.ID, eventID)
		}
		delete(h.clients, client.ID)
		client.closeSend()
	}
	h.mu.Unlock()
	log.L().Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		if eventID, subscribed := h.subscriptions[id]; subscribed {
			h.leaveLocked(id, eventID)
		}
		delete(h.clients, id)
		client.closeSend()
	}
}
