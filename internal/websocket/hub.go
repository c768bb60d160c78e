// Package websocket pushes league-night updates (matches starting and
// ending, placements coming in) to connected clients so the standings page
// doesn't poll. Clients subscribe to one event and only receive frames for
// it; all mutation still goes through the REST API.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is one frame pushed to subscribers.
type Message struct {
	Type    string      `json:"type"`
	EventID uint        `json:"eventId"`
	Payload interface{} `json:"payload,omitempty"`
}

type subscription struct {
	client  *Client
	eventID uint
}

type Hub struct {
	clients    map[*Client]uint
	register   chan *Client
	subscribe  chan subscription
	unregister chan *Client
	broadcast  chan Message
	stop       chan struct{}
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]uint),
		register:   make(chan *Client),
		subscribe:  make(chan subscription),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]uint)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = 0
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if _, ok := h.clients[sub.client]; ok {
				h.clients[sub.client] = sub.eventID
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("ERROR [websocket.Hub] failed to marshal message: %v", err)
				continue
			}
			h.mu.RLock()
			for client, eventID := range h.clients {
				if eventID != msg.EventID {
					continue
				}
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop the frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// BroadcastEvent implements service.Broadcaster.
func (h *Hub) BroadcastEvent(eventID uint, msgType string, payload interface{}) {
	select {
	case h.broadcast <- Message{Type: msgType, EventID: eventID, Payload: payload}:
	default:
		log.Printf("WARN [websocket.Hub] broadcast queue full, dropping %s for event %d", msgType, eventID)
	}
}
