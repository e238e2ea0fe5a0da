package sse

import (
	"sync"
)

// AdminRoom receives every admin-facing event.
const AdminRoom = "admin"

// UserRoom returns the private room of a single user.
func UserRoom(userID string) string {
	return "user:" + userID
}

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Room  string
	Event string
	Data  interface{}
}

// Hub manages SSE subscribers and event broadcasting. A subscriber may join
// several rooms through one channel.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a channel in every given room and returns it with a cleanup function.
func (h *Hub) Subscribe(rooms ...string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[chan Event]struct{})
		}
		h.rooms[room][ch] = struct{}{}
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, room := range rooms {
				delete(h.rooms[room], ch)
				if len(h.rooms[room]) == 0 {
					delete(h.rooms, room)
				}
			}
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a room. Full channels are skipped.
func (h *Hub) Publish(room string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Room = room
	for ch := range h.rooms[room] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers in a room
func (h *Hub) SubscriberCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}
