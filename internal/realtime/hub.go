package realtime

import (
	"context"

	"go.uber.org/zap"
)

type message struct {
	session string
	client  *Client // set for a reply to one client
	data    []byte
}

// Hub owns the connected clients, grouped by session, and fans messages
// out to the clients of one session.
type Hub struct {
	rooms map[string]map[*Client]bool

	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is cancelled, then drops every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.rooms {
				for c := range room {
					h.drop(c)
				}
			}
			return

		case c := <-h.register:
			room, ok := h.rooms[c.session]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[c.session] = room
			}
			room[c] = true
			h.log.Debug("client registered", zap.String("session", c.session), zap.Int("clients", len(room)))

		case c := <-h.unregister:
			if h.rooms[c.session][c] {
				h.drop(c)
			}

		case m := <-h.broadcast:
			if m.client != nil {
				if h.rooms[m.session][m.client] {
					h.deliver(m.client, m.data)
				}
				continue
			}
			for c := range h.rooms[m.session] {
				h.deliver(c, m.data)
			}
		}
	}
}

func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.log.Warn("dropping slow client", zap.String("session", c.session))
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	room := h.rooms[c.session]
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.session)
	}
	close(c.send)
	_ = c.conn.Close()
}

// Send queues data for every client of session. It is a no-op once the
// hub has stopped.
func (h *Hub) Send(session string, data []byte) {
	select {
	case h.broadcast <- message{session: session, data: data}:
	case <-h.done:
	}
}

func (h *Hub) sendTo(c *Client, data []byte) {
	select {
	case h.broadcast <- message{session: c.session, client: c, data: data}:
	case <-h.done:
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
