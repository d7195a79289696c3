package server

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zyedidia/generic/mapset"
)

// Server -> client events.
const (
	EventFullState  = "full_state"
	EventTick       = "tick"
	EventNews       = "news"
	EventToolResult = "tool_result"
	EventError      = "error"
)

// Client -> server actions.
const (
	ActionApplyTool = "apply_tool"
	ActionSetSpeed  = "set_speed"
)

const (
	sendBuffer      = 128
	broadcastBuffer = 256
)

// Envelope frames every websocket message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encode(typ string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: typ, Payload: payload})
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

type direct struct {
	c   *client
	msg []byte
}

// Hub fans messages out to the connected observers. Only run touches the
// client set.
type Hub struct {
	clients    mapset.Set[*client]
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	direct     chan direct
	done       chan struct{}
}

func newHub() *Hub {
	return &Hub{
		clients:    mapset.New[*client](),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		direct:     make(chan direct),
		done:       make(chan struct{}),
	}
}

// run serves the hub until stop is closed. Clients still connected then
// have their send channels closed.
func (h *Hub) run(stop <-chan struct{}) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients.Put(c)
			slog.Debug("observer connected", "client", c.id, "observers", h.clients.Size())
		case c := <-h.unregister:
			if h.clients.Has(c) {
				h.drop(c)
				slog.Debug("observer disconnected", "client", c.id, "observers", h.clients.Size())
			}
		case msg := <-h.broadcast:
			var slow []*client
			h.clients.Each(func(c *client) {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			})
			for _, c := range slow {
				slog.Warn("dropping slow observer", "client", c.id)
				h.drop(c)
			}
		case d := <-h.direct:
			if !h.clients.Has(d.c) {
				break
			}
			select {
			case d.c.send <- d.msg:
			default:
				slog.Warn("dropping slow observer", "client", d.c.id)
				h.drop(d.c)
			}
		case <-stop:
			h.clients.Each(func(c *client) { close(c.send) })
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.clients.Remove(c)
	close(c.send)
}

// Broadcast sends an event to every observer. It never blocks once the hub
// has stopped.
func (h *Hub) Broadcast(typ string, data any) {
	b, err := encode(typ, data)
	if err != nil {
		slog.Error("encode broadcast", "type", typ, "err", err)
		return
	}
	select {
	case h.broadcast <- b:
	case <-h.done:
	}
}

// Send delivers an event to one observer.
func (h *Hub) Send(c *client, typ string, data any) {
	b, err := encode(typ, data)
	if err != nil {
		slog.Error("encode reply", "type", typ, "err", err)
		return
	}
	select {
	case h.direct <- direct{c, b}:
	case <-h.done:
	}
}

func (h *Hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
