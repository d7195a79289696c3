package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// SpeedRequest is the payload of set_speed.
type SpeedRequest struct {
	Speed int `json:"speed"`
}

// FullState greets a new observer.
type FullState struct {
	ClientID string `json:"client_id"`
	CityID   string `json:"city_id"`
	TickSummary
	Map MapView `json:"map"`
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade", "err", err)
		return
	}
	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, sendBuffer)}
	if err := s.sendFullState(c); err != nil {
		slog.Error("full state", "client", c.id, "err", err)
		conn.Close()
		return
	}
	if !s.hub.join(c) {
		conn.Close()
		return
	}
	go c.writer()
	go s.reader(c)
}

func (s *Server) sendFullState(c *client) error {
	st := &FullState{ClientID: c.id.String(), CityID: s.id.String()}
	st.Map.Width, st.Map.Height = len(st.Map.Tiles), len(st.Map.Tiles[0])

	s.mu.Lock()
	st.Speed = s.speed
	st.Stats = s.city.Stats()
	st.Map.Tiles = s.city.Map().Tiles
	s.mu.Unlock()

	b, err := encode(EventFullState, st)
	if err != nil {
		return err
	}
	c.send <- b
	return nil
}

func (s *Server) reader(c *client) {
	defer func() { s.hub.leave(c); c.conn.Close() }()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		switch env.Type {
		case ActionApplyTool:
			var req ToolRequest
			if json.Unmarshal(env.Payload, &req) != nil {
				continue
			}
			// Rejections and queries only concern the sender.
			if res, err := s.applyTool(req, c.id.String()); err != nil || res.Status != nil {
				s.hub.Send(c, EventToolResult, res)
			}
		case ActionSetSpeed:
			var req SpeedRequest
			if json.Unmarshal(env.Payload, &req) != nil {
				continue
			}
			if err := s.SetSpeed(req.Speed); err != nil {
				s.hub.Send(c, EventError, map[string]string{"error": err.Error()})
			}
		default:
			slog.Debug("unknown action", "client", c.id, "type", env.Type)
		}
	}
}

func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
