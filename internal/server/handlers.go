package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"citysim/internal/disaster"
	"citysim/internal/tile"
	"citysim/internal/tool"
	"citysim/internal/world"
	"citysim/internal/zone"
)

var (
	ErrBadSpeed    = errors.New("server: speed out of range")
	ErrUnknownTool = errors.New("server: unknown tool")
)

// Routes returns the HTTP API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/city", s.getCity)
		r.Get("/map", s.getMap)
		r.Get("/overlays/{name}", s.getOverlay)
		r.Get("/power", s.getPower)
		r.Get("/sprites", s.getSprites)
		r.Post("/tools/{tool}", s.postTool)
		r.Post("/disasters/{kind}", s.postDisaster)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})
	r.Get("/ws", s.serveWS)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps a tool failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, zone.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, zone.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrUnknownTool):
		return http.StatusNotFound
	}
	return http.StatusConflict
}

type cityResponse struct {
	ID string `json:"id"`
	TickSummary
}

func (s *Server) getCity(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := cityResponse{ID: s.id.String(), TickSummary: TickSummary{Speed: s.speed, Stats: s.city.Stats()}}
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, resp)
}

// MapView is the tile grid, indexed [x][y].
type MapView struct {
	Width  int                                 `json:"width"`
	Height int                                 `json:"height"`
	Tiles  [tile.WorldX][tile.WorldY]tile.Tile `json:"tiles"`
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	v := &MapView{Width: tile.WorldX, Height: tile.WorldY}
	s.mu.Lock()
	v.Tiles = s.city.Map().Tiles
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, v)
}

// OverlayView is one derived map, indexed [x][y]. Scale is the number of
// tiles per cell along each axis.
type OverlayView struct {
	Name   string  `json:"name"`
	Scale  int     `json:"scale"`
	Values [][]int `json:"values"`
}

func half(m *world.HalfMap) [][]int {
	out := make([][]int, len(m))
	for x := range m {
		out[x] = append([]int(nil), m[x][:]...)
	}
	return out
}

func quarter(m *world.QuarterMap) [][]int {
	out := make([][]int, len(m))
	for x := range m {
		out[x] = append([]int(nil), m[x][:]...)
	}
	return out
}

func small(m *world.SmallMap) [][]int {
	out := make([][]int, len(m))
	for x := range m {
		out[x] = append([]int(nil), m[x][:]...)
	}
	return out
}

var overlays = map[string]struct {
	scale int
	read  func(m *world.Map) [][]int
}{
	"population":      {2, func(m *world.Map) [][]int { return half(&m.PopDensity) }},
	"traffic":         {2, func(m *world.Map) [][]int { return half(&m.TrafficDensity) }},
	"pollution":       {2, func(m *world.Map) [][]int { return half(&m.Pollution) }},
	"land_value":      {2, func(m *world.Map) [][]int { return half(&m.LandValue) }},
	"crime":           {2, func(m *world.Map) [][]int { return half(&m.Crime) }},
	"terrain":         {4, func(m *world.Map) [][]int { return quarter(&m.Terrain) }},
	"growth":          {8, func(m *world.Map) [][]int { return small(&m.GrowthRate) }},
	"fire_coverage":   {8, func(m *world.Map) [][]int { return small(&m.FireCoverage) }},
	"police_coverage": {8, func(m *world.Map) [][]int { return small(&m.PoliceCoverage) }},
	"commerce_rate":   {8, func(m *world.Map) [][]int { return small(&m.CommerceRate) }},
}

func (s *Server) getOverlay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	o, ok := overlays[name]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown overlay "+name)
		return
	}
	s.mu.Lock()
	values := o.read(s.city.Map())
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, OverlayView{Name: name, Scale: o.scale, Values: values})
}

// PowerView is the power map: one string per map row, '#' where powered.
type PowerView struct {
	Powered  int      `json:"powered"`
	Capacity int      `json:"capacity"`
	Dropped  int      `json:"dropped"`
	Rows     []string `json:"rows"`
}

func (s *Server) getPower(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.city.Stats()
	pm := s.city.Map().Power
	s.mu.Unlock()

	v := PowerView{Powered: st.PoweredTiles, Capacity: st.PowerCapacity, Dropped: st.PowerDropped}
	var b strings.Builder
	for y := 0; y < tile.WorldY; y++ {
		b.Reset()
		for x := 0; x < tile.WorldX; x++ {
			if pm.Test(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		v.Rows = append(v.Rows, b.String())
	}
	respondJSON(w, http.StatusOK, v)
}

// SpriteView is a sprite with its kind spelled out.
type SpriteView struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	// Tile under the sprite's reference point.
	TileX int `json:"tile_x"`
	TileY int `json:"tile_y"`
	Frame int `json:"frame"`
	Dir   int `json:"dir"`
}

func (s *Server) getSprites(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := s.city.Sprites()
	s.mu.Unlock()

	out := make([]SpriteView, 0, len(list))
	for i := range list {
		sp := &list[i]
		out = append(out, SpriteView{
			Name:  sp.Kind.String(),
			X:     sp.X,
			Y:     sp.Y,
			TileX: sp.HotX() >> 4,
			TileY: sp.HotY() >> 4,
			Frame: sp.Frame,
			Dir:   sp.Dir,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// ToolRequest applies a tool at a tile.
type ToolRequest struct {
	Tool string `json:"tool,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ToolResult reports a tool application to the caller and the observers.
type ToolResult struct {
	RequestID string       `json:"request_id"`
	Client    string       `json:"client,omitempty"`
	Tool      string       `json:"tool"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Result    string       `json:"result"`
	Funds     int          `json:"funds"`
	Status    *tool.Status `json:"status,omitempty"`
}

// applyTool runs a tool against the city and tells the observers.
func (s *Server) applyTool(req ToolRequest, clientID string) (ToolResult, error) {
	res := ToolResult{RequestID: uuid.NewString(), Client: clientID, Tool: req.Tool, X: req.X, Y: req.Y}
	k, ok := tool.Parse(req.Tool)
	if !ok {
		res.Result = "unknown_tool"
		return res, ErrUnknownTool
	}

	var err error
	s.mu.Lock()
	if k == tool.Query {
		if st, ok := s.city.Query(req.X, req.Y); ok {
			res.Result = zone.Ok.String()
			res.Status = &st
		} else {
			res.Result = zone.OutOfBounds.String()
			err = zone.ErrOutOfBounds
		}
	} else {
		r := s.city.Apply(k, req.X, req.Y)
		res.Result = r.String()
		err = r.Err()
	}
	res.Funds = s.city.Funds()
	s.mu.Unlock()

	if err != nil {
		slog.Warn("tool rejected", "tool", req.Tool, "x", req.X, "y", req.Y, "result", res.Result)
		return res, err
	}
	if k != tool.Query {
		s.hub.Broadcast(EventToolResult, res)
	}
	return res, nil
}

func (s *Server) postTool(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	req.Tool = chi.URLParam(r, "tool")
	res, err := s.applyTool(req, "")
	respondJSON(w, statusFor(err), res)
}

func (s *Server) postDisaster(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "kind")
	for _, k := range disaster.Kinds() {
		if k.String() != name {
			continue
		}
		s.mu.Lock()
		err := s.city.Trigger(k)
		s.mu.Unlock()
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		slog.Info("disaster triggered", "kind", name)
		respondJSON(w, http.StatusAccepted, map[string]string{"disaster": name})
		return
	}
	respondError(w, http.StatusNotFound, "unknown disaster "+name)
}
