// Package server hosts one city: a ticker that steps it, a websocket hub
// that streams ticks and news to observers, and an HTTP API for map views
// and tools. Every access to the city goes through one mutex.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"citysim/internal/config"
	"citysim/internal/sim"
)

// MaxSpeed caps the ticks run per frame.
const MaxSpeed = 64

// Server owns a city and its observers.
type Server struct {
	id       uuid.UUID
	interval time.Duration
	hub      *Hub
	news     *newsText

	mu    deadlock.Mutex
	city  *sim.City
	speed int // ticks per frame, 0 paused
}

// New builds the city described by cfg.
func New(cfg *config.Config) (*Server, error) {
	city, err := sim.New(cfg.SimOptions())
	if err != nil {
		return nil, fmt.Errorf("new city: %w", err)
	}
	return &Server{
		id:       uuid.New(),
		interval: cfg.TickInterval(),
		hub:      newHub(),
		news:     newNewsText(cfg.LocaleDir, cfg.Locale),
		city:     city,
		speed:    min(cfg.TicksPerFrame, MaxSpeed),
	}, nil
}

// ID identifies this city instance.
func (s *Server) ID() uuid.UUID { return s.id }

// Run serves observers and steps the city every interval until ctx is
// done.
func (s *Server) Run(ctx context.Context) {
	go s.hub.run(ctx.Done())

	s.mu.Lock()
	slog.Info("simulation engine started", "city", s.id, "speed", s.speed, "interval", s.interval)
	s.mu.Unlock()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation engine stopped", "city", s.id, "tick", s.Stats().CityTime)
			return
		case <-ticker.C:
			s.frame()
		}
	}
}

// TickSummary is broadcast after every frame.
type TickSummary struct {
	Speed int `json:"speed"`
	sim.Stats
}

// frame runs the current number of ticks and publishes the result.
func (s *Server) frame() {
	s.mu.Lock()
	if s.speed == 0 {
		s.mu.Unlock()
		return
	}
	for i := 0; i < s.speed; i++ {
		s.city.Step()
	}
	summary := TickSummary{Speed: s.speed, Stats: s.city.Stats()}
	msgs := s.city.Messages()
	s.mu.Unlock()

	for _, m := range msgs {
		n := s.news.translate(m)
		slog.Info("city news", "kind", n.Kind, "x", n.X, "y", n.Y, "tick", n.Tick)
		s.hub.Broadcast(EventNews, n)
	}
	s.hub.Broadcast(EventTick, summary)
}

// SetSpeed changes the ticks run per frame; 0 pauses.
func (s *Server) SetSpeed(speed int) error {
	if speed < 0 || speed > MaxSpeed {
		return fmt.Errorf("%w: %d", ErrBadSpeed, speed)
	}
	s.mu.Lock()
	s.speed = speed
	s.mu.Unlock()
	slog.Debug("speed changed", "speed", speed)
	return nil
}

// Stats summarizes the city.
func (s *Server) Stats() sim.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city.Stats()
}
