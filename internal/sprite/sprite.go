// Package sprite moves the city's vehicles, monsters and explosions. Each
// kind is a small state machine advanced once per movement frame; sprites
// interact with the map only by reading tiles and by wrecking them.
package sprite

import (
	"citysim/internal/event"
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
)

// Kind is the sprite type.
type Kind int

const (
	Train Kind = iota + 1
	Helicopter
	Airplane
	Ship
	Monster
	Tornado
	Explosion
	Bus
)

// KindCount sizes per-kind tables; index 0 is unused.
const KindCount = 9

var kindNames = [KindCount]string{"", "train", "helicopter", "airplane", "ship", "monster", "tornado", "explosion", "bus"}

func (k Kind) String() string {
	if k > 0 && k < KindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Sprite is one moving object. Positions are in pixels, sixteen per tile.
// Frame 0 means inactive; the sprite is unlinked on the next Move.
type Sprite struct {
	Kind       Kind `json:"kind"`
	X          int  `json:"x"`
	Y          int  `json:"y"`
	Frame      int  `json:"frame"`
	Dir        int  `json:"dir"`
	NewDir     int  `json:"-"`
	Count      int  `json:"-"`
	SoundCount int  `json:"-"`
	Step       int  `json:"-"`
	Flag       int  `json:"-"`
	Control    int  `json:"-"`
	Turn       int  `json:"-"`
	Speed      int  `json:"-"`

	Width   int `json:"width"`
	Height  int `json:"height"`
	XOffset int `json:"x_offset"`
	YOffset int `json:"y_offset"`
	XHot    int `json:"x_hot"`
	YHot    int `json:"y_hot"`

	OrigX int `json:"-"`
	OrigY int `json:"-"`
	DestX int `json:"dest_x"`
	DestY int `json:"dest_y"`

	// Base id of the last tile a ship checked; ships explode off water.
	under int
}

// HotX and HotY locate the sprite's reference point in pixels.
func (s *Sprite) HotX() int { return s.X + s.XHot }
func (s *Sprite) HotY() int { return s.Y + s.YHot }

// System owns every sprite of a city.
type System struct {
	m      *world.Map
	rnd    rng.Source
	events event.Sink

	list   []*Sprite // newest first
	global [KindCount]*Sprite
	free   []*Sprite
	cycle  int

	// NoDisasters turns off vehicle collisions.
	NoDisasters bool
	// PollutionPeakX/Y is the tile the monster heads for.
	PollutionPeakX, PollutionPeakY int
	// CrashX/Y is the tile of the last vehicle wreck.
	CrashX, CrashY int
}

// NewSystem returns an empty sprite system bound to a map and generator.
func NewSystem(m *world.Map, rnd rng.Source, events event.Sink) *System {
	if events == nil {
		events = event.Discard{}
	}
	return &System{m: m, rnd: rnd, events: events}
}

// Cycle counts Move calls.
func (s *System) Cycle() int { return s.cycle }

// Len is the number of linked sprites, active or not.
func (s *System) Len() int { return len(s.list) }

// Active returns copies of the active sprites, newest first.
func (s *System) Active() []Sprite {
	out := make([]Sprite, 0, len(s.list))
	for _, sp := range s.list {
		if sp.Frame != 0 {
			out = append(out, *sp)
		}
	}
	return out
}

// Get returns the active singleton of a kind, or nil.
func (s *System) Get(k Kind) *Sprite {
	sp := s.global[k]
	if sp == nil || sp.Frame == 0 {
		return nil
	}
	return sp
}

// Make reuses the kind's singleton if there is one, otherwise allocates.
func (s *System) Make(k Kind, x, y int) *Sprite {
	if sp := s.global[k]; sp != nil {
		s.init(sp, x, y)
		return sp
	}
	return s.MakeNew(k, x, y)
}

// MakeNew always links a fresh sprite.
func (s *System) MakeNew(k Kind, x, y int) *Sprite {
	var sp *Sprite
	if n := len(s.free); n > 0 {
		sp = s.free[n-1]
		s.free = s.free[:n-1]
		*sp = Sprite{}
	} else {
		sp = &Sprite{}
	}
	sp.Kind = k
	s.init(sp, x, y)
	s.list = append(s.list, nil)
	copy(s.list[1:], s.list)
	s.list[0] = sp
	return sp
}

// Clear deactivates every sprite; they are unlinked on the next Move.
func (s *System) Clear() {
	for _, sp := range s.list {
		sp.Frame = 0
	}
}

// Reset drops every sprite and restarts the cycle counter.
func (s *System) Reset() {
	s.list = nil
	s.free = nil
	s.global = [KindCount]*Sprite{}
	s.cycle = 0
}

func (s *System) destroy(sp *Sprite) {
	if s.global[sp.Kind] == sp {
		s.global[sp.Kind] = nil
	}
	for i, other := range s.list {
		if other == sp {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	s.free = append(s.free, sp)
}

func (s *System) init(sp *Sprite, x, y int) {
	k := sp.Kind
	*sp = Sprite{Kind: k, X: x, Y: y, Control: -1}
	if s.global[k] == nil {
		s.global[k] = sp
	}

	switch k {
	case Train:
		sp.Width, sp.Height = 32, 32
		sp.XOffset, sp.YOffset = 32, -16
		sp.XHot, sp.YHot = 40, -8
		sp.Frame = 1
		sp.Dir = 4
	case Ship:
		sp.Width, sp.Height = 48, 48
		sp.XOffset, sp.YOffset = 32, -16
		sp.XHot, sp.YHot = 48, 0
		switch {
		case x < 4<<4:
			sp.Frame = 3
		case x >= (tile.WorldX-4)<<4:
			sp.Frame = 7
		case y < 4<<4:
			sp.Frame = 5
		case y >= (tile.WorldY-4)<<4:
			sp.Frame = 1
		default:
			sp.Frame = 3
		}
		sp.NewDir = sp.Frame
		sp.Dir = 10
		sp.Count = 1
		sp.under = tile.River
	case Monster:
		sp.Width, sp.Height = 48, 48
		sp.XOffset, sp.YOffset = 24, 0
		sp.XHot, sp.YHot = 40, 16
		if x > (tile.WorldX<<4)/2 {
			if y > (tile.WorldY<<4)/2 {
				sp.Frame = 10
			} else {
				sp.Frame = 7
			}
		} else if y > (tile.WorldY<<4)/2 {
			sp.Frame = 1
		} else {
			sp.Frame = 4
		}
		sp.Count = 1000
		sp.DestX = s.PollutionPeakX << 4
		sp.DestY = s.PollutionPeakY << 4
		sp.OrigX, sp.OrigY = x, y
	case Helicopter:
		sp.Width, sp.Height = 32, 32
		sp.XOffset, sp.YOffset = 32, -16
		sp.XHot, sp.YHot = 40, -8
		sp.Frame = 5
		sp.Count = 1500
		sp.DestX = s.rnd.Rand((tile.WorldX << 4) - 1)
		sp.DestY = s.rnd.Rand((tile.WorldY << 4) - 1)
		sp.OrigX, sp.OrigY = x-30, y
	case Airplane:
		sp.Width, sp.Height = 48, 48
		sp.XOffset, sp.YOffset = 24, 0
		sp.XHot, sp.YHot = 48, 16
		if x > (tile.WorldX-20)<<4 {
			sp.X -= 100 + 48
			sp.DestX = sp.X - 200
			sp.Frame = 7
		} else {
			sp.DestX = sp.X + 200
			sp.Frame = 11
		}
		sp.DestY = sp.Y
	case Tornado:
		sp.Width, sp.Height = 48, 48
		sp.XOffset, sp.YOffset = 24, 0
		sp.XHot, sp.YHot = 40, 36
		sp.Frame = 1
		sp.Count = 200
	case Explosion:
		sp.Width, sp.Height = 48, 48
		sp.XOffset, sp.YOffset = 24, 0
		sp.XHot, sp.YHot = 40, 16
		sp.Frame = 1
	case Bus:
		sp.Width, sp.Height = 32, 32
		sp.XOffset, sp.YOffset = 30, -18
		sp.XHot, sp.YHot = 40, -8
		sp.Frame = 1
		sp.Dir = 1
		sp.Speed = 100
	}
}

// Move advances every active sprite by one frame and unlinks inactive ones.
// Sprites created during the pass are first moved on the next call.
func (s *System) Move() {
	s.cycle++
	pass := append([]*Sprite(nil), s.list...)
	for _, sp := range pass {
		if sp.Frame == 0 {
			s.destroy(sp)
			continue
		}
		switch sp.Kind {
		case Train:
			s.moveTrain(sp)
		case Helicopter:
			s.moveCopter(sp)
		case Airplane:
			s.moveAirplane(sp)
		case Ship:
			s.moveShip(sp)
		case Monster:
			s.moveMonster(sp)
		case Tornado:
			s.moveTornado(sp)
		case Explosion:
			s.moveExplosion(sp)
		case Bus:
			s.moveBus(sp)
		}
	}
}

// DispatchCopter sends an idle helicopter to a heavy-traffic tile.
func (s *System) DispatchCopter(x, y int) {
	if sp := s.Get(Helicopter); sp != nil && sp.Control == -1 {
		sp.DestX = x << 4
		sp.DestY = y << 4
	}
}

// DistanceToShip is the Manhattan pixel distance from the center of tile
// (x, y) to the nearest active ship, or 99999 without ships.
func (s *System) DistanceToShip(x, y int) int {
	best := 99999
	px, py := (x<<4)+8, (y<<4)+8
	for _, sp := range s.list {
		if sp.Kind != Ship || sp.Frame == 0 {
			continue
		}
		if d := abs(sp.HotX()-px) + abs(sp.HotY()-py); d < best {
			best = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
