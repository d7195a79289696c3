// Package traffic simulates commuting: a zone sends a car along the road
// network looking for a destination of the right type, and successful trips
// raise the traffic density of the roads they used. It also runs the
// per-tile upkeep of roads, rails and drawbridges.
package traffic

import (
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
)

// Source is the kind of zone a trip starts from.
type Source int

const (
	Residential Source = iota
	Commercial
	Industrial
)

// Outcome of a trip.
type Outcome int

const (
	NoRoad Outcome = -1 // no road touches the zone
	Failed Outcome = 0  // no destination within reach
	Passed Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case NoRoad:
		return "no_road"
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	}
	return "unknown"
}

// MaxDistance bounds the number of steps in one trip and the size of the
// position stack.
const MaxDistance = 30

// Vehicles is what the router needs from the sprite system.
type Vehicles interface {
	DispatchCopter(x, y int)
	DistanceToShip(x, y int) int
	GenerateTrain(x, y, totalPop int)
}

// Destination ranges per source: residents drive to jobs, commerce to
// homes and ports, industry to homes and shops.
var (
	targetLow  = [3]int{tile.ComBase, tile.LHThr, tile.LHThr}
	targetHigh = [3]int{tile.Nuclear, tile.Port, tile.ComBase}
)

// Offsets of the twelve tiles bordering a 3x3 zone around its center.
var (
	perimX = [12]int{-1, 0, 1, 2, 2, 2, 1, 0, -1, -2, -2, -2}
	perimY = [12]int{-2, -2, -2, -1, 0, 1, 2, 2, 2, 1, 0, -1}
)

// N, E, S, W.
var (
	stepX = [4]int{0, 1, 0, -1}
	stepY = [4]int{-1, 0, 1, 0}
)

const noDir = -1

type pos struct{ x, y int }

// Router runs trips over one map.
type Router struct {
	m        *world.Map
	rnd      rng.Source
	vehicles Vehicles
	census   *world.Census

	stack   []pos
	dropped int

	x, y    int
	heading int // direction of the last step
	back    int // direction leading back to the previous tile

	// RoadEffect is the road maintenance level, 0..32.
	RoadEffect int
	// TotalPop gates train generation.
	TotalPop int
	// MaxX and MaxY locate the last road that saturated, in pixels.
	MaxX, MaxY int
}

// NewRouter returns a router. census receives road and rail counts.
func NewRouter(m *world.Map, rnd rng.Source, vehicles Vehicles, census *world.Census) *Router {
	return &Router{
		m:          m,
		rnd:        rnd,
		vehicles:   vehicles,
		census:     census,
		stack:      make([]pos, 0, MaxDistance),
		RoadEffect: 32,
	}
}

// Dropped counts position pushes refused because the stack was full.
func (r *Router) Dropped() int { return r.dropped }

// MakeTraffic sends a trip from the zone centered at (x, y).
func (r *Router) MakeTraffic(x, y int, src Source) Outcome {
	r.stack = r.stack[:0]
	if !r.findPerimeterRoad(x, y) {
		return NoRoad
	}
	if !r.drive(src) {
		return Failed
	}
	r.recordTrip()
	return Passed
}

// HasRoad reports whether a road or rail borders the 3x3 zone centered at
// (x, y).
func (r *Router) HasRoad(x, y int) bool {
	for i := range perimX {
		if roadTest(r.m.At(x+perimX[i], y+perimY[i])) {
			return true
		}
	}
	return false
}

func (r *Router) findPerimeterRoad(x, y int) bool {
	for i := range perimX {
		tx, ty := x+perimX[i], y+perimY[i]
		if tile.InBounds(tx, ty) && roadTest(r.m.Tiles[tx][ty]) {
			r.x, r.y = tx, ty
			return true
		}
	}
	return false
}

// roadTest accepts roads and rails but not bare power lines.
func roadTest(t tile.Tile) bool {
	b := t.Base()
	if b < tile.RoadBase || b > tile.LastRail {
		return false
	}
	return b < tile.PowerBase || b >= tile.RailHPowerV
}

func (r *Router) drive(src Source) bool {
	r.heading, r.back = noDir, noDir
	for z := 0; z < MaxDistance; z++ {
		if r.step(z) {
			if r.arrived(src) {
				return true
			}
			continue
		}
		if len(r.stack) == 0 {
			return false
		}
		// Dead end: back up to the last saved position.
		p := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		r.x, r.y = p.x, p.y
		r.heading, r.back = noDir, noDir
		z += 3
	}
	return false
}

// step moves one tile. The generator is drawn on every step; the current
// heading is tried first, then the compass from the drawn start. The tile
// just left is never re-entered.
func (r *Router) step(z int) bool {
	start := r.rnd.Rand16() & 3
	if r.heading != noDir && r.heading != r.back && r.canGo(r.heading) {
		r.advance(r.heading, z)
		return true
	}
	for i := start; i < start+4; i++ {
		d := i & 3
		if d == r.back || d == r.heading {
			continue
		}
		if r.canGo(d) {
			r.advance(d, z)
			return true
		}
	}
	return false
}

func (r *Router) canGo(d int) bool {
	nx, ny := r.x+stepX[d], r.y+stepY[d]
	return tile.InBounds(nx, ny) && roadTest(r.m.Tiles[nx][ny])
}

func (r *Router) advance(d, z int) {
	r.x += stepX[d]
	r.y += stepY[d]
	r.heading = d
	r.back = (d + 2) & 3
	if z&1 != 0 {
		r.push()
	}
}

func (r *Router) push() {
	if len(r.stack) >= MaxDistance {
		r.dropped++
		return
	}
	r.stack = append(r.stack, pos{r.x, r.y})
}

func (r *Router) arrived(src Source) bool {
	lo, hi := targetLow[src], targetHigh[src]
	for d := 0; d < 4; d++ {
		nx, ny := r.x+stepX[d], r.y+stepY[d]
		if !tile.InBounds(nx, ny) {
			continue
		}
		if b := r.m.Tiles[nx][ny].Base(); b >= lo && b <= hi {
			return true
		}
	}
	return false
}

// recordTrip adds density to every road on the saved route.
func (r *Router) recordTrip() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		p := r.stack[i]
		if !tile.InBounds(p.x, p.y) || r.m.Tiles[p.x][p.y].Category() != tile.CatRoad {
			continue
		}
		d := &r.m.TrafficDensity[p.x>>1][p.y>>1]
		z := *d + 50
		if z > 240 && r.rnd.Rand(5) == 0 {
			z = 240
			r.MaxX, r.MaxY = p.x<<4, p.y<<4
			if r.vehicles != nil {
				r.vehicles.DispatchCopter(p.x, p.y)
			}
		}
		*d = min(z, 255)
	}
	r.stack = r.stack[:0]
}
