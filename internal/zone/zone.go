// Package zone runs the zone centers found by the map scan: power, growth
// and decline of residential, commercial and industrial zones, hospitals and
// churches, and the special buildings. It also places new zone footprints.
package zone

import (
	"citysim/internal/rng"
	"citysim/internal/sprite"
	"citysim/internal/tile"
	"citysim/internal/traffic"
	"citysim/internal/world"
)

// Traffic is what zones need from the traffic router.
type Traffic interface {
	MakeTraffic(x, y int, src traffic.Source) traffic.Outcome
	HasRoad(x, y int) bool
}

// Vehicles is what the special zones need from the sprite system.
type Vehicles interface {
	GenerateShip()
	GeneratePlane(x, y int)
	GenerateCopter(x, y int)
	Get(k sprite.Kind) *sprite.Sprite
}

// Melter melts a nuclear plant down.
type Melter interface {
	Meltdown(x, y int)
}

// Connector re-links the road, rail or wire piece at (x, y) to its
// neighbors.
type Connector interface {
	Fix(x, y int)
}

// Valves hold the demand for each zone type.
type Valves struct {
	Res int `json:"res"`
	Com int `json:"com"`
	Ind int `json:"ind"`
}

// State is the observable condition of a zone.
type State int

const (
	Rubble State = iota // the center is no longer a zone
	Unpowered
	PoweredNoGrowth
	Growing
	Declining
)

func (s State) String() string {
	switch s {
	case Unpowered:
		return "unpowered"
	case PoweredNoGrowth:
		return "powered"
	case Growing:
		return "growing"
	case Declining:
		return "declining"
	}
	return "rubble"
}

// Engine updates zones of one city.
type Engine struct {
	m        *world.Map
	rnd      rng.Source
	census   *world.Census
	traffic  Traffic
	vehicles Vehicles
	melter   Melter

	trend [tile.WorldX][tile.WorldY]int8

	// Connector fixes roads, rails and wires around new footprints.
	Connector Connector

	Valves       Valves
	FireEffect   int
	PoliceEffect int
	CityTime     int
	Level        int
	NoDisasters  bool
	AutoBulldoze bool

	// NeedHospital and NeedChurch are 1 when the city wants another one,
	// -1 when it has too many and 0 otherwise.
	NeedHospital int
	NeedChurch   int
}

// NewEngine returns a zone engine. Any of traffic, vehicles and melter may
// be nil.
func NewEngine(m *world.Map, rnd rng.Source, census *world.Census, tr Traffic, vehicles Vehicles, melter Melter) *Engine {
	return &Engine{
		m:            m,
		rnd:          rnd,
		census:       census,
		traffic:      tr,
		vehicles:     vehicles,
		melter:       melter,
		FireEffect:   1000,
		PoliceEffect: 1000,
	}
}

// Update runs the zone whose center is (x, y). Tiles without the zone bit
// are ignored.
func (e *Engine) Update(x, y int) {
	t := e.m.Tiles[x][y]
	if !t.Has(tile.ZoneBit) {
		return
	}
	e.trend[x][y] = 0

	powered := e.SetZonePower(x, y)
	if powered {
		e.census.PoweredZones++
	} else {
		e.census.UnpoweredZones++
	}

	base := t.Base()
	switch t.Category() {
	case tile.CatResidential:
		e.residential(x, y, base, powered)
	case tile.CatHospital:
		e.hospital(x, y, base)
	case tile.CatCommercial:
		e.commercial(x, y, base, powered)
	case tile.CatIndustrial:
		e.industrial(x, y, base, powered)
	default:
		e.special(x, y, base, powered)
	}
}

// SetZonePower copies the power map bit of (x, y) into the tile's power
// bit. Power plants are always powered.
func (e *Engine) SetZonePower(x, y int) bool {
	t := e.m.Tiles[x][y]
	b := t.Base()
	if b == tile.Nuclear || b == tile.PowerPlant || e.m.Power.Test(x, y) {
		e.m.Tiles[x][y] = t.With(tile.PowerBit)
		return true
	}
	e.m.Tiles[x][y] = t.Without(tile.PowerBit)
	return false
}

// State reports the condition of the zone centered at (x, y).
func (e *Engine) State(x, y int) State {
	t := e.m.At(x, y)
	switch {
	case !t.Has(tile.ZoneBit):
		return Rubble
	case !t.Has(tile.PowerBit):
		return Unpowered
	case e.trend[x][y] > 0:
		return Growing
	case e.trend[x][y] < 0:
		return Declining
	}
	return PoweredNoGrowth
}

// Reset forgets growth history.
func (e *Engine) Reset() {
	e.trend = [tile.WorldX][tile.WorldY]int8{}
}

func (e *Engine) level() int {
	if e.Level < 0 || e.Level > 2 {
		return 0
	}
	return e.Level
}

func (e *Engine) makeTraffic(x, y int, src traffic.Source) traffic.Outcome {
	if e.traffic == nil {
		return traffic.Passed
	}
	return e.traffic.MakeTraffic(x, y, src)
}

func (e *Engine) hasRoad(x, y int) bool {
	return e.traffic != nil && e.traffic.HasRoad(x, y)
}

// incGrowth records growth (amount > 0) or decline at (x, y).
func (e *Engine) incGrowth(x, y, amount int) {
	e.m.GrowthRate[x>>3][y>>3] += amount << 2
	if amount > 0 {
		e.trend[x][y] = 1
	} else {
		e.trend[x][y] = -1
	}
}

// 3x3 offsets in row order.
var (
	plopDx = [9]int{-1, 0, 1, -1, 0, 1, -1, 0, 1}
	plopDy = [9]int{-1, -1, -1, 0, 0, 0, 1, 1, 1}
)

// plop rebuilds the 3x3 zone at (x, y) from base. It refuses while any of
// its tiles is flooded, radioactive or burning.
func (e *Engine) plop(x, y, base int) bool {
	for i := range plopDx {
		b := e.m.At(x+plopDx[i], y+plopDy[i]).Base()
		if b >= tile.Flood && b < tile.RoadBase {
			return false
		}
	}
	for i := range plopDx {
		e.m.Set(x+plopDx[i], y+plopDy[i], tile.Encode(base+i, tile.BNCN))
	}
	e.SetZonePower(x, y)
	e.m.Tiles[x][y] = e.m.Tiles[x][y].With(tile.ZoneBit | tile.BullBit)
	return true
}

// repair restores missing pieces of a size x size building centered at
// (x, y). Debris and zone centers are left alone.
func (e *Engine) repair(x, y, center, size int) {
	n := 0
	size--
	for dy := -1; dy < size; dy++ {
		for dx := -1; dx < size; dx++ {
			n++
			xx, yy := x+dx, y+dy
			if !tile.InBounds(xx, yy) {
				continue
			}
			t := e.m.Tiles[xx][yy]
			if t.Any(tile.ZoneBit | tile.AnimBit) {
				continue
			}
			if b := t.Base(); b < tile.Rubble || b >= tile.RoadBase {
				e.m.Tiles[xx][yy] = tile.Encode(center-3-size+n, tile.CondBit|tile.BurnBit)
			}
		}
	}
}
