package sim

import (
	"errors"
	"fmt"

	"citysim/internal/disaster"
	"citysim/internal/power"
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
	"citysim/internal/zone"
)

// Snapshot is the saved form of a city: its tiles, treasury, clock and
// generator. Overlays, sprites and histories are rebuilt on load.
type Snapshot struct {
	Tiles     [tile.WorldX][tile.WorldY]uint16 `json:"tiles"`
	Funds     int                              `json:"funds"`
	Tax       int                              `json:"tax"`
	Level     int                              `json:"level"`
	CityTime  int                              `json:"city_time"`
	StartYear int                              `json:"start_year"`
	RNG       rng.State                        `json:"rng"`
}

var (
	ErrCorruptMap = errors.New("sim: corrupt map")
	ErrBadRNG     = errors.New("sim: generator state does not fit")
)

// Snapshot captures the city.
func (c *City) Snapshot() Snapshot {
	s := Snapshot{
		Funds:     c.funds,
		Tax:       c.tax,
		Level:     c.level,
		CityTime:  c.cityTime,
		StartYear: c.startYear,
		RNG:       c.rnd.State(),
	}
	for x := range c.m.Tiles {
		for y := range c.m.Tiles[x] {
			s.Tiles[x][y] = uint16(c.m.Tiles[x][y])
		}
	}
	return s
}

// Load replaces the city with s. The city is unchanged when s is invalid.
func (c *City) Load(s Snapshot) error {
	for x := range s.Tiles {
		for y := range s.Tiles[x] {
			if t := tile.Tile(s.Tiles[x][y]); !t.Valid() {
				return fmt.Errorf("%w: tile %d at %d,%d", ErrCorruptMap, t.Base(), x, y)
			}
		}
	}
	if s.Level < 0 || s.Level > 2 {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, s.Level)
	}
	if s.Tax < 0 || s.Tax > maxTax {
		return fmt.Errorf("%w: %d", ErrInvalidTax, s.Tax)
	}
	if !c.rnd.Restore(s.RNG) {
		return ErrBadRNG
	}

	c.m.Clear()
	for x := range s.Tiles {
		for y := range s.Tiles[x] {
			c.m.Tiles[x][y] = tile.Tile(s.Tiles[x][y])
		}
	}
	c.funds = s.Funds
	c.tax = s.Tax
	c.setLevel(s.Level)
	c.cityTime = max(s.CityTime, 0)
	c.startYear = s.StartYear
	c.scycle = 0

	c.census.Reset()
	c.last = world.Census{}
	c.history.reset()
	c.budget = Budget{}
	c.cashFlow, c.totalPop, c.lastTotalPop = 0, 0, 0
	c.resCap, c.comCap, c.indCap = false, false, false
	c.crimeRamp, c.pollRamp, c.trafficAverage = 0, 0, 0
	c.shortage = false
	c.lastCityPop, c.lastMilestone = 0, 0

	c.sprites.Reset()
	c.zones.Reset()
	c.zones.Valves = zone.Valves{}
	c.zones.NeedHospital, c.zones.NeedChurch = 0, 0
	c.zones.FireEffect, c.zones.PoliceEffect = 1000, 1000
	c.router.RoadEffect = 32
	c.disasters.SetScenario(disaster.ScenarioNone)
	c.events.Drain()

	power.Strip(c.m)
	c.powered = c.power.Scan(c.m)
	power.Apply(c.m)
	return nil
}
