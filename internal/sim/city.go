// Package sim ties the city together. A City owns the map, the generator
// and every engine, and advances them in a fixed order one tick at a time.
// Nothing in the simulation is global; two cities never share state.
package sim

import (
	"context"
	"errors"
	"fmt"

	"citysim/internal/disaster"
	"citysim/internal/event"
	"citysim/internal/power"
	"citysim/internal/rng"
	"citysim/internal/scan"
	"citysim/internal/sprite"
	"citysim/internal/terrain"
	"citysim/internal/tool"
	"citysim/internal/traffic"
	"citysim/internal/world"
	"citysim/internal/zone"
)

// Options configure a new city. Start from DefaultOptions; the zero value
// runs the plain congruential generator with no money.
type Options struct {
	Seed         int64
	RNG          rng.Kind
	Level        int // 0 easy, 1 medium, 2 hard
	NoDisasters  bool
	Funds        int // 0 picks the level's starting funds
	Tax          int // percent, 0..20
	AutoBulldoze bool
	Scenario     int
	StartYear    int
	// Terrain, when set, generates a landscape. Otherwise the map starts as
	// bare dirt.
	Terrain *terrain.Options
}

// DefaultOptions is an easy city with generated terrain.
func DefaultOptions() Options {
	t := terrain.DefaultOptions()
	return Options{
		RNG:       rng.Type3,
		Tax:       7,
		StartYear: 1900,
		Terrain:   &t,
	}
}

// Starting funds per level.
var levelFunds = [3]int{20000, 10000, 5000}

const maxTax = 20

var (
	ErrInvalidLevel    = errors.New("sim: level must be 0, 1 or 2")
	ErrInvalidTax      = errors.New("sim: tax must be between 0 and 20")
	ErrInvalidScenario = errors.New("sim: unknown scenario")
)

// City is one simulated city.
type City struct {
	m      *world.Map
	rnd    *rng.Engine
	events *event.Log
	census *world.Census
	last   world.Census // census of the previous cycle

	power     *power.Scanner
	sprites   *sprite.System
	router    *traffic.Router
	disasters *disaster.Engine
	zones     *zone.Engine
	scanner   *scan.Scanner
	tools     *tool.Tools

	funds     int
	tax       int
	level     int
	startYear int

	cityTime int
	scycle   int

	cashFlow     int
	totalPop     int
	lastTotalPop int
	budget       Budget
	history      History

	resCap, comCap, indCap bool
	crimeRamp, pollRamp    int
	trafficAverage         int
	powered                power.Result
	shortage               bool
	lastCityPop            int
	lastMilestone          event.Kind
}

// New builds a city from o.
func New(o Options) (*City, error) {
	if o.Level < 0 || o.Level > 2 {
		return nil, ErrInvalidLevel
	}
	if o.Tax < 0 || o.Tax > maxTax {
		return nil, ErrInvalidTax
	}
	if o.Scenario < disaster.ScenarioNone || o.Scenario > disaster.ScenarioRio {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScenario, o.Scenario)
	}

	c := &City{
		m:         &world.Map{},
		rnd:       rng.NewKind(o.RNG, o.Seed),
		events:    &event.Log{},
		census:    &world.Census{},
		power:     power.NewScanner(),
		funds:     o.Funds,
		tax:       o.Tax,
		level:     o.Level,
		startYear: o.StartYear,
	}
	if c.funds == 0 {
		c.funds = levelFunds[o.Level]
	}
	c.history.reset()

	c.sprites = sprite.NewSystem(c.m, c.rnd, c.events)
	c.router = traffic.NewRouter(c.m, c.rnd, c.sprites, c.census)
	c.disasters = disaster.NewEngine(c.m, c.rnd, c.sprites, c.events, c.census)
	c.zones = zone.NewEngine(c.m, c.rnd, c.census, c.router, c.sprites, c.disasters)
	c.scanner = scan.New(c.m, c.rnd)
	c.tools = tool.New(c.m, c.rnd, c.zones)

	c.disasters.SetScenario(o.Scenario)
	c.zones.AutoBulldoze = o.AutoBulldoze
	c.setLevel(o.Level)
	c.SetNoDisasters(o.NoDisasters)

	if o.Terrain != nil {
		terrain.Generate(c.m, c.rnd, *o.Terrain)
	}
	return c, nil
}

func (c *City) setLevel(level int) {
	c.level = level
	c.zones.Level = level
	c.disasters.Level = level
}

// SetNoDisasters turns random and scenario disasters, meltdowns and vehicle
// collisions off or on.
func (c *City) SetNoDisasters(off bool) {
	c.zones.NoDisasters = off
	c.disasters.NoDisasters = off
	c.sprites.NoDisasters = off
}

// SetAutoBulldoze lets building tools clear rubble and trees for a fee.
func (c *City) SetAutoBulldoze(on bool) { c.zones.AutoBulldoze = on }

// SetTax changes the tax rate.
func (c *City) SetTax(rate int) error {
	if rate < 0 || rate > maxTax {
		return ErrInvalidTax
	}
	c.tax = rate
	return nil
}

// Run steps the city n times. Cancellation is checked between ticks only.
func (c *City) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Step()
	}
	return nil
}

// purse lets the tools spend the city's money.
type purse struct{ c *City }

func (p purse) Funds() int       { return p.c.funds }
func (p purse) Spend(amount int) { p.c.funds -= amount }

// Apply uses a tool at (x, y), paying from the city funds.
func (c *City) Apply(k tool.Kind, x, y int) zone.Result {
	return c.tools.Apply(k, x, y, purse{c})
}

// Query describes the tile at (x, y).
func (c *City) Query(x, y int) (tool.Status, bool) {
	return c.tools.Query(x, y)
}

// Map returns the live map. Callers must not write to it.
func (c *City) Map() *world.Map { return c.m }

// Sprites returns copies of the active sprites.
func (c *City) Sprites() []sprite.Sprite { return c.sprites.Active() }

// Messages drains the messages posted since the last call.
func (c *City) Messages() []event.Message { return c.events.Drain() }

// History returns a copy of the census histories.
func (c *City) History() History { return c.history }

// Funds is the money in the treasury.
func (c *City) Funds() int { return c.funds }

// Phase reports the phase of a disaster kind.
func (c *City) Phase(k disaster.Kind) disaster.Phase { return c.disasters.Phase(k) }

// ZoneState reports the condition of the zone centered at (x, y).
func (c *City) ZoneState(x, y int) zone.State { return c.zones.State(x, y) }

var ErrUnknownDisaster = errors.New("sim: unknown disaster")

// Trigger starts a disaster by hand, regardless of the disasters toggle.
func (c *City) Trigger(k disaster.Kind) error {
	switch k {
	case disaster.Fire:
		c.disasters.SetFire()
	case disaster.Flood:
		c.disasters.MakeFlood()
	case disaster.Earthquake:
		c.disasters.MakeEarthquake()
	case disaster.Monster:
		c.disasters.MakeMonster()
	case disaster.Tornado:
		c.disasters.MakeTornado()
	case disaster.Meltdown:
		c.disasters.MakeMeltdown()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDisaster, k)
	}
	return nil
}
