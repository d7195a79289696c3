package sim

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"citysim/internal/event"
	"citysim/internal/tile"
	"citysim/internal/tool"
	"citysim/internal/zone"
)

func newCity(t *testing.T, o Options) *City {
	t.Helper()
	c, err := New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// build clears a site and lays out a coal plant wired to a residential
// zone with a road in front of it.
func build(t *testing.T, c *City) {
	t.Helper()
	for x := 56; x <= 70; x++ {
		for y := 56; y <= 66; y++ {
			c.m.Tiles[x][y] = tile.Dirt
		}
	}
	steps := []struct {
		k    tool.Kind
		x, y int
	}{
		{tool.CoalPlant, 60, 60},
		{tool.Wire, 63, 60},
		{tool.Residential, 65, 60},
		{tool.Road, 64, 62},
		{tool.Road, 65, 62},
		{tool.Road, 66, 62},
	}
	for _, s := range steps {
		if got := c.Apply(s.k, s.x, s.y); got != zone.Ok {
			t.Fatalf("%v at %d,%d: %v", s.k, s.x, s.y, got)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		o    Options
		want error
	}{
		{"level", Options{Level: 3}, ErrInvalidLevel},
		{"negative level", Options{Level: -1}, ErrInvalidLevel},
		{"tax", Options{Tax: 21}, ErrInvalidTax},
		{"scenario", Options{Scenario: 99}, ErrInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.o); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStartingFunds(t *testing.T) {
	for level, want := range levelFunds {
		c := newCity(t, Options{Level: level})
		if c.Funds() != want {
			t.Errorf("level %d funds = %d, want %d", level, c.Funds(), want)
		}
	}
	if c := newCity(t, Options{Funds: 123}); c.Funds() != 123 {
		t.Errorf("explicit funds = %d", c.Funds())
	}
}

func TestSameSeedSameCity(t *testing.T) {
	run := func() *City {
		o := DefaultOptions()
		o.Seed = 1234
		c := newCity(t, o)
		build(t, c)
		if err := c.Run(context.Background(), 200); err != nil {
			t.Fatal(err)
		}
		return c
	}
	a, b := run(), run()
	if *a.Map() != *b.Map() {
		t.Error("maps differ")
	}
	if !slices.Equal(a.Sprites(), b.Sprites()) {
		t.Error("sprites differ")
	}
	if !slices.Equal(a.Messages(), b.Messages()) {
		t.Error("messages differ")
	}
	if !reflect.DeepEqual(a.Stats(), b.Stats()) {
		t.Errorf("stats differ:\n%+v\n%+v", a.Stats(), b.Stats())
	}
}

func TestToolRefusedWithoutFunds(t *testing.T) {
	c := newCity(t, Options{Funds: 50})
	if got := c.Apply(tool.Residential, 20, 20); got != zone.InsufficientFunds {
		t.Fatalf("Apply = %v", got)
	}
	if c.Funds() != 50 {
		t.Errorf("funds = %d, want 50", c.Funds())
	}
	if c.Map().At(20, 20) != 0 {
		t.Error("refused zone left tiles behind")
	}
	if got := c.Apply(tool.Road, 10, 10); got != zone.Ok || c.Funds() != 40 {
		t.Errorf("road = %v, funds %d", got, c.Funds())
	}
}

func TestPowerReachesZone(t *testing.T) {
	c := newCity(t, Options{NoDisasters: true})
	build(t, c)
	c.Step()
	c.Step()

	// 16 plant tiles, the wire and 9 zone tiles.
	if got := c.Stats().PoweredTiles; got != 26 {
		t.Errorf("powered tiles = %d, want 26", got)
	}
	if !c.Map().At(65, 60).Has(tile.PowerBit) {
		t.Error("zone center is not powered")
	}
	if st := c.ZoneState(65, 60); st == zone.Unpowered || st == zone.Rubble {
		t.Errorf("zone state = %v", st)
	}
}

func TestDebrisSettlesToRubble(t *testing.T) {
	c := newCity(t, Options{NoDisasters: true})
	if got := c.Apply(tool.Residential, 30, 30); got != zone.Ok {
		t.Fatal(got)
	}
	if got := c.Apply(tool.Bulldozer, 30, 30); got != zone.Ok {
		t.Fatal(got)
	}
	for i := 0; i < 6; i++ {
		c.Step()
	}
	for x := 29; x <= 31; x++ {
		for y := 29; y <= 31; y++ {
			got := c.Map().At(x, y)
			if b := got.Base(); b < tile.Rubble || b > tile.Rubble+3 || !got.Has(tile.BullBit) {
				t.Errorf("%d,%d = %d, want rubble", x, y, b)
			}
		}
	}
}

func TestCollectTax(t *testing.T) {
	c := newCity(t, Options{Funds: 1})
	c.funds = 0
	c.tax = 1
	c.totalPop = 100
	c.scanner.LandValueAverage = 120
	c.census.RoadTotal = 100
	c.census.FireStations = 1
	c.census.PoliceStations = 1

	c.collectTax()

	want := Budget{
		TaxFund:    140,
		RoadFund:   70,
		FireFund:   100,
		PoliceFund: 100,
		RoadSpend:  70,
		FireSpend:  70,
	}
	if c.budget != want {
		t.Errorf("budget = %+v, want %+v", c.budget, want)
	}
	if c.funds != 0 || c.cashFlow != 0 {
		t.Errorf("funds %d, cash flow %d", c.funds, c.cashFlow)
	}
	if c.router.RoadEffect != 32 || c.zones.FireEffect != 700 || c.zones.PoliceEffect != 0 {
		t.Errorf("effects = %d/%d/%d", c.router.RoadEffect, c.zones.FireEffect, c.zones.PoliceEffect)
	}

	c.totalPop = 0
	c.collectTax()
	if c.funds != 0 || c.zones.PoliceEffect != 1000 || c.zones.FireEffect != 1000 {
		t.Error("an empty city paid or kept reduced effects")
	}
}

func TestTaxFeedsTreasury(t *testing.T) {
	c := newCity(t, Options{Funds: 1})
	c.funds = 500
	c.tax = 10
	c.totalPop = 240
	c.scanner.LandValueAverage = 60
	c.collectTax()
	// 240*60/120*10 = 1200, times 1.4 on easy.
	if c.cashFlow != 1680 || c.funds != 2180 {
		t.Errorf("cash flow %d, funds %d", c.cashFlow, c.funds)
	}
}

func TestSetTax(t *testing.T) {
	c := newCity(t, Options{})
	if err := c.SetTax(21); !errors.Is(err, ErrInvalidTax) {
		t.Errorf("SetTax(21) = %v", err)
	}
	if err := c.SetTax(12); err != nil || c.Stats().Tax != 12 {
		t.Errorf("SetTax(12) = %v, tax %d", err, c.Stats().Tax)
	}
}

func TestRunStopsWhenCanceled(t *testing.T) {
	c := newCity(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
	if got := c.Stats().CityTime; got != 0 {
		t.Errorf("city time = %d after canceled run", got)
	}
}

func TestStatsCalendar(t *testing.T) {
	c := newCity(t, Options{StartYear: 1950})
	if err := c.Run(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	s := c.Stats()
	if s.CityTime != 100 || s.Year != 1952 || s.Month != 1 {
		t.Errorf("time %d year %d month %d", s.CityTime, s.Year, s.Month)
	}
	if len(s.Disasters) != 6 || s.Disasters["fire"] == "" {
		t.Errorf("disasters = %v", s.Disasters)
	}
}

func TestLoadRejectsCorruptMap(t *testing.T) {
	c := newCity(t, Options{})
	build(t, c)
	before := *c.Map()

	s := c.Snapshot()
	s.Tiles[5][5] = tile.TileCount
	if err := c.Load(s); !errors.Is(err, ErrCorruptMap) {
		t.Fatalf("Load = %v", err)
	}
	if *c.Map() != before {
		t.Error("failed load changed the map")
	}

	s = c.Snapshot()
	s.RNG.Table = nil
	if err := c.Load(s); !errors.Is(err, ErrBadRNG) {
		t.Errorf("Load with bad generator = %v", err)
	}
	s = c.Snapshot()
	s.Level = 5
	if err := c.Load(s); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Load with bad level = %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	o := DefaultOptions()
	o.Seed = 77
	o.NoDisasters = true
	src := newCity(t, o)
	build(t, src)
	if err := src.Run(context.Background(), 30); err != nil {
		t.Fatal(err)
	}
	s := src.Snapshot()

	load := func() *City {
		o := DefaultOptions()
		o.Seed = 5
		o.NoDisasters = true
		c := newCity(t, o)
		if err := c.Load(s); err != nil {
			t.Fatalf("Load: %v", err)
		}
		return c
	}
	a, b := load(), load()

	got := a.Snapshot()
	for x := range s.Tiles {
		for y := range s.Tiles[x] {
			if tile.Tile(got.Tiles[x][y]).Base() != tile.Tile(s.Tiles[x][y]).Base() {
				t.Fatalf("tile %d,%d differs after load", x, y)
			}
		}
	}
	if got.Funds != s.Funds || got.Tax != s.Tax || got.CityTime != s.CityTime || !reflect.DeepEqual(got.RNG, s.RNG) {
		t.Errorf("loaded %+v, saved %+v", got, s)
	}

	// Loaded cities continue identically.
	for _, c := range []*City{a, b} {
		if err := c.Run(context.Background(), 50); err != nil {
			t.Fatal(err)
		}
	}
	if *a.Map() != *b.Map() || a.Funds() != b.Funds() {
		t.Error("loaded cities diverged")
	}
}

func TestMilestone(t *testing.T) {
	c := newCity(t, Options{})
	c.cityTime = 4
	c.census.ResPop = 90 // 1800 people
	c.checkGrowth()
	c.census.ResPop = 110
	c.cityTime = 8
	c.checkGrowth()

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Kind != event.ReachedTown {
		t.Errorf("messages = %v", msgs)
	}
}
