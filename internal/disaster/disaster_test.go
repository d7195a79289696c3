package disaster

import (
	"testing"

	"citysim/internal/event"
	"citysim/internal/rng"
	"citysim/internal/sprite"
	"citysim/internal/tile"
	"citysim/internal/world"
)

type fixture struct {
	e       *Engine
	m       *world.Map
	sprites *sprite.System
	log     *event.Log
	census  *world.Census
}

func newFixture(seed int64) fixture {
	m := &world.Map{}
	r := rng.New(seed)
	log := &event.Log{}
	sp := sprite.NewSystem(m, r, log)
	c := &world.Census{}
	return fixture{e: NewEngine(m, r, sp, log, c), m: m, sprites: sp, log: log, census: c}
}

func fill(m *world.Map, t tile.Tile) {
	for x := range m.Tiles {
		for y := range m.Tiles[x] {
			m.Tiles[x][y] = t
		}
	}
}

func posted(log *event.Log, k event.Kind) bool {
	for _, msg := range log.Drain() {
		if msg.Kind == k {
			return true
		}
	}
	return false
}

func TestNoDisastersLeavesMapUnchanged(t *testing.T) {
	f := newFixture(1)
	fill(f.m, tile.Encode(tile.House+1, tile.BLBNCN))
	for x := 0; x < tile.WorldX; x++ {
		f.m.Tiles[x][40] = tile.Encode(tile.FirstRiverEdge, 0)
	}
	f.m.Tiles[60][60] = tile.Encode(tile.Nuclear, tile.BNCN|tile.ZoneBit)
	f.e.Level = 2
	f.e.PollutionAverage = 200
	f.e.NoDisasters = true
	f.e.SetScenario(ScenarioBoston)

	before := *f.m
	for i := 0; i < 5000; i++ {
		f.e.Step()
	}
	if *f.m != before {
		t.Fatal("Step changed tiles with disasters disabled")
	}
	if f.sprites.Len() != 0 {
		t.Fatalf("Step spawned %d sprites with disasters disabled", f.sprites.Len())
	}
	if id, _ := f.e.Scenario(); id != ScenarioNone {
		t.Errorf("scenario clock did not run out, still %d", id)
	}
}

func TestSetFire(t *testing.T) {
	f := newFixture(2)
	fill(f.m, tile.Encode(tile.House+1, tile.BLBNCN))
	f.e.SetFire()
	got := f.m.At(f.e.CrashX, f.e.CrashY)
	if got.Category() != tile.CatFire || !got.Has(tile.AnimBit) {
		t.Fatalf("tile at crash site = base %d", got.Base())
	}
	if !posted(f.log, event.FireReported) {
		t.Error("fire not reported")
	}
}

func TestSetFireSkipsOpenGround(t *testing.T) {
	f := newFixture(3)
	f.e.SetFire()
	if n := f.m.Count(func(t tile.Tile) bool { return t != 0 }); n != 0 {
		t.Fatalf("fire started on empty land: %d tiles changed", n)
	}
}

func TestDoFireSpreads(t *testing.T) {
	f := newFixture(4)
	f.m.Set(10, 10, tile.Encode(tile.Fire, tile.AnimBit))
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		f.m.Set(10+d[0], 10+d[1], tile.Encode(tile.House+1, tile.BLBNCN))
	}
	f.m.Set(11, 11, tile.Encode(tile.House+1, tile.BLBNCN))

	for i := 0; i < 100; i++ {
		f.e.DoFire(10, 10)
	}
	burning := 0
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if f.m.At(10+d[0], 10+d[1]).Category() == tile.CatFire {
			burning++
		}
	}
	if burning == 0 {
		t.Fatal("fire never spread to a flammable neighbor")
	}
	if f.m.At(11, 11).Category() == tile.CatFire {
		t.Error("fire spread diagonally")
	}
}

func TestDoFireBurnsOutFasterWithCoverage(t *testing.T) {
	burnout := func(coverage int) int {
		f := newFixture(5)
		f.m.FireCoverage[1][1] = coverage
		total := 0
		for trial := 0; trial < 50; trial++ {
			f.m.Set(10, 10, tile.Encode(tile.Fire, tile.AnimBit))
			for f.m.At(10, 10).Category() == tile.CatFire {
				f.e.DoFire(10, 10)
				total++
			}
			if c := f.m.At(10, 10).Category(); c != tile.CatRubble {
				t.Fatalf("burned out fire left category %v", c)
			}
		}
		return total
	}
	if none, full := burnout(0), burnout(500); full >= none {
		t.Errorf("full coverage took %d passes, none %d", full, none)
	}
}

func TestZoneCaughtInFireIsBurned(t *testing.T) {
	f := newFixture(6)
	f.m.Set(20, 20, tile.Encode(tile.Fire, tile.AnimBit))
	f.m.Set(21, 20, tile.Encode(tile.FireStation, tile.BNCN|tile.ZoneBit))
	f.m.Set(22, 20, tile.Encode(tile.FireStation+1, tile.BNCN))
	for i := 0; i < 200 && f.m.At(21, 20).Category() != tile.CatFire; i++ {
		f.e.DoFire(20, 20)
	}
	if f.m.At(21, 20).Category() != tile.CatFire {
		t.Fatal("zone never caught fire")
	}
	if !f.m.At(22, 20).Has(tile.BullBit) {
		t.Error("burned zone footprint not bulldozable")
	}
	if f.sprites.Len() == 0 {
		t.Error("dense zone did not explode")
	}
}

func TestFloodStaysNearOrigin(t *testing.T) {
	f := newFixture(7)
	for x := 0; x < tile.WorldX; x++ {
		for y := 45; y <= 55; y += 2 {
			f.m.Tiles[x][y] = tile.Encode(tile.FirstRiverEdge, 0)
		}
	}
	f.e.NoDisasters = true
	f.e.MakeFlood()
	if f.e.FloodCount() != floodPasses {
		t.Fatal("no flood started beside the river")
	}
	if !posted(f.log, event.FloodReported) {
		t.Error("flood not reported")
	}

	floods := func() [][2]int {
		var out [][2]int
		for x := range f.m.Tiles {
			for y := range f.m.Tiles[x] {
				if f.m.Tiles[x][y].Category() == tile.CatFlood {
					out = append(out, [2]int{x, y})
				}
			}
		}
		return out
	}
	for f.e.FloodCount() > 0 {
		for _, p := range floods() {
			f.e.DoFlood(p[0], p[1])
		}
		f.e.Step()
	}
	spread := floods()
	if len(spread) < 2 {
		t.Fatalf("flood covered %d tiles", len(spread))
	}
	for _, p := range spread {
		if abs(p[0]-f.e.floodX) > FloodRadius || abs(p[1]-f.e.floodY) > FloodRadius {
			t.Fatalf("flood at %v beyond %d tiles of %d,%d", p, FloodRadius, f.e.floodX, f.e.floodY)
		}
	}

	for i := 0; i < 500 && len(floods()) > 0; i++ {
		for _, p := range floods() {
			f.e.DoFlood(p[0], p[1])
		}
	}
	if n := len(floods()); n != 0 {
		t.Errorf("%d flood tiles never receded", n)
	}
}

func TestEarthquakeStaysNearEpicenter(t *testing.T) {
	f := newFixture(8)
	house := tile.Encode(tile.House+1, tile.BLBNCN)
	fill(f.m, house)
	f.e.MakeEarthquake()

	damaged := 0
	for x := range f.m.Tiles {
		for y := range f.m.Tiles[x] {
			if f.m.Tiles[x][y] == house {
				continue
			}
			damaged++
			if abs(x-f.e.QuakeX) > QuakeRadius || abs(y-f.e.QuakeY) > QuakeRadius {
				t.Fatalf("damage at %d,%d is outside the quake radius", x, y)
			}
			if c := f.m.Tiles[x][y].Category(); c != tile.CatRubble && c != tile.CatFire {
				t.Fatalf("quake left category %v", c)
			}
		}
	}
	if damaged == 0 {
		t.Fatal("earthquake damaged nothing")
	}
	if !posted(f.log, event.EarthquakeReported) {
		t.Error("earthquake not reported")
	}
}

func TestMeltdownAndPhases(t *testing.T) {
	f := newFixture(9)
	f.e.NoDisasters = true
	f.m.Set(50, 50, tile.Encode(tile.Nuclear, tile.BNCN|tile.ZoneBit))
	f.e.MakeMeltdown()

	if f.e.MeltX != 50 || f.e.MeltY != 50 {
		t.Fatalf("melted down at %d,%d", f.e.MeltX, f.e.MeltY)
	}
	for x := 49; x < 53; x++ {
		for y := 49; y < 53; y++ {
			if f.m.At(x, y).Category() != tile.CatFire {
				t.Fatalf("plant tile %d,%d not burning", x, y)
			}
		}
	}
	if f.m.Count(func(t tile.Tile) bool { return t.Base() == tile.RadTile }) == 0 {
		t.Error("no radiation scattered")
	}
	if f.sprites.Len() != 4 {
		t.Errorf("explosions = %d, want 4", f.sprites.Len())
	}
	if !posted(f.log, event.Meltdown) {
		t.Error("meltdown not reported")
	}

	f.e.Step()
	if p := f.e.Phase(Meltdown); p != Active {
		t.Fatalf("phase after meltdown = %v", p)
	}
	for i := 0; i < CooldownPasses; i++ {
		f.e.Step()
		if p := f.e.Phase(Meltdown); p != Cooldown {
			t.Fatalf("pass %d: phase = %v, want cooldown", i, p)
		}
	}
	f.e.Step()
	if p := f.e.Phase(Meltdown); p != Idle {
		t.Errorf("phase after cooldown = %v", p)
	}
}

func TestTornadoIsActiveWhileItLives(t *testing.T) {
	f := newFixture(10)
	f.e.NoDisasters = true
	f.e.MakeTornado()
	f.e.Step()
	if p := f.e.Phase(Tornado); p != Active {
		t.Fatalf("phase = %v", p)
	}
	f.sprites.Clear()
	f.sprites.Move()
	f.e.Step()
	if p := f.e.Phase(Tornado); p != Cooldown {
		t.Errorf("phase after the tornado died = %v", p)
	}
}

func TestSanFranciscoScenario(t *testing.T) {
	f := newFixture(11)
	f.e.SetScenario(ScenarioSanFrancisco)
	f.e.Step()
	f.e.Step()
	if p := f.e.Phase(Earthquake); p != Active {
		t.Fatalf("scenario earthquake phase = %v", p)
	}
	if !posted(f.log, event.EarthquakeReported) {
		t.Error("scenario earthquake not reported")
	}
	f.e.Step()
	if id, _ := f.e.Scenario(); id != ScenarioNone {
		t.Errorf("scenario still armed: %d", id)
	}
}

func TestRadiationDecays(t *testing.T) {
	f := newFixture(12)
	f.m.Set(3, 3, tile.RadTile)
	for i := 0; i < 200000 && f.m.At(3, 3) != 0; i++ {
		f.e.DoRadTile(3, 3)
	}
	if f.m.At(3, 3) != 0 {
		t.Fatal("radiation never decayed")
	}
}

func TestVulnerable(t *testing.T) {
	tests := []struct {
		in   tile.Tile
		want bool
	}{
		{tile.Encode(tile.House+1, tile.BLBNCN), true},
		{tile.Encode(tile.FreeZ, tile.BNCN|tile.ZoneBit), false},
		{tile.Encode(tile.Roads, tile.BLBN), false},
		{tile.Encode(tile.Nuclear+1, tile.BNCN), true},
		{tile.Encode(tile.LightningBolt, 0), false},
	}
	for _, tt := range tests {
		if got := vulnerable(tt.in); got != tt.want {
			t.Errorf("vulnerable(base %d) = %v", tt.in.Base(), got)
		}
	}
}
