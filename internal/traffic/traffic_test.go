package traffic

import (
	"testing"

	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
)

type fakeVehicles struct {
	dispatched int
	shipDist   int
	trains     int
}

func (f *fakeVehicles) DispatchCopter(x, y int)          { f.dispatched++ }
func (f *fakeVehicles) DistanceToShip(x, y int) int      { return f.shipDist }
func (f *fakeVehicles) GenerateTrain(x, y, totalPop int) { f.trains++ }

func newRouter(seed int64) (*Router, *world.Map, *world.Census, *fakeVehicles) {
	m := &world.Map{}
	c := &world.Census{}
	v := &fakeVehicles{shipDist: 99999}
	return NewRouter(m, rng.New(seed), v, c), m, c, v
}

func road(m *world.Map, x, y int) {
	m.Set(x, y, tile.Encode(tile.Roads, tile.BLBN))
}

func TestNoRoadsMeansNoRoad(t *testing.T) {
	r, m, _, _ := newRouter(1)
	m.Set(20, 20, tile.Encode(tile.FreeZ, tile.BNCN|tile.ZoneBit))
	for _, src := range []Source{Residential, Commercial, Industrial} {
		if got := r.MakeTraffic(20, 20, src); got != NoRoad {
			t.Errorf("source %d: outcome %v, want no_road", src, got)
		}
	}
}

func TestPowerLineIsNotARoad(t *testing.T) {
	r, m, _, _ := newRouter(2)
	for x := 10; x < 40; x++ {
		m.Set(x, 22, tile.Encode(tile.LHPower, tile.BLBNCN))
	}
	if got := r.MakeTraffic(20, 20, Residential); got != NoRoad {
		t.Fatalf("outcome %v, want no_road", got)
	}
}

func TestTripReachesDestination(t *testing.T) {
	r, m, _, _ := newRouter(3)
	// Residential zone at (10,10); road runs east along y=12 to a
	// commercial tile at (18,11).
	for x := 10; x <= 18; x++ {
		road(m, x, 12)
	}
	m.Set(18, 11, tile.Encode(tile.ComClr, tile.BNCN))

	passed := 0
	for i := 0; i < 20; i++ {
		if r.MakeTraffic(10, 10, Residential) == Passed {
			passed++
		}
	}
	if passed == 0 {
		t.Fatal("no trip ever reached the commercial tile")
	}
	total := 0
	for x := 10; x <= 18; x++ {
		total += m.TrafficDensity[x>>1][12>>1]
	}
	if total == 0 {
		t.Error("successful trips left no traffic density")
	}
}

func TestTripWithoutDestinationFails(t *testing.T) {
	r, m, _, _ := newRouter(4)
	for x := 10; x <= 60; x++ {
		road(m, x, 12)
	}
	for i := 0; i < 10; i++ {
		if got := r.MakeTraffic(10, 10, Industrial); got != Failed {
			t.Fatalf("outcome %v, want failed", got)
		}
	}
	if r.Dropped() != 0 {
		t.Errorf("position stack overflowed %d times", r.Dropped())
	}
}

func TestDensityCapped(t *testing.T) {
	r, m, _, v := newRouter(5)
	for x := 10; x <= 14; x++ {
		road(m, x, 12)
	}
	m.Set(14, 11, tile.Encode(tile.ComClr, tile.BNCN))
	for i := 0; i < 200; i++ {
		r.MakeTraffic(10, 10, Residential)
	}
	for x := 10; x <= 14; x++ {
		if d := m.TrafficDensity[x>>1][6]; d > 255 {
			t.Fatalf("density %d overflowed a byte", d)
		}
	}
	if v.dispatched == 0 {
		t.Error("saturated road never called the helicopter")
	}
}

func TestUpdateRoadAnimatesTraffic(t *testing.T) {
	r, m, c, _ := newRouter(6)
	road(m, 30, 30)
	m.TrafficDensity[15][15] = 200 // heavy
	r.UpdateRoad(30, 30)
	got := m.At(30, 30)
	if got.Base() < tile.HTrfBase || !got.Has(tile.AnimBit) || !got.Has(tile.BLBN) {
		t.Errorf("heavy traffic tile = base %d flags %#x", got.Base(), got.Flags())
	}
	if c.RoadTotal != 1 {
		t.Errorf("RoadTotal = %d", c.RoadTotal)
	}

	m.TrafficDensity[15][15] = 0
	r.UpdateRoad(30, 30)
	got = m.At(30, 30)
	if got.Base() != tile.Roads || got.Has(tile.AnimBit) {
		t.Errorf("quiet road = base %d flags %#x", got.Base(), got.Flags())
	}
}

func TestBridgeCountsAndOpens(t *testing.T) {
	r, m, c, v := newRouter(7)
	// Horizontal bridge spanning a channel running north-south.
	for y := 0; y < 100; y++ {
		m.Set(50, y, tile.Channel)
	}
	for x := 48; x <= 52; x++ {
		m.Set(x, 40, bull(tile.HBridge))
	}
	v.shipDist = 10
	r.UpdateRoad(50, 40)
	if c.RoadTotal != 5 {
		t.Errorf("bridge RoadTotal = %d, want 5", c.RoadTotal)
	}
	if m.At(50, 40).Base() != tile.BRWH {
		t.Fatalf("bridge did not open for a close ship, center base %d", m.At(50, 40).Base())
	}

	v.shipDist = 99999
	for i := 0; i < 64 && m.At(50, 40).Base() == tile.BRWH; i++ {
		r.UpdateRoad(50, 40)
	}
	if m.At(50, 40).Base() != tile.HBridge {
		t.Fatal("bridge never closed after the ship left")
	}
}

func TestRailGeneratesTrains(t *testing.T) {
	r, m, c, v := newRouter(8)
	m.Set(5, 5, tile.Encode(tile.LHRail, tile.BLBNCN))
	r.UpdateRail(5, 5)
	if c.RailTotal != 1 || v.trains != 1 {
		t.Errorf("rail total %d, train calls %d", c.RailTotal, v.trains)
	}
}

func TestDecayOnlyWhenUnderfunded(t *testing.T) {
	r, m, _, _ := newRouter(9)
	for x := 0; x < 50; x++ {
		road(m, x, 0)
	}
	for i := 0; i < 2000; i++ {
		r.UpdateRoad(i%50, 0)
	}
	for x := 0; x < 50; x++ {
		if m.At(x, 0).Category() != tile.CatRoad {
			t.Fatalf("fully funded road at %d decayed", x)
		}
	}

	r.RoadEffect = 0
	decayed := false
	for i := 0; i < 200000 && !decayed; i++ {
		x := i % 50
		if m.At(x, 0).Category() != tile.CatRoad {
			decayed = true
			break
		}
		r.UpdateRoad(x, 0)
	}
	if !decayed {
		t.Error("unfunded roads never decayed")
	}
}
