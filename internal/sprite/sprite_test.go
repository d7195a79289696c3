package sprite

import (
	"slices"
	"testing"

	"citysim/internal/event"
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
)

func newTestSystem(seed int64) (*System, *world.Map, *event.Log) {
	m := &world.Map{}
	log := &event.Log{}
	return NewSystem(m, rng.New(seed), log), m, log
}

func TestMakeReusesSingleton(t *testing.T) {
	s, _, _ := newTestSystem(1)
	a := s.Make(Tornado, 800, 800)
	b := s.Make(Tornado, 400, 400)
	if a != b {
		t.Fatal("Make allocated a second tornado")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if b.X != 400 || b.Count != 200 || b.Frame != 1 {
		t.Errorf("reinitialized tornado = %+v", *b)
	}

	s.MakeNew(Explosion, 10, 10)
	s.MakeNew(Explosion, 20, 20)
	if s.Len() != 3 {
		t.Fatalf("explosions should always allocate, Len = %d", s.Len())
	}
	if got := s.Active()[0]; got.Kind != Explosion || got.X != 20 {
		t.Errorf("newest sprite not first: %+v", got)
	}
}

func TestInactiveSpritesUnlinkedOnNextMove(t *testing.T) {
	s, _, _ := newTestSystem(2)
	sp := s.Make(Airplane, 60<<4, 50<<4)
	sp.X = -500 // far off the map
	s.NoDisasters = true

	s.Move()
	if sp.Frame != 0 {
		t.Fatal("plane outside the map still active")
	}
	if s.Len() != 1 {
		t.Fatal("sprite unlinked in the same pass it left the map")
	}
	s.Move()
	if s.Len() != 0 || s.Get(Airplane) != nil {
		t.Fatal("inactive sprite survived the next move")
	}
}

func TestExplosionStartsFires(t *testing.T) {
	s, m, _ := newTestSystem(3)
	s.MakeExplosion(20, 20)
	for i := 0; i < 20 && s.Len() > 0; i++ {
		s.Move()
	}
	if s.Len() != 0 {
		t.Fatal("explosion never finished")
	}
	fires := m.Count(func(t tile.Tile) bool { return t.Category() == tile.CatFire })
	if fires == 0 {
		t.Fatal("explosion left no fire on open ground")
	}
}

func TestStartFireSparesZones(t *testing.T) {
	s, m, _ := newTestSystem(4)
	center := tile.Encode(tile.FreeZ, tile.BNCN|tile.ZoneBit)
	m.Set(5, 5, center)
	m.Set(6, 5, tile.Encode(tile.Roads2, 0))
	s.startFire(5<<4, 5<<4)
	s.startFire(6<<4, 5<<4)
	if m.At(5, 5) != center {
		t.Error("fire started on a zone center")
	}
	if m.At(6, 5).Base() != tile.Roads2 {
		t.Error("fire started on a non-flammable tile")
	}
}

func TestWreck(t *testing.T) {
	tests := []struct {
		name string
		in   tile.Tile
		want int
	}{
		{"bridge becomes river", tile.Encode(tile.HBridge, tile.BullBit), tile.River},
		{"wire over water", tile.Encode(tile.PowerBase, tile.BurnBit|tile.CondBit), tile.River},
		{"house becomes debris", tile.Encode(tile.House, tile.BLBNCN), tile.SomeTinyExp - 3},
		{"trees untouched below threshold", tile.Encode(tile.River, 0), tile.River},
		{"rail without burn bit kept", tile.Encode(tile.LHRail, tile.BullBit), tile.LHRail},
	}
	for _, tt := range tests {
		s, m, _ := newTestSystem(5)
		m.Set(7, 7, tt.in)
		s.wreck(7<<4, 7<<4)
		if got := m.At(7, 7).Base(); got != tt.want {
			t.Errorf("%s: base = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTrainFollowsRail(t *testing.T) {
	s, m, _ := newTestSystem(6)
	for x := 10; x < 60; x++ {
		m.Set(x, 20, tile.Encode(tile.LHRail, tile.BLBNCN))
	}
	sp := s.Make(Train, (30<<4)+grooveX, (20<<4)+grooveY)
	for i := 0; i < 64; i++ {
		s.Move()
	}
	if sp.Frame == 0 {
		t.Fatal("train derailed on a straight track")
	}
	if ty := sp.Y >> 4; ty != 20 {
		t.Errorf("train left the rail row: y tile %d", ty)
	}
}

func TestTrainWithoutRailDies(t *testing.T) {
	s, _, _ := newTestSystem(7)
	sp := s.Make(Train, 40<<4, 40<<4)
	for i := 0; i < 16; i++ {
		s.Move()
	}
	if sp.Frame != 0 && s.Get(Train) != nil {
		t.Fatal("train survived without rails")
	}
}

func TestCollisionsRespectNoDisasters(t *testing.T) {
	for _, noDisasters := range []bool{false, true} {
		s, _, log := newTestSystem(8)
		s.NoDisasters = noDisasters
		plane := s.Make(Airplane, 50<<4, 50<<4)
		copter := s.Make(Helicopter, 0, 0)
		copter.X = plane.HotX() - copter.XHot
		copter.Y = plane.HotY() - copter.YHot
		s.Move()

		crashed := plane.Frame == 0
		if crashed == noDisasters {
			t.Errorf("noDisasters=%v: plane crashed=%v", noDisasters, crashed)
		}
		if !noDisasters && log.Len() == 0 {
			t.Error("crash not reported")
		}
	}
}

func layRoad(m *world.Map, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			m.Set(x, y, tile.Encode(tile.Roads, tile.BullBit|tile.BurnBit))
		}
	}
}

func TestBusLeavesMap(t *testing.T) {
	s, m, _ := newTestSystem(10)
	layRoad(m, 0, 50, tile.WorldX-1, 50)
	bus := s.Make(Bus, (100<<4)+laneX, (50<<4)+laneY)
	for i := 0; i < 100 && s.Get(Bus) != nil; i++ {
		s.Move()
		if bus.Frame != 0 && bus.HotY()>>4 != 50 {
			t.Fatalf("bus drifted off the road to row %d", bus.HotY()>>4)
		}
	}
	if s.Get(Bus) != nil || s.Len() != 0 {
		t.Fatalf("bus still active at hot %d,%d", bus.HotX(), bus.HotY())
	}

	for i := 0; i < 500 && s.Get(Bus) == nil; i++ {
		s.GenerateBus(60, 50)
	}
	if s.Get(Bus) == nil {
		t.Fatal("no new bus after the first one left")
	}
}

func TestBusTurnsAtCorner(t *testing.T) {
	s, m, _ := newTestSystem(11)
	layRoad(m, 10, 50, 30, 50)
	layRoad(m, 30, 20, 30, 49)
	bus := s.Make(Bus, (15<<4)+laneX, (50<<4)+laneY)
	for i := 0; i < 60; i++ {
		s.Move()
	}
	if bus.Frame == 0 {
		t.Fatal("bus died on a connected road")
	}
	if bus.Dir != 0 || bus.HotX()>>4 != 30 || bus.HotY()>>4 >= 50 {
		t.Errorf("bus at tile %d,%d heading %d, want northbound on column 30",
			bus.HotX()>>4, bus.HotY()>>4, bus.Dir)
	}
}

func TestBusStuckAtWall(t *testing.T) {
	s, m, _ := newTestSystem(12)
	layRoad(m, 10, 50, 20, 50)
	m.Set(21, 50, tile.Encode(tile.River, 0))
	bus := s.Make(Bus, (15<<4)+laneX, (50<<4)+laneY)
	for i := 0; i < 40; i++ {
		s.Move()
	}
	if bus.Frame != 0 {
		t.Errorf("bus drove into the river at tile %d", bus.HotX()>>4)
	}
}

func TestBusHitsTrain(t *testing.T) {
	for _, noDisasters := range []bool{false, true} {
		s, m, log := newTestSystem(13)
		s.NoDisasters = noDisasters
		layRoad(m, 30, 40, 50, 40)
		train := s.Make(Train, 0, 0)
		// The bus is newest, so it moves first and finds the train on its hot point.
		bus := s.Make(Bus, (40<<4)+8-40, (40<<4)+4+8)
		train.X = bus.HotX() - train.XHot
		train.Y = bus.HotY() - train.YHot
		s.Move()

		crashed := bus.Frame == 0 && train.Frame == 0
		if crashed == noDisasters {
			t.Errorf("noDisasters=%v: crashed=%v (bus %d, train %d)", noDisasters, crashed, bus.Frame, train.Frame)
		}
		if !noDisasters && log.Len() == 0 {
			t.Error("crash not reported")
		}
		if noDisasters && bus.Frame == 0 {
			t.Error("bus lost with collisions disabled")
		}
	}
}

func TestDeterministicMovement(t *testing.T) {
	run := func() []Sprite {
		s, m, _ := newTestSystem(99)
		for x := 0; x < tile.WorldX; x++ {
			m.Set(x, 50, tile.Encode(tile.Channel, 0))
		}
		s.Make(Tornado, 900, 700)
		s.MakeMonster()
		s.Make(Helicopter, 300, 300)
		s.Make(Ship, 0, 50<<4)
		for i := 0; i < 200; i++ {
			s.Move()
		}
		return s.Active()
	}
	if a, b := run(), run(); !slices.Equal(a, b) {
		t.Fatal("identical seeds produced different sprite states")
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		dx, dy  int
		heading int
	}{
		{0, -100, 1},
		{100, -100, 2},
		{100, 0, 3},
		{100, 100, 4},
		{0, 100, 5},
		{-100, 100, 6},
		{-100, 0, 7},
		{-100, -100, 8},
	}
	for _, tt := range tests {
		got, dist := direction(0, 0, tt.dx, tt.dy)
		if got != tt.heading {
			t.Errorf("direction(%d,%d) = %d, want %d", tt.dx, tt.dy, got, tt.heading)
		}
		if dist != abs(tt.dx)+abs(tt.dy) {
			t.Errorf("distance = %d", dist)
		}
	}
}

func TestTurnToWraps(t *testing.T) {
	if got := turnTo(8, 1); got != 1 {
		t.Errorf("turnTo(8,1) = %d", got)
	}
	if got := turnTo(1, 8); got != 8 {
		t.Errorf("turnTo(1,8) = %d", got)
	}
	if got := turnTo(3, 5); got != 4 {
		t.Errorf("turnTo(3,5) = %d", got)
	}
}

func TestDistanceToShip(t *testing.T) {
	s, _, _ := newTestSystem(9)
	if d := s.DistanceToShip(10, 10); d != 99999 {
		t.Fatalf("no ships: distance %d", d)
	}
	sh := s.Make(Ship, 0, 0)
	// Tile (10,10) is centered on pixel (168,168).
	sh.X = 168 - sh.XHot
	sh.Y = 168 - sh.YHot + 20
	if d := s.DistanceToShip(10, 10); d != 20 {
		t.Errorf("distance = %d, want 20", d)
	}
}
