package power

import (
	"math/rand/v2"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"citysim/internal/tile"
	"citysim/internal/world"
)

type cell struct{ x, y int }

// reachable is an independent breadth-first oracle: every PWRBIT tile plus
// every CONDBIT tile connected to one through CONDBIT tiles.
func reachable(m *world.Map) mapset.Set[cell] {
	seen := mapset.New[cell]()
	var queue []cell
	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			if m.Tiles[x][y].Has(tile.PowerBit) {
				seen.Put(cell{x, y})
				queue = append(queue, cell{x, y})
			}
		}
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range []cell{{c.x, c.y - 1}, {c.x + 1, c.y}, {c.x, c.y + 1}, {c.x - 1, c.y}} {
			if !tile.InBounds(n.x, n.y) || seen.Has(n) || !m.Tiles[n.x][n.y].Has(tile.CondBit) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}

func TestScanMatchesReachability(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		r := rand.New(rand.NewPCG(seed, 99))
		var m world.Map
		for x := 0; x < tile.WorldX; x++ {
			for y := 0; y < tile.WorldY; y++ {
				switch v := r.IntN(100); {
				case v < 45:
					m.Tiles[x][y] = tile.Encode(tile.LHPower, tile.CondBit|tile.BullBit)
				case v < 46:
					m.Tiles[x][y] = tile.Encode(tile.PowerPlant, tile.PowerBit|tile.CondBit)
				}
			}
		}

		want := reachable(&m)
		res := NewScanner().Scan(&m)
		if res.Dropped != 0 {
			t.Fatalf("seed %d: %d pushes dropped", seed, res.Dropped)
		}
		if res.Powered != want.Size() {
			t.Errorf("seed %d: powered %d, oracle %d", seed, res.Powered, want.Size())
		}
		for x := 0; x < tile.WorldX; x++ {
			for y := 0; y < tile.WorldY; y++ {
				if got := m.Power.Test(x, y); got != want.Has(cell{x, y}) {
					t.Fatalf("seed %d: (%d,%d) powered=%v, oracle disagrees", seed, x, y, got)
				}
			}
		}
	}
}

func TestPlantLineAndZone(t *testing.T) {
	var m world.Map
	// 4x4 coal plant at x 0..3, y 0..3, all carrying power.
	for dx := 0; dx < 4; dx++ {
		for dy := 0; dy < 4; dy++ {
			m.Set(dx, dy, tile.Encode(tile.CoalBase+dy*4+dx, tile.BNCN|tile.PowerBit))
		}
	}
	// Five conductive wire tiles along y=1.
	for x := 4; x <= 8; x++ {
		m.Set(x, 1, tile.Encode(tile.LHPower, tile.BLBNCN))
	}
	// Residential zone center at the end of the line.
	m.Set(9, 1, tile.Encode(tile.FreeZ, tile.BNCN|tile.ZoneBit))
	// A lone conductive tile two rows down, not connected.
	m.Set(9, 3, tile.Encode(tile.LHPower, tile.BLBNCN))

	NewScanner().Scan(&m)
	Apply(&m)

	for x := 4; x <= 8; x++ {
		if !m.Power.Test(x, 1) || !m.At(x, 1).Has(tile.PowerBit) {
			t.Errorf("wire (%d,1) unpowered", x)
		}
	}
	if !m.At(9, 1).Has(tile.PowerBit) {
		t.Error("zone center unpowered")
	}
	if m.Power.Test(9, 3) || m.At(9, 3).Has(tile.PowerBit) {
		t.Error("disconnected tile powered")
	}
}

func TestCutLineLosesPower(t *testing.T) {
	var m world.Map
	m.Set(0, 0, tile.Encode(tile.PowerPlant, tile.BNCN|tile.PowerBit|tile.ZoneBit))
	for x := 1; x <= 5; x++ {
		m.Set(x, 0, tile.Encode(tile.LHPower, tile.BLBNCN))
	}
	s := NewScanner()
	s.Scan(&m)
	Apply(&m)
	if !m.At(5, 0).Has(tile.PowerBit) {
		t.Fatal("line end should be powered")
	}

	m.Set(3, 0, tile.Encode(tile.Dirt, 0))
	Strip(&m)
	s.Scan(&m)
	Apply(&m)
	if m.At(5, 0).Has(tile.PowerBit) || m.At(4, 0).Has(tile.PowerBit) {
		t.Error("tiles past the cut kept power")
	}
	if !m.At(2, 0).Has(tile.PowerBit) {
		t.Error("tile before the cut lost power")
	}
	if !m.At(0, 0).Has(tile.PowerBit) {
		t.Error("generator lost its power bit")
	}
}

func TestStackCap(t *testing.T) {
	var m world.Map
	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			m.Tiles[x][y] = tile.Encode(tile.LHPower, tile.CondBit|tile.PowerBit)
		}
	}
	res := NewScanner().Scan(&m)
	if res.Dropped != tile.WorldX*tile.WorldY-StackSize {
		t.Errorf("Dropped = %d, want %d", res.Dropped, tile.WorldX*tile.WorldY-StackSize)
	}
	if res.Powered != tile.WorldX*tile.WorldY {
		t.Errorf("Powered = %d", res.Powered)
	}
}

func TestMaxPower(t *testing.T) {
	if got := MaxPower(2, 1); got != 3400 {
		t.Errorf("MaxPower(2,1) = %d", got)
	}
}
