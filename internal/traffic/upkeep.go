package traffic

import (
	"citysim/internal/tile"
)

var densityBase = [3]int{tile.RoadBase, tile.LTrfBase, tile.HTrfBase}

// UpdateRoad runs one scan step for the road tile at (x, y): decay under
// poor funding, drawbridge operation and the traffic animation level.
func (r *Router) UpdateRoad(x, y int) {
	t := r.m.Tiles[x][y]
	base := t.Base()
	r.census.RoadTotal++

	if r.decays(t) {
		if base&15 < 2 || base&15 == 15 {
			r.m.Tiles[x][y] = tile.River
		} else {
			r.m.Tiles[x][y] = tile.Encode(tile.Rubble+(r.rnd.Rand16()&3), tile.BullBit)
		}
		return
	}

	if !t.Has(tile.BurnBit) {
		// Bridges are the only road pieces that cannot burn.
		r.census.RoadTotal += 4
		if r.operateBridge(x, y, base) {
			return
		}
	}

	level := 0
	switch {
	case base < tile.LTrfBase:
	case base < tile.HTrfBase:
		level = 1
	default:
		r.census.RoadTotal++
		level = 2
	}

	density := r.m.TrafficDensity[x>>1][y>>1] >> 6
	if density > 1 {
		density--
	}
	if density > 2 {
		density = 2
	}
	if level == density {
		return
	}
	z := ((base - tile.RoadBase) & 15) + densityBase[density]
	flags := t.Flags() &^ tile.AnimBit
	if density > 0 {
		flags |= tile.AnimBit
	}
	r.m.Tiles[x][y] = tile.Encode(z, flags)
}

// UpdateRail runs one scan step for the rail tile at (x, y).
func (r *Router) UpdateRail(x, y int) {
	t := r.m.Tiles[x][y]
	r.census.RailTotal++
	if r.vehicles != nil {
		r.vehicles.GenerateTrain(x, y, r.TotalPop)
	}
	if r.decays(t) {
		if t.Base() < tile.RailBase+2 {
			r.m.Tiles[x][y] = tile.River
		} else {
			r.m.Tiles[x][y] = tile.Encode(tile.Rubble+(r.rnd.Rand16()&3), tile.BullBit)
		}
	}
}

func (r *Router) decays(t tile.Tile) bool {
	if r.RoadEffect >= 30 {
		return false
	}
	if r.rnd.Rand16()&511 != 0 || t.Has(tile.CondBit) {
		return false
	}
	return r.RoadEffect < r.rnd.Rand16()&31
}

// Drawbridge geometry relative to the bridge control tile. The *Open tables
// hold the raised pieces, the *Closed tables the lowered deck.
var (
	hBridgeDx     = [7]int{-2, 2, -2, -1, 0, 1, 2}
	hBridgeDy     = [7]int{-1, -1, 0, 0, 0, 0, 0}
	hBridgeOpen   = [7]tile.Tile{bull(tile.HBrdg1), bull(tile.HBrdg3), bull(tile.HBrdg0), tile.River, bull(tile.BRWH), tile.River, bull(tile.HBrdg2)}
	hBridgeClosed = [7]tile.Tile{tile.River, tile.River, bull(tile.HBridge), bull(tile.HBridge), bull(tile.HBridge), bull(tile.HBridge), bull(tile.HBridge)}

	vBridgeDx     = [7]int{0, 1, 0, 0, 0, 0, 1}
	vBridgeDy     = [7]int{-2, -2, -1, 0, 1, 2, 2}
	vBridgeOpen   = [7]tile.Tile{bull(tile.VBrdg0), bull(tile.VBrdg1), tile.River, bull(tile.BRWV), tile.River, bull(tile.VBrdg2), bull(tile.VBrdg3)}
	vBridgeClosed = [7]tile.Tile{bull(tile.VBridge), tile.River, bull(tile.VBridge), bull(tile.VBridge), bull(tile.VBridge), bull(tile.VBridge), tile.River}
)

func bull(base int) tile.Tile { return tile.Encode(base, tile.BullBit) }

// operateBridge opens a drawbridge for a nearby ship and closes it once the
// ship is gone. It reports whether the tile was handled as a bridge.
func (r *Router) operateBridge(x, y, base int) bool {
	switch base {
	case tile.BRWV:
		if r.rnd.Rand16()&3 == 0 && r.shipDistance(x, y) > 340 {
			r.swap(x, y, &vBridgeDx, &vBridgeDy, &vBridgeOpen, &vBridgeClosed)
		}
		return true
	case tile.BRWH:
		if r.rnd.Rand16()&3 == 0 && r.shipDistance(x, y) > 340 {
			r.swap(x, y, &hBridgeDx, &hBridgeDy, &hBridgeOpen, &hBridgeClosed)
		}
		return true
	}

	if r.shipDistance(x, y) >= 300 && r.rnd.Rand16()&7 != 0 {
		return false
	}
	if base&1 != 0 {
		if x < tile.WorldX-1 && r.m.Tiles[x+1][y] == tile.Channel {
			r.raise(x, y, &vBridgeDx, &vBridgeDy, &vBridgeOpen, &vBridgeClosed)
			return true
		}
		return false
	}
	if y > 0 && r.m.Tiles[x][y-1] == tile.Channel {
		r.raise(x, y, &hBridgeDx, &hBridgeDy, &hBridgeOpen, &hBridgeClosed)
		return true
	}
	return false
}

// swap lowers a raised bridge.
func (r *Router) swap(x, y int, dx, dy *[7]int, open, closed *[7]tile.Tile) {
	for i := range dx {
		tx, ty := x+dx[i], y+dy[i]
		if tile.InBounds(tx, ty) && r.m.Tiles[tx][ty].Base() == open[i].Base() {
			r.m.Tiles[tx][ty] = closed[i]
		}
	}
}

// raise lifts a lowered bridge.
func (r *Router) raise(x, y int, dx, dy *[7]int, open, closed *[7]tile.Tile) {
	for i := range dx {
		tx, ty := x+dx[i], y+dy[i]
		if !tile.InBounds(tx, ty) {
			continue
		}
		t := r.m.Tiles[tx][ty]
		if t == tile.Channel || t&15 == closed[i]&15 {
			r.m.Tiles[tx][ty] = open[i]
		}
	}
}

func (r *Router) shipDistance(x, y int) int {
	if r.vehicles == nil {
		return 99999
	}
	return r.vehicles.DistanceToShip(x, y)
}
