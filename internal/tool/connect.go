package tool

import (
	"citysim/internal/tile"
	"citysim/internal/zone"
)

// Piece for each combination of connected sides, indexed by N=1 E=2 S=4
// W=8.
var (
	roadTable = [16]int{
		66, 67, 66, 68, 67, 67, 69, 73,
		66, 71, 66, 72, 70, 75, 74, 76,
	}
	railTable = [16]int{
		226, 227, 226, 228, 227, 227, 229, 233,
		226, 231, 226, 232, 230, 235, 234, 236,
	}
	wireTable = [16]int{
		210, 211, 210, 212, 211, 211, 213, 217,
		210, 215, 210, 216, 214, 219, 218, 220,
	}
)

const (
	lastRoadPiece = tile.Intersection
	lastRailPiece = tile.LHRail + 10
	lastWirePiece = tile.LHPower + 10
)

// neutral strips the traffic level from a road id.
func neutral(b int) int {
	if b >= tile.RoadBase && b < tile.PowerBase {
		return b&15 + tile.RoadBase
	}
	return b
}

// Fix rebuilds the road, rail or wire piece at (x, y) to match its
// neighbors. Other tiles are left alone.
func (t *Tools) Fix(x, y int) {
	if !tile.InBounds(x, y) {
		return
	}
	b := neutral(t.m.Tiles[x][y].Base())
	switch {
	case b >= tile.Roads && b <= lastRoadPiece:
		t.m.Tiles[x][y] = tile.Encode(roadTable[t.sides(x, y, roadLinks)], tile.BullBit|tile.BurnBit)
	case b >= tile.LHRail && b <= lastRailPiece:
		t.m.Tiles[x][y] = tile.Encode(railTable[t.sides(x, y, railLinks)], tile.BullBit|tile.BurnBit)
	case b >= tile.LHPower && b <= lastWirePiece:
		t.m.Tiles[x][y] = tile.Encode(wireTable[t.sides(x, y, wireLinks)], tile.BLBNCN)
	}
}

// fixAround fixes (x, y) and its four neighbors.
func (t *Tools) fixAround(x, y int) {
	t.Fix(x, y)
	t.Fix(x, y-1)
	t.Fix(x-1, y)
	t.Fix(x+1, y)
	t.Fix(x, y+1)
}

// N, E, S, W.
var (
	sideX = [4]int{0, 1, 0, -1}
	sideY = [4]int{-1, 0, 1, 0}
)

// A links function reports whether neighbor t carries the layer toward a
// piece on its vertical (N, S) or horizontal (E, W) side.
type links func(t tile.Tile, vertical bool) bool

func (t *Tools) sides(x, y int, linked links) int {
	mask := 0
	for d := 0; d < 4; d++ {
		nx, ny := x+sideX[d], y+sideY[d]
		if !tile.InBounds(nx, ny) {
			continue
		}
		if linked(t.m.Tiles[nx][ny], d&1 == 0) {
			mask |= 1 << d
		}
	}
	return mask
}

func roadLinks(t tile.Tile, vertical bool) bool {
	b := neutral(t.Base())
	if vertical {
		return b == tile.HRailRoad ||
			(b >= tile.RoadBase && b <= tile.VRoadPower && b != tile.HRoadPower && b != tile.HBridge)
	}
	return b == tile.VRailRoad ||
		(b >= tile.RoadBase && b <= tile.VRoadPower && b != tile.VRoadPower && b != tile.VBridge)
}

func railLinks(t tile.Tile, vertical bool) bool {
	b := neutral(t.Base())
	if b < tile.RailHPowerV || b > tile.VRailRoad {
		return false
	}
	if vertical {
		return b != tile.RailHPowerV && b != tile.HRailRoad && b != tile.HRail
	}
	return b != tile.RailVPowerH && b != tile.VRailRoad && b != tile.VRail
}

func wireLinks(t tile.Tile, vertical bool) bool {
	if !t.Has(tile.CondBit) {
		return false
	}
	b := neutral(t.Base())
	if vertical {
		return b != tile.VPower && b != tile.VRoadPower && b != tile.RailVPowerH
	}
	return b != tile.HPower && b != tile.HRoadPower && b != tile.RailHPowerV
}

// lay puts a road, rail or wire piece down and reconnects the neighborhood.
// A bulldozed tile is only cleared for good when the piece goes down.
func (t *Tools) lay(x, y int, k Kind, tr zone.Treasury) zone.Result {
	cur := t.m.Tiles[x][y]
	pay := tr
	if t.zones.AutoBulldoze && tr.Funds() > 0 {
		b := neutral(cur.Base())
		if cur.Has(tile.BullBit) && ((b >= tile.TinyExp && b <= tile.LastTinyExp) || (b < tile.RoadBase && b != tile.Dirt)) {
			t.m.Tiles[x][y] = 0
			pay = surcharge{tr, BulldozeFee}
		}
	}
	var res zone.Result
	switch k {
	case Road:
		res = t.layRoad(x, y, pay)
	case Rail:
		res = t.layRail(x, y, pay)
	default:
		res = t.layWire(x, y, pay)
	}
	if res != zone.Ok {
		t.m.Tiles[x][y] = cur
		return res
	}
	t.fixAround(x, y)
	return res
}

// surcharge adds a fee to the next purchase. Funds reports what is left for
// the purchase itself.
type surcharge struct {
	zone.Treasury
	fee int
}

func (s surcharge) Funds() int        { return s.Treasury.Funds() - s.fee }
func (s surcharge) Spend(amount int) { s.Treasury.Spend(amount + s.fee) }

func water(b int) bool {
	return b == tile.River || b == tile.REdge || b == tile.Channel
}

// crossing reports whether a neighbor in direction d satisfies ok.
func (t *Tools) crossing(x, y, d int, ok func(b int) bool) bool {
	nx, ny := x+sideX[d], y+sideY[d]
	return tile.InBounds(nx, ny) && ok(neutral(t.m.Tiles[nx][ny].Base()))
}

func (t *Tools) layRoad(x, y int, tr zone.Treasury) zone.Result {
	cost := CostOf(Road)
	if tr.Funds() < cost {
		return zone.InsufficientFunds
	}
	var next tile.Tile
	switch b := t.m.Tiles[x][y].Base(); {
	case b == tile.Dirt:
		next = tile.Encode(tile.Roads, tile.BullBit|tile.BurnBit)
	case water(b):
		cost = BridgeCost
		if tr.Funds() < cost {
			return zone.InsufficientFunds
		}
		horizontal := func(b int) bool {
			return b == tile.VRailRoad || b == tile.HBridge || (b >= tile.Roads && b <= tile.HRoadPower)
		}
		vertical := func(b int) bool {
			return b == tile.HRailRoad || b == tile.VRoadPower || (b >= tile.VBridge && b <= tile.Intersection)
		}
		switch {
		case t.crossing(x, y, 1, horizontal) || t.crossing(x, y, 3, horizontal):
			next = tile.Encode(tile.HBridge, tile.BullBit)
		case t.crossing(x, y, 2, vertical) || t.crossing(x, y, 0, vertical):
			next = tile.Encode(tile.VBridge, tile.BullBit)
		default:
			return zone.InvalidTerrain
		}
	case b == tile.LHPower:
		next = tile.Encode(tile.VRoadPower, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.LVPower:
		next = tile.Encode(tile.HRoadPower, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.LHRail:
		next = tile.Encode(tile.HRailRoad, tile.BurnBit|tile.BullBit)
	case b == tile.LVRail:
		next = tile.Encode(tile.VRailRoad, tile.BurnBit|tile.BullBit)
	default:
		return zone.InvalidTerrain
	}
	t.m.Tiles[x][y] = next
	tr.Spend(cost)
	return zone.Ok
}

func (t *Tools) layRail(x, y int, tr zone.Treasury) zone.Result {
	cost := CostOf(Rail)
	if tr.Funds() < cost {
		return zone.InsufficientFunds
	}
	var next tile.Tile
	switch b := t.m.Tiles[x][y].Base(); {
	case b == tile.Dirt:
		next = tile.Encode(tile.LHRail, tile.BullBit|tile.BurnBit)
	case water(b):
		cost = TunnelCost
		if tr.Funds() < cost {
			return zone.InsufficientFunds
		}
		horizontal := func(b int) bool {
			return b == tile.RailHPowerV || b == tile.HRail || (b >= tile.LHRail && b <= tile.HRailRoad)
		}
		vertical := func(b int) bool {
			return b == tile.RailVPowerH || b == tile.VRailRoad || (b > tile.HRail && b < tile.LHRail)
		}
		switch {
		case t.crossing(x, y, 1, horizontal) || t.crossing(x, y, 3, horizontal):
			next = tile.Encode(tile.HRail, tile.BullBit)
		case t.crossing(x, y, 2, vertical) || t.crossing(x, y, 0, vertical):
			next = tile.Encode(tile.VRail, tile.BullBit)
		default:
			return zone.InvalidTerrain
		}
	case b == tile.LHPower:
		next = tile.Encode(tile.RailVPowerH, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.LVPower:
		next = tile.Encode(tile.RailHPowerV, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.Roads:
		next = tile.Encode(tile.VRailRoad, tile.BurnBit|tile.BullBit)
	case b == tile.Roads2:
		next = tile.Encode(tile.HRailRoad, tile.BurnBit|tile.BullBit)
	default:
		return zone.InvalidTerrain
	}
	t.m.Tiles[x][y] = next
	tr.Spend(cost)
	return zone.Ok
}

func (t *Tools) layWire(x, y int, tr zone.Treasury) zone.Result {
	cost := CostOf(Wire)
	if tr.Funds() < cost {
		return zone.InsufficientFunds
	}
	var next tile.Tile
	switch b := t.m.Tiles[x][y].Base(); {
	case b == tile.Dirt:
		next = tile.Encode(tile.LHPower, tile.BLBNCN)
	case water(b):
		cost = UnderwaterWireCost
		if tr.Funds() < cost {
			return zone.InsufficientFunds
		}
		switch {
		case t.conducts(x, y, 1, false) || t.conducts(x, y, 3, false):
			next = tile.Encode(tile.VPower, tile.CondBit|tile.BullBit)
		case t.conducts(x, y, 2, true) || t.conducts(x, y, 0, true):
			next = tile.Encode(tile.HPower, tile.CondBit|tile.BullBit)
		default:
			return zone.InvalidTerrain
		}
	case b == tile.Roads:
		next = tile.Encode(tile.HRoadPower, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.Roads2:
		next = tile.Encode(tile.VRoadPower, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.LHRail:
		next = tile.Encode(tile.RailHPowerV, tile.CondBit|tile.BurnBit|tile.BullBit)
	case b == tile.LVRail:
		next = tile.Encode(tile.RailVPowerH, tile.CondBit|tile.BurnBit|tile.BullBit)
	default:
		return zone.InvalidTerrain
	}
	t.m.Tiles[x][y] = next
	tr.Spend(cost)
	return zone.Ok
}

// conducts reports whether the neighbor in direction d can feed a wire
// crossing water.
func (t *Tools) conducts(x, y, d int, vertical bool) bool {
	nx, ny := x+sideX[d], y+sideY[d]
	if !tile.InBounds(nx, ny) {
		return false
	}
	return wireLinks(t.m.Tiles[nx][ny], vertical)
}
