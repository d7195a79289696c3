package tool

import (
	"citysim/internal/tile"
	"citysim/internal/zone"
)

// bulldoze razes the building under (x, y) or clears a single piece.
// Razing any building costs 1 and leaves explosion debris.
func (t *Tools) bulldoze(x, y int, tr zone.Treasury) zone.Result {
	cur := t.m.Tiles[x][y]
	b := cur.Base()

	size, cx, cy := 0, x, y
	if cur.Has(tile.ZoneBit) {
		size = zoneSize(b)
	} else if s, dx, dy := bigZone(b); s > 0 {
		size, cx, cy = s, x+dx, y+dy
	}
	if size > 0 {
		if tr.Funds() <= 0 {
			return zone.InsufficientFunds
		}
		tr.Spend(1)
		t.rubble(cx, cy, size)
		return zone.Ok
	}

	if tr.Funds() <= 0 {
		return zone.InsufficientFunds
	}
	if !cur.Has(tile.BullBit) {
		return zone.InvalidTerrain
	}
	switch neutral(b) {
	case tile.HBridge, tile.VBridge, tile.BRWV, tile.BRWH,
		tile.HBrdg0, tile.HBrdg1, tile.HBrdg2, tile.HBrdg3,
		tile.VBrdg0, tile.VBrdg1, tile.VBrdg2, tile.VBrdg3,
		tile.HPower, tile.VPower, tile.HRail, tile.VRail:
		t.m.Tiles[x][y] = tile.River
	default:
		t.m.Tiles[x][y] = 0
	}
	tr.Spend(1)
	t.fixAround(x, y)
	return zone.Ok
}

// zoneSize is the footprint edge of the zone whose center is b.
func zoneSize(b int) int {
	switch {
	case b >= tile.ResBase-1 && b <= tile.PortBase-1,
		b >= tile.LastPowerPlant+1 && b <= tile.PoliceStation+4:
		return 3
	case b >= tile.PortBase && b <= tile.LastPort,
		b >= tile.CoalBase && b <= tile.LastPowerPlant,
		b >= tile.StadiumBase && b <= tile.LastZone:
		return 4
	}
	return 6
}

// bigZone locates the center of the 4x4 or 6x6 building that the non-center
// piece b belongs to, as an offset from the piece. Size 0 means b is not
// part of one.
func bigZone(b int) (size, dx, dy int) {
	switch {
	case b >= tile.CoalSmoke1 && b < tile.FootballGame1:
		// Smoke stacks sit on the top two rows, right two columns.
		i := (b - tile.CoalSmoke1) / 4
		return 4, -1 - i&1, 1 - i>>1
	case b >= tile.FootballGame1 && b < tile.FootballGame2:
		return 4, -1, 0
	case b >= tile.FootballGame2 && b < tile.VBrdg0:
		return 4, -1, -1
	case b >= tile.AirportBase && b < tile.CoalBase:
		dx, dy := piece(b-tile.AirportBase, 6)
		return 6, dx, dy
	}
	for _, first := range [...]int{tile.PortBase, tile.CoalBase, tile.StadiumBase, tile.FullStadium - 5, tile.NuclearBase} {
		if b >= first && b < first+16 {
			dx, dy := piece(b-first, 4)
			return 4, dx, dy
		}
	}
	return 0, 0, 0
}

// piece turns a row-order index into the offset back to the center, which
// sits one tile in from the top-left corner.
func piece(i, size int) (int, int) {
	return 1 - i%size, 1 - i/size
}

// rubble turns the size x size footprint centered at (x, y) into debris.
func (t *Tools) rubble(x, y, size int) {
	for xx := x - 1; xx < x-1+size; xx++ {
		for yy := y - 1; yy < y-1+size; yy++ {
			if !tile.InBounds(xx, yy) {
				continue
			}
			if b := t.m.Tiles[xx][yy].Base(); b == tile.Dirt || b == tile.RadTile {
				continue
			}
			t.m.Tiles[xx][yy] = tile.Encode(tile.TinyExp+t.rnd.Rand(2), tile.AnimBit|tile.BullBit)
		}
	}
}
