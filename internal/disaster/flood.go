package disaster

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

// FloodRadius bounds how far, in tiles, a flood spreads from where it began.
const FloodRadius = 12

// floodPasses is the flood countdown set by MakeFlood.
const floodPasses = 30

// N, E, S, W.
var (
	floodDx = [4]int{0, 1, 0, -1}
	floodDy = [4]int{-1, 0, 1, 0}
)

// MakeFlood starts a flood beside a river edge. It gives up after 300 misses.
func (e *Engine) MakeFlood() {
	for i := 0; i < 300; i++ {
		x := e.rnd.Rand(tile.WorldX - 1)
		y := e.rnd.Rand(tile.WorldY - 1)
		b := e.m.Tiles[x][y].Base()
		if b < tile.FirstRiverEdge || b > tile.LastRiverEdge {
			continue
		}
		for d := 0; d < 4; d++ {
			xx, yy := x+floodDx[d], y+floodDy[d]
			if !tile.InBounds(xx, yy) {
				continue
			}
			c := e.m.Tiles[xx][yy]
			if c == tile.Dirt || c.Has(tile.BullBit|tile.BurnBit) {
				e.m.Tiles[xx][yy] = tile.Flood
				e.floodCount = floodPasses
				e.floodX, e.floodY = xx, yy
				e.events.Post(event.FloodReported, xx, yy)
				return
			}
		}
	}
}

// DoFlood spreads the flood tile at (x, y) while the countdown runs and
// lets it recede afterwards.
func (e *Engine) DoFlood(x, y int) {
	if e.floodCount == 0 {
		if e.rnd.Rand16()&15 == 0 {
			e.m.Tiles[x][y] = tile.Dirt
		}
		return
	}
	for d := 0; d < 4; d++ {
		if e.rnd.Rand16()&7 != 0 {
			continue
		}
		xx, yy := x+floodDx[d], y+floodDy[d]
		if !tile.InBounds(xx, yy) || !e.nearFlood(xx, yy) {
			continue
		}
		c := e.m.Tiles[xx][yy]
		if !floodable(c) {
			continue
		}
		if c.Has(tile.ZoneBit) {
			e.m.FireZone(xx, yy, c)
		}
		e.m.Tiles[xx][yy] = tile.Encode(tile.Flood+e.rnd.Rand(2), 0)
	}
}

func (e *Engine) nearFlood(x, y int) bool {
	return abs(x-e.floodX) <= FloodRadius && abs(y-e.floodY) <= FloodRadius
}

func floodable(c tile.Tile) bool {
	if c == tile.Dirt || c.Has(tile.BurnBit) {
		return true
	}
	b := c.Base()
	return b >= tile.Woods5 && b < tile.Flood
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
