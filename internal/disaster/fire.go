package disaster

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

// W, N, E, S.
var (
	fireDx = [4]int{-1, 0, 1, 0}
	fireDy = [4]int{0, -1, 0, 1}
)

// SetFire sets a random building alight. It gives up after 40 misses.
func (e *Engine) SetFire() {
	for i := 0; i < 40; i++ {
		x := e.rnd.Rand(tile.WorldX - 1)
		y := e.rnd.Rand(tile.WorldY - 1)
		t := e.m.Tiles[x][y]
		if t.Has(tile.ZoneBit) {
			continue
		}
		if b := t.Base(); b > tile.LHThr && b < tile.LastZone {
			e.m.Tiles[x][y] = tile.Encode(tile.Fire+(e.rnd.Rand16()&7), tile.AnimBit)
			e.CrashX, e.CrashY = x, y
			e.events.Post(event.FireReported, x, y)
			return
		}
	}
}

// DoFire spreads the fire at (x, y) to flammable neighbors and may burn it
// out. Better fire coverage burns fires out sooner.
func (e *Engine) DoFire(x, y int) {
	for d := 0; d < 4; d++ {
		if e.rnd.Rand16()&7 != 0 {
			continue
		}
		xx, yy := x+fireDx[d], y+fireDy[d]
		if !tile.InBounds(xx, yy) {
			continue
		}
		c := e.m.Tiles[xx][yy]
		if !c.Has(tile.BurnBit) {
			continue
		}
		if c.Has(tile.ZoneBit) {
			e.m.FireZone(xx, yy, c)
			if c.Base() > tile.IZB {
				e.explodeAt((xx<<4)+8, (yy<<4)+8)
			}
		}
		e.m.Tiles[xx][yy] = tile.Encode(tile.Fire+(e.rnd.Rand16()&3), tile.AnimBit)
	}

	rate := 10
	if z := e.m.FireCoverage[x>>3][y>>3]; z > 0 {
		switch {
		case z > 100:
			rate = 1
		case z > 20:
			rate = 2
		default:
			rate = 3
		}
	}
	if e.rnd.Rand(rate) == 0 {
		e.m.Tiles[x][y] = tile.Encode(tile.Rubble+(e.rnd.Rand16()&3), tile.BullBit)
	}
}

// FireBomb drops a bomb on a random tile.
func (e *Engine) FireBomb() {
	e.CrashX = e.rnd.Rand(tile.WorldX - 1)
	e.CrashY = e.rnd.Rand(tile.WorldY - 1)
	e.explodeTile(e.CrashX, e.CrashY)
	e.events.Post(event.FireBombing, e.CrashX, e.CrashY)
}

// DoRadTile decays radiation, rarely.
func (e *Engine) DoRadTile(x, y int) {
	if e.rnd.Rand16()&4095 == 0 {
		e.m.Tiles[x][y] = tile.Dirt
	}
}
