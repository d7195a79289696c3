package disaster

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

// MakeMeltdown melts down the first nuclear plant found, if any.
func (e *Engine) MakeMeltdown() {
	for x := 0; x < tile.WorldX-1; x++ {
		for y := 0; y < tile.WorldY-1; y++ {
			if e.m.Tiles[x][y].Base() == tile.Nuclear {
				e.Meltdown(x, y)
				return
			}
		}
	}
}

// Meltdown destroys the nuclear plant centered at (x, y) and scatters
// radiation around it.
func (e *Engine) Meltdown(x, y int) {
	e.MeltX, e.MeltY = x, y
	e.struck[Meltdown] = true

	e.explodeTile(x-1, y-1)
	e.explodeTile(x-1, y+2)
	e.explodeTile(x+2, y-1)
	e.explodeTile(x+2, y+2)

	for xx := x - 1; xx < x+3; xx++ {
		for yy := y - 1; yy < y+3; yy++ {
			if tile.InBounds(xx, yy) {
				e.m.Tiles[xx][yy] = tile.Encode(tile.Fire+(e.rnd.Rand16()&3), tile.AnimBit)
			}
		}
	}

	for i := 0; i < 200; i++ {
		xx := x - 20 + e.rnd.Rand(40)
		yy := y - 15 + e.rnd.Rand(30)
		if !tile.InBounds(xx, yy) {
			continue
		}
		t := e.m.Tiles[xx][yy]
		if t.Has(tile.ZoneBit) {
			continue
		}
		if t.Has(tile.BurnBit) || t == tile.Dirt {
			e.m.Tiles[xx][yy] = tile.RadTile
		}
	}
	e.events.Post(event.Meltdown, x, y)
}
