package disaster

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

// QuakeRadius is the Chebyshev distance from the epicenter an earthquake
// can reach.
const QuakeRadius = 30

// MakeEarthquake shakes the area around a random epicenter. Buildings that
// are not zone centers collapse into rubble or catch fire.
func (e *Engine) MakeEarthquake() {
	e.QuakeX = e.rnd.Rand(tile.WorldX - 1)
	e.QuakeY = e.rnd.Rand(tile.WorldY - 1)
	e.struck[Earthquake] = true
	e.events.Post(event.EarthquakeReported, e.QuakeX, e.QuakeY)

	hits := e.rnd.Rand(700) + 300
	for z := 0; z < hits; z++ {
		x := e.QuakeX - QuakeRadius + e.rnd.Rand(2*QuakeRadius)
		y := e.QuakeY - QuakeRadius + e.rnd.Rand(2*QuakeRadius)
		if !tile.InBounds(x, y) || !vulnerable(e.m.Tiles[x][y]) {
			continue
		}
		if z&3 != 0 {
			e.m.Tiles[x][y] = tile.Encode(tile.Rubble+(e.rnd.Rand16()&3), tile.BullBit)
		} else {
			e.m.Tiles[x][y] = tile.Encode(tile.Fire+(e.rnd.Rand16()&7), tile.AnimBit)
		}
	}
}

func vulnerable(t tile.Tile) bool {
	b := t.Base()
	if b < tile.ResBase || b > tile.LastZone {
		return false
	}
	return !t.Has(tile.ZoneBit)
}
