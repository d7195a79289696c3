package zone

import (
	"citysim/internal/sprite"
	"citysim/internal/tile"
)

// Odds against a meltdown per nuclear plant pass, by difficulty.
var meltdownOdds = [3]int{30000, 20000, 10000}

func (e *Engine) special(x, y, base int, powered bool) {
	switch base {
	case tile.PowerPlant:
		e.census.CoalPlants++
		if e.CityTime&7 == 0 {
			e.repair(x, y, tile.PowerPlant, 4)
		}
		e.coalSmoke(x, y)

	case tile.Nuclear:
		if !e.NoDisasters && e.melter != nil && e.rnd.Rand(meltdownOdds[e.level()]) == 0 {
			e.melter.Meltdown(x, y)
			return
		}
		e.census.NuclearPlants++
		if e.CityTime&7 == 0 {
			e.repair(x, y, tile.Nuclear, 4)
		}

	case tile.FireStation:
		e.census.FireStations++
		if e.CityTime&7 == 0 {
			e.repair(x, y, tile.FireStation, 3)
		}
		e.m.FireStations[x>>3][y>>3] += e.coverage(x, y, e.FireEffect, powered)

	case tile.PoliceStation:
		e.census.PoliceStations++
		if e.CityTime&7 == 0 {
			e.repair(x, y, tile.PoliceStation, 3)
		}
		e.m.Police[x>>3][y>>3] += e.coverage(x, y, e.PoliceEffect, powered)

	case tile.Stadium:
		e.census.Stadiums++
		if e.CityTime&15 == 0 {
			e.repair(x, y, tile.Stadium, 4)
		}
		if powered && (e.CityTime+x+y)&31 == 0 {
			e.drawStadium(x, y, tile.FullStadium)
			e.m.Set(x+1, y, tile.Encode(tile.FootballGame1, tile.AnimBit))
			e.m.Set(x+1, y+1, tile.Encode(tile.FootballGame2, tile.AnimBit))
		}

	case tile.FullStadium:
		e.census.Stadiums++
		if (e.CityTime+x+y)&7 == 0 {
			e.drawStadium(x, y, tile.Stadium)
		}

	case tile.Airport:
		e.census.Airports++
		if e.CityTime&7 == 0 {
			e.repair(x, y, tile.Airport, 6)
		}
		e.airport(x, y, powered)

	case tile.Port:
		e.census.Seaports++
		if e.CityTime&15 == 0 {
			e.repair(x, y, tile.Port, 4)
		}
		if powered && e.vehicles != nil && e.vehicles.Get(sprite.Ship) == nil {
			e.vehicles.GenerateShip()
		}
	}
}

// coverage halves a station's effect without power and again without a
// road.
func (e *Engine) coverage(x, y, effect int, powered bool) int {
	if !powered {
		effect >>= 1
	}
	if !e.hasRoad(x, y) {
		effect >>= 1
	}
	return effect
}

var (
	coalStackDx = [4]int{1, 2, 1, 2}
	coalStackDy = [4]int{-1, -1, 0, 0}
	coalStacks  = [4]int{tile.CoalSmoke1, tile.CoalSmoke2, tile.CoalSmoke3, tile.CoalSmoke4}
)

func (e *Engine) coalSmoke(x, y int) {
	for i := range coalStacks {
		e.m.Set(x+coalStackDx[i], y+coalStackDy[i],
			tile.Encode(coalStacks[i], tile.AnimBit|tile.CondBit|tile.PowerBit|tile.BurnBit))
	}
}

// drawStadium redraws the 4x4 stadium centered at (x, y) with center as its
// new center tile.
func (e *Engine) drawStadium(x, y, center int) {
	z := center - 5
	for yy := y - 1; yy < y+3; yy++ {
		for xx := x - 1; xx < x+3; xx++ {
			e.m.Set(xx, yy, tile.Encode(z, tile.BNCN))
			z++
		}
	}
	e.m.Tiles[x][y] = e.m.Tiles[x][y].With(tile.ZoneBit | tile.PowerBit)
}

func (e *Engine) airport(x, y int, powered bool) {
	if t := e.m.At(x+1, y-1); tile.InBounds(x+1, y-1) {
		switch {
		case powered && t.Base() == tile.Radar:
			e.m.Tiles[x+1][y-1] = tile.Encode(tile.Radar, tile.AnimBit|tile.CondBit|tile.BurnBit)
		case !powered:
			e.m.Tiles[x+1][y-1] = tile.Encode(tile.Radar, tile.CondBit|tile.BurnBit)
		}
	}
	if !powered || e.vehicles == nil {
		return
	}
	if e.rnd.Rand(5) == 0 {
		e.vehicles.GeneratePlane(x, y)
		return
	}
	if e.rnd.Rand(12) == 0 {
		e.vehicles.GenerateCopter(x, y)
	}
}
