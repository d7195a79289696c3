package sprite

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

var crashMessages = [KindCount]event.Kind{
	Train:      event.TrainCrashed,
	Helicopter: event.CopterCrashed,
	Airplane:   event.PlaneCrashed,
	Ship:       event.ShipWrecked,
	Bus:        event.BusCrashed,
}

// explode deactivates sp, leaves an explosion at its hot point and records
// the wreck.
func (s *System) explode(sp *Sprite) {
	sp.Frame = 0
	x, y := sp.HotX(), sp.HotY()
	s.MakeExplosionAt(x, y)
	x >>= 4
	y >>= 4
	if msg := crashMessages[sp.Kind]; msg != event.None {
		s.CrashX, s.CrashY = x, y
		s.events.Post(msg, x, y)
	}
}

// wreck damages the tile under pixel (x, y).
func (s *System) wreck(x, y int) {
	tx, ty := x>>4, y>>4
	if !tile.InBounds(tx, ty) {
		return
	}
	z := s.m.Tiles[tx][ty]
	t := z.Base()
	if t < tile.TreeBase {
		return
	}
	if !z.Has(tile.BurnBit) {
		if t >= tile.RoadBase && t <= tile.LastRoad {
			s.m.Tiles[tx][ty] = tile.River
		}
		return
	}
	if z.Has(tile.ZoneBit) {
		s.m.FireZone(tx, ty, z)
		if t > tile.RZB {
			s.MakeExplosionAt(x, y)
		}
	}
	if wet(t) {
		s.m.Tiles[tx][ty] = tile.River
	} else {
		s.m.Tiles[tx][ty] = tile.Encode(tile.SomeTinyExp-3, tile.BullBit|tile.AnimBit)
	}
}

// wet reports tiles that are structures over water.
func wet(t int) bool {
	switch t {
	case tile.PowerBase, tile.PowerBase + 1, tile.RailBase, tile.RailBase + 1, tile.BRWH, tile.BRWV:
		return true
	}
	return false
}

// startFire ignites the tile under pixel (x, y) if it is flammable or empty.
func (s *System) startFire(x, y int) {
	tx, ty := x>>4, y>>4
	if !tile.InBounds(tx, ty) {
		return
	}
	z := s.m.Tiles[tx][ty]
	if !z.Has(tile.BurnBit) && z.Base() != tile.Dirt {
		return
	}
	if z.Has(tile.ZoneBit) {
		return
	}
	s.m.Tiles[tx][ty] = tile.Encode(tile.Fire+(s.rnd.Rand16()&3), tile.AnimBit)
}
