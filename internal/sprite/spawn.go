package sprite

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

// Pixel offsets that put trains into the track groove.
const (
	grooveX = -39
	grooveY = 6
)

// Pixel offsets that put a bus's hot point into the eastbound lane.
const (
	laneX = -36
	laneY = 12
)

// GenerateTrain may start a train on the rail tile (x, y).
func (s *System) GenerateTrain(x, y, totalPop int) {
	if totalPop > 20 && s.Get(Train) == nil && s.rnd.Rand(25) == 0 {
		s.Make(Train, (x<<4)+grooveX, (y<<4)+grooveY)
	}
}

// GenerateBus may start a bus on the road tile (x, y).
func (s *System) GenerateBus(x, y int) {
	if s.Get(Bus) == nil && s.rnd.Rand(25) == 0 {
		s.Make(Bus, (x<<4)+laneX, (y<<4)+laneY)
	}
}

// GenerateShip launches a ship from a channel tile on one of the map edges.
func (s *System) GenerateShip() {
	if s.rnd.Rand16()&3 == 0 {
		for x := 4; x < tile.WorldX-2; x++ {
			if s.m.Tiles[x][0] == tile.Channel {
				s.shipAt(x, 0)
				return
			}
		}
	}
	if s.rnd.Rand16()&3 == 0 {
		for y := 1; y < tile.WorldY-2; y++ {
			if s.m.Tiles[0][y] == tile.Channel {
				s.shipAt(0, y)
				return
			}
		}
	}
	if s.rnd.Rand16()&3 == 0 {
		for x := 4; x < tile.WorldX-2; x++ {
			if s.m.Tiles[x][tile.WorldY-1] == tile.Channel {
				s.shipAt(x, tile.WorldY-1)
				return
			}
		}
	}
	if s.rnd.Rand16()&3 == 0 {
		for y := 1; y < tile.WorldY-2; y++ {
			if s.m.Tiles[tile.WorldX-1][y] == tile.Channel {
				s.shipAt(tile.WorldX-1, y)
				return
			}
		}
	}
}

func (s *System) shipAt(x, y int) {
	s.Make(Ship, (x<<4)-47, y<<4)
}

// GenerateCopter starts a helicopter over an airport unless one is flying.
func (s *System) GenerateCopter(x, y int) {
	if s.Get(Helicopter) != nil {
		return
	}
	s.Make(Helicopter, x<<4, (y<<4)+30)
}

// GeneratePlane starts an airplane on a runway unless one is flying.
func (s *System) GeneratePlane(x, y int) {
	if s.Get(Airplane) != nil {
		return
	}
	s.Make(Airplane, (x<<4)+48, (y<<4)+12)
}

// MakeMonster summons the monster in a river, or rouses the existing one.
func (s *System) MakeMonster() {
	if sp := s.Get(Monster); sp != nil {
		sp.SoundCount = 1
		sp.Count = 1000
		return
	}
	for i := 0; i < 300; i++ {
		x := s.rnd.Rand(tile.WorldX-20) + 10
		y := s.rnd.Rand(tile.WorldY-10) + 5
		t := s.m.Tiles[x][y]
		if t == tile.River || t == tile.Encode(tile.River, tile.BullBit) {
			s.monsterAt(x, y)
			return
		}
	}
	s.monsterAt(60, 50)
}

func (s *System) monsterAt(x, y int) {
	s.Make(Monster, (x<<4)+48, y<<4)
	s.events.Post(event.MonsterSighted, x+5, y)
}

// MakeTornado spawns a tornado, or extends the life of the current one.
func (s *System) MakeTornado() {
	if sp := s.Get(Tornado); sp != nil {
		sp.Count = 200
		return
	}
	x := s.rnd.Rand((tile.WorldX<<4)-800) + 400
	y := s.rnd.Rand((tile.WorldY<<4)-200) + 100
	s.Make(Tornado, x, y)
	s.events.Post(event.TornadoSighted, (x>>4)+3, (y>>4)+2)
}

// MakeExplosion blows up the tile (x, y).
func (s *System) MakeExplosion(x, y int) {
	if tile.InBounds(x, y) {
		s.MakeExplosionAt((x<<4)+8, (y<<4)+8)
	}
}

// MakeExplosionAt starts an explosion centered on pixel (x, y).
func (s *System) MakeExplosionAt(x, y int) {
	s.MakeNew(Explosion, x-40, y-16)
}
