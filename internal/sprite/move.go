package sprite

import (
	"citysim/internal/event"
	"citysim/internal/tile"
)

var (
	trainCx   = [4]int{0, 16, 0, -16}
	trainCy   = [4]int{-16, 0, 16, 0}
	trainDx   = [5]int{0, 4, 0, -4, 0}
	trainDy   = [5]int{-4, 0, 4, 0, 0}
	trainPic2 = [5]int{1, 2, 1, 2, 5}

	copterDx = [9]int{0, 0, 3, 5, 3, 0, -3, -5, -3}
	copterDy = [9]int{0, -5, -3, 0, 3, 5, 3, 0, -3}

	planeDx = [12]int{0, 0, 6, 8, 6, 0, -6, -8, -6, 8, 8, 8}
	planeDy = [12]int{0, -8, -6, 0, 6, 8, 6, 0, -6, 0, 0, 0}

	shipTileDx = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	shipTileDy = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}
	shipDx     = [9]int{0, 0, 2, 2, 2, 0, -2, -2, -2}
	shipDy     = [9]int{0, -2, -2, 0, 2, 2, 2, 0, -2}
	shipWater  = [...]int{tile.River, tile.Channel, tile.PowerBase, tile.PowerBase + 1,
		tile.RailBase, tile.RailBase + 1, tile.BRWH, tile.BRWV}

	monsterDx = [5]int{2, 2, -2, -2, 0}
	monsterDy = [5]int{-2, 2, 2, -2, 0}
	monsterN1 = [4]int{0, 1, 2, 3}
	monsterN2 = [4]int{1, 2, 3, 0}
	monsterT1 = [4]int{2, 5, 8, 11}
	monsterT2 = [4]int{11, 2, 5, 8}

	tornadoDx = [6]int{2, 3, 2, 0, -2, -3}
	tornadoDy = [6]int{-2, 0, 2, 3, 2, 0}

	busDx        = [5]int{0, 1, 0, -1, 0}
	busDy        = [5]int{-1, 0, 1, 0, 0}
	busDir2Frame = [4]int{1, 2, 1, 2}
)

func (s *System) moveTrain(sp *Sprite) {
	if sp.Frame == 3 || sp.Frame == 4 {
		sp.Frame = trainPic2[sp.Dir]
	}
	sp.X += trainDx[sp.Dir]
	sp.Y += trainDy[sp.Dir]
	if s.cycle&3 != 0 {
		return
	}

	start := s.rnd.Rand16() & 3
	for z := start; z < start+4; z++ {
		dir := z & 3
		if sp.Dir != 4 && dir == (sp.Dir+2)&3 {
			continue
		}
		c := s.charAt(sp.X+trainCx[dir]+48, sp.Y+trainCy[dir])
		if !(c >= tile.RailBase && c <= tile.LastRail) && c != tile.RailVPowerH && c != tile.RailHPowerV {
			continue
		}
		if sp.Dir != dir && sp.Dir != 4 {
			if sp.Dir+dir == 3 {
				sp.Frame = 3
			} else {
				sp.Frame = 4
			}
		} else {
			sp.Frame = trainPic2[dir]
		}
		if c == tile.RailBase || c == tile.RailBase+1 {
			sp.Frame = 5
		}
		sp.Dir = dir
		return
	}
	if sp.Dir == 4 {
		sp.Frame = 0
		return
	}
	sp.Dir = 4
}

func (s *System) moveCopter(sp *Sprite) {
	if sp.SoundCount > 0 {
		sp.SoundCount--
	}

	if sp.Control < 0 {
		if sp.Count > 0 {
			sp.Count--
		}
		if sp.Count == 0 {
			target := s.Get(Monster)
			if target == nil {
				target = s.Get(Tornado)
			}
			if target != nil {
				sp.DestX, sp.DestY = target.X, target.Y
			} else {
				sp.DestX, sp.DestY = sp.OrigX, sp.OrigY
			}
			if _, dist := direction(sp.X, sp.Y, sp.OrigX, sp.OrigY); dist < 30 {
				sp.Frame = 0
				return
			}
		}
	} else if _, dist := direction(sp.X, sp.Y, sp.DestX, sp.DestY); dist < 16 {
		sp.DestX, sp.DestY = sp.OrigX, sp.OrigY
		sp.Control = -1
	}

	if sp.SoundCount == 0 {
		x := (sp.X + 48) >> 5
		y := sp.Y >> 5
		if x >= 0 && x < tile.WorldX>>1 && y >= 0 && y < tile.WorldY>>1 {
			if s.m.TrafficDensity[x][y] > 170 && s.rnd.Rand16()&7 == 0 {
				s.events.Post(event.HeavyTraffic, (x<<1)+1, (y<<1)+1)
				sp.SoundCount = 200
			}
		}
	}

	z := sp.Frame
	if s.cycle&3 == 0 {
		d, _ := direction(sp.X, sp.Y, sp.DestX, sp.DestY)
		z = turnTo(z, d)
		sp.Frame = z
	}
	sp.X += copterDx[z]
	sp.Y += copterDy[z]
}

func (s *System) moveAirplane(sp *Sprite) {
	z := sp.Frame
	if s.cycle%5 == 0 {
		if z > 8 {
			// Still climbing out along the runway.
			z--
			if z < 9 {
				z = 3
			}
		} else {
			d, _ := direction(sp.X, sp.Y, sp.DestX, sp.DestY)
			z = turnTo(z, d)
		}
		sp.Frame = z
	}

	if _, dist := direction(sp.X, sp.Y, sp.DestX, sp.DestY); dist < 50 {
		sp.DestX = s.rnd.Rand(tile.WorldX*16+100) - 50
		sp.DestY = s.rnd.Rand(tile.WorldY*16+100) - 50
	}

	if !s.NoDisasters {
		hit := false
		for _, other := range s.list {
			if other.Frame == 0 || !(other.Kind == Helicopter || (other != sp && other.Kind == Airplane)) {
				continue
			}
			if collide(sp, other) {
				s.explode(other)
				hit = true
			}
		}
		if hit {
			s.explode(sp)
		}
	}

	sp.X += planeDx[z]
	sp.Y += planeDy[z]
	if outOfBounds(sp) {
		sp.Frame = 0
	}
}

func (s *System) moveShip(sp *Sprite) {
	if sp.SoundCount > 0 {
		sp.SoundCount--
	}
	if sp.SoundCount == 0 {
		// Horn roll; sound is not modeled.
		s.rnd.Rand16()
		sp.SoundCount = 200
	}

	if sp.Count > 0 {
		sp.Count--
	}
	if sp.Count == 0 {
		sp.Count = 9
		if sp.Frame != sp.NewDir {
			sp.Frame = turnTo(sp.Frame, sp.NewDir)
			return
		}
		start := s.rnd.Rand16() & 7
		found := false
		for p := start; p < start+8; p++ {
			z := (p & 7) + 1
			if z == sp.Dir {
				continue
			}
			x := ((sp.X + 47) >> 4) + shipTileDx[z]
			y := (sp.Y >> 4) + shipTileDy[z]
			if !tile.InBounds(x, y) {
				continue
			}
			t := s.m.Tiles[x][y].Base()
			sp.under = t
			if t == tile.Channel || t == tile.BRWH || t == tile.BRWV || tryOther(t, sp.Dir, z) {
				sp.NewDir = z
				sp.Frame = turnTo(sp.Frame, sp.NewDir)
				sp.Dir = z + 4
				if sp.Dir > 8 {
					sp.Dir -= 8
				}
				found = true
				break
			}
		}
		if !found {
			sp.Dir = 10
			sp.NewDir = (s.rnd.Rand16() & 7) + 1
		}
	} else if z := sp.Frame; z == sp.NewDir {
		sp.X += shipDx[z]
		sp.Y += shipDy[z]
	}

	if outOfBounds(sp) {
		sp.Frame = 0
		return
	}
	for _, w := range shipWater {
		if sp.under == w {
			return
		}
	}
	s.explode(sp)
}

func (s *System) moveMonster(sp *Sprite) {
	if sp.SoundCount > 0 {
		sp.SoundCount--
	}

	var d, z int
	if sp.Control < 0 {
		if sp.Control == -2 {
			d = min((sp.Frame-1)/3, 4)
			z = s.stride(sp)
			c, dist := direction(sp.X, sp.Y, sp.DestX, sp.DestY)
			if dist < 18 {
				sp.Control = -1
				sp.Count = 1000
				sp.Flag = 1
				sp.DestX, sp.DestY = sp.OrigX, sp.OrigY
			} else {
				c = (c - 1) / 2
				if (c != d && s.rnd.Rand(5) == 0) || s.rnd.Rand(20) == 0 {
					diff := (c - d) & 3
					if diff == 1 || diff == 3 {
						d = c
					} else {
						d = s.veer(d)
					}
				} else if s.rnd.Rand(20) == 0 {
					d = s.veer(d)
				}
			}
		} else {
			d = (sp.Frame - 1) / 3
			if d < 4 {
				z = s.stride(sp)
				if _, dist := direction(sp.X, sp.Y, sp.DestX, sp.DestY); dist < 60 {
					if sp.Flag == 0 {
						sp.Flag = 1
						sp.DestX, sp.DestY = sp.OrigX, sp.OrigY
					} else {
						sp.Frame = 0
						return
					}
				}
				c, _ := direction(sp.X, sp.Y, sp.DestX, sp.DestY)
				c = (c - 1) / 2
				if c != d && s.rnd.Rand(10) == 0 {
					if s.rnd.Rand16()&1 != 0 {
						z = monsterN1[d]
					} else {
						z = monsterN2[d]
					}
					d = 4
					if sp.SoundCount == 0 {
						sp.SoundCount = 50 + s.rnd.Rand(100)
					}
				}
			} else {
				// Turning in place; pick a new heading.
				d = 4
				z = (sp.Frame - 13) & 3
				if s.rnd.Rand16()&3 == 0 {
					if s.rnd.Rand16()&1 != 0 {
						z = monsterT1[z]
					} else {
						z = monsterT2[z]
					}
					d = (z - 1) / 3
					z = (z - 1) % 3
				}
			}
		}
	} else {
		d = sp.Control
		z = s.stride(sp)
	}

	z = d*3 + z + 1
	if z > 16 {
		z = 16
	}
	sp.Frame = z
	sp.X += monsterDx[d]
	sp.Y += monsterDy[d]

	if sp.Count > 0 {
		sp.Count--
	}
	c := s.charAt(sp.HotX(), sp.HotY())
	if c == -1 || (c == tile.River && sp.Count != 0 && sp.Control == -1) {
		sp.Frame = 0
	}
	s.trample(sp)
	s.wreck(sp.X+48, sp.Y+16)
}

// stride advances the walk cycle of the monster's current heading.
func (s *System) stride(sp *Sprite) int {
	z := (sp.Frame - 1) % 3
	if z == 2 {
		sp.Step = 0
	}
	if z == 0 {
		sp.Step = 1
	}
	if sp.Step != 0 {
		return z + 1
	}
	return z - 1
}

func (s *System) veer(d int) int {
	if s.rnd.Rand16()&1 != 0 {
		d++
	} else {
		d--
	}
	return d & 3
}

// trample explodes every vehicle touching sp.
func (s *System) trample(sp *Sprite) {
	for _, other := range s.list {
		if other.Frame == 0 {
			continue
		}
		switch other.Kind {
		case Airplane, Helicopter, Ship, Train:
			if collide(sp, other) {
				s.explode(other)
			}
		}
	}
}

func (s *System) moveTornado(sp *Sprite) {
	z := sp.Frame
	if z == 2 {
		if sp.Flag != 0 {
			z = 3
		} else {
			z = 1
		}
	} else {
		if z == 1 {
			sp.Flag = 1
		} else {
			sp.Flag = 0
		}
		z = 2
	}
	if sp.Count > 0 {
		sp.Count--
	}
	sp.Frame = z

	s.trample(sp)

	z = s.rnd.Rand(5)
	sp.X += tornadoDx[z]
	sp.Y += tornadoDy[z]
	if outOfBounds(sp) {
		sp.Frame = 0
	}
	if sp.Count != 0 && s.rnd.Rand(500) == 0 {
		sp.Frame = 0
	}
	s.wreck(sp.X+48, sp.Y+40)
}

func (s *System) moveExplosion(sp *Sprite) {
	if s.cycle&1 == 0 {
		sp.Frame++
	}
	if sp.Frame > 6 {
		sp.Frame = 0
		s.startFire(sp.X+48-8, sp.Y+16)
		s.startFire(sp.X+48-24, sp.Y)
		s.startFire(sp.X+48+8, sp.Y)
		s.startFire(sp.X+48-24, sp.Y+32)
		s.startFire(sp.X+48+8, sp.Y+32)
	}
}

func (s *System) moveBus(sp *Sprite) {
	if sp.Turn != 0 {
		if sp.Turn < 0 {
			if sp.Dir&1 != 0 {
				sp.Frame = 4
			} else {
				sp.Frame = 3
			}
			sp.Turn++
			sp.Dir = (sp.Dir - 1) & 3
		} else {
			if sp.Dir&1 != 0 {
				sp.Frame = 3
			} else {
				sp.Frame = 4
			}
			sp.Turn--
			sp.Dir = (sp.Dir + 1) & 3
		}
	} else if sp.Frame == 3 || sp.Frame == 4 {
		sp.Frame = busDir2Frame[sp.Dir]
	}

	var dx, dy, speed int
	if sp.Speed != 0 {
		z := 0
		tx := sp.HotX() >> 5
		ty := sp.HotY() >> 5
		if tx >= 0 && tx < tile.WorldX>>1 && ty >= 0 && ty < tile.WorldY>>1 {
			z = s.m.TrafficDensity[tx][ty] >> 6
			if z > 1 {
				z--
			}
		}
		switch z {
		case 0:
			speed = 8
		case 1:
			speed = 4
		default:
			speed = 1
		}
		if speed > sp.Speed {
			speed = sp.Speed
		}

		if sp.Turn != 0 {
			if speed > 1 {
				speed = 1
			}
			dx = busDx[sp.Dir] * speed
			dy = busDy[sp.Dir] * speed
		} else {
			dx = busDx[sp.Dir] * speed
			dy = busDy[sp.Dir] * speed
			// Drift back into the lane.
			tx := sp.HotX() >> 4
			ty := sp.HotY() >> 4
			switch sp.Dir {
			case 0:
				dx = sign((tx<<4)+4-sp.HotX(), dx)
			case 1:
				dy = sign((ty<<4)+4-sp.HotY(), dy)
			case 2:
				dx = sign((tx<<4)-sp.HotX(), dx)
			case 3:
				dy = sign((ty<<4)-sp.HotY(), dy)
			}
		}
	}

	otx := clampX((sp.HotX() + busDx[sp.Dir]*8) >> 4)
	oty := clampY((sp.HotY() + busDy[sp.Dir]*8) >> 4)
	tx := clampX((sp.HotX() + dx + busDx[sp.Dir]*8) >> 4)
	ty := clampY((sp.HotY() + dy + busDy[sp.Dir]*8) >> 4)
	if sp.Turn == 0 && (tx != otx || ty != oty) {
		if ahead := s.driveable(tx, ty); ahead != 1 {
			switch turn := s.busTurn(sp, otx, oty); {
			case turn != 0:
				sp.Turn = turn
				dx, dy = 0, 0
			case ahead < 0:
				// Rough ground.
				dx /= 2
				dy /= 2
			default:
				// Stuck.
				sp.Frame = 0
				return
			}
		}
	}

	sp.X += dx
	sp.Y += dy
	if outOfBounds(sp) {
		sp.Frame = 0
		return
	}

	if !s.NoDisasters {
		hit := false
		for _, other := range s.list {
			if other == sp || other.Frame == 0 {
				continue
			}
			if (other.Kind == Bus || (other.Kind == Train && other.Frame != 5)) && collide(sp, other) {
				s.explode(other)
				hit = true
			}
		}
		if hit {
			s.explode(sp)
		}
	}
}

// busTurn picks a quarter turn onto a road next to (x, y). Both sides are
// tried in random order; 0 means neither is a road.
func (s *System) busTurn(sp *Sprite, x, y int) int {
	turns := [2]int{1, -1}
	if s.rnd.Rand16()&1 == 0 {
		turns = [2]int{-1, 1}
	}
	for _, t := range turns {
		d := (sp.Dir + t) & 3
		if s.driveable(x+busDx[d], y+busDy[d]) == 1 {
			return t
		}
	}
	return 0
}

// sign returns -1, 1 or keep for a negative, positive or zero offset.
func sign(offset, keep int) int {
	switch {
	case offset < 0:
		return -1
	case offset > 0:
		return 1
	}
	return keep
}

func clampX(x int) int { return min(max(x, 0), tile.WorldX-1) }
func clampY(y int) int { return min(max(y, 0), tile.WorldY-1) }

// driveable is 1 for road or rail crossings, -1 for open ground and
// clearable debris, 0 otherwise.
func (s *System) driveable(x, y int) int {
	if !tile.InBounds(x, y) {
		return 0
	}
	t := s.m.Tiles[x][y].Base()
	if (t >= tile.RoadBase && t <= tile.LastRoad && t != tile.BRWH && t != tile.BRWV) ||
		t == tile.HRailRoad || t == tile.VRailRoad {
		return 1
	}
	if t == tile.Dirt || tile.Clearable(t) {
		return -1
	}
	return 0
}

// charAt returns the base id under a pixel position, or -1 off the map.
func (s *System) charAt(x, y int) int {
	x >>= 4
	y >>= 4
	if !tile.InBounds(x, y) {
		return -1
	}
	return s.m.Tiles[x][y].Base()
}

// turnTo rotates heading p one step toward d on the 1..8 compass.
func turnTo(p, d int) int {
	if p == d {
		return p
	}
	if p < d {
		if d-p < 4 {
			p++
		} else {
			p--
		}
	} else {
		if p-d < 4 {
			p--
		} else {
			p++
		}
	}
	if p > 8 {
		p = 1
	}
	if p < 1 {
		p = 8
	}
	return p
}

// tryOther lets a ship reverse under a wire or rail crossing.
func tryOther(t, oldDir, newDir int) bool {
	z := oldDir + 4
	if z > 8 {
		z -= 8
	}
	if newDir != z {
		return false
	}
	return t == tile.PowerBase || t == tile.PowerBase+1 || t == tile.RailBase || t == tile.RailBase+1
}

func outOfBounds(sp *Sprite) bool {
	x, y := sp.HotX(), sp.HotY()
	return x < 0 || y < 0 || x >= tile.WorldX<<4 || y >= tile.WorldY<<4
}

var headings = [13]int{0, 3, 2, 1, 3, 4, 5, 7, 6, 5, 7, 8, 1}

// direction returns the 1..8 compass heading from one point to another and
// their Manhattan distance.
func direction(fromX, fromY, toX, toY int) (int, int) {
	dx := toX - fromX
	dy := toY - fromY
	var z int
	switch {
	case dx < 0 && dy < 0:
		z = 11
	case dx < 0:
		z = 8
	case dy < 0:
		z = 2
	default:
		z = 5
	}
	ax, ay := abs(dx), abs(dy)
	if ax<<1 < ay {
		z++
	} else if ay<<1 < ax {
		z--
	}
	if z < 0 || z > 12 {
		z = 0
	}
	return headings[z], ax + ay
}

func collide(a, b *Sprite) bool {
	return a.Frame != 0 && b.Frame != 0 &&
		abs(a.HotX()-b.HotX())+abs(a.HotY()-b.HotY()) < 30
}
