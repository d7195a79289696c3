package zone

import (
	"citysim/internal/tile"
	"citysim/internal/traffic"
)

// Grow and decline thresholds for a zone score.
const (
	growFloor     = -350
	declineCeil   = 350
	scoreSpread   = 26380
	unpoweredZone = -500
)

func (e *Engine) grows(score int) bool {
	return score > growFloor && score-scoreSpread > e.rnd.Rand16Signed()
}

func (e *Engine) declines(score int) bool {
	return score < declineCeil && score+scoreSpread < e.rnd.Rand16Signed()
}

func (e *Engine) residential(x, y, base int, powered bool) {
	e.census.ResZones++
	var pop int
	if base == tile.FreeZ {
		pop = FreePop(e.m, x, y)
	} else {
		pop = ResidentialPop(base)
	}
	e.census.ResPop += pop

	trf := traffic.Passed
	if pop > e.rnd.Rand(35) {
		trf = e.makeTraffic(x, y, traffic.Residential)
	}
	if trf == traffic.NoRoad {
		e.resOut(x, y, pop, landRating(e.m, x, y))
		return
	}

	if base == tile.FreeZ || e.rnd.Rand16()&7 == 0 {
		score := e.Valves.Res + e.evalRes(x, y, trf)
		if !powered {
			score = unpoweredZone
		}
		if e.grows(score) {
			if pop == 0 && e.rnd.Rand16()&3 == 0 {
				e.makeHospital(x, y)
				return
			}
			e.resIn(x, y, pop, landRating(e.m, x, y))
			return
		}
		if e.declines(score) {
			e.resOut(x, y, pop, landRating(e.m, x, y))
		}
	}
}

func (e *Engine) evalRes(x, y int, trf traffic.Outcome) int {
	if trf == traffic.NoRoad {
		return -3000
	}
	v := e.m.LandValue[x>>1][y>>1] - e.m.Pollution[x>>1][y>>1]
	if v < 0 {
		v = 0
	} else {
		v <<= 5
	}
	return min(v, 6000) - 3000
}

func (e *Engine) resIn(x, y, pop, value int) {
	if e.m.Pollution[x>>1][y>>1] > 128 {
		return
	}
	if e.m.Tiles[x][y].Base() == tile.FreeZ {
		if pop < 8 {
			e.buildHouse(x, y, value)
			e.incGrowth(x, y, 1)
			return
		}
		if e.m.PopDensity[x>>1][y>>1] > 64 {
			e.resPlop(x, y, 0, value)
			e.incGrowth(x, y, 8)
		}
		return
	}
	if pop < 40 {
		e.resPlop(x, y, pop/8-1, value)
		e.incGrowth(x, y, 8)
	}
}

// Order in which loose houses are cleared, indexed x-major.
var freeOrder = [9]int{0, 3, 6, 1, 4, 7, 2, 5, 8}

func (e *Engine) resOut(x, y, pop, value int) {
	switch {
	case pop == 0:
		return
	case pop > 16:
		e.resPlop(x, y, (pop-24)/8, value)
		e.incGrowth(x, y, -8)
	case pop == 16:
		e.incGrowth(x, y, -8)
		e.m.Tiles[x][y] = tile.Encode(tile.FreeZ, tile.BLBNCN|tile.ZoneBit)
		for xx := x - 1; xx <= x+1; xx++ {
			for yy := y - 1; yy <= y+1; yy++ {
				if tile.InBounds(xx, yy) && e.m.Tiles[xx][yy].Base() != tile.FreeZ {
					e.m.Tiles[xx][yy] = tile.Encode(tile.LHThr+value+e.rnd.Rand(2), tile.BLBNCN)
				}
			}
		}
	default:
		e.incGrowth(x, y, -1)
		i := 0
		for xx := x - 1; xx <= x+1; xx++ {
			for yy := y - 1; yy <= y+1; yy++ {
				if b := e.m.At(xx, yy).Base(); tile.InBounds(xx, yy) && b >= tile.LHThr && b <= tile.HHThr {
					e.m.Tiles[xx][yy] = tile.Encode(freeOrder[i]+tile.FreeZ-4, tile.BLBNCN)
					return
				}
				i++
			}
		}
	}
}

// Offsets of the lots around a residential center; index 0 is the center.
var (
	lotDx = [9]int{0, -1, 0, 1, -1, 1, -1, 0, 1}
	lotDy = [9]int{0, -1, -1, -1, 0, 0, 1, 1, 1}
)

// buildHouse puts a house on the best free lot around (x, y).
func (e *Engine) buildHouse(x, y, value int) {
	best, high := 0, 0
	for i := 1; i < 9; i++ {
		xx, yy := x+lotDx[i], y+lotDy[i]
		if !tile.InBounds(xx, yy) {
			continue
		}
		score := e.evalLot(xx, yy)
		if score == 0 {
			continue
		}
		if score > high {
			high, best = score, i
		}
		if score == high && e.rnd.Rand16()&7 == 0 {
			best = i
		}
	}
	if best == 0 {
		return
	}
	xx, yy := x+lotDx[best], y+lotDy[best]
	e.m.Tiles[xx][yy] = tile.Encode(tile.House+e.rnd.Rand(2)+value*3, tile.BLBNCN)
}

// evalLot scores an empty lot by the roads next to it, or -1 if it is
// taken.
func (e *Engine) evalLot(x, y int) int {
	if b := e.m.Tiles[x][y].Base(); b != 0 && (b < tile.ResBase || b > tile.ResBase+8) {
		return -1
	}
	score := 1
	for d := 0; d < 4; d++ {
		t := e.m.At(x+dirX[d], y+dirY[d])
		if t != 0 && t.Base() <= tile.LastRoad {
			score++
		}
	}
	return score
}

// N, E, S, W.
var (
	dirX = [4]int{0, 1, 0, -1}
	dirY = [4]int{-1, 0, 1, 0}
)

func (e *Engine) makeHospital(x, y int) {
	if e.NeedHospital > 0 {
		e.plop(x, y, tile.Hospital-4)
		e.NeedHospital = 0
		return
	}
	if e.NeedChurch > 0 {
		e.plop(x, y, tile.Church-4)
		e.NeedChurch = 0
	}
}

func (e *Engine) hospital(x, y, base int) {
	switch base {
	case tile.Hospital:
		e.census.Hospitals++
		if e.CityTime&15 == 0 {
			e.repair(x, y, tile.Hospital, 3)
		}
		if e.NeedHospital == -1 && e.rnd.Rand(20) == 0 {
			e.plop(x, y, tile.ResBase)
		}
	case tile.Church:
		e.census.Churches++
		if e.CityTime&15 == 0 {
			e.repair(x, y, tile.Church, 3)
		}
		if e.NeedChurch == -1 && e.rnd.Rand(20) == 0 {
			e.plop(x, y, tile.ResBase)
		}
	}
}

func (e *Engine) resPlop(x, y, den, value int) {
	e.plop(x, y, (value*4+den)*9+tile.RZB-4)
}

func (e *Engine) comPlop(x, y, den, value int) {
	e.plop(x, y, (value*5+den)*9+tile.CZB-4)
}

func (e *Engine) indPlop(x, y, den, value int) {
	e.plop(x, y, (value*4+den)*9+tile.IZB-4)
}

func (e *Engine) commercial(x, y, base int, powered bool) {
	e.census.ComZones++
	pop := CommercialPop(base)
	e.census.ComPop += pop

	trf := traffic.Passed
	if pop > e.rnd.Rand(5) {
		trf = e.makeTraffic(x, y, traffic.Commercial)
	}
	if trf == traffic.NoRoad {
		e.comOut(x, y, pop, landRating(e.m, x, y))
		return
	}

	if e.rnd.Rand16()&7 != 0 {
		return
	}
	score := e.Valves.Com + e.evalCom(x, y, trf)
	if !powered {
		score = unpoweredZone
	}
	if trf != traffic.Failed && e.grows(score) {
		e.comIn(x, y, pop, landRating(e.m, x, y))
		return
	}
	if e.declines(score) {
		e.comOut(x, y, pop, landRating(e.m, x, y))
	}
}

func (e *Engine) evalCom(x, y int, trf traffic.Outcome) int {
	if trf == traffic.NoRoad {
		return -3000
	}
	return e.m.CommerceRate[x>>3][y>>3]
}

func (e *Engine) comIn(x, y, pop, value int) {
	if pop > e.m.LandValue[x>>1][y>>1]>>5 {
		return
	}
	if pop < 5 {
		e.comPlop(x, y, pop, value)
		e.incGrowth(x, y, 8)
	}
}

func (e *Engine) comOut(x, y, pop, value int) {
	if pop > 1 {
		e.comPlop(x, y, pop-2, value)
		e.incGrowth(x, y, -8)
		return
	}
	if pop == 1 {
		e.plop(x, y, tile.ComBase)
		e.incGrowth(x, y, -8)
	}
}

func (e *Engine) industrial(x, y, base int, powered bool) {
	e.census.IndZones++
	e.setSmoke(x, y, base, powered)
	pop := IndustrialPop(base)
	e.census.IndPop += pop

	trf := traffic.Passed
	if pop > e.rnd.Rand(5) {
		trf = e.makeTraffic(x, y, traffic.Industrial)
	}
	if trf == traffic.NoRoad {
		e.indOut(x, y, pop, e.rnd.Rand16()&1)
		return
	}

	if e.rnd.Rand16()&7 != 0 {
		return
	}
	score := e.Valves.Ind
	if trf == traffic.NoRoad {
		score -= 1000
	}
	if !powered {
		score = unpoweredZone
	}
	if e.grows(score) {
		e.indIn(x, y, pop, e.rnd.Rand16()&1)
		return
	}
	if e.declines(score) {
		e.indOut(x, y, pop, e.rnd.Rand16()&1)
	}
}

func (e *Engine) indIn(x, y, pop, value int) {
	if pop < 4 {
		e.indPlop(x, y, pop, value)
		e.incGrowth(x, y, 8)
	}
}

func (e *Engine) indOut(x, y, pop, value int) {
	if pop > 1 {
		e.indPlop(x, y, pop-2, value)
		e.incGrowth(x, y, -8)
		return
	}
	if pop == 1 {
		e.plop(x, y, tile.IndClr-4)
		e.incGrowth(x, y, -8)
	}
}

// Industrial smoke stacks, indexed by ((center-IZB)>>3)&7. Each animated
// zone has two stacks; tables C and D hold the idle pieces, A and B the
// smoke offsets from SmokeBase.
var (
	smokes   = [8]bool{true, false, true, true, false, false, true, true}
	smokeDx1 = [8]int{-1, 0, 1, 0, 0, 0, 0, 1}
	smokeDy1 = [8]int{-1, 0, -1, -1, 0, 0, -1, -1}
	smokeDx2 = [8]int{-1, 0, 1, 1, 0, 0, 1, 1}
	smokeDy2 = [8]int{-1, 0, 0, -1, 0, 0, -1, 0}
	smokeA   = [8]int{0, 0, 32, 40, 0, 0, 48, 56}
	smokeB   = [8]int{0, 0, 36, 44, 0, 0, 52, 60}
	smokeC   = [8]int{tile.Ind1, 0, tile.Ind2, tile.Ind4, 0, 0, tile.Ind6, tile.Ind8}
	smokeD   = [8]int{tile.Ind1, 0, tile.Ind3, tile.Ind5, 0, 0, tile.Ind7, tile.Ind9}
)

func (e *Engine) setSmoke(x, y, base int, powered bool) {
	if base < tile.IZB {
		return
	}
	z := ((base - tile.IZB) >> 3) & 7
	if !smokes[z] {
		return
	}
	e.stack(x+smokeDx1[z], y+smokeDy1[z], powered, smokeC[z], tile.SmokeBase+smokeA[z])
	e.stack(x+smokeDx2[z], y+smokeDy2[z], powered, smokeD[z], tile.SmokeBase+smokeB[z])
}

func (e *Engine) stack(x, y int, powered bool, idle, smoking int) {
	if !tile.InBounds(x, y) {
		return
	}
	b := e.m.Tiles[x][y].Base()
	switch {
	case powered && b == idle:
		e.m.Tiles[x][y] = tile.Encode(smoking, tile.ASC)
	case !powered && b > idle:
		e.m.Tiles[x][y] = tile.Encode(idle, tile.REG)
	}
}
