// Package scan rebuilds the derived overlays of a city map from its tiles:
// population density and the city center, pollution and land value,
// terrain, crime, and fire and police coverage. It also decays the traffic
// and growth maps between cycles.
package scan

import (
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
	"citysim/internal/zone"
)

// Scanner runs the overlay scans over one map. The scratch maps live here
// so a scan allocates nothing.
type Scanner struct {
	m   *world.Map
	rnd rng.Source

	tem, tem2 world.HalfMap
	qtem      world.QuarterMap

	// CenterX and CenterY are the population center of mass, in tiles.
	CenterX, CenterY int

	PollutionMaxX, PollutionMaxY int
	CrimeMaxX, CrimeMaxY         int

	LandValueAverage int
	PollutionAverage int
	CrimeAverage     int
}

// New returns a scanner for m. The generator breaks ties when locating the
// worst pollution and crime.
func New(m *world.Map, rnd rng.Source) *Scanner {
	return &Scanner{
		m:       m,
		rnd:     rnd,
		CenterX: world.HalfX,
		CenterY: world.HalfY,
	}
}

// PopulationDensity rebuilds PopDensity and CommerceRate and moves the city
// center to the zones' center of mass.
func (s *Scanner) PopulationDensity() {
	s.tem = world.HalfMap{}
	xtot, ytot, n := 0, 0, 0
	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			if !s.m.Tiles[x][y].Has(tile.ZoneBit) {
				continue
			}
			s.tem[x>>1][y>>1] = min(zone.Density(s.m, x, y)<<3, 254)
			xtot += x
			ytot += y
			n++
		}
	}
	smoothHalf(&s.tem, &s.tem2)
	smoothHalf(&s.tem2, &s.tem)
	smoothHalf(&s.tem, &s.tem2)
	for x := range s.m.PopDensity {
		for y := range s.m.PopDensity[x] {
			s.m.PopDensity[x][y] = s.tem2[x][y] << 1
		}
	}

	if n > 0 {
		s.CenterX, s.CenterY = xtot/n, ytot/n
	} else {
		s.CenterX, s.CenterY = world.HalfX, world.HalfY
	}
	s.commerceRate()
}

// commerceRate favors commerce near the city center.
func (s *Scanner) commerceRate() {
	for x := range s.m.CommerceRate {
		for y := range s.m.CommerceRate[x] {
			s.m.CommerceRate[x][y] = 64 - s.centerDistance(x<<2, y<<2)<<2
		}
	}
}

// centerDistance is the Manhattan distance, in half-map cells and capped at
// 32, from (hx, hy) to the city center.
func (s *Scanner) centerDistance(hx, hy int) int {
	return min(abs(hx-s.CenterX>>1)+abs(hy-s.CenterY>>1), 32)
}

// PollutionLandValue rebuilds Pollution, LandValue and Terrain. Land value
// reads last cycle's pollution and crime.
func (s *Scanner) PollutionLandValue() {
	s.qtem = world.QuarterMap{}
	lvTotal, lvCount := 0, 0
	for x := 0; x < world.HalfX; x++ {
		for y := 0; y < world.HalfY; y++ {
			level, developed := 0, false
			for mx := x << 1; mx < x<<1+2; mx++ {
				for my := y << 1; my < y<<1+2; my++ {
					b := s.m.Tiles[mx][my].Base()
					if b == tile.Dirt {
						continue
					}
					if b < tile.Rubble {
						s.qtem[x>>1][y>>1] += 15
						continue
					}
					level += pollutionOf(b)
					if b >= tile.RoadBase {
						developed = true
					}
				}
			}
			s.tem[x][y] = min(level, 255)

			if !developed {
				s.m.LandValue[x][y] = 0
				continue
			}
			v := (34 - s.centerDistance(x, y)) << 2
			v += s.m.Terrain[x>>1][y>>1]
			v -= s.m.Pollution[x][y]
			if s.m.Crime[x][y] > 190 {
				v -= 20
			}
			v = min(max(v, 1), 250)
			s.m.LandValue[x][y] = v
			lvTotal += v
			lvCount++
		}
	}
	s.LandValueAverage = 0
	if lvCount > 0 {
		s.LandValueAverage = lvTotal / lvCount
	}

	smoothHalf(&s.tem, &s.tem2)
	smoothHalf(&s.tem2, &s.tem)

	total, count, peak := 0, 0, 0
	for x := range s.tem {
		for y := range s.tem[x] {
			z := s.tem[x][y]
			s.m.Pollution[x][y] = z
			if z == 0 {
				continue
			}
			count++
			total += z
			if z > peak || (z == peak && s.rnd.Rand16()&3 == 0) {
				peak = z
				s.PollutionMaxX, s.PollutionMaxY = x<<1, y<<1
			}
		}
	}
	s.PollutionAverage = 0
	if count > 0 {
		s.PollutionAverage = total / count
	}
	s.smoothTerrain()
}

// pollutionOf is the pollution a single tile emits.
func pollutionOf(b int) int {
	if b < tile.PowerBase {
		switch {
		case b >= tile.HTrfBase:
			return 75
		case b >= tile.LTrfBase:
			return 50
		case b >= tile.RoadBase:
			return 0
		case b > tile.FireBase:
			return 90
		case b >= tile.RadTile:
			return 255
		}
		return 0
	}
	switch {
	case b <= tile.LastInd:
		return 0
	case b < tile.PortBase:
		return 50
	case b <= tile.LastPowerPlant:
		return 100
	}
	return 0
}

func (s *Scanner) smoothTerrain() {
	q := &s.qtem
	for x := 0; x < world.QuarterX; x++ {
		for y := 0; y < world.QuarterY; y++ {
			z := 0
			if x > 0 {
				z += q[x-1][y]
			}
			if x < world.QuarterX-1 {
				z += q[x+1][y]
			}
			if y > 0 {
				z += q[x][y-1]
			}
			if y < world.QuarterY-1 {
				z += q[x][y+1]
			}
			s.m.Terrain[x][y] = (z>>2 + q[x][y]) >> 1
		}
	}
}

// Crime rebuilds the crime map from land value, population density and the
// smoothed police coverage, which it also publishes as PoliceCoverage.
func (s *Scanner) Crime() {
	for i := 0; i < 3; i++ {
		smoothSmall(&s.m.Police)
	}
	total, count, peak := 0, 0, 0
	for x := 0; x < world.HalfX; x++ {
		for y := 0; y < world.HalfY; y++ {
			lv := s.m.LandValue[x][y]
			if lv == 0 {
				s.m.Crime[x][y] = 0
				continue
			}
			count++
			z := min(128-lv+s.m.PopDensity[x][y], 300)
			z -= s.m.Police[x>>2][y>>2]
			z = min(max(z, 0), 250)
			s.m.Crime[x][y] = z
			total += z
			if z > peak || (z == peak && s.rnd.Rand16()&3 == 0) {
				peak = z
				s.CrimeMaxX, s.CrimeMaxY = x<<1, y<<1
			}
		}
	}
	s.CrimeAverage = 0
	if count > 0 {
		s.CrimeAverage = total / count
	}
	s.m.PoliceCoverage = s.m.Police
}

// FireAnalysis smooths the fire station map into FireCoverage.
func (s *Scanner) FireAnalysis() {
	for i := 0; i < 3; i++ {
		smoothSmall(&s.m.FireStations)
	}
	s.m.FireCoverage = s.m.FireStations
}

// DecayTraffic lets traffic density fall off; heavy traffic drops faster.
func DecayTraffic(m *world.Map) {
	for x := range m.TrafficDensity {
		for y := range m.TrafficDensity[x] {
			z := &m.TrafficDensity[x][y]
			switch {
			case *z > 200:
				*z -= 34
			case *z > 24:
				*z -= 24
			default:
				*z = 0
			}
		}
	}
}

// DecayGrowth moves every growth rate one step toward zero, keeping it
// within ±200.
func DecayGrowth(m *world.Map) {
	for x := range m.GrowthRate {
		for y := range m.GrowthRate[x] {
			z := &m.GrowthRate[x][y]
			switch {
			case *z > 200:
				*z = 200
			case *z > 0:
				*z--
			case *z < -200:
				*z = -200
			case *z < 0:
				*z++
			}
		}
	}
}

// smoothHalf writes the four-neighbor average of src into dst.
func smoothHalf(src, dst *world.HalfMap) {
	for x := 0; x < world.HalfX; x++ {
		for y := 0; y < world.HalfY; y++ {
			z := src[x][y]
			if x > 0 {
				z += src[x-1][y]
			}
			if x < world.HalfX-1 {
				z += src[x+1][y]
			}
			if y > 0 {
				z += src[x][y-1]
			}
			if y < world.HalfY-1 {
				z += src[x][y+1]
			}
			dst[x][y] = min(z>>2, 255)
		}
	}
}

// smoothSmall blurs a station map in place.
func smoothSmall(m *world.SmallMap) {
	var out world.SmallMap
	for x := 0; x < world.SmallX; x++ {
		for y := 0; y < world.SmallY; y++ {
			edge := 0
			if x > 0 {
				edge += m[x-1][y]
			}
			if x < world.SmallX-1 {
				edge += m[x+1][y]
			}
			if y > 0 {
				edge += m[x][y-1]
			}
			if y < world.SmallY-1 {
				edge += m[x][y+1]
			}
			out[x][y] = (edge>>2 + m[x][y]) >> 1
		}
	}
	*m = out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
