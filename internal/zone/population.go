package zone

import (
	"citysim/internal/tile"
	"citysim/internal/world"
)

// ResidentialPop is the population of a residential zone center.
func ResidentialPop(base int) int {
	return ((base-tile.RZB)/9%4)*8 + 16
}

// CommercialPop is the population of a commercial zone center.
func CommercialPop(base int) int {
	if base == tile.ComClr {
		return 0
	}
	return (base-tile.CZB)/9%5 + 1
}

// IndustrialPop is the population of an industrial zone center.
func IndustrialPop(base int) int {
	if base == tile.IndClr {
		return 0
	}
	return (base-tile.IZB)/9%4 + 1
}

// FreePop counts the loose houses around an empty residential center.
func FreePop(m *world.Map, x, y int) int {
	n := 0
	for xx := x - 1; xx <= x+1; xx++ {
		for yy := y - 1; yy <= y+1; yy++ {
			if b := m.At(xx, yy).Base(); b >= tile.LHThr && b <= tile.HHThr {
				n++
			}
		}
	}
	return n
}

// Density is the population weight of the zone centered at (x, y) as used
// by the population density scan. Jobs weigh eight times a resident.
func Density(m *world.Map, x, y int) int {
	b := m.At(x, y).Base()
	switch {
	case b == tile.FreeZ:
		return FreePop(m, x, y)
	case b < tile.ComBase:
		return ResidentialPop(b)
	case b < tile.IndBase:
		return CommercialPop(b) << 3
	case b < tile.PortBase:
		return IndustrialPop(b) << 3
	}
	return 0
}

// landRating buckets land value net of pollution into 0..3.
func landRating(m *world.Map, x, y int) int {
	v := m.LandValue[x>>1][y>>1] - m.Pollution[x>>1][y>>1]
	switch {
	case v < 30:
		return 0
	case v < 80:
		return 1
	case v < 150:
		return 2
	}
	return 3
}
