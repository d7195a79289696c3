// Package world holds the city map: the tile grid, the reduced-resolution
// overlays the scans write, the packed power bitmap and the per-cycle census.
package world

import "citysim/internal/tile"

// Overlay resolutions.
const (
	HalfX    = tile.WorldX / 2
	HalfY    = tile.WorldY / 2
	QuarterX = tile.WorldX / 4
	QuarterY = tile.WorldY / 4
	SmallX   = tile.WorldX / 8
	SmallY   = (tile.WorldY + 7) / 8
)

type (
	// HalfMap is indexed by (x>>1, y>>1).
	HalfMap [HalfX][HalfY]int
	// QuarterMap is indexed by (x>>2, y>>2).
	QuarterMap [QuarterX][QuarterY]int
	// SmallMap is indexed by (x>>3, y>>3).
	SmallMap [SmallX][SmallY]int
)

// Map is the whole mutable world. Every field is a fixed-size array, so two
// maps compare with == and copy by assignment.
type Map struct {
	Tiles [tile.WorldX][tile.WorldY]tile.Tile

	PopDensity     HalfMap
	TrafficDensity HalfMap
	Pollution      HalfMap
	LandValue      HalfMap
	Crime          HalfMap

	Terrain QuarterMap

	GrowthRate     SmallMap
	FireStations   SmallMap
	FireCoverage   SmallMap
	Police         SmallMap
	PoliceCoverage SmallMap
	CommerceRate   SmallMap

	Power PowerMap
}

// At returns the tile at (x, y). Out-of-range coordinates read as dirt.
func (m *Map) At(x, y int) tile.Tile {
	if !tile.InBounds(x, y) {
		return 0
	}
	return m.Tiles[x][y]
}

// Set writes the tile at (x, y) and ignores out-of-range coordinates.
func (m *Map) Set(x, y int, t tile.Tile) {
	if tile.InBounds(x, y) {
		m.Tiles[x][y] = t
	}
}

// Clear resets the map to bare dirt with empty overlays.
func (m *Map) Clear() {
	*m = Map{}
}

// ClearOverlays zeroes every derived map and keeps the tiles.
func (m *Map) ClearOverlays() {
	tiles := m.Tiles
	*m = Map{Tiles: tiles}
}

// FireZone burns a zone whose center is (x, y): growth there drops and every
// structural tile of the footprint becomes bulldozable.
func (m *Map) FireZone(x, y int, center tile.Tile) {
	m.GrowthRate[x>>3][y>>3] -= 20

	base := center.Base()
	size := 4
	switch {
	case base < tile.PortBase:
		size = 2
	case base == tile.Airport:
		size = 5
	}
	for dx := -1; dx < size; dx++ {
		for dy := -1; dy < size; dy++ {
			xx, yy := x+dx, y+dy
			if !tile.InBounds(xx, yy) {
				continue
			}
			if m.Tiles[xx][yy].Base() >= tile.RoadBase {
				m.Tiles[xx][yy] = m.Tiles[xx][yy].With(tile.BullBit)
			}
		}
	}
}

// Count returns how many tiles satisfy match.
func (m *Map) Count(match func(tile.Tile) bool) int {
	n := 0
	for x := range m.Tiles {
		for y := range m.Tiles[x] {
			if match(m.Tiles[x][y]) {
				n++
			}
		}
	}
	return n
}
