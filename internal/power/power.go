// Package power distributes electricity across conductive tiles. A pass
// rebuilds the power bitmap from scratch by flood filling outward from every
// tile that currently carries the power bit.
package power

import (
	"citysim/internal/tile"
	"citysim/internal/world"
)

// StackSize caps the flood-fill work stack.
const StackSize = tile.WorldX * tile.WorldY / 4

// Plant output in powered tiles.
const (
	CoalOutput    = 700
	NuclearOutput = 2000
)

// MaxPower is the number of tiles the city's plants can feed.
func MaxPower(coal, nuclear int) int {
	return coal*CoalOutput + nuclear*NuclearOutput
}

// Result summarizes a pass.
type Result struct {
	Powered int // tiles marked in the power map
	Dropped int // pushes refused because the stack was full
}

type point struct{ x, y int }

// N, E, S, W.
var (
	dirX = [4]int{0, 1, 0, -1}
	dirY = [4]int{-1, 0, 1, 0}
)

// Scanner runs power passes. Its stack is reused between passes.
type Scanner struct {
	stack []point
}

func NewScanner() *Scanner {
	return &Scanner{stack: make([]point, 0, StackSize)}
}

func (s *Scanner) push(p point, res *Result) {
	if len(s.stack) >= StackSize {
		res.Dropped++
		return
	}
	s.stack = append(s.stack, p)
}

// Scan rebuilds m.Power. Seeds are visited x-major, y-minor; neighbors in
// N, E, S, W order. Each conductive tile is marked at most once.
func (s *Scanner) Scan(m *world.Map) Result {
	var res Result
	m.Power.Reset()
	s.stack = s.stack[:0]

	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			if !m.Tiles[x][y].Has(tile.PowerBit) {
				continue
			}
			m.Power.Mark(x, y)
			res.Powered++
			s.push(point{x, y}, &res)
		}
	}

	for len(s.stack) > 0 {
		p := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		for d := 0; d < 4; d++ {
			nx, ny := p.x+dirX[d], p.y+dirY[d]
			if !tile.InBounds(nx, ny) || m.Power.Test(nx, ny) {
				continue
			}
			if !m.Tiles[nx][ny].Has(tile.CondBit) {
				continue
			}
			m.Power.Mark(nx, ny)
			res.Powered++
			s.push(point{nx, ny}, &res)
		}
	}
	return res
}

// IsGenerator reports whether a tile produces power on its own: the coal and
// nuclear plant footprints and the coal plant smoke stacks.
func IsGenerator(t tile.Tile) bool {
	switch t.Category() {
	case tile.CatCoalPlant, tile.CatNuclear:
		return true
	}
	return false
}

// Strip clears the power bit from every tile that is not a generator, so the
// next Scan seeds only from live plants.
func Strip(m *world.Map) {
	for x := range m.Tiles {
		for y := range m.Tiles[x] {
			t := m.Tiles[x][y]
			if t.Has(tile.PowerBit) && !IsGenerator(t) {
				m.Tiles[x][y] = t.Without(tile.PowerBit)
			}
		}
	}
}

// Apply sets the power bit on conductive tiles and zone centers marked in the
// power map, and clears it on those that are not.
func Apply(m *world.Map) {
	for x := range m.Tiles {
		for y := range m.Tiles[x] {
			t := m.Tiles[x][y]
			if !t.Any(tile.CondBit|tile.ZoneBit) || IsGenerator(t) {
				continue
			}
			if m.Power.Test(x, y) {
				m.Tiles[x][y] = t.With(tile.PowerBit)
			} else {
				m.Tiles[x][y] = t.Without(tile.PowerBit)
			}
		}
	}
}
