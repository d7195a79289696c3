package world

import "citysim/internal/tile"

const (
	powerRow  = (tile.WorldX + 15) / 16
	powerSize = powerRow * tile.WorldY
)

// PowerMap packs one bit per tile, sixteen tiles per word.
type PowerMap [powerSize]uint16

func powerWord(x, y int) int { return (x >> 4) + y*powerRow }

// Test reports whether (x, y) is marked powered. Out of range is unpowered.
func (p *PowerMap) Test(x, y int) bool {
	if !tile.InBounds(x, y) {
		return false
	}
	return p[powerWord(x, y)]&(1<<(x&15)) != 0
}

// Mark sets the bit for (x, y).
func (p *PowerMap) Mark(x, y int) {
	if tile.InBounds(x, y) {
		p[powerWord(x, y)] |= 1 << (x & 15)
	}
}

// Unmark clears the bit for (x, y).
func (p *PowerMap) Unmark(x, y int) {
	if tile.InBounds(x, y) {
		p[powerWord(x, y)] &^= 1 << (x & 15)
	}
}

// Reset clears every bit.
func (p *PowerMap) Reset() {
	*p = PowerMap{}
}

// Len counts the marked tiles.
func (p *PowerMap) Len() int {
	n := 0
	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			if p.Test(x, y) {
				n++
			}
		}
	}
	return n
}
