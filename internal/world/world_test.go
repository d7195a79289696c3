package world

import (
	"testing"

	"citysim/internal/tile"
)

func TestPowerMapBits(t *testing.T) {
	var p PowerMap
	points := [][2]int{{0, 0}, {15, 0}, {16, 0}, {119, 99}, {37, 42}}
	for _, pt := range points {
		p.Mark(pt[0], pt[1])
	}
	for _, pt := range points {
		if !p.Test(pt[0], pt[1]) {
			t.Errorf("bit (%d,%d) not set", pt[0], pt[1])
		}
	}
	if p.Test(14, 0) || p.Test(0, 1) {
		t.Error("neighbouring bits leaked")
	}
	if got := p.Len(); got != len(points) {
		t.Errorf("Len = %d, want %d", got, len(points))
	}
	p.Unmark(15, 0)
	if p.Test(15, 0) {
		t.Error("Unmark left the bit set")
	}
	p.Mark(-1, 5)
	p.Mark(tile.WorldX, 5)
	if p.Test(-1, 5) || p.Len() != len(points)-1 {
		t.Error("out of range marks changed the map")
	}
	p.Reset()
	if p.Len() != 0 {
		t.Error("Reset left bits behind")
	}
}

func TestAtSetBounds(t *testing.T) {
	var m Map
	m.Set(-1, 0, tile.Encode(tile.Fire, 0))
	m.Set(3, 4, tile.Encode(tile.Roads, tile.BLBN))
	if m.At(-1, 0) != 0 {
		t.Error("out of range read returned data")
	}
	if m.At(3, 4).Base() != tile.Roads {
		t.Error("Set did not store the tile")
	}
}

func TestMapComparable(t *testing.T) {
	var a Map
	a.Set(10, 10, tile.Encode(tile.FreeZ, tile.ZoneBit))
	a.Pollution[1][1] = 40
	b := a
	if a != b {
		t.Fatal("copied maps differ")
	}
	b.Crime[0][0] = 1
	if a == b {
		t.Fatal("maps with different overlays compare equal")
	}
	b.ClearOverlays()
	if b.Tiles != a.Tiles || b.Pollution[1][1] != 0 {
		t.Fatal("ClearOverlays touched tiles or kept overlays")
	}
}

func TestFireZone(t *testing.T) {
	var m Map
	for x := 9; x <= 11; x++ {
		for y := 9; y <= 11; y++ {
			m.Set(x, y, tile.Encode(tile.ResBase+1, tile.BNCN))
		}
	}
	center := tile.Encode(tile.FreeZ, tile.BNCN|tile.ZoneBit)
	m.Set(10, 10, center)
	m.FireZone(10, 10, center)

	for x := 9; x <= 11; x++ {
		for y := 9; y <= 11; y++ {
			if !m.At(x, y).Has(tile.BullBit) {
				t.Errorf("(%d,%d) not bulldozable after fire", x, y)
			}
		}
	}
	if m.At(12, 10).Has(tile.BullBit) {
		t.Error("fire reached beyond the footprint")
	}
	if m.GrowthRate[1][1] != -20 {
		t.Errorf("growth rate = %d, want -20", m.GrowthRate[1][1])
	}
}
