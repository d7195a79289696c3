// Package tile holds the packed 16-bit map cell: a 10-bit base id plus six
// status flags, the tile id catalogue and the category table the scans
// dispatch on.
package tile

// World dimensions in tiles.
const (
	WorldX = 120
	WorldY = 100
)

// Tile is one map cell.
type Tile uint16

// Flag is one of the six status bits stored above the base id.
type Flag uint16

const (
	PowerBit Flag = 0x8000 // currently powered
	CondBit  Flag = 0x4000 // conducts power
	BurnBit  Flag = 0x2000 // flammable
	BullBit  Flag = 0x1000 // bulldozable
	AnimBit  Flag = 0x0800 // animated
	ZoneBit  Flag = 0x0400 // zone center

	AllBits Flag = 0xFC00
	LowMask      = 0x03FF

	BLBN   = BullBit | BurnBit
	BLBNCN = BullBit | BurnBit | CondBit
	BNCN   = BurnBit | CondBit
	ASC    = AnimBit | CondBit | BurnBit
	REG    = CondBit | BurnBit
)

// Encode packs base and flags. The base is masked to 10 bits.
func Encode(base int, flags Flag) Tile {
	return Tile(uint16(base)&LowMask) | Tile(flags&AllBits)
}

// Decode splits t into its base id and flags.
func Decode(t Tile) (int, Flag) {
	return t.Base(), t.Flags()
}

func (t Tile) Base() int       { return int(t) & LowMask }
func (t Tile) Flags() Flag     { return Flag(t) & AllBits }
func (t Tile) Valid() bool     { return t.Base() < TileCount }
func (t Tile) Has(f Flag) bool { return Flag(t)&f == f }

// Any reports whether at least one of the bits in f is set.
func (t Tile) Any(f Flag) bool { return Flag(t)&f != 0 }

func (t Tile) With(f Flag) Tile    { return t | Tile(f) }
func (t Tile) Without(f Flag) Tile { return t &^ Tile(f) }

// Category looks the base id up in the category table.
func (t Tile) Category() Category { return categories[t.Base()] }

// InBounds reports whether (x, y) addresses a map cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < WorldX && y >= 0 && y < WorldY
}

// Clearable reports whether a base id can be removed by a single bulldozer
// pass: water edges, trees, debris, roads, wire pieces and explosions.
func Clearable(base int) bool {
	switch {
	case base >= FirstRiverEdge && base <= LastRiverEdge,
		base >= TreeBase && base <= LastTree,
		base >= Rubble && base <= LastRubble,
		base >= Flood && base <= LastFlood,
		base == RadTile,
		base >= Fire && base <= LastFire,
		base >= RoadBase && base <= LastRoad,
		base >= PowerBase+2 && base <= PowerBase+12,
		base >= TinyExp && base <= LastTinyExp+2:
		return true
	}
	return false
}
