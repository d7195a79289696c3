package zone

import (
	"errors"

	"citysim/internal/tile"
)

// Result is the outcome of a footprint placement.
type Result int

const (
	Ok Result = iota
	OutOfBounds
	InsufficientFunds
	InvalidTerrain
	Noop
)

var (
	ErrOutOfBounds       = errors.New("zone: footprint leaves the map")
	ErrInsufficientFunds = errors.New("zone: insufficient funds")
	ErrInvalidTerrain    = errors.New("zone: terrain is not clear")
	ErrNoop              = errors.New("zone: nothing to do")
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case OutOfBounds:
		return "out_of_bounds"
	case InsufficientFunds:
		return "insufficient_funds"
	case InvalidTerrain:
		return "invalid_terrain"
	case Noop:
		return "noop"
	}
	return "unknown"
}

// Err returns nil for Ok and the matching sentinel otherwise.
func (r Result) Err() error {
	switch r {
	case Ok:
		return nil
	case OutOfBounds:
		return ErrOutOfBounds
	case InsufficientFunds:
		return ErrInsufficientFunds
	case InvalidTerrain:
		return ErrInvalidTerrain
	}
	return ErrNoop
}

// Treasury holds the city's money.
type Treasury interface {
	Funds() int
	Spend(amount int)
}

// Footprint describes a building. Base is the id of its top-left tile; the
// rest follow in row order.
type Footprint struct {
	Size     int // 3, 4 or 6
	Base     int
	Animated bool
}

// Footprints the tools place.
var (
	ResidentialZone = Footprint{Size: 3, Base: tile.ResBase}
	CommercialZone  = Footprint{Size: 3, Base: tile.ComBase}
	IndustrialZone  = Footprint{Size: 3, Base: tile.IndBase}
	FireStationZone = Footprint{Size: 3, Base: tile.FireStBase, Animated: true}
	PoliceZone      = Footprint{Size: 3, Base: tile.PoliceStBase, Animated: true}
	CoalPlantZone   = Footprint{Size: 4, Base: tile.CoalBase}
	NuclearZone     = Footprint{Size: 4, Base: tile.NuclearBase}
	StadiumZone     = Footprint{Size: 4, Base: tile.StadiumBase}
	SeaportZone     = Footprint{Size: 4, Base: tile.PortBase}
	AirportZone     = Footprint{Size: 6, Base: tile.AirportBase}
)

// Place builds f with its center at (x, y), paying cost plus one per tile
// the auto-bulldozer has to clear. Nothing changes unless the result is Ok.
func (e *Engine) Place(x, y int, f Footprint, cost int, t Treasury) Result {
	switch f.Size {
	case 3, 4, 6:
	default:
		return Noop
	}
	x0, y0 := x-1, y-1
	if x0 < 0 || y0 < 0 || x0 > tile.WorldX-f.Size || y0 > tile.WorldY-f.Size {
		return OutOfBounds
	}

	for dy := 0; dy < f.Size; dy++ {
		for dx := 0; dx < f.Size; dx++ {
			b := e.m.Tiles[x0+dx][y0+dy].Base()
			if b == tile.Dirt {
				continue
			}
			if e.AutoBulldoze && tile.Clearable(b) {
				cost++
				continue
			}
			return InvalidTerrain
		}
	}

	if t.Funds() < cost {
		return InsufficientFunds
	}
	t.Spend(cost)

	base := f.Base
	for dy := 0; dy < f.Size; dy++ {
		for dx := 0; dx < f.Size; dx++ {
			flags := tile.BNCN
			if dx == 1 && dy == 1 {
				flags |= tile.ZoneBit
			}
			if f.Animated && dx == 1 && dy == 2 {
				flags |= tile.AnimBit
			}
			e.m.Tiles[x0+dx][y0+dy] = tile.Encode(base, flags)
			base++
		}
	}
	e.fixBorder(x0, y0, f.Size)
	return Ok
}

// fixBorder reconnects the network pieces just outside a new footprint.
func (e *Engine) fixBorder(x0, y0, size int) {
	if e.Connector == nil {
		return
	}
	for i := -1; i <= size; i++ {
		e.Connector.Fix(x0+i, y0-1)
		e.Connector.Fix(x0+i, y0+size)
		e.Connector.Fix(x0-1, y0+i)
		e.Connector.Fix(x0+size, y0+i)
	}
}
