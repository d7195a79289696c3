// Package tool is the only way the host edits a city: zone placement, the
// road, rail and wire layers with their auto-connection, the bulldozer,
// parks, network towers and the query tool.
package tool

import (
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
	"citysim/internal/zone"
)

// Kind is a tool.
type Kind int

const (
	Residential Kind = iota
	Commercial
	Industrial
	FireStation
	Query
	PoliceStation
	Wire
	Bulldozer
	Rail
	Road
	Stadium
	Park
	Seaport
	CoalPlant
	NuclearPlant
	Airport
	Network
	kindCount
)

var kindNames = [kindCount]string{
	"residential", "commercial", "industrial", "fire_station", "query",
	"police_station", "wire", "bulldozer", "rail", "road", "stadium", "park",
	"seaport", "coal", "nuclear", "airport", "network",
}

var costs = [kindCount]int{
	100, 100, 100, 500, 0,
	500, 5, 1, 20, 10, 5000, 10,
	3000, 3000, 5000, 10000, 100,
}

// Water crossings.
const (
	BridgeCost         = 50
	TunnelCost         = 100
	UnderwaterWireCost = 25
)

// BulldozeFee is charged on top of a piece laid over clearable debris or trees.
const BulldozeFee = 1

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every tool.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Parse looks a tool up by name.
func Parse(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// CostOf is the base price of one use of k.
func CostOf(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return costs[k]
}

var footprints = map[Kind]zone.Footprint{
	Residential:   zone.ResidentialZone,
	Commercial:    zone.CommercialZone,
	Industrial:    zone.IndustrialZone,
	FireStation:   zone.FireStationZone,
	PoliceStation: zone.PoliceZone,
	Stadium:       zone.StadiumZone,
	Seaport:       zone.SeaportZone,
	CoalPlant:     zone.CoalPlantZone,
	NuclearPlant:  zone.NuclearZone,
	Airport:       zone.AirportZone,
}

// Tools applies tools to one map. It also serves as the zone engine's
// connector.
type Tools struct {
	m     *world.Map
	rnd   rng.Source
	zones *zone.Engine
}

// New returns the tool set for m and registers it as the zone engine's
// connector.
func New(m *world.Map, rnd rng.Source, zones *zone.Engine) *Tools {
	t := &Tools{m: m, rnd: rnd, zones: zones}
	zones.Connector = t
	return t
}

// Apply uses tool k at (x, y), paying from tr. Building tools take the
// center of the footprint.
func (t *Tools) Apply(k Kind, x, y int, tr zone.Treasury) zone.Result {
	if !tile.InBounds(x, y) {
		return zone.OutOfBounds
	}
	if fp, ok := footprints[k]; ok {
		return t.zones.Place(x, y, fp, CostOf(k), tr)
	}
	switch k {
	case Road, Rail, Wire:
		return t.lay(x, y, k, tr)
	case Bulldozer:
		return t.bulldoze(x, y, tr)
	case Park:
		return t.park(x, y, tr)
	case Network:
		return t.network(x, y, tr)
	case Query:
		return zone.Ok
	}
	return zone.Noop
}

func (t *Tools) park(x, y int, tr zone.Treasury) zone.Result {
	if tr.Funds() < CostOf(Park) {
		return zone.InsufficientFunds
	}
	v := t.rnd.Rand(4)
	p := tile.Encode(tile.Woods2+v, tile.BurnBit|tile.BullBit)
	if v == 4 {
		p = tile.Encode(tile.Fountain, tile.BurnBit|tile.BullBit|tile.AnimBit)
	}
	if t.m.Tiles[x][y] != 0 {
		return zone.InvalidTerrain
	}
	tr.Spend(CostOf(Park))
	t.m.Tiles[x][y] = p
	return zone.Ok
}

// network puts up a tower, clearing debris or a road first.
func (t *Tools) network(x, y int, tr zone.Treasury) zone.Result {
	b := t.m.Tiles[x][y].Base()
	cost := CostOf(Network)
	if tr.Funds() > 0 && tile.Clearable(b) {
		b = tile.Dirt
		cost += BulldozeFee
	}
	if b != tile.Dirt {
		return zone.InvalidTerrain
	}
	if tr.Funds() < cost {
		return zone.InsufficientFunds
	}
	t.m.Tiles[x][y] = tile.Encode(tile.TeleBase, tile.CondBit|tile.BurnBit|tile.BullBit|tile.AnimBit)
	tr.Spend(cost)
	return zone.Ok
}
