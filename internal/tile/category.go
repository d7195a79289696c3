package tile

// Category groups base ids by the behavior the simulation applies to them.
type Category uint8

const (
	CatDirt Category = iota
	CatWater
	CatTree
	CatRubble
	CatFlood
	CatRadioactive
	CatFire
	CatRoad
	CatPower
	CatRail
	CatResidential
	CatHospital
	CatCommercial
	CatIndustrial
	CatSeaport
	CatAirport
	CatCoalPlant
	CatFireStation
	CatPoliceStation
	CatStadium
	CatNuclear
	CatPark
	CatNetwork
	CatExplosion
	CatBridge
	CatEffect
)

var categoryNames = [...]string{
	"dirt", "water", "tree", "rubble", "flood", "radioactive", "fire", "road",
	"power", "rail", "residential", "hospital", "commercial", "industrial",
	"seaport", "airport", "coal", "firestation", "policestation", "stadium",
	"nuclear", "park", "network", "explosion", "bridge", "effect",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// IsZone reports whether tiles of the category belong to a zone footprint.
func (c Category) IsZone() bool {
	return c >= CatResidential && c <= CatNuclear
}

var categories [LowMask + 1]Category

type span struct {
	lo, hi int
	cat    Category
}

func init() {
	spans := []span{
		{1, LastRiverEdge, CatWater},
		{TreeBase, Woods5, CatTree},
		{Rubble, LastRubble, CatRubble},
		{Flood, LastFlood, CatFlood},
		{RadTile, FireBase - 1, CatRadioactive},
		{FireBase, LastFire, CatFire},
		{RoadBase, PowerBase - 1, CatRoad},
		{PowerBase, RailBase - 1, CatPower},
		{RailBase, ResBase - 1, CatRail},
		{ResBase, Hospital - 1, CatResidential},
		{Hospital, ComBase - 1, CatHospital},
		{ComBase, IndBase - 1, CatCommercial},
		{IndBase, PortBase - 1, CatIndustrial},
		{PortBase, AirportBase - 1, CatSeaport},
		{AirportBase, CoalBase - 1, CatAirport},
		{CoalBase, LastPowerPlant, CatCoalPlant},
		{FireStBase, PoliceStBase - 1, CatFireStation},
		{PoliceStBase, StadiumBase - 1, CatPoliceStation},
		{StadiumBase, NuclearBase - 1, CatStadium},
		{NuclearBase, LastZone, CatNuclear},
		{LightningBolt, LowMask, CatEffect},
		{HBrdg0, HBrdg3, CatBridge},
		{Radar0, Fountain - 1, CatAirport},
		{Fountain, TeleBase - 1, CatPark},
		{TeleBase, TeleLast, CatNetwork},
		{SmokeBase, TinyExp - 1, CatIndustrial},
		{TinyExp, LastTinyExp, CatExplosion},
		{IndSmoke, CoalSmoke1 - 1, CatIndustrial},
		{CoalSmoke1, FootballGame1 - 1, CatCoalPlant},
		{FootballGame1, VBrdg0 - 1, CatStadium},
		{VBrdg0, VBrdg3, CatBridge},
	}
	for _, s := range spans {
		for id := s.lo; id <= s.hi; id++ {
			categories[id] = s.cat
		}
	}
}

// CategoryOf returns the category of a base id.
func CategoryOf(base int) Category {
	return categories[base&LowMask]
}
