package world

// Census holds the counters the map scan accumulates during one cycle.
type Census struct {
	ResPop int `json:"res_pop"`
	ComPop int `json:"com_pop"`
	IndPop int `json:"ind_pop"`

	ResZones int `json:"res_zones"`
	ComZones int `json:"com_zones"`
	IndZones int `json:"ind_zones"`

	PoweredZones   int `json:"powered_zones"`
	UnpoweredZones int `json:"unpowered_zones"`

	FirePop   int `json:"fire_pop"`
	RoadTotal int `json:"road_total"`
	RailTotal int `json:"rail_total"`

	Hospitals      int `json:"hospitals"`
	Churches       int `json:"churches"`
	PoliceStations int `json:"police_stations"`
	FireStations   int `json:"fire_stations"`
	Stadiums       int `json:"stadiums"`
	CoalPlants     int `json:"coal_plants"`
	NuclearPlants  int `json:"nuclear_plants"`
	Seaports       int `json:"seaports"`
	Airports       int `json:"airports"`
}

// Reset zeroes every counter.
func (c *Census) Reset() {
	*c = Census{}
}

// Zones is the number of zone centers seen.
func (c *Census) Zones() int {
	return c.PoweredZones + c.UnpoweredZones
}
