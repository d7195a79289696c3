package sim

import (
	"citysim/internal/disaster"
	"citysim/internal/power"
	"citysim/internal/world"
	"citysim/internal/zone"
)

// Stats is the summary of a city between ticks.
type Stats struct {
	CityTime   int `json:"city_time"`
	Year       int `json:"year"`
	Month      int `json:"month"` // 0 is January
	Funds      int `json:"funds"`
	Tax        int `json:"tax"`
	Level      int `json:"level"`
	CashFlow   int `json:"cash_flow"`
	Population int `json:"population"`
	TotalPop   int `json:"total_pop"`

	Census world.Census `json:"census"`
	Valves zone.Valves  `json:"valves"`
	Budget Budget       `json:"budget"`

	LandValueAverage int `json:"land_value_average"`
	PollutionAverage int `json:"pollution_average"`
	CrimeAverage     int `json:"crime_average"`
	TrafficAverage   int `json:"traffic_average"`

	RoadEffect   int `json:"road_effect"`
	FireEffect   int `json:"fire_effect"`
	PoliceEffect int `json:"police_effect"`

	NeedHospital int `json:"need_hospital"`
	NeedChurch   int `json:"need_church"`

	PoweredTiles  int `json:"powered_tiles"`
	PowerCapacity int `json:"power_capacity"`
	PowerDropped  int `json:"power_dropped"`

	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	Sprites   int               `json:"sprites"`
	Scenario  int               `json:"scenario"`
	Disasters map[string]string `json:"disasters"`
}

// Stats summarizes the city.
func (c *City) Stats() Stats {
	s := Stats{
		CityTime:   c.cityTime,
		Year:       c.startYear + c.cityTime/48,
		Month:      c.cityTime % 48 / 4,
		Funds:      c.funds,
		Tax:        c.tax,
		Level:      c.level,
		CashFlow:   c.cashFlow,
		Population: c.Population(),
		TotalPop:   c.totalPop,

		Census: *c.census,
		Valves: c.zones.Valves,
		Budget: c.budget,

		LandValueAverage: c.scanner.LandValueAverage,
		PollutionAverage: c.scanner.PollutionAverage,
		CrimeAverage:     c.scanner.CrimeAverage,
		TrafficAverage:   c.trafficAverage,

		RoadEffect:   c.router.RoadEffect,
		FireEffect:   c.zones.FireEffect,
		PoliceEffect: c.zones.PoliceEffect,

		NeedHospital: c.zones.NeedHospital,
		NeedChurch:   c.zones.NeedChurch,

		PoweredTiles: c.powered.Powered,
		PowerDropped: c.powered.Dropped,

		CenterX: c.scanner.CenterX,
		CenterY: c.scanner.CenterY,

		Sprites:   len(c.sprites.Active()),
		Disasters: make(map[string]string, len(disaster.Kinds())),
	}
	s.PowerCapacity = power.MaxPower(c.census.CoalPlants, c.census.NuclearPlants)
	s.Scenario, _ = c.disasters.Scenario()
	for _, k := range disaster.Kinds() {
		s.Disasters[k.String()] = c.disasters.Phase(k).String()
	}
	return s
}
