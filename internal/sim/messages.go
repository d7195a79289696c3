package sim

import "citysim/internal/event"

// sendMessages checks one city condition per tick on a 64-tick rotation
// and posts a message when it holds. The stadium, seaport and airport
// checks also cap demand until the city builds one.
func (c *City) sendMessages() {
	c.checkGrowth()

	cen := c.census
	zones := cen.ResZones + cen.ComZones + cen.IndZones
	post := func(ok bool, k event.Kind) bool {
		if ok {
			c.events.Post(k, -1, -1)
		}
		return ok
	}

	switch c.cityTime & 63 {
	case 1:
		post(zones>>2 >= cen.ResZones, event.NeedResidential)
	case 5:
		post(zones>>3 >= cen.ComZones, event.NeedCommercial)
	case 10:
		post(zones>>3 >= cen.IndZones, event.NeedIndustrial)
	case 14:
		post(zones > 10 && zones<<1 > cen.RoadTotal, event.NeedRoads)
	case 18:
		post(zones > 50 && zones > cen.RailTotal, event.NeedRail)
	case 22:
		post(zones > 10 && cen.CoalPlants+cen.NuclearPlants == 0, event.NeedPower)
	case 26:
		c.resCap = post(cen.ResPop > 500 && cen.Stadiums == 0, event.NeedStadium)
	case 28:
		c.indCap = post(cen.IndPop > 70 && cen.Seaports == 0, event.NeedSeaport)
	case 30:
		c.comCap = post(cen.ComPop > 100 && cen.Airports == 0, event.NeedAirport)
	case 32:
		if n := cen.Zones(); n > 0 {
			post(cen.PoweredZones*10 < n*7, event.BrownoutsReported)
		}
	case 35:
		post(c.scanner.PollutionAverage > 60, event.HighPollution)
	case 42:
		post(c.scanner.CrimeAverage > 100, event.HighCrime)
	case 45:
		post(c.totalPop > 60 && cen.FireStations == 0, event.NeedFireStation)
	case 48:
		post(c.totalPop > 60 && cen.PoliceStations == 0, event.NeedPoliceStation)
	case 51:
		post(c.tax > 12, event.HighTaxes)
	case 54:
		post(c.router.RoadEffect < 20 && cen.RoadTotal > 30, event.RoadsDeteriorating)
	case 57:
		post(c.zones.FireEffect < 700 && c.totalPop > 20, event.FireFundingNeeded)
	case 60:
		post(c.zones.PoliceEffect < 700 && c.totalPop > 20, event.PoliceFundingNeeded)
	case 63:
		post(c.trafficAverage > 60, event.TrafficJam)
	}
}

// Population milestones, smallest first.
var milestones = []struct {
	pop  int
	kind event.Kind
}{
	{2000, event.ReachedTown},
	{10000, event.ReachedCity},
	{50000, event.ReachedCapital},
	{100000, event.ReachedMetropolis},
	{500000, event.ReachedMegalopolis},
}

// checkGrowth announces the first time the population crosses a
// milestone.
func (c *City) checkGrowth() {
	if c.cityTime&3 != 0 {
		return
	}
	pop := c.Population()
	if c.lastCityPop > 0 {
		for _, ms := range milestones {
			if c.lastCityPop < ms.pop && pop >= ms.pop {
				if ms.kind != c.lastMilestone {
					c.events.Post(ms.kind, -1, -1)
					c.lastMilestone = ms.kind
				}
				break
			}
		}
	}
	c.lastCityPop = pop
}

// Population is the headcount shown to players: residents plus eight
// workers per job, times twenty.
func (c *City) Population() int {
	return (c.census.ResPop + c.census.ComPop*8 + c.census.IndPop*8) * 20
}
