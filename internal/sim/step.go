package sim

import (
	"citysim/internal/event"
	"citysim/internal/power"
	"citysim/internal/scan"
	"citysim/internal/tile"
	"citysim/internal/world"
)

const (
	censusRate   = 4  // ticks between short census samples
	taxFrequency = 48 // ticks between tax collections

	// Sprite frames moved per tick.
	spriteFrames = 16
)

// Step runs one tick: power, the map scan, bookkeeping, disasters and
// sprites, in that order.
func (c *City) Step() {
	c.beginCycle()
	c.powerScan()
	c.mapScan()
	c.bookkeeping()
	c.disasters.PollutionAverage = c.scanner.PollutionAverage
	c.disasters.Step()
	for i := 0; i < spriteFrames; i++ {
		c.sprites.Move()
	}
}

func (c *City) beginCycle() {
	c.scycle = (c.scycle + 1) % 1024
	c.cityTime++
	c.events.Tick = c.cityTime
	if c.scycle&1 == 0 {
		c.setValves()
	}

	c.last = *c.census
	c.census.Reset()
	c.m.FireStations = world.SmallMap{}
	c.m.Police = world.SmallMap{}

	c.zones.CityTime = c.cityTime
	c.router.TotalPop = c.totalPop
}

// powerScan redistributes power from the plants. A grid larger than the
// plants of the last cycle can feed raises a shortage message once.
func (c *City) powerScan() {
	power.Strip(c.m)
	c.powered = c.power.Scan(c.m)
	power.Apply(c.m)

	capacity := power.MaxPower(c.last.CoalPlants, c.last.NuclearPlants)
	short := capacity > 0 && c.powered.Powered > capacity
	if short && !c.shortage {
		c.events.Post(event.NeedPower, -1, -1)
	}
	c.shortage = short
}

// mapScan visits every tile once, column by column.
func (c *City) mapScan() {
	for x := 0; x < tile.WorldX; x++ {
		for y := 0; y < tile.WorldY; y++ {
			c.scanTile(x, y)
		}
	}
}

func (c *City) scanTile(x, y int) {
	t := c.m.Tiles[x][y]
	if t.Base() < tile.Flood {
		return
	}
	switch cat := t.Category(); {
	case cat == tile.CatFire:
		c.census.FirePop++
		if c.rnd.Rand16()&3 == 0 {
			c.disasters.DoFire(x, y)
		}
	case cat == tile.CatFlood:
		c.disasters.DoFlood(x, y)
	case cat == tile.CatRadioactive:
		c.disasters.DoRadTile(x, y)
	case cat == tile.CatRoad:
		c.router.UpdateRoad(x, y)
		if c.m.Tiles[x][y].Category() == tile.CatRoad && c.m.TrafficDensity[x>>1][y>>1] > 63 {
			c.sprites.GenerateBus(x, y)
		}
	case t.Has(tile.ZoneBit):
		c.zones.Update(x, y)
	case cat == tile.CatRail:
		c.router.UpdateRail(x, y)
	case cat == tile.CatExplosion:
		c.settleDebris(x, y, t)
	}
}

// settleDebris runs the small explosions left by the bulldozer and by
// disasters down to rubble, one frame per tick.
func (c *City) settleDebris(x, y int, t tile.Tile) {
	if b := t.Base(); b < tile.SomeTinyExp {
		c.m.Tiles[x][y] = tile.Encode(b+1, t.Flags())
		return
	}
	c.m.Tiles[x][y] = tile.Encode(tile.Rubble+(c.rnd.Rand16()&3), tile.BullBit)
}

// bookkeeping runs the census, taxes, decay, overlay scans and city
// messages.
func (c *City) bookkeeping() {
	if c.cityTime%censusRate == 0 {
		c.takeCensus()
	}
	if c.cityTime%(censusRate*12) == 0 {
		c.take2Census()
	}
	if c.cityTime%taxFrequency == 0 {
		c.collectTax()
	}

	if c.scycle%5 == 0 {
		scan.DecayGrowth(c.m)
	}
	scan.DecayTraffic(c.m)

	c.scanner.PollutionLandValue()
	c.scanner.Crime()
	c.scanner.PopulationDensity()
	c.scanner.FireAnalysis()
	c.sprites.PollutionPeakX = c.scanner.PollutionMaxX
	c.sprites.PollutionPeakY = c.scanner.PollutionMaxY
	c.trafficAverage = averageTraffic(c.m)

	c.sendMessages()
}

// averageTraffic is the mean traffic density over developed land, scaled
// so that 100 is heavy.
func averageTraffic(m *world.Map) int {
	total, n := 0, 1
	for x := range m.LandValue {
		for y := range m.LandValue[x] {
			if m.LandValue[x][y] != 0 {
				total += m.TrafficDensity[x][y]
				n++
			}
		}
	}
	return total / n * 12 / 5
}
