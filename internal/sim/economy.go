package sim

import "citysim/internal/event"

// HistoryLength is the size of each census history. Entries 0..119 hold
// the short history sampled every censusRate ticks, newest first; entries
// 120..239 hold the long history sampled every 48 ticks.
const HistoryLength = 240

const shortHistory = 120

// History holds the census graphs.
type History struct {
	Res       [HistoryLength]int `json:"res"`
	Com       [HistoryLength]int `json:"com"`
	Ind       [HistoryLength]int `json:"ind"`
	Crime     [HistoryLength]int `json:"crime"`
	Pollution [HistoryLength]int `json:"pollution"`
	Money     [HistoryLength]int `json:"money"`
}

func (h *History) reset() {
	*h = History{}
	for i := range h.Money {
		h.Money[i] = 128
	}
}

// shift moves entries lo..hi-2 up by one, freeing lo.
func (h *History) shift(lo, hi int) {
	for _, s := range []*[HistoryLength]int{&h.Res, &h.Com, &h.Ind, &h.Crime, &h.Pollution, &h.Money} {
		copy(s[lo+1:hi], s[lo:hi-1])
	}
}

// Budget is the outcome of the last tax collection. The funds are what
// each service asked for, the spends what the treasury paid.
type Budget struct {
	TaxFund     int `json:"tax_fund"`
	RoadFund    int `json:"road_fund"`
	FireFund    int `json:"fire_fund"`
	PoliceFund  int `json:"police_fund"`
	RoadSpend   int `json:"road_spend"`
	FireSpend   int `json:"fire_spend"`
	PoliceSpend int `json:"police_spend"`
}

// Demand response to the tax rate plus level, indexed by their sum.
var taxTable = [21]int{
	200, 150, 120, 100, 80, 50, 30, 0, -10, -40, -100,
	-150, -200, -250, -300, -350, -400, -450, -500, -550, -600,
}

var industryLevels = [3]float64{1.2, 1.1, 0.98}

// setValves projects population from employment, migration and births and
// moves the demand valves toward the projection.
func (c *City) setValves() {
	cen := c.census
	normRes := cen.ResPop / 8
	c.lastTotalPop = c.totalPop
	c.totalPop = normRes + cen.ComPop + cen.IndPop

	jobs := c.history.Com[1] + c.history.Ind[1]
	employment := 1.0
	if normRes > 0 {
		employment = float64(jobs) / float64(normRes)
	}
	migration := float64(normRes) * (employment - 1)
	births := float64(normRes) * 0.02
	projectedRes := float64(normRes) + migration + births

	laborBase := 1.0
	if jobs > 0 {
		laborBase = float64(c.history.Res[1]) / float64(jobs)
	}
	laborBase = min(max(laborBase, 0), 1.3)

	internalMarket := float64(normRes+cen.ComPop+cen.IndPop) / 3.7
	projectedCom := internalMarket * laborBase
	projectedInd := max(float64(cen.IndPop)*laborBase*industryLevels[c.level], 5)

	resRatio := 1.3
	if normRes > 0 {
		resRatio = projectedRes / float64(normRes)
	}
	comRatio := projectedCom
	if cen.ComPop > 0 {
		comRatio = projectedCom / float64(cen.ComPop)
	}
	indRatio := projectedInd
	if cen.IndPop > 0 {
		indRatio = projectedInd / float64(cen.IndPop)
	}

	taxEffect := taxTable[min(c.tax+c.level, 20)]
	v := &c.zones.Valves
	v.Res = moveValve(v.Res, resRatio, taxEffect, 2000)
	v.Com = moveValve(v.Com, comRatio, taxEffect, 1500)
	v.Ind = moveValve(v.Ind, indRatio, taxEffect, 1500)

	if c.resCap && v.Res > 0 {
		v.Res = 0
	}
	if c.comCap && v.Com > 0 {
		v.Com = 0
	}
	if c.indCap && v.Ind > 0 {
		v.Ind = 0
	}
}

// moveValve nudges valve by the demand a capped ratio implies and clamps
// the result to ±limit.
func moveValve(valve int, ratio float64, taxEffect, limit int) int {
	delta := (min(ratio, 2)-1)*600 + float64(taxEffect)
	switch {
	case delta > 0 && valve < limit, delta < 0 && valve > -limit:
		valve += int(delta)
	}
	return min(max(valve, -limit), limit)
}

// takeCensus samples the short histories and works out whether the city
// wants hospitals and churches.
func (c *City) takeCensus() {
	h := &c.history
	h.shift(0, shortHistory)

	h.Res[0] = c.census.ResPop / 8
	h.Com[0] = c.census.ComPop
	h.Ind[0] = c.census.IndPop

	c.crimeRamp += (c.scanner.CrimeAverage - c.crimeRamp) / 4
	h.Crime[0] = min(c.crimeRamp, 255)
	c.pollRamp += (c.scanner.PollutionAverage - c.pollRamp) / 4
	h.Pollution[0] = min(c.pollRamp, 255)
	h.Money[0] = min(max(c.cashFlow/20+128, 0), 255)

	want := c.census.ResPop >> 8
	if need := compare(want, c.census.Hospitals); need != c.zones.NeedHospital {
		c.zones.NeedHospital = need
		if need > 0 {
			c.events.Post(event.NeedHospital, -1, -1)
		}
	}
	if need := compare(want, c.census.Churches); need != c.zones.NeedChurch {
		c.zones.NeedChurch = need
		if need > 0 {
			c.events.Post(event.NeedChurch, -1, -1)
		}
	}
}

// compare is 1 when have falls short of want, -1 when it exceeds it.
func compare(want, have int) int {
	switch {
	case have < want:
		return 1
	case have > want:
		return -1
	}
	return 0
}

// take2Census samples the long histories.
func (c *City) take2Census() {
	h := &c.history
	h.shift(shortHistory, HistoryLength)

	h.Res[shortHistory] = c.census.ResPop / 8
	h.Com[shortHistory] = c.census.ComPop
	h.Ind[shortHistory] = c.census.IndPop
	h.Crime[shortHistory] = h.Crime[0]
	h.Pollution[shortHistory] = h.Pollution[0]
	h.Money[shortHistory] = h.Money[0]
}

var (
	roadLevels = [3]float64{0.7, 0.9, 1.2}
	taxLevels  = [3]float64{1.4, 1.2, 0.8}
)

// collectTax levies taxes and pays for roads, fire and police, in that
// order, as far as the treasury allows. Underpaid services lose
// effectiveness until the next collection.
func (c *City) collectTax() {
	c.cashFlow = 0
	b := Budget{
		PoliceFund: c.census.PoliceStations * 100,
		FireFund:   c.census.FireStations * 100,
		RoadFund:   int(float64(c.census.RoadTotal+c.census.RailTotal*2) * roadLevels[c.level]),
		TaxFund:    int(float64(c.totalPop*c.scanner.LandValueAverage/120*c.tax) * taxLevels[c.level]),
	}
	if c.totalPop == 0 {
		c.budget = b
		c.router.RoadEffect = 32
		c.zones.PoliceEffect = 1000
		c.zones.FireEffect = 1000
		return
	}

	cash := c.funds + b.TaxFund
	pay := func(fund int) int {
		spend := min(fund, max(cash, 0))
		cash -= spend
		return spend
	}
	b.RoadSpend = pay(b.RoadFund)
	b.FireSpend = pay(b.FireFund)
	b.PoliceSpend = pay(b.PoliceFund)

	c.cashFlow = b.TaxFund - b.RoadSpend - b.FireSpend - b.PoliceSpend
	c.funds += c.cashFlow
	c.budget = b

	c.router.RoadEffect = effect(b.RoadSpend, b.RoadFund, 32)
	c.zones.FireEffect = effect(b.FireSpend, b.FireFund, 1000)
	c.zones.PoliceEffect = effect(b.PoliceSpend, b.PoliceFund, 1000)
}

func effect(spend, fund, full int) int {
	if fund == 0 {
		return full
	}
	return spend * full / fund
}
