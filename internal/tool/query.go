package tool

import (
	"citysim/internal/tile"
	"citysim/internal/zone"
)

// Status describes a tile for the query tool. The level fields are message
// ids the host translates.
type Status struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Base       int    `json:"base"`
	Category   string `json:"category"`
	Zone       string `json:"zone,omitempty"`
	Density    string `json:"density"`
	LandValue  string `json:"land_value"`
	Crime      string `json:"crime"`
	Pollution  string `json:"pollution"`
	GrowthRate string `json:"growth_rate"`
}

var (
	densityLevels   = [4]string{"low", "medium", "high", "very_high"}
	valueLevels     = [4]string{"slum", "lower_class", "middle_class", "upper_class"}
	crimeLevels     = [4]string{"safe", "light", "moderate", "dangerous"}
	pollutionLevels = [4]string{"none", "moderate", "heavy", "very_heavy"}
)

// Query reports on (x, y). The second result is false out of bounds.
func (t *Tools) Query(x, y int) (Status, bool) {
	if !tile.InBounds(x, y) {
		return Status{}, false
	}
	cur := t.m.Tiles[x][y]
	b := cur.Base()
	cat := cur.Category()
	if b >= tile.CoalSmoke1 && b < tile.FootballGame1 {
		cat = tile.CatCoalPlant
	}

	hx, hy := x>>1, y>>1
	s := Status{
		X:         x,
		Y:         y,
		Base:      b,
		Category:  cat.String(),
		Density:   densityLevels[t.m.PopDensity[hx][hy]>>6&3],
		LandValue: valueLevels[valueLevel(t.m.LandValue[hx][hy])],
		Crime:     crimeLevels[t.m.Crime[hx][hy]>>6&3],
	}
	if cur.Has(tile.ZoneBit) {
		s.Zone = t.zones.State(x, y).String()
	}

	switch p := t.m.Pollution[hx][hy]; {
	case p > 0 && p < 64:
		s.Pollution = pollutionLevels[1]
	default:
		s.Pollution = pollutionLevels[p>>6&3]
	}

	switch g := t.m.GrowthRate[x>>3][y>>3]; {
	case g < 0:
		s.GrowthRate = "declining"
	case g == 0:
		s.GrowthRate = "stable"
	case g > 100:
		s.GrowthRate = "fast_growth"
	default:
		s.GrowthRate = "slow_growth"
	}
	return s, true
}

func valueLevel(v int) int {
	switch {
	case v < 30:
		return 0
	case v < 80:
		return 1
	case v < 150:
		return 2
	}
	return 3
}

var _ zone.Connector = (*Tools)(nil)
