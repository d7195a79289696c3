// Package event carries the city messages the simulation raises for the
// host: disasters, crashes, shortages and demands.
package event

// Kind identifies a message. The host translates kinds into text.
type Kind int

const (
	None Kind = iota
	NeedPower
	NeedHospital
	NeedChurch
	HeavyTraffic
	FireReported
	FloodReported
	EarthquakeReported
	MonsterSighted
	TornadoSighted
	Meltdown
	ExplosionReported
	PlaneCrashed
	ShipWrecked
	TrainCrashed
	CopterCrashed
	BusCrashed
	FireBombing
	BrownoutsReported
	NeedResidential
	NeedCommercial
	NeedIndustrial
	NeedRoads
	NeedRail
	NeedStadium
	NeedSeaport
	NeedAirport
	NeedFireStation
	NeedPoliceStation
	HighTaxes
	RoadsDeteriorating
	FireFundingNeeded
	PoliceFundingNeeded
	HighPollution
	HighCrime
	TrafficJam
	ReachedTown
	ReachedCity
	ReachedCapital
	ReachedMetropolis
	ReachedMegalopolis
)

var names = [...]string{
	"none", "need_power", "need_hospital", "need_church", "heavy_traffic",
	"fire", "flood", "earthquake", "monster", "tornado", "meltdown", "explosion",
	"plane_crash", "shipwreck", "train_crash", "copter_crash", "bus_crash",
	"fire_bombing", "brownouts", "need_residential", "need_commercial",
	"need_industrial", "need_roads", "need_rail", "need_stadium", "need_seaport",
	"need_airport", "need_fire_station", "need_police_station", "high_taxes",
	"roads_deteriorating", "fire_funding_needed", "police_funding_needed",
	"high_pollution", "high_crime", "traffic_jam", "reached_town",
	"reached_city", "reached_capital", "reached_metropolis",
	"reached_megalopolis",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Message is one posted event. X and Y are tile coordinates, or -1 when the
// message has no location.
type Message struct {
	Kind Kind `json:"kind"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Tick int  `json:"tick"`
}

// Sink accepts messages.
type Sink interface {
	Post(kind Kind, x, y int)
}

// Capacity bounds how many undrained messages a Log keeps.
const Capacity = 64

// Log is a bounded Sink. When full, the oldest message is dropped.
type Log struct {
	Tick    int
	entries []Message
	dropped int
}

func (l *Log) Post(kind Kind, x, y int) {
	if len(l.entries) == Capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:Capacity-1]
		l.dropped++
	}
	l.entries = append(l.entries, Message{Kind: kind, X: x, Y: y, Tick: l.Tick})
}

// Drain returns the pending messages and empties the log.
func (l *Log) Drain() []Message {
	out := l.entries
	l.entries = nil
	return out
}

// Len is the number of pending messages.
func (l *Log) Len() int { return len(l.entries) }

// Dropped is how many messages were discarded because the log was full.
func (l *Log) Dropped() int { return l.dropped }

// Discard is a Sink that ignores everything.
type Discard struct{}

func (Discard) Post(Kind, int, int) {}
