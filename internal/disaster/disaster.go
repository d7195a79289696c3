// Package disaster runs fires, floods, earthquakes, monsters, tornadoes,
// meltdowns and the timed disasters of the classic scenarios.
package disaster

import (
	"citysim/internal/event"
	"citysim/internal/rng"
	"citysim/internal/sprite"
	"citysim/internal/world"
)

// Kind names a disaster for phase tracking.
type Kind int

const (
	Fire Kind = iota
	Flood
	Earthquake
	Monster
	Tornado
	Meltdown
	kindCount
)

var kindNames = [kindCount]string{"fire", "flood", "earthquake", "monster", "tornado", "meltdown"}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every disaster kind.
func Kinds() []Kind {
	return []Kind{Fire, Flood, Earthquake, Monster, Tornado, Meltdown}
}

// Phase is the observable state of one disaster kind.
type Phase int

const (
	Idle Phase = iota
	Active
	Cooldown
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Cooldown:
		return "cooldown"
	}
	return "idle"
}

// CooldownPasses is how many passes a kind stays in Cooldown after it was
// last active.
const CooldownPasses = 8

// Disaster rolls per level: one chance in this many per pass.
var chances = [3]int{10 * 48, 5 * 48, 60}

// Passes until a scenario's disaster, by scenario id.
var scenarioWait = [9]int{0, 2, 10, 5, 20, 3, 5, 5, 2 * 48}

// Scenario ids.
const (
	ScenarioNone = iota
	ScenarioDullsville
	ScenarioSanFrancisco
	ScenarioHamburg
	ScenarioBern
	ScenarioTokyo
	ScenarioDetroit
	ScenarioBoston
	ScenarioRio
	scenarioCount
)

// Sprites is what the engine needs from the sprite system.
type Sprites interface {
	MakeMonster()
	MakeTornado()
	MakeExplosion(x, y int)
	MakeExplosionAt(x, y int)
	Get(k sprite.Kind) *sprite.Sprite
}

// Engine owns disaster state for one city.
type Engine struct {
	m       *world.Map
	rnd     rng.Source
	sprites Sprites
	events  event.Sink
	census  *world.Census

	floodCount     int
	floodX, floodY int

	scenario int
	wait     int

	phase  [kindCount]Phase
	cool   [kindCount]int
	struck [kindCount]bool

	// Level is the game level, 0..2.
	Level int
	// NoDisasters suppresses every disaster Step could start.
	NoDisasters bool
	// PollutionAverage gates the monster.
	PollutionAverage int

	// CrashX/Y is the tile of the last fire or bomb.
	CrashX, CrashY int
	// QuakeX/Y is the last earthquake epicenter.
	QuakeX, QuakeY int
	// MeltX/Y is the last meltdown site.
	MeltX, MeltY int
}

// NewEngine returns an engine. census supplies the fire count of the
// current cycle.
func NewEngine(m *world.Map, rnd rng.Source, sprites Sprites, events event.Sink, census *world.Census) *Engine {
	if events == nil {
		events = event.Discard{}
	}
	return &Engine{m: m, rnd: rnd, sprites: sprites, events: events, census: census}
}

// SetScenario arms the timed disaster of a scenario. Unknown ids disarm.
func (e *Engine) SetScenario(id int) {
	if id <= ScenarioNone || id >= scenarioCount {
		e.scenario, e.wait = ScenarioNone, 0
		return
	}
	e.scenario, e.wait = id, scenarioWait[id]
}

// Scenario returns the armed scenario and the passes left on its clock.
func (e *Engine) Scenario() (id, wait int) { return e.scenario, e.wait }

// FloodCount is the number of passes left before floods recede.
func (e *Engine) FloodCount() int { return e.floodCount }

// Phase reports the phase of a disaster kind as of the last Step.
func (e *Engine) Phase(k Kind) Phase {
	if k < 0 || k >= kindCount {
		return Idle
	}
	return e.phase[k]
}

// Step runs one disaster pass.
func (e *Engine) Step() {
	if e.floodCount > 0 {
		e.floodCount--
	}
	if e.scenario != ScenarioNone {
		e.runScenario()
	}

	if !e.NoDisasters {
		level := e.Level
		if level < 0 || level > 2 {
			level = 0
		}
		if e.rnd.Rand(chances[level]) == 0 {
			switch e.rnd.Rand(8) {
			case 0, 1:
				e.SetFire()
			case 2, 3:
				e.MakeFlood()
			case 4:
			case 5:
				e.MakeTornado()
			case 6:
				e.MakeEarthquake()
			case 7, 8:
				if e.PollutionAverage > 60 {
					e.MakeMonster()
				}
			}
		}
	}
	e.updatePhases()
}

func (e *Engine) runScenario() {
	if !e.NoDisasters {
		switch e.scenario {
		case ScenarioSanFrancisco:
			if e.wait == 1 {
				e.MakeEarthquake()
			}
		case ScenarioHamburg:
			e.FireBomb()
		case ScenarioTokyo:
			if e.wait == 1 {
				e.MakeMonster()
			}
		case ScenarioBoston:
			if e.wait == 1 {
				e.MakeMeltdown()
			}
		case ScenarioRio:
			if e.wait%24 == 0 {
				e.MakeFlood()
			}
		}
	}
	if e.wait > 0 {
		e.wait--
	} else {
		e.scenario = ScenarioNone
	}
}

func (e *Engine) activeNow(k Kind) bool {
	switch k {
	case Fire:
		return e.census != nil && e.census.FirePop > 0
	case Flood:
		return e.floodCount > 0
	case Monster:
		return e.sprites != nil && e.sprites.Get(sprite.Monster) != nil
	case Tornado:
		return e.sprites != nil && e.sprites.Get(sprite.Tornado) != nil
	}
	return e.struck[k]
}

func (e *Engine) updatePhases() {
	for _, k := range Kinds() {
		switch {
		case e.activeNow(k):
			e.phase[k] = Active
			e.cool[k] = CooldownPasses
		case e.cool[k] > 0:
			e.cool[k]--
			e.phase[k] = Cooldown
		default:
			e.phase[k] = Idle
		}
	}
	e.struck = [kindCount]bool{}
}

// MakeMonster summons or rouses the monster.
func (e *Engine) MakeMonster() {
	if e.sprites != nil {
		e.sprites.MakeMonster()
	}
}

// MakeTornado spawns or prolongs the tornado.
func (e *Engine) MakeTornado() {
	if e.sprites != nil {
		e.sprites.MakeTornado()
	}
}

func (e *Engine) explodeTile(x, y int) {
	if e.sprites != nil {
		e.sprites.MakeExplosion(x, y)
	}
}

func (e *Engine) explodeAt(px, py int) {
	if e.sprites != nil {
		e.sprites.MakeExplosionAt(px, py)
	}
}
