// Package rng implements the additive feedback generator every stochastic
// part of the simulation draws from. A city owns exactly one Engine, so a
// seed plus a call sequence fully determines a run.
package rng

// Kind selects the feedback table size.
type Kind int

const (
	Type0 Kind = iota // plain linear congruential
	Type1
	Type2
	Type3
	Type4
)

var (
	degrees     = [...]int{0, 7, 15, 31, 63}
	separations = [...]int{0, 3, 1, 3, 1}
)

// Range is the largest value Rand16 returns.
const Range = 0xffff

// Source is the set of draws the simulation packages need.
type Source interface {
	Rand(n int) int
	Rand16() int
	Rand16Signed() int
}

// Engine is a seedable generator. The zero value is not usable; call New.
type Engine struct {
	kind  Kind
	front int
	rear  int
	table []uint32
}

// State is a copy of the generator internals, enough to resume a sequence.
type State struct {
	Kind  Kind     `json:"kind"`
	Front int      `json:"front"`
	Rear  int      `json:"rear"`
	Table []uint32 `json:"table"`
}

// New returns a Type3 engine seeded with seed.
func New(seed int64) *Engine {
	return NewKind(Type3, seed)
}

// NewKind returns an engine of the given kind. Unknown kinds fall back to Type3.
func NewKind(kind Kind, seed int64) *Engine {
	if kind < Type0 || kind > Type4 {
		kind = Type3
	}
	size := degrees[kind]
	if size == 0 {
		size = 1
	}
	e := &Engine{kind: kind, table: make([]uint32, size)}
	e.Seed(seed)
	return e
}

// Kind reports the generator configuration.
func (e *Engine) Kind() Kind { return e.kind }

// Seed resets the sequence.
func (e *Engine) Seed(seed int64) {
	e.table[0] = uint32(seed)
	if e.kind == Type0 {
		return
	}
	deg := degrees[e.kind]
	for i := 1; i < deg; i++ {
		e.table[i] = 1103515245*e.table[i-1] + 12345
	}
	e.front = separations[e.kind]
	e.rear = 0
	for i := 0; i < 10*deg; i++ {
		e.Random()
	}
}

// Random returns the next 31-bit value.
func (e *Engine) Random() int32 {
	if e.kind == Type0 {
		e.table[0] = (e.table[0]*1103515245 + 12345) & 0x7fffffff
		return int32(e.table[0])
	}
	deg := degrees[e.kind]
	e.table[e.front] += e.table[e.rear]
	v := int32((e.table[e.front] >> 1) & 0x7fffffff)
	e.front++
	if e.front >= deg {
		e.front = 0
		e.rear++
	} else {
		e.rear++
		if e.rear >= deg {
			e.rear = 0
		}
	}
	return v
}

// Rand16 returns a value in [0, 0xffff].
func (e *Engine) Rand16() int {
	return int(e.Random() & Range)
}

// Rand16Signed folds the upper half of Rand16 into negative values.
func (e *Engine) Rand16Signed() int {
	v := e.Rand16()
	if v > 32767 {
		v = 32767 - v
	}
	return v
}

// Rand returns a value in [0, n], both ends inclusive. n <= 0 yields 0.
func (e *Engine) Rand(n int) int {
	if n <= 0 {
		return 0
	}
	n++
	limit := Range
	if n < Range {
		limit = Range - (Range % n)
	}
	v := e.Rand16()
	for v >= limit {
		v = e.Rand16()
	}
	return v % n
}

// State captures the generator so it can be restored later.
func (e *Engine) State() State {
	return State{Kind: e.kind, Front: e.front, Rear: e.rear, Table: append([]uint32(nil), e.table...)}
}

// Restore replaces the generator internals. It reports false, leaving the
// engine untouched, when the state does not match its own shape.
func (e *Engine) Restore(s State) bool {
	if s.Kind < Type0 || s.Kind > Type4 {
		return false
	}
	size := degrees[s.Kind]
	if size == 0 {
		size = 1
	}
	if len(s.Table) != size || s.Front < 0 || s.Rear < 0 || (size > 1 && (s.Front >= size || s.Rear >= size)) {
		return false
	}
	e.kind = s.Kind
	e.front = s.Front
	e.rear = s.Rear
	e.table = append(e.table[:0:0], s.Table...)
	return true
}
