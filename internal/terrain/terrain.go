// Package terrain generates the natural landscape of a new city: wandering
// rivers, lakes and forests on bare dirt, or an island.
package terrain

import (
	"citysim/internal/rng"
	"citysim/internal/tile"
	"citysim/internal/world"
)

// Options tune the generator. A level of -1 picks a random amount and 0
// turns the feature off. Island is -1 for a one in ten chance, 0 for never
// and 1 for always.
type Options struct {
	TreeLevel  int `json:"tree_level"`
	LakeLevel  int `json:"lake_level"`
	CurveLevel int `json:"curve_level"`
	Island     int `json:"island"`
}

// DefaultOptions randomizes everything.
func DefaultOptions() Options {
	return Options{TreeLevel: -1, LakeLevel: -1, CurveLevel: -1, Island: -1}
}

// Trees for smoothing purposes span the tree ids and the two spares after
// Woods.
const woodsHigh = tile.Woods + 2

const islandRadius = 18

type generator struct {
	m   *world.Map
	rnd rng.Source
	o   Options

	x, y           int
	xStart, yStart int
	dir, lastDir   int
}

// Generate clears m and lays out fresh terrain. The result depends only on
// the state of rnd and o.
func Generate(m *world.Map, rnd rng.Source, o Options) {
	m.Clear()
	g := &generator{m: m, rnd: rnd, o: o}

	switch {
	case o.Island < 0 && rnd.Rand(100) < 10:
		g.nakedIsland()
		g.smoothRiver()
		g.trees()
		return
	case o.Island == 1:
		g.nakedIsland()
	}

	g.xStart = 40 + rnd.Rand(tile.WorldX-80)
	g.yStart = 33 + rnd.Rand(tile.WorldY-67)
	g.x, g.y = g.xStart, g.yStart

	if o.CurveLevel != 0 {
		g.rivers()
	}
	if o.LakeLevel != 0 {
		g.lakes()
	}
	g.smoothRiver()
	if o.TreeLevel != 0 {
		g.trees()
	}
}

// eRand favors small values.
func (g *generator) eRand(limit int) int {
	return min(g.rnd.Rand(limit), g.rnd.Rand(limit))
}

func (g *generator) nakedIsland() {
	for x := range g.m.Tiles {
		for y := range g.m.Tiles[x] {
			g.m.Tiles[x][y] = tile.River
		}
	}
	for x := 5; x < tile.WorldX-5; x++ {
		for y := 5; y < tile.WorldY-5; y++ {
			g.m.Tiles[x][y] = tile.Dirt
		}
	}

	for x := 0; x < tile.WorldX-5; x += 2 {
		g.x = x
		g.y = g.eRand(islandRadius)
		g.bigPlop()
		g.y = tile.WorldY - 10 - g.eRand(islandRadius)
		g.bigPlop()
		g.y = 0
		g.smallPlop()
		g.y = tile.WorldY - 6
		g.smallPlop()
	}
	for y := 0; y < tile.WorldY-5; y += 2 {
		g.y = y
		g.x = g.eRand(islandRadius)
		g.bigPlop()
		g.x = tile.WorldX - 10 - g.eRand(islandRadius)
		g.bigPlop()
		g.x = 0
		g.smallPlop()
		g.x = tile.WorldX - 6
		g.smallPlop()
	}
}

func (g *generator) lakes() {
	n := g.o.LakeLevel / 2
	if g.o.LakeLevel < 0 {
		n = g.rnd.Rand(10)
	}
	for ; n > 0; n-- {
		x := g.rnd.Rand(tile.WorldX-21) + 10
		y := g.rnd.Rand(tile.WorldY-20) + 10
		for k := g.rnd.Rand(12) + 2; k > 0; k-- {
			g.x = x - 6 + g.rnd.Rand(12)
			g.y = y - 6 + g.rnd.Rand(12)
			if g.rnd.Rand(4) != 0 {
				g.smallPlop()
			} else {
				g.bigPlop()
			}
		}
	}
}

// rivers runs a big river both ways from the start and a small one off in
// a third direction.
func (g *generator) rivers() {
	g.lastDir = g.rnd.Rand(3)
	g.dir = g.lastDir
	g.river(4, g.bigPlop)

	g.x, g.y = g.xStart, g.yStart
	g.lastDir ^= 4
	g.dir = g.lastDir
	g.river(4, g.bigPlop)

	g.x, g.y = g.xStart, g.yStart
	g.lastDir = g.rnd.Rand(3)
	g.river(3, g.smallPlop)
}

func (g *generator) river(reach int, plop func()) {
	r1, r2 := 100, 200
	if g.o.CurveLevel >= 0 {
		r1, r2 = g.o.CurveLevel+10, g.o.CurveLevel+100
	}
	for tile.InBounds(g.x+reach, g.y+reach) {
		plop()
		if g.rnd.Rand(r1) < 10 {
			g.dir = g.lastDir
		} else {
			if g.rnd.Rand(r2) > 90 {
				g.dir++
			}
			if g.rnd.Rand(r2) > 90 {
				g.dir--
			}
		}
		g.move(g.dir)
	}
}

// Eight compass steps clockwise from north.
var (
	moveDx = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	moveDy = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
)

func (g *generator) move(dir int) {
	dir &= 7
	g.x += moveDx[dir]
	g.y += moveDy[dir]
}

// Plop stamps, indexed [y][x]: 2 river, 3 edge, 4 channel.
var (
	bigRiver = [9][9]int{
		{0, 0, 0, 3, 3, 3, 0, 0, 0},
		{0, 0, 3, 2, 2, 2, 3, 0, 0},
		{0, 3, 2, 2, 2, 2, 2, 3, 0},
		{3, 2, 2, 2, 2, 2, 2, 2, 3},
		{3, 2, 2, 2, 4, 2, 2, 2, 3},
		{3, 2, 2, 2, 2, 2, 2, 2, 3},
		{0, 3, 2, 2, 2, 2, 2, 3, 0},
		{0, 0, 3, 2, 2, 2, 3, 0, 0},
		{0, 0, 0, 3, 3, 3, 0, 0, 0},
	}
	smallRiver = [6][6]int{
		{0, 0, 3, 3, 0, 0},
		{0, 3, 2, 2, 3, 0},
		{3, 2, 2, 2, 2, 3},
		{3, 2, 2, 2, 2, 3},
		{0, 3, 2, 2, 3, 0},
		{0, 0, 3, 3, 0, 0},
	}
)

func (g *generator) bigPlop() {
	for y, row := range bigRiver {
		for x, id := range row {
			g.put(id, x, y)
		}
	}
}

func (g *generator) smallPlop() {
	for y, row := range smallRiver {
		for x, id := range row {
			g.put(id, x, y)
		}
	}
}

// put writes id at an offset from the cursor. Only a channel overwrites
// river, and nothing overwrites a channel.
func (g *generator) put(id, dx, dy int) {
	if id == 0 {
		return
	}
	x, y := g.x+dx, g.y+dy
	if !tile.InBounds(x, y) {
		return
	}
	switch g.m.Tiles[x][y].Base() {
	case tile.River:
		if id != tile.Channel {
			return
		}
	case tile.Channel:
		return
	}
	g.m.Tiles[x][y] = tile.Tile(id)
}

func (g *generator) trees() {
	n := g.o.TreeLevel + 3
	if g.o.TreeLevel < 0 {
		n = g.rnd.Rand(100) + 50
	}
	for ; n > 0; n-- {
		x := g.rnd.Rand(tile.WorldX - 1)
		y := g.rnd.Rand(tile.WorldY - 1)
		g.splash(x, y)
	}
	g.smoothTrees()
	g.smoothTrees()
}

// splash scatters woods along a random walk from (x, y).
func (g *generator) splash(x, y int) {
	n := g.rnd.Rand(100+g.o.TreeLevel*2) + 50
	if g.o.TreeLevel < 0 {
		n = g.rnd.Rand(150) + 50
	}
	g.x, g.y = x, y
	for ; n > 0; n-- {
		g.move(g.rnd.Rand(7))
		if !tile.InBounds(g.x, g.y) {
			return
		}
		if g.m.Tiles[g.x][g.y].Base() == tile.Dirt {
			g.m.Tiles[g.x][g.y] = tile.Encode(tile.Woods, tile.BLBN)
		}
	}
}

// West, south, east, north; the first neighbor lands in the high bit.
var (
	edgeDx = [4]int{-1, 0, 1, 0}
	edgeDy = [4]int{0, 1, 0, -1}
)

// edges builds a 4-bit mask of the neighbors of (x, y) matching ok.
func (g *generator) edges(x, y int, ok func(tile.Tile) bool) int {
	mask := 0
	for d := range edgeDx {
		mask <<= 1
		xx, yy := x+edgeDx[d], y+edgeDy[d]
		if tile.InBounds(xx, yy) && ok(g.m.Tiles[xx][yy]) {
			mask++
		}
	}
	return mask
}

var riverEdges = [16]int{13, 13, 17, 15, 5, 2, 19, 17, 9, 11, 2, 13, 7, 9, 5, 2}

func (g *generator) smoothRiver() {
	wet := func(t tile.Tile) bool {
		b := t.Base()
		return b != tile.Dirt && (b < tile.TreeBase || b > woodsHigh)
	}
	for x := range g.m.Tiles {
		for y := range g.m.Tiles[x] {
			if g.m.Tiles[x][y] != tile.REdge {
				continue
			}
			id := riverEdges[g.edges(x, y, wet)]
			if id == tile.River {
				g.m.Tiles[x][y] = tile.River
				continue
			}
			if g.rnd.Rand(1) != 0 {
				id++
			}
			g.m.Tiles[x][y] = tile.Encode(id, tile.BullBit)
		}
	}
}

func isTree(t tile.Tile) bool {
	b := t.Base()
	return b >= tile.TreeBase && b <= woodsHigh
}

var treeEdges = [16]int{0, 0, 0, 34, 0, 0, 36, 35, 0, 32, 0, 33, 30, 31, 29, 37}

func (g *generator) smoothTrees() {
	for x := range g.m.Tiles {
		for y := range g.m.Tiles[x] {
			if !isTree(g.m.Tiles[x][y]) {
				continue
			}
			id := treeEdges[g.edges(x, y, isTree)]
			switch {
			case id == 0:
				g.m.Tiles[x][y] = tile.Dirt
				continue
			case id != tile.Woods && (x+y)&1 != 0:
				id -= 8
			}
			g.m.Tiles[x][y] = tile.Encode(id, tile.BLBN)
		}
	}
}
