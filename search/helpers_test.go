package search

import (
	"fmt"
	"strconv"
)

// digraph is a small directed graph whose vertices serve as search states.
// Edges are listed in the order Actions returns them.
type digraph struct {
	edges  map[int][]int
	poison map[int]bool // Apply panics when moving onto these vertices
}

type vertex struct {
	id int
	g  *digraph
}

func (v vertex) Actions() []int {
	return v.g.edges[v.id]
}

func (v vertex) Apply(to int) vertex {
	if v.g.poison[to] {
		panic(fmt.Sprintf("illegal move %d -> %d", v.id, to))
	}
	for _, e := range v.g.edges[v.id] {
		if e == to {
			return vertex{id: to, g: v.g}
		}
	}
	panic(fmt.Sprintf("no edge %d -> %d", v.id, to))
}

func (v vertex) String() string {
	return strconv.Itoa(v.id)
}

func graphSpace(g *digraph, start, goal int) SpaceFunc[vertex, int] {
	return SpaceFunc[vertex, int]{
		Initial: func() vertex { return vertex{id: start, g: g} },
		Goal:    func(v vertex) bool { return v.id == goal },
	}
}

// diamond has a shallow and a deep route from 0 to 5:
//
//	0 -> 1 -> 5
//	0 -> 2 -> 3 -> 5
func diamond() *digraph {
	return &digraph{edges: map[int][]int{
		0: {1, 2},
		1: {5},
		2: {3},
		3: {5},
	}}
}

// cell is a position on a size x size grid; moves are the four compass steps
// that stay on the grid. Every move has an inverse, so the space is full of
// cycles.
type cell struct {
	x, y, size int
}

type step struct {
	dx, dy int
}

var compass = []step{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func (c cell) Actions() []step {
	var out []step
	for _, s := range compass {
		nx, ny := c.x+s.dx, c.y+s.dy
		if nx >= 0 && ny >= 0 && nx < c.size && ny < c.size {
			out = append(out, s)
		}
	}
	return out
}

func (c cell) Apply(s step) cell {
	n := cell{x: c.x + s.dx, y: c.y + s.dy, size: c.size}
	if n.x < 0 || n.y < 0 || n.x >= c.size || n.y >= c.size {
		panic(fmt.Sprintf("step %v leaves the grid from (%d,%d)", s, c.x, c.y))
	}
	return n
}

func gridSpace(size, goalX, goalY int) SpaceFunc[cell, step] {
	return SpaceFunc[cell, step]{
		Initial: func() cell { return cell{size: size} },
		Goal:    func(c cell) bool { return c.x == goalX && c.y == goalY },
	}
}

// weight is an action carrying a cost; counter sums the weights applied.
type weight int

func (w weight) Cost() int { return int(w) }

type counter int

func (c counter) Actions() []weight { return []weight{1, 2} }

func (c counter) Apply(w weight) counter { return c + counter(w) }
