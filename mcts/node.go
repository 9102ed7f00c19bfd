package mcts

import (
	"sync/atomic"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/game"
)

// Node is one vertex of the shared search tree grown by parallel UCT
// workers. children is append-only and safe to read only once Expanded
// observes true; every other field is touched by multiple goroutines and
// goes through the atomics below. Upward references are unnecessary: a
// simulation walks down from the root by explicit recursion and never
// needs to climb back up.
type Node struct {
	move     int
	children []*Node

	visits atomic.Int64
	wins   atomic.Int64

	explored  atomic.Bool
	expanding atomic.Bool
	expanded  atomic.Bool
}

// noMove marks the root, which carries no move label.
const noMove = -1

// NewRoot allocates a fresh search root.
func NewRoot() *Node {
	return &Node{move: noMove}
}

// Move returns the move that reached this node from its parent, or noMove
// for the root.
func (n *Node) Move() int { return n.move }

// Visits returns the node's visit count.
func (n *Node) Visits() int64 { return n.visits.Load() }

// Wins returns the node's win count, tallied from the perspective of the
// colour that owns the decision at this node.
func (n *Node) Wins() int64 { return n.wins.Load() }

// WinRate returns Wins()/Visits(), or 0 before any visit.
func (n *Node) WinRate() float64 {
	v := n.Visits()
	if v == 0 {
		return 0
	}
	return float64(n.Wins()) / float64(v)
}

// Expanded reports whether the child slice has been published and is safe
// to read.
func (n *Node) Expanded() bool { return n.expanded.Load() }

// Children returns the published child slice. Callers must first confirm
// Expanded().
func (n *Node) Children() []*Node { return n.children }

// expand generates one child per legal move (every on-board point plus
// PASS) from g for col, then publishes the slice by setting expanded.
// Callers must hold the single-writer election on expanding before
// calling this.
func (n *Node) expand(g *game.Game, col colour.Colour) {
	children := make([]*Node, 0, g.Pass()+1)
	for m := 0; m <= g.Pass(); m++ {
		if !g.IsIllegal(m, col) {
			children = append(children, &Node{move: m})
		}
	}
	n.children = children
	n.expanded.Store(true)
}

// tryExpand runs the expansion protocol for a worker landing on n: the
// first visit to any node only marks it explored and falls through to a
// playout; only a *later* visit, finding explored already true but
// expanded still false, attempts expansion, via a compare-and-swap
// election on expanding. A worker that loses that election is "burned":
// it does no useful work this call and falls through to a playout too.
func (n *Node) tryExpand(g *game.Game, col colour.Colour) (expanded, burned bool) {
	priorExplored := n.explored.Swap(true)
	if priorExplored && !n.expanded.Load() {
		if n.expanding.CompareAndSwap(false, true) {
			n.expand(g, col)
		} else {
			burned = true
		}
	}
	return n.expanded.Load(), burned
}
