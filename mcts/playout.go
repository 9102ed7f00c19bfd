package mcts

import (
	"math/rand/v2"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/game"
	"github.com/vpgo/engine/pattern"
)

// Policy holds the tunable constants governing playout move selection: the
// uniform-random fallback, filtered by legality and eye-avoidance, biased
// towards 3x3 pattern matches near the opponent's last move.
type Policy struct {
	// PatternProbability is the chance, each ply, that a pattern-matching
	// move near the last move is tried before falling back to uniform
	// random selection.
	PatternProbability float64
}

// DefaultPolicy mirrors the reference engine's hard-coded playout constant.
var DefaultPolicy = Policy{PatternProbability: 0.5}

// Playout runs g to a decided winner starting with col to move, mutating g
// in place. moves is worker-owned scratch space that the caller
// pre-populates with every point 0..Points() (on-board points plus PASS);
// Playout reorders it as candidates are rejected but never shrinks the
// slice itself, so the caller can reuse it across playouts without
// reallocating.
func (p Policy) Playout(g *game.Game, col colour.Colour, rng *rand.Rand, moves []int, lastMove int) {
	for g.Winner() == colour.None {
		move, ok := -1, false
		if lastMove != g.Pass() && rng.Float64() < p.PatternProbability {
			move, ok = p.patternMove(g, col, rng, lastMove)
		}
		if !ok {
			move = p.fallbackMove(g, col, rng, moves)
		}
		g.Play(move, col)
		lastMove = move
		col = col.Invert()
	}
}

// patternMove enumerates the (up to four) empty orthogonal neighbours of
// lastMove and returns a uniformly chosen one that matches the 3x3 hane/cut
// templates for col, if any do.
func (p Policy) patternMove(g *game.Game, col colour.Colour, rng *rand.Rand, lastMove int) (int, bool) {
	b := g.Board()
	size := b.Size()
	x, y := lastMove%size, lastMove/size

	var candidates [4]int
	n := 0
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= size || ny < 0 || ny >= size {
			continue
		}
		np := ny*size + nx
		if b.Value(np) != colour.None {
			continue
		}
		if pattern.Match(b, nx, ny, col) {
			candidates[n] = np
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return candidates[0], true
	}
	return candidates[rng.IntN(n)], true
}

// fallbackMove repeatedly samples a uniformly random index into the live
// prefix of moves, rejecting candidates that are illegal, eye-like, or a
// losing pass, and swapping rejects to the end so the shrinking prefix
// never re-samples one twice in this ply. The prefix is local to this
// call: a point rejected this ply is eligible again on the very next ply,
// since eye/illegal status is re-evaluated every time. Returns RESIGN if
// every candidate is exhausted.
func (p Policy) fallbackMove(g *game.Game, col colour.Colour, rng *rand.Rand, moves []int) int {
	live := len(moves)
	for live > 0 {
		idx := rng.IntN(live)
		candidate := moves[idx]

		var accept bool
		if candidate == g.Pass() {
			black, white := g.Board().CountPoints()
			accept = wins(col, black, white, g.Komi())
		} else {
			accept = !g.IsIllegal(candidate, col) && !g.Board().IsEyeLike(candidate, col)
		}
		if accept {
			return candidate
		}

		live--
		moves[idx], moves[live] = moves[live], moves[idx]
	}
	return g.Resign()
}

// wins reports whether col would win the area-scored game right now, per
// the same komi rule Game.Play uses on double-pass termination.
func wins(col colour.Colour, black, white, komi int) bool {
	blackWins := black > white+komi
	if col == colour.Black {
		return blackWins
	}
	return !blackWins
}
