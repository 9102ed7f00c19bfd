// Package game wraps a board.Board with legality enforcement under
// positional superko, pass/resign handling, and termination/winner
// tracking.
package game

import (
	"github.com/vpgo/engine/board"
	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/zobrist"
)

// Game owns one Board, the match komi, the set of previously observed board
// hashes, the winner (colour.None until terminal), and whether the
// immediately preceding move was a pass.
type Game struct {
	board       *board.Board
	komi        int
	history     map[uint64]bool
	winner      colour.Colour
	lastPass    bool
}

// New starts a fresh game on an empty board of the given size.
func New(size, komi int, zt *zobrist.Table) *Game {
	b := board.New(size, zt)
	return FromBoard(b, komi)
}

// FromBoard starts a game from an already-populated board, seeding the
// superko history with just that board's hash. It exists for tests (and
// for positions restored from an external controller) where the starting
// point is not the empty board.
func FromBoard(b *board.Board, komi int) *Game {
	return &Game{
		board:   b,
		komi:    komi,
		history: map[uint64]bool{b.Hash(): true},
		winner:  colour.None,
	}
}

// Clone returns a deep, independent copy, suitable for a single MCTS
// simulation worker to mutate freely.
func (g *Game) Clone() *Game {
	history := make(map[uint64]bool, len(g.history))
	for h := range g.history {
		history[h] = true
	}
	return &Game{
		board:    g.board.Clone(),
		komi:     g.komi,
		history:  history,
		winner:   g.winner,
		lastPass: g.lastPass,
	}
}

// Board returns the underlying position.
func (g *Game) Board() *board.Board { return g.board }

// Komi returns the match komi.
func (g *Game) Komi() int { return g.komi }

// Winner returns the decided winner, or colour.None while the game is live.
func (g *Game) Winner() colour.Colour { return g.winner }

// LastWasPass reports whether the previous move played was a pass.
func (g *Game) LastWasPass() bool { return g.lastPass }

// Pass is the sentinel move value for passing.
func (g *Game) Pass() int { return g.board.Points() }

// Resign is the sentinel move value for resignation.
func (g *Game) Resign() int { return g.board.Points() + 1 }

// IsIllegal reports whether m is illegal for col. PASS and RESIGN are
// always legal; an on-board point is illegal if occupied, suicide, or if
// the position it would produce has already been observed (positional
// superko).
func (g *Game) IsIllegal(m int, col colour.Colour) bool {
	if m == g.Pass() || m == g.Resign() {
		return false
	}
	if g.board.Value(m) != colour.None {
		return true
	}
	if g.board.IsSuicide(m, col) {
		return true
	}
	return g.history[g.board.PreComputeHash(m, col)]
}

// Play applies m for col. Illegal ordinary moves are not rejected: per the
// forfeit rationale below, playing one ends the game in the opponent's
// favour. Precondition: g.Winner() == colour.None; Play does not check it.
//
// Illegal moves reaching Play are treated as forfeits rather than silently
// rejected, because the MCTS tree and the playout policy both filter
// legality up-front via IsIllegal; letting Play stay lenient keeps PASS
// self-consistent during playouts without a second legality path.
func (g *Game) Play(m int, col colour.Colour) {
	switch m {
	case g.Resign():
		g.winner = col.Invert()
		return
	case g.Pass():
		if g.lastPass {
			g.winner = g.scoreWinner()
		} else {
			g.lastPass = true
		}
		return
	}
	g.lastPass = false

	if g.board.Value(m) != colour.None || g.board.IsSuicide(m, col) {
		g.winner = col.Invert()
		return
	}
	newHash := g.board.PreComputeHash(m, col)
	if g.history[newHash] {
		g.winner = col.Invert()
		return
	}
	g.board.Play(m, col)
	g.history[newHash] = true
}

func (g *Game) scoreWinner() colour.Colour {
	black, white := g.board.CountPoints()
	if black > white+g.komi {
		return colour.Black
	}
	return colour.White
}
