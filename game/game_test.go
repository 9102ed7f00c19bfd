package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/game"
	"github.com/vpgo/engine/zobrist"
)

func newGame(size, komi int) *game.Game {
	return game.New(size, komi, zobrist.NewSeeded(size, 1))
}

// Scenario C: two consecutive passes end the game and settle the winner by
// area score plus komi. An entirely empty board scores 0-0, so white wins
// the tie under the strict ">" rule in scoreWinner.
func TestDoublePassTerminatesAndScores(t *testing.T) {
	g := newGame(3, 0)
	require.Equal(t, colour.None, g.Winner())

	g.Play(g.Pass(), colour.Black)
	assert.True(t, g.LastWasPass())
	assert.Equal(t, colour.None, g.Winner())

	g.Play(g.Pass(), colour.White)
	assert.Equal(t, colour.White, g.Winner())
}

// A pass sandwiched between two ordinary moves does not terminate the game,
// and the ordinary move clears last_was_pass.
func TestSinglePassDoesNotTerminate(t *testing.T) {
	g := newGame(5, 0)
	g.Play(1*5+1, colour.Black)
	g.Play(g.Pass(), colour.White)
	assert.Equal(t, colour.None, g.Winner())
	assert.True(t, g.LastWasPass())

	g.Play(3*5+3, colour.Black)
	assert.False(t, g.LastWasPass())
	assert.Equal(t, colour.None, g.Winner())
}

// Scenario D: resignation immediately ends the game in the opponent's
// favour.
func TestResignEndsGameForOpponent(t *testing.T) {
	g := newGame(9, 0)
	g.Play(g.Resign(), colour.Black)
	assert.Equal(t, colour.White, g.Winner())
}

// Scenario B: positional superko forbids white from recapturing a single
// stone ko the moment it would exactly recreate the board as it stood right
// before black's capturing move.
func TestSuperkoRejectsRepeatedPosition(t *testing.T) {
	g := newGame(5, 0)
	play := func(x, y int, c colour.Colour) {
		p := y*5 + x
		require.False(t, g.IsIllegal(p, c), "setup move (%d,%d) for %v must be legal", x, y, c)
		g.Play(p, c)
	}

	// Isolated white stones pinning down the liberties of the ko point and
	// of the eventual ko-shape white stone.
	play(2, 4, colour.White)
	play(1, 3, colour.White)
	play(3, 3, colour.White)
	// Black stones walling in the white ko stone on three sides.
	play(2, 1, colour.Black)
	play(1, 2, colour.Black)
	play(3, 2, colour.Black)
	// The white ko stone itself: one liberty left, at (2,3).
	play(2, 2, colour.White)

	koPoint := 2*5 + 2 // (2,2)

	// Black fills the last liberty, capturing the lone white stone: this
	// leaves black with a single isolated stone at (2,3) whose only liberty
	// is the just-vacated koPoint.
	play(2, 3, colour.Black)
	require.Equal(t, colour.None, g.Board().Value(koPoint))

	assert.True(t, g.IsIllegal(koPoint, colour.White),
		"retaking the ko point must reproduce the pre-capture position and be forbidden")
}

// Playing an illegal ordinary move is a forfeit: the game ends immediately
// in the opponent's favour rather than being silently rejected.
func TestIllegalMoveIsAForfeit(t *testing.T) {
	g := newGame(3, 0)
	g.Play(0, colour.Black)
	// Point 0 is now occupied; playing there again is illegal.
	g.Play(0, colour.White)
	assert.Equal(t, colour.Black, g.Winner())
}

func TestCloneIsIndependent(t *testing.T) {
	g := newGame(5, 0)
	g.Play(1*5+1, colour.Black)
	clone := g.Clone()

	clone.Play(2*5+2, colour.White)

	assert.NotEqual(t, g.Board().Hash(), clone.Board().Hash())
	assert.Equal(t, colour.None, g.Board().Value(2*5+2))
}
