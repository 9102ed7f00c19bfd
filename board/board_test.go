package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpgo/engine/board"
	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/zobrist"
)

func newTable() *zobrist.Table {
	return zobrist.NewSeeded(5, 1)
}

// Scenario A — corner capture after play: black fills the corner white
// stone's last liberty at (0,1) and joins (1,0),(1,1) into one group.
func TestScenarioA_CornerCapture(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		"WB...",
		".B...",
		".....",
		".....",
		".....",
	}, zt)

	p := 1*5 + 0 // (x=0, y=1)
	require.True(t, b.IsCapture(p, colour.Black))
	b.Play(p, colour.Black)

	assert.Equal(t, colour.None, b.Value(0*5+0))
	assert.Equal(t, 3, b.GroupStones(p))
	assert.Equal(t, 6, b.GroupEdges(p))
	assert.Equal(t, 3, b.Stones())
}

// Scenario E — suicide forbidden at a filled eye with no group in atari.
func TestScenarioE_EyeSuicide(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		".....",
		"..W..",
		".W.W.",
		"..W..",
		".....",
	}, zt)

	assert.True(t, b.IsSuicide(2*5+2, colour.Black))
}

// Suicide that also captures is not suicide: black at the corner has no
// empty neighbour, but fills the last liberty of the white stone at (1,0).
func TestSuicideWithCaptureIsNotSuicide(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		".WB..",
		"WB...",
		".....",
		".....",
		".....",
	}, zt)
	p := 0
	assert.False(t, b.IsSuicide(p, colour.Black))
}

// Boundary: on a 1x1 board the only move is suicide.
func TestOneByOneBoardIsSuicide(t *testing.T) {
	zt := zobrist.NewSeeded(1, 1)
	b := board.New(1, zt)
	assert.True(t, b.IsSuicide(0, colour.Black))
}

func TestPreComputeHashMatchesPlay(t *testing.T) {
	zt := newTable()
	b := board.New(5, zt)

	moves := []struct {
		p   int
		col colour.Colour
	}{
		{1*5 + 1, colour.Black},
		{2*5 + 2, colour.White},
		{0*5 + 0, colour.Black},
	}
	for _, m := range moves {
		want := b.PreComputeHash(m.p, m.col)
		b.Play(m.p, m.col)
		assert.Equal(t, want, b.Hash())
	}
}

func TestEqualBoardsSameHash(t *testing.T) {
	zt := newTable()
	a := board.New(5, zt)
	b := board.New(5, zt)
	a.Play(6, colour.Black)
	b.Play(6, colour.Black)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestCountPointsSymmetric(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		"BB...",
		"B....",
		".....",
		"....W",
		"...WW",
	}, zt)
	blackScore, whiteScore := b.CountPoints()

	swapped := board.FromString([]string{
		"WW...",
		"W....",
		".....",
		"....B",
		"...BB",
	}, zt)
	whiteScore2, blackScore2 := swapped.CountPoints()

	assert.Equal(t, blackScore, blackScore2)
	assert.Equal(t, whiteScore, whiteScore2)
}

func TestIsEyeLikeRequiresUniformNeighbours(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		".....",
		"..W..",
		".W.B.",
		"..W..",
		".....",
	}, zt)
	assert.False(t, b.IsEyeLike(2*5+2, colour.White))
}

func TestGroupInvariantsAfterCapture(t *testing.T) {
	zt := newTable()
	b := board.FromString([]string{
		"WB...",
		".B...",
		".....",
		".....",
		".....",
	}, zt)
	p := 1*5 + 0
	b.Play(p, colour.Black)

	for q := 0; q < b.Points(); q++ {
		if b.Value(q) == colour.None {
			continue
		}
		root := b.GroupLocation(q)
		assert.Equal(t, b.Value(root), b.Value(q))
	}
	assert.Equal(t, 3, b.Stones())
}
