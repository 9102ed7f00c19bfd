package pattern_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/vpgo/engine/board"
	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/pattern"
	"github.com/vpgo/engine/zobrist"
)

func newBoard(rows []string) *board.Board {
	return board.FromString(rows, zobrist.NewSeeded(len(rows), 1))
}

// o x o / . * . / ? ? ? with BLACK to move.
func TestMatchHaneTemplate(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".BWB.",
		".....",
		".....",
		".....",
	})
	is.True(pattern.Match(b, 2, 2, colour.Black))
}

// Rotated variant: the same shape turned 90 degrees should still match,
// by symmetry rather than by a literal grid match.
func TestMatchHaneTemplateRotated(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".B...",
		".W...",
		".B...",
		".....",
	})
	is.True(pattern.Match(b, 2, 2, colour.Black))
}

// Cut template: o x . / . * . / ? . ?
func TestMatchCutTemplate(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".BW..",
		".....",
		".....",
		".....",
	})
	is.True(pattern.Match(b, 2, 2, colour.Black))
}

func TestNoMatchOnEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".....",
		".....",
		".....",
		".....",
	})
	is.True(!pattern.Match(b, 2, 2, colour.Black))
}

func TestNoMatchWhenOwnCornerMissing(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		"..W..",
		".....",
		".....",
		".....",
	})
	is.True(!pattern.Match(b, 2, 2, colour.Black))
}

// o x x / . * . / ? . ? with BLACK to move: the bottom-middle cell must be
// empty, same as the o x . variant.
func TestMatchDoubleHaneTemplate(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".BWW.",
		".....",
		".....",
		".....",
	})
	is.True(pattern.Match(b, 2, 2, colour.Black))
}

// Same shape, but a stone sits at the bottom-middle cell the template
// requires empty: must not match.
func TestMatchDoubleHaneTemplateRejectsOccupiedBottom(t *testing.T) {
	is := is.New(t)
	b := newBoard([]string{
		".....",
		".BWW.",
		".....",
		"..B..",
		".....",
	})
	is.True(!pattern.Match(b, 2, 2, colour.Black))
}

func TestMatchRespectsOffBoardAsNeutral(t *testing.T) {
	is := is.New(t)
	// Candidate on the right edge: its "right" neighbour falls off the
	// board. If off-board wrongly read as empty this would match the
	// template; since it reads as neutral instead, it must not.
	b := newBoard([]string{
		".....",
		"...BW",
		".....",
		".....",
		".....",
	})
	is.True(!pattern.Match(b, 4, 2, colour.Black))
}
