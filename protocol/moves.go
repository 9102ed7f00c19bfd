package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vpgo/engine/game"
)

// decodeMove parses a coordinate token (e.g. "Q16", "pass", "resign") into
// a move value for g. Column letters run A..Z skipping 'I' (so the 8th
// column is "H" and the 9th is "J"); the row number is 1-based, counted
// from the bottom edge of the board, matching the convention the reference
// GTP dispatcher uses.
func decodeMove(tok string, g *game.Game) (int, error) {
	switch strings.ToLower(tok) {
	case tokenPass:
		return g.Pass(), nil
	case tokenResign:
		return g.Resign(), nil
	}
	if len(tok) < 2 {
		return 0, fmt.Errorf("protocol: malformed coordinate %q", tok)
	}
	col := strings.ToUpper(tok[:1])[0]
	if col < 'A' || col > 'Z' || col == 'I' {
		return 0, fmt.Errorf("protocol: malformed column %q", tok)
	}
	x := int(col - 'A')
	if col > 'I' {
		x--
	}
	row, err := strconv.Atoi(tok[1:])
	if err != nil || row < 1 {
		return 0, fmt.Errorf("protocol: malformed row %q", tok)
	}
	size := g.Board().Size()
	y := size - row
	if x < 0 || x >= size || y < 0 || y >= size {
		return 0, fmt.Errorf("protocol: coordinate %q off board", tok)
	}
	return y*size + x, nil
}

// encodeMove is decodeMove's inverse, used to report genmove's choice.
func encodeMove(m int, g *game.Game) string {
	switch m {
	case g.Pass():
		return "pass"
	case g.Resign():
		return "resign"
	}
	size := g.Board().Size()
	x := m % size
	y := m / size
	col := byte('A' + x)
	if col >= 'I' {
		col++
	}
	row := size - y
	return fmt.Sprintf("%c%d", col, row)
}
