// Package pattern implements the static 3x3 local-shape matcher used to
// bias playouts towards hane and cut responses near the opponent's last
// move. Matching is pure: it never mutates the board it inspects.
package pattern

import (
	"github.com/vpgo/engine/board"
	"github.com/vpgo/engine/colour"
)

// symmetries enumerates the eight ways to map a 3x3 neighbourhood onto
// itself (the dihedral group of the square): four rotations, each with and
// without a mirror flip.
var symmetries = [8]func(dx, dy int) (int, int){
	func(dx, dy int) (int, int) { return dx, dy },
	func(dx, dy int) (int, int) { return -dx, dy },
	func(dx, dy int) (int, int) { return dx, -dy },
	func(dx, dy int) (int, int) { return -dx, -dy },
	func(dx, dy int) (int, int) { return dy, dx },
	func(dx, dy int) (int, int) { return -dy, dx },
	func(dx, dy int) (int, int) { return dy, -dx },
	func(dx, dy int) (int, int) { return -dy, -dx },
}

// Match reports whether the empty point (x,y) matches any of the four
// hane/cut templates, under any of the eight symmetries, with col as the
// side to move. Off-board neighbours read as colour.Neutral, distinct from
// any stone colour.
func Match(b *board.Board, x, y int, col colour.Colour) bool {
	size := b.Size()
	for _, sym := range symmetries {
		get := func(dx, dy int) colour.Colour {
			tx, ty := sym(dx, dy)
			px, py := x+tx, y+ty
			if px < 0 || px >= size || py < 0 || py >= size {
				return colour.Neutral
			}
			return b.Value(py*size + px)
		}
		if matchTemplate(get, col) {
			return true
		}
	}
	return false
}

// matchTemplate tests the four templates this engine plays:
//
//	o x o      o x .      o x ?      o x x
//	. * .      . * .      o * .      . * .
//	? ? ?      ? . ?      ? . ?      ? . ?
//
// against the neighbourhood exposed by get, where (0,0) is the centre and
// get(-1,-1) is the top-left corner. The branches below subsume all four
// templates at once rather than checking each in turn.
func matchTemplate(get func(dx, dy int) colour.Colour, col colour.Colour) bool {
	opp := col.Invert()
	if get(-1, -1) != col {
		return false
	}
	if get(0, -1) != opp {
		return false
	}
	if get(1, 0) != colour.None {
		return false
	}
	left := get(-1, 0)
	if left == col {
		// o x ?
		// o * .
		// ? . ?
		return get(0, 1) == colour.None
	}
	if left != colour.None {
		return false
	}
	switch get(1, -1) {
	case col:
		// o x o
		// . * .
		// ? ? ?
		return true
	case opp:
		// o x x
		// . * .
		// ? . ?
		return get(0, 1) == colour.None
	case colour.None:
		// o x .
		// . * .
		// ? . ?
		return get(0, 1) == colour.None
	default:
		return false
	}
}
