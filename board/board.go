// Package board implements the incremental position: stone placement,
// group/liberty tracking by union-find, capture, suicide detection, and
// territory scoring. Every playout invokes thousands of placements, so the
// representation favours flat slices and in-place mutation over pointer
// chasing.
package board

import (
	"fmt"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/zobrist"
)

// groupInfo is the union-find record kept at a group's canonical root.
// edges is incidence-based, not distinct-liberty-based: a stone with two
// empty neighbours contributes 2, and a liberty shared by two stones of the
// same group is counted twice. A group has zero liberties iff edges == 0.
type groupInfo struct {
	stones int
	edges  int
	hash   uint64
}

// Board is a mutable N×N Go position.
type Board struct {
	size    int
	zobrist *zobrist.Table
	state   []colour.Colour
	parent  []int
	groups  map[int]*groupInfo
	hash    uint64
	stones  int
}

// New allocates an empty board of the given side length, backed by zt. zt is
// initialised (grown if necessary) for size*size points.
func New(size int, zt *zobrist.Table) *Board {
	zt.Init(size)
	n := size * size
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &Board{
		size:    size,
		zobrist: zt,
		state:   make([]colour.Colour, n),
		parent:  parent,
		groups:  make(map[int]*groupInfo),
		hash:    zt.Initial(),
		stones:  0,
	}
}

// Clone returns a deep, independent copy. The Zobrist table is shared (it is
// effectively immutable during search).
func (b *Board) Clone() *Board {
	state := make([]colour.Colour, len(b.state))
	copy(state, b.state)
	parent := make([]int, len(b.parent))
	copy(parent, b.parent)
	groups := make(map[int]*groupInfo, len(b.groups))
	for root, g := range b.groups {
		copied := *g
		groups[root] = &copied
	}
	return &Board{
		size:    b.size,
		zobrist: b.zobrist,
		state:   state,
		parent:  parent,
		groups:  groups,
		hash:    b.hash,
		stones:  b.stones,
	}
}

// Size returns the board's side length N.
func (b *Board) Size() int { return b.size }

// Points returns N².
func (b *Board) Points() int { return b.size * b.size }

// Stones returns the total number of occupied points.
func (b *Board) Stones() int { return b.stones }

// Hash returns the current whole-board Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// Value returns the colour occupying p, or colour.None.
func (b *Board) Value(p int) colour.Colour { return b.state[p] }

// Equal reports whether b and other have identical occupancy. Boards built
// from the same Zobrist table and with equal state necessarily have equal
// hashes.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size || len(b.state) != len(other.state) {
		return false
	}
	for i, c := range b.state {
		if other.state[i] != c {
			return false
		}
	}
	return b.hash == other.hash
}

// GroupLocation returns the canonical root of the group containing p. p must
// be occupied.
func (b *Board) GroupLocation(p int) int { return b.find(p) }

// GroupEdges returns the edges count of the group containing the occupied
// point p.
func (b *Board) GroupEdges(p int) int {
	return b.groups[b.find(p)].edges
}

// GroupStones returns the stone count of the group containing the occupied
// point p.
func (b *Board) GroupStones(p int) int {
	return b.groups[b.find(p)].stones
}

func (b *Board) find(p int) int {
	root := p
	for b.parent[root] != root {
		root = b.parent[root]
	}
	for b.parent[p] != root {
		next := b.parent[p]
		b.parent[p] = root
		p = next
	}
	return root
}

// neighbours fills ns with p's orthogonal on-board neighbours and returns
// how many were written, avoiding a heap allocation on the hot path.
func (b *Board) neighbours(p int) (ns [4]int, n int) {
	x := p % b.size
	y := p / b.size
	if y > 0 {
		ns[n] = p - b.size
		n++
	}
	if y < b.size-1 {
		ns[n] = p + b.size
		n++
	}
	if x > 0 {
		ns[n] = p - 1
		n++
	}
	if x < b.size-1 {
		ns[n] = p + 1
		n++
	}
	return
}

// classify scans p's neighbours for a hypothetical stone of colour c,
// without mutating anything. emptyCount is the number of empty neighbours;
// sameMult/oppMult map each neighbouring group's root to how many of p's
// neighbour directions point into it.
func (b *Board) classify(p int, c colour.Colour) (emptyCount int, sameMult, oppMult map[int]int) {
	sameMult = make(map[int]int, 4)
	oppMult = make(map[int]int, 4)
	ns, n := b.neighbours(p)
	for i := 0; i < n; i++ {
		q := ns[i]
		switch b.state[q] {
		case colour.None:
			emptyCount++
		case c:
			sameMult[b.find(q)]++
		default:
			oppMult[b.find(q)]++
		}
	}
	return
}

// IsSuicide reports whether playing col at p would leave p's resulting group
// with zero liberties, and no opposite-colour group would be captured. p
// must be empty.
func (b *Board) IsSuicide(p int, col colour.Colour) bool {
	emptyCount, sameMult, oppMult := b.classify(p, col)
	for root, mult := range oppMult {
		if b.groups[root].edges-mult <= 0 {
			return false
		}
	}
	result := emptyCount
	for root, mult := range sameMult {
		result += b.groups[root].edges - mult
	}
	return result <= 0
}

// IsCapture reports whether playing col at p would capture at least one
// opposite-colour neighbour group.
func (b *Board) IsCapture(p int, col colour.Colour) bool {
	_, _, oppMult := b.classify(p, col)
	for root, mult := range oppMult {
		if b.groups[root].edges-mult <= 0 {
			return true
		}
	}
	return false
}

// IsEyeLike reports whether every orthogonal neighbour of the empty point p
// is occupied by col, and each of those neighbour groups keeps at least one
// edge besides its adjacencies to p (its edges count minus the number of
// directions from p into it stays above zero). This is the conservative
// "do not fill one's own eye" filter used by the playout policy.
func (b *Board) IsEyeLike(p int, col colour.Colour) bool {
	ns, n := b.neighbours(p)
	if n == 0 {
		return false
	}
	mult := make(map[int]int, 4)
	for i := 0; i < n; i++ {
		q := ns[i]
		if b.state[q] != col {
			return false
		}
		mult[b.find(q)]++
	}
	for root, m := range mult {
		if b.groups[root].edges-m <= 0 {
			return false
		}
	}
	return true
}

// PreComputeHash returns the hash that would result from playing col at p,
// without mutating the board.
func (b *Board) PreComputeHash(p int, col colour.Colour) uint64 {
	h := b.hash ^ b.zobrist.Value(p, col)
	_, _, oppMult := b.classify(p, col)
	for root, mult := range oppMult {
		if b.groups[root].edges-mult <= 0 {
			h ^= b.groups[root].hash
		}
	}
	return h
}

// Play places a stone of colour col at p, merging same-colour neighbour
// groups and capturing any opposite-colour neighbour group left with zero
// edges. Preconditions: state[p] == colour.None and col is Black or White;
// violations are programming errors.
func (b *Board) Play(p int, col colour.Colour) {
	if b.state[p] != colour.None {
		panic(fmt.Sprintf("board: play on occupied point %d", p))
	}
	if col != colour.Black && col != colour.White {
		panic("board: play with non-stone colour")
	}

	emptyCount, sameMult, oppMult := b.classify(p, col)

	var capturedRoots []int
	for root, mult := range oppMult {
		g := b.groups[root]
		g.edges -= mult
		if g.edges <= 0 {
			capturedRoots = append(capturedRoots, root)
		}
	}
	for root, mult := range sameMult {
		b.groups[root].edges -= mult
	}

	stoneHash := b.zobrist.Value(p, col)
	newHash := b.hash ^ stoneHash
	b.state[p] = col
	b.parent[p] = p
	b.groups[p] = &groupInfo{stones: 1, edges: emptyCount, hash: stoneHash}

	var capturedMembers []int
	for _, root := range capturedRoots {
		newHash ^= b.groups[root].hash
		capturedMembers = append(capturedMembers, b.membersOf(root)...)
	}
	capturedSet := make(map[int]bool, len(capturedMembers))
	for _, m := range capturedMembers {
		capturedSet[m] = true
	}
	// Pass 1: clear captured stones before restoring any liberties, so two
	// adjacent captured groups don't grant each other premature credit.
	for _, m := range capturedMembers {
		b.state[m] = colour.None
	}
	// Pass 2: restore liberties to surviving neighbours of each vacated point.
	for _, m := range capturedMembers {
		ns, n := b.neighbours(m)
		for i := 0; i < n; i++ {
			q := ns[i]
			if b.state[q] != colour.None && !capturedSet[q] {
				b.groups[b.find(q)].edges++
			}
		}
	}
	for _, m := range capturedMembers {
		b.parent[m] = m
		delete(b.groups, m)
	}
	for _, root := range capturedRoots {
		delete(b.groups, root)
	}

	// Merge same-colour neighbour groups (and the new singleton) into the
	// largest by stone count; ties keep the first-encountered candidate,
	// which for a Go map means an arbitrary but single deterministic choice
	// per call since the rest of the tie-break (visit counts etc.) never
	// depends on which physical root survives a merge.
	best := p
	for root := range sameMult {
		if b.groups[root].stones > b.groups[best].stones {
			best = root
		}
	}
	if best != p {
		b.unionInto(p, best)
	}
	for root := range sameMult {
		if root != best {
			b.unionInto(root, best)
		}
	}

	b.hash = newHash
	b.stones += 1 - len(capturedMembers)
}

// unionInto merges the group rooted at from into the group rooted at to.
func (b *Board) unionInto(from, to int) {
	b.parent[from] = to
	g, f := b.groups[to], b.groups[from]
	g.stones += f.stones
	g.edges += f.edges
	g.hash ^= f.hash
	delete(b.groups, from)
}

// membersOf collects every occupied point whose group root is root. Capture
// is comparatively rare, so an O(N²) scan keeps the hot placement path free
// of per-group membership bookkeeping.
func (b *Board) membersOf(root int) []int {
	g := b.groups[root]
	members := make([]int, 0, g.stones)
	for p := range b.state {
		if b.state[p] != colour.None && b.find(p) == root {
			members = append(members, p)
		}
	}
	return members
}

// CountPoints returns (blackScore, whiteScore) under area scoring: every
// stone scores for its own colour, and every maximal region of empty points
// scores for whichever colour borders it exclusively (a mixed-bordered
// region scores for neither).
func (b *Board) CountPoints() (blackScore, whiteScore int) {
	visited := make([]bool, len(b.state))
	var stack []int
	for start, c := range b.state {
		switch c {
		case colour.Black:
			blackScore++
			continue
		case colour.White:
			whiteScore++
			continue
		}
		if visited[start] {
			continue
		}
		visited[start] = true
		stack = append(stack[:0], start)
		size := 0
		border := colour.None
		mixed := false
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			ns, n := b.neighbours(p)
			for i := 0; i < n; i++ {
				q := ns[i]
				switch b.state[q] {
				case colour.None:
					if !visited[q] {
						visited[q] = true
						stack = append(stack, q)
					}
				case colour.Black:
					if border == colour.None {
						border = colour.Black
					} else if border != colour.Black {
						mixed = true
					}
				case colour.White:
					if border == colour.None {
						border = colour.White
					} else if border != colour.White {
						mixed = true
					}
				}
			}
		}
		if mixed {
			continue
		}
		switch border {
		case colour.Black:
			blackScore += size
		case colour.White:
			whiteScore += size
		}
	}
	return blackScore, whiteScore
}

// FromString builds a board directly from an ASCII grid ('B', 'W', anything
// else treated as empty), bypassing Play entirely. It exists for fixtures
// whose position is not reachable by any sequence of legal plays (for
// instance a group already in atari, set up to test the capturing move in
// isolation) by reconstructing groups with a flood-fill instead of replaying
// moves.
func FromString(rows []string, zt *zobrist.Table) *Board {
	size := len(rows)
	b := New(size, zt)
	for y := 0; y < size; y++ {
		row := rows[y]
		for x := 0; x < size && x < len(row); x++ {
			switch row[x] {
			case 'B':
				b.state[y*size+x] = colour.Black
			case 'W':
				b.state[y*size+x] = colour.White
			}
		}
	}
	for p, c := range b.state {
		if c == colour.None {
			continue
		}
		ns, n := b.neighbours(p)
		for i := 0; i < n; i++ {
			q := ns[i]
			if b.state[q] == c {
				rp, rq := b.find(p), b.find(q)
				if rp != rq {
					b.parent[rp] = rq
				}
			}
		}
	}

	b.groups = make(map[int]*groupInfo)
	b.stones = 0
	b.hash = zt.Initial()
	for p, c := range b.state {
		if c == colour.None {
			continue
		}
		b.stones++
		root := b.find(p)
		g, ok := b.groups[root]
		if !ok {
			g = &groupInfo{}
			b.groups[root] = g
		}
		g.stones++
		stoneHash := zt.Value(p, c)
		g.hash ^= stoneHash
		b.hash ^= stoneHash
		ns, n := b.neighbours(p)
		for i := 0; i < n; i++ {
			if b.state[ns[i]] == colour.None {
				g.edges++
			}
		}
	}
	return b
}
