// Package zobrist implements the deterministic-on-seed table of per-point,
// per-colour hash keys used to maintain the Board's incremental position
// hash.
package zobrist

import (
	"math/rand/v2"
	"sync"

	"lukechampine.com/frand"

	"github.com/vpgo/engine/colour"
)

// bignum mirrors the range macondo's zobrist table draws default seeds
// from: the largest value that still leaves headroom for the +1 below to
// avoid ever producing a zero seed.
const bignum = 1<<63 - 2

// Table holds 2·size² independent per-(point,colour) values plus one initial
// value, all a pure function of the current seed. Table is effectively
// immutable during search: Init and Seed must not be called while MCTS
// workers are running against a Game built on this table.
type Table struct {
	mu      sync.RWMutex
	values  []uint64
	initial uint64
	seed    uint64
}

// defaultSeed draws a non-deterministic seed from a CSPRNG, for callers who
// don't care about reproducibility.
func defaultSeed() uint64 {
	return frand.Uint64n(bignum) + 1
}

// New allocates a Table for a board of size*size points, seeded
// non-deterministically.
func New(size int) *Table {
	t := &Table{}
	t.Seed(defaultSeed())
	t.Init(size)
	return t
}

// NewSeeded allocates a Table for a board of size*size points, seeded
// deterministically from seed.
func NewSeeded(size int, seed uint64) *Table {
	t := &Table{}
	t.Seed(seed)
	t.Init(size)
	return t
}

// Init ensures the table holds values for a board of size*size points,
// extending it (without disturbing already-issued values) if size grew.
func (t *Table) Init(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.growLocked(size)
}

func (t *Table) growLocked(size int) {
	want := 2 * size * size
	if want <= len(t.values) {
		return
	}
	rng := t.rngLocked()
	values := make([]uint64, want)
	copy(values, t.values)
	for i := len(t.values); i < want; i++ {
		values[i] = rng.Uint64()
	}
	t.values = values
}

// rngLocked reconstructs the deterministic generator for the current seed,
// advanced past the values already drawn so extension continues the same
// stream rather than restarting it. Callers must hold t.mu.
func (t *Table) rngLocked() *rand.Rand {
	rng := rand.New(rand.NewPCG(t.seed, t.seed^0x9e3779b97f4a7c15))
	rng.Uint64() // burn the slot consumed by the initial value on first seed
	for i := 0; i < len(t.values); i++ {
		rng.Uint64()
	}
	return rng
}

// Seed reseeds the generator and regenerates the initial value and every
// currently held per-point value; the board size (and hence table length)
// is unchanged.
func (t *Table) Seed(s uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seed = s
	n := len(t.values)
	rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	t.initial = rng.Uint64()
	values := make([]uint64, n)
	for i := range values {
		values[i] = rng.Uint64()
	}
	t.values = values
}

// Value returns the hash key for colour c at point p. For colour.None it
// returns the initial value, a protocol convenience callers should not
// depend on meaningfully.
func (t *Table) Value(p int, c colour.Colour) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	switch c {
	case colour.Black:
		return t.values[p*2]
	case colour.White:
		return t.values[p*2+1]
	default:
		return t.initial
	}
}

// Initial returns the hash value of an empty board.
func (t *Table) Initial() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.initial
}
