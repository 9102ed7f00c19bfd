// Package mcts implements the parallel UCT search: a shared tree grown by
// one worker goroutine per hardware thread, lazy expansion, pattern-biased
// random playouts, and win-rate-based move choice with a resignation
// threshold.
package mcts

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/game"
	"github.com/vpgo/engine/stats"
)

// Config holds the engine's tunable constants, all of which are hard-coded
// literals in the reference source; this engine exposes them instead of
// baking them in, while defaulting to the same values.
type Config struct {
	// Simulations is the fixed playout budget spent per FindMove call.
	Simulations int
	// Workers is the worker goroutine count; 0 auto-detects from
	// runtime.NumCPU, falling back to 1.
	Workers int
	// ResignThreshold is the root win rate below which FindMove returns
	// RESIGN instead of a move.
	ResignThreshold float64
	// UCTConstant scales the exploration term of the UCT formula:
	// (1 - childWinRate) + UCTConstant*sqrt(ln(parentVisits)/childVisits).
	UCTConstant float64
	// Policy governs playout move selection.
	Policy Policy
}

// DefaultConfig mirrors the engineering constants named in the design
// notes: a 500,000-simulation budget, a 0.1 resignation threshold, and a
// UCT exploration constant of 1/sqrt(2).
var DefaultConfig = Config{
	Simulations:     500_000,
	Workers:         0,
	ResignThreshold: 0.1,
	UCTConstant:     1 / math.Sqrt2,
	Policy:          DefaultPolicy,
}

// Stats summarises one FindMove call, for the protocol dispatcher's
// showstats debug command.
type Stats struct {
	Simulations int64
	Burned      int64
	Elapsed     time.Duration
	RootVisits  int64
	RootWins    int64
	Root        *Node
}

// WinRate returns RootWins/RootVisits, or 0 before any simulation.
func (s Stats) WinRate() float64 {
	if s.RootVisits == 0 {
		return 0
	}
	return float64(s.RootWins) / float64(s.RootVisits)
}

// Engine runs FindMove searches against a shared Config, and accumulates
// simulations-per-second throughput across calls.
type Engine struct {
	cfg Config

	mu         sync.Mutex
	throughput stats.Statistic
}

// New builds an Engine from cfg.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Throughput returns the running mean/variance of simulations-per-second
// across every FindMove call made so far.
func (e *Engine) Throughput() stats.Statistic {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.throughput
}

// FindMove runs the search from g (read-only: every worker clones it) for
// col to move, seeded deterministically from seed, and returns the chosen
// move (an on-board point, PASS, or RESIGN) plus a Stats snapshot.
func (e *Engine) FindMove(ctx context.Context, g *game.Game, col colour.Colour, seed uint64) (int, Stats) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	root := NewRoot()

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 0 {
		workers = 1
	}
	seeds := seedSequence(seed, workers)

	budget := int64(e.cfg.Simulations)
	var playouts atomic.Int64
	var burned atomic.Int64

	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		rng := rand.New(rand.NewPCG(seeds[i], seeds[i]^0x9e3779b97f4a7c15))
		grp.Go(func() error {
			moves := make([]int, g.Pass()+1)
			for m := range moves {
				moves[m] = m
			}
			for {
				n := playouts.Add(1)
				if n > budget {
					return nil
				}
				clone := g.Clone()
				localBurned := e.simulate(clone, root, col, g.Pass(), rng, moves)
				if localBurned > 0 {
					burned.Add(int64(localBurned))
				}
				select {
				case <-gctx.Done():
					return nil
				default:
					runtime.Gosched()
				}
			}
		})
	}
	// Workers never fail: the budget check is the only exit condition, so
	// Wait is a pure join barrier here.
	_ = grp.Wait()

	result := Stats{
		Simulations: root.Visits(),
		Burned:      burned.Load(),
		Elapsed:     time.Since(start),
		RootVisits:  root.Visits(),
		RootWins:    root.Wins(),
		Root:        root,
	}
	e.recordThroughput(result)

	logger.Debug().
		Dur("elapsed", result.Elapsed).
		Int64("simulations", result.Simulations).
		Int64("burned", result.Burned).
		Float64("root_win_rate", result.WinRate()).
		Msg("find_move")

	return e.bestMove(g, root), result
}

func (e *Engine) recordThroughput(s Stats) {
	if s.Elapsed <= 0 {
		return
	}
	sps := float64(s.Simulations) / s.Elapsed.Seconds()
	e.mu.Lock()
	e.throughput.Push(sps)
	e.mu.Unlock()
}

// simulate descends the tree from n by UCT, lazily expanding frontier
// nodes, playing out once it falls off the expanded portion of the tree,
// and backpropagating a single visit (and, if col won, a win) into every
// node on the path. It returns how many expansion attempts this call
// burned, for the caller's stats.
func (e *Engine) simulate(g *game.Game, n *Node, col colour.Colour, lastMove int, rng *rand.Rand, moves []int) int {
	burnedCount := 0
	if g.Winner() == colour.None {
		expanded, burned := n.tryExpand(g, col)
		if burned {
			burnedCount++
		}
		if expanded {
			child := e.selectChild(n, rng)
			g.Play(child.move, col)
			burnedCount += e.simulate(g, child, col.Invert(), child.move, rng, moves)
		} else {
			e.cfg.Policy.Playout(g, col, rng, moves, lastMove)
		}
	}
	n.visits.Add(1)
	if g.Winner() == col {
		n.wins.Add(1)
	}
	return burnedCount
}

// selectChild applies the UCT formula over n's published children,
// breaking ties by keeping the first child seen at the maximum value.
func (e *Engine) selectChild(n *Node, rng *rand.Rand) *Node {
	var best *Node
	bestVal := math.Inf(-1)
	parentVisits := float64(n.Visits())
	for _, c := range n.children {
		var val float64
		cv := c.Visits()
		if cv == 0 {
			val = 100 + rng.Float64()
		} else {
			val = (1 - c.WinRate()) + e.cfg.UCTConstant*math.Sqrt(math.Log(parentVisits)/float64(cv))
		}
		if val > bestVal {
			best = c
			bestVal = val
		}
	}
	return best
}

// bestMove selects the move to actually play from a fully searched root:
// RESIGN if the root's observed win rate falls below the resignation
// threshold, otherwise the child with the most visits (first in iteration
// order on ties).
func (e *Engine) bestMove(g *game.Game, root *Node) int {
	if root.Visits() == 0 || root.WinRate() < e.cfg.ResignThreshold {
		return g.Resign()
	}
	var best *Node
	for _, c := range root.children {
		if best == nil || c.Visits() > best.Visits() {
			best = c
		}
	}
	if best == nil {
		return g.Resign()
	}
	return best.move
}

// seedSequence deterministically expands a single seed into n independent
// sub-seeds using splitmix64, so every worker owns its own generator.
// Sharing one PRNG across workers was a defect in earlier variants of this
// engine: it serialises the hot loop.
func seedSequence(seed uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	state := seed
	for i := range seeds {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		seeds[i] = z
	}
	return seeds
}
