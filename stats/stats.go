// Package stats implements the running mean/variance accumulator used to
// report simulation throughput and win-rate confidence across successive
// MCTS searches, without retaining every sample.
package stats

import "math"

// Epsilon is the tolerance used by FuzzyEqual, for tests that compare
// floating-point statistics.
const Epsilon = 1e-6

// FuzzyEqual reports whether a and b differ by less than Epsilon.
func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates the running mean, variance and last value of a
// stream of samples using Welford's online algorithm, so a long-running
// engine never needs to retain the full sample history.
type Statistic struct {
	totalIterations int
	last            float64

	oldM, newM float64
	oldS, newS float64
}

// Push folds val into the running statistics.
func (s *Statistic) Push(val float64) {
	s.last = val
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
}

// Mean returns the running mean, or 0 before the first sample.
func (s Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

// Variance returns the running sample variance, or 0 with fewer than two
// samples.
func (s Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

// Stdev returns the running sample standard deviation.
func (s Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s Statistic) StandardError() float64 {
	if s.totalIterations == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.totalIterations))
}

// Last returns the most recently pushed value.
func (s Statistic) Last() float64 {
	return s.last
}

// Iterations returns the number of samples pushed so far.
func (s Statistic) Iterations() int {
	return s.totalIterations
}

// ConfidenceInterval95 returns the mean plus/minus its approximate 95%
// confidence half-width (1.96 standard errors), used to report how
// trustworthy a root win rate is given the simulation count so far.
func (s Statistic) ConfidenceInterval95() (lo, hi float64) {
	half := 1.96 * s.StandardError()
	return s.Mean() - half, s.Mean() + half
}
