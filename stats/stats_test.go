package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vpgo/engine/stats"
)

func TestMeanAndVariance(t *testing.T) {
	var s stats.Statistic
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	assert.True(t, stats.FuzzyEqual(s.Mean(), 5.0))
	assert.Equal(t, 8, s.Iterations())
	assert.True(t, s.Variance() > 0)
}

func TestEmptyStatistic(t *testing.T) {
	var s stats.Statistic
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
	assert.Equal(t, 0.0, s.StandardError())
	assert.Equal(t, 0, s.Iterations())
}

func TestLastTracksMostRecentPush(t *testing.T) {
	var s stats.Statistic
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3.0, s.Last())
}

func TestConfidenceIntervalWidensWithVariance(t *testing.T) {
	var tight, wide stats.Statistic
	for i := 0; i < 50; i++ {
		tight.Push(0.5)
	}
	wide.Push(0.0)
	wide.Push(1.0)
	tlo, thi := tight.ConfidenceInterval95()
	wlo, whi := wide.ConfidenceInterval95()
	assert.True(t, thi-tlo < whi-wlo)
}
