package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phantomkb/phantom/hal/sim"
)

func TestHoldAndProbe(t *testing.T) {
	s := sim.New(2, 3)
	s.Hold(4) // row 1, col 1

	s.PullRow(0)
	assert.False(t, s.ProbeColumn(1))
	s.PullRow(1)
	assert.True(t, s.ProbeColumn(1))
	assert.False(t, s.ProbeColumn(0))
	s.ReleaseRows()
	assert.False(t, s.ProbeColumn(1), "no row pulled, nothing probes")

	s.Release(4)
	s.PullRow(1)
	assert.False(t, s.ProbeColumn(1))
}

func TestReleaseAll(t *testing.T) {
	s := sim.New(1, 4)
	s.Hold(0)
	s.Hold(3)
	s.ReleaseAll()

	s.PullRow(0)
	for c := 0; c < 4; c++ {
		assert.False(t, s.ProbeColumn(c))
	}
}

func TestOutOfRangeIsIgnored(t *testing.T) {
	s := sim.New(1, 1)
	s.Hold(-1)
	s.Hold(5)

	s.PullRow(3)
	assert.False(t, s.ProbeColumn(0))
	assert.False(t, s.ProbeColumn(9))
}
