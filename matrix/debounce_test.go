package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phantomkb/phantom/matrix"
)

func TestPressNeedsSevenConsecutiveSamples(t *testing.T) {
	d := matrix.NewDebouncer(1)

	for i := 0; i < 6; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, true, false), "cycle %d", i)
	}
	assert.Equal(t, matrix.EdgePress, d.Sample(0, true, false))
}

func TestPressFiresExactlyOnceWhileHeld(t *testing.T) {
	d := matrix.NewDebouncer(1)

	for i := 0; i < 6; i++ {
		d.Sample(0, true, false)
	}
	assert.Equal(t, matrix.EdgePress, d.Sample(0, true, false))

	// Key stays held and logically pressed: no further edges.
	for i := 0; i < 20; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, true, true), "cycle %d", i)
	}
}

func TestReleaseNeedsSevenCleanZeroSamples(t *testing.T) {
	d := matrix.NewDebouncer(1)
	pressAndHold(d)

	for i := 0; i < 6; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, false, true), "cycle %d", i)
	}
	assert.Equal(t, matrix.EdgeRelease, d.Sample(0, false, true))
}

func TestContactBlipRestartsReleaseWait(t *testing.T) {
	d := matrix.NewDebouncer(1)
	pressAndHold(d)

	for i := 0; i < 3; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, false, true))
	}
	// A noisy break contact shorts again briefly.
	assert.Equal(t, matrix.EdgeNone, d.Sample(0, true, true))

	// The full run of clean zeros is required again.
	for i := 0; i < 6; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, false, true), "cycle %d", i)
	}
	assert.Equal(t, matrix.EdgeRelease, d.Sample(0, false, true))
}

func TestPressAgainAfterRelease(t *testing.T) {
	d := matrix.NewDebouncer(1)
	pressAndHold(d)
	for i := 0; i < 7; i++ {
		d.Sample(0, false, true)
	}

	for i := 0; i < 6; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, true, false))
	}
	assert.Equal(t, matrix.EdgePress, d.Sample(0, true, false))
}

func TestBouncingContactIsSilent(t *testing.T) {
	d := matrix.NewDebouncer(1)

	for i := 0; i < 40; i++ {
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, i%2 == 0, false), "cycle %d", i)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	d := matrix.NewDebouncer(3)

	for i := 0; i < 6; i++ {
		d.Sample(1, true, false)
		assert.Equal(t, matrix.EdgeNone, d.Sample(0, false, false))
		assert.Equal(t, matrix.EdgeNone, d.Sample(2, false, false))
	}
	assert.Equal(t, matrix.EdgePress, d.Sample(1, true, false))
	assert.Equal(t, matrix.EdgeNone, d.Sample(0, false, false))
	assert.Equal(t, matrix.EdgeNone, d.Sample(2, false, false))
}

// pressAndHold runs key 0 through a full press so its history reads as held.
func pressAndHold(d *matrix.Debouncer) {
	for i := 0; i < 7; i++ {
		d.Sample(0, true, false)
	}
}
