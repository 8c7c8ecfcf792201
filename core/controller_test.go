package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phantomkb/phantom/core"
	"github.com/phantomkb/phantom/hal/sim"
	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/layout"
	"github.com/phantomkb/phantom/report"
)

// debounceCycles is how many scan cycles a steady contact change needs to
// produce an edge.
const debounceCycles = 7

type captureTx struct {
	sent []report.Report
}

func (c *captureTx) Send(r report.Report) error {
	c.sent = append(c.sent, r)
	return nil
}

func (c *captureTx) last() report.Report {
	return c.sent[len(c.sent)-1]
}

type captureIndicator struct {
	pattern uint8
}

func (i *captureIndicator) Set(p uint8) { i.pattern = p }

type fakeBootloader struct {
	entered bool
}

func (b *fakeBootloader) Enter() { b.entered = true }

type fixture struct {
	ctrl      *core.Controller
	scanner   *sim.Scanner
	tx        *captureTx
	indicator *captureIndicator
	boot      *fakeBootloader
	layout    layout.Layout
}

func newFixture(t *testing.T, macros bool) *fixture {
	t.Helper()
	l := layout.ANSI60()
	f := &fixture{
		scanner:   sim.New(l.Rows(), l.Cols()),
		tx:        &captureTx{},
		indicator: &captureIndicator{},
		boot:      &fakeBootloader{},
		layout:    l,
	}
	ctrl, err := core.New(core.Options{
		Layout:     l,
		Scanner:    f.scanner,
		Output:     f.tx,
		Bootloader: f.boot,
		Indicator:  f.indicator,
		Macros:     macros,
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}

func (f *fixture) cycles(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.ctrl.RunScanCycle())
	}
}

func (f *fixture) press(t *testing.T, k int) {
	t.Helper()
	f.scanner.Hold(k)
	f.cycles(t, debounceCycles)
}

func (f *fixture) release(t *testing.T, k int) {
	t.Helper()
	f.scanner.Release(k)
	f.cycles(t, debounceCycles)
}

// keyIndex finds the matrix position of an entry in the layout.
func (f *fixture) keyIndex(t *testing.T, e layout.Entry) int {
	t.Helper()
	for k := 0; k < f.layout.NumKeys(); k++ {
		if f.layout.At(k) == e {
			return k
		}
	}
	t.Fatalf("entry %+v not in layout", e)
	return -1
}

func (f *fixture) key(t *testing.T, code uint8) int {
	return f.keyIndex(t, layout.Entry{Kind: layout.Key, Value: code})
}

func (f *fixture) trigger(t *testing.T) int {
	return f.keyIndex(t, layout.Entry{Kind: layout.Modifier, Value: keycode.ModRightGUI})
}

func TestPressReportsKey(t *testing.T) {
	f := newFixture(t, true)

	f.press(t, f.key(t, keycode.KeyA))
	require.Len(t, f.tx.sent, 1)
	assert.Equal(t, report.Report{Keys: [6]uint8{keycode.KeyA}}, f.tx.last())

	f.release(t, f.key(t, keycode.KeyA))
	require.Len(t, f.tx.sent, 2)
	assert.Equal(t, report.Report{}, f.tx.last())
}

func TestModifierReportsBitmask(t *testing.T) {
	f := newFixture(t, true)
	shift := f.keyIndex(t, layout.Entry{Kind: layout.Modifier, Value: keycode.ModLeftShift})

	f.press(t, shift)
	assert.Equal(t, report.Report{Modifiers: keycode.ModLeftShift}, f.tx.last())

	f.press(t, f.key(t, keycode.KeyA))
	assert.Equal(t, report.Report{
		Keys:      [6]uint8{keycode.KeyA},
		Modifiers: keycode.ModLeftShift,
	}, f.tx.last())
}

func TestSixKeysMostRecentFirstAndSeventhEvicts(t *testing.T) {
	f := newFixture(t, true)
	codes := []uint8{keycode.KeyQ, keycode.KeyW, keycode.KeyE, keycode.KeyR, keycode.KeyT, keycode.KeyY}
	for _, c := range codes {
		f.press(t, f.key(t, c))
	}
	assert.Equal(t, [6]uint8{
		keycode.KeyY, keycode.KeyT, keycode.KeyR, keycode.KeyE, keycode.KeyW, keycode.KeyQ,
	}, f.tx.last().Keys)

	sends := len(f.tx.sent)
	f.press(t, f.key(t, keycode.KeyU))
	assert.Equal(t, [6]uint8{
		keycode.KeyU, keycode.KeyY, keycode.KeyT, keycode.KeyR, keycode.KeyE, keycode.KeyW,
	}, f.tx.last().Keys, "least recent key silently dropped")
	assert.Len(t, f.tx.sent, sends+1, "eviction emits no release report")
}

func TestMagicModeAbsorbsKeyActivity(t *testing.T) {
	f := newFixture(t, true)

	f.press(t, f.trigger(t))
	assert.True(t, f.ctrl.MagicActive())
	assert.Empty(t, f.tx.sent, "entering magic mode transmits nothing")

	f.press(t, f.key(t, keycode.KeyA))
	f.release(t, f.key(t, keycode.KeyA))
	assert.Empty(t, f.tx.sent, "magic mode activity never reaches the report queue")

	f.release(t, f.trigger(t))
	assert.True(t, f.ctrl.MagicActive(), "trigger release does not exit magic mode")

	f.press(t, f.trigger(t))
	assert.False(t, f.ctrl.MagicActive(), "second trigger press exits")

	f.release(t, f.trigger(t)) // normal-mode modifier release retransmits
	f.press(t, f.key(t, keycode.KeyA))
	assert.Equal(t, [6]uint8{keycode.KeyA}, f.tx.last().Keys, "normal dispatch resumes after exit")
}

func TestSelfTestEmitsTwoPressReleasePairs(t *testing.T) {
	f := newFixture(t, true)

	f.press(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyX))

	require.Len(t, f.tx.sent, 4)
	assert.Equal(t, [6]uint8{keycode.KeyX}, f.tx.sent[0].Keys)
	assert.Equal(t, report.Report{}, f.tx.sent[1])
	assert.Equal(t, [6]uint8{keycode.KeyX}, f.tx.sent[2].Keys)
	assert.Equal(t, report.Report{}, f.tx.sent[3])
	assert.True(t, f.ctrl.MagicActive(), "self-test does not exit magic mode")
}

func TestBootloaderHandoff(t *testing.T) {
	f := newFixture(t, true)

	f.press(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyB))
	assert.True(t, f.boot.entered)
	assert.Empty(t, f.tx.sent)
}

func TestRecordingStartsOnRecordKeyRelease(t *testing.T) {
	f := newFixture(t, true)

	f.press(t, f.trigger(t))
	f.release(t, f.trigger(t))

	f.press(t, f.key(t, keycode.KeyR))
	assert.False(t, f.ctrl.RecordingActive(), "press of the record key does not start recording")

	f.release(t, f.key(t, keycode.KeyR))
	assert.True(t, f.ctrl.RecordingActive())
	assert.False(t, f.ctrl.MagicActive())
	require.Len(t, f.tx.sent, 1, "starting a session clears the report")
	assert.Equal(t, report.Report{}, f.tx.sent[0])
}

func TestRecordThenReplayRoundTrip(t *testing.T) {
	f := newFixture(t, true)
	a, b := f.key(t, keycode.KeyA), f.key(t, keycode.KeyB)

	// Enter magic, start recording on record-key release.
	f.press(t, f.trigger(t))
	f.release(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyR))
	f.release(t, f.key(t, keycode.KeyR))
	require.True(t, f.ctrl.RecordingActive())

	// Record: press A, release A, press B.
	f.press(t, a)
	f.release(t, a)
	f.press(t, b)

	// Stop recording with the trigger, then tidy up held keys.
	f.press(t, f.trigger(t))
	require.False(t, f.ctrl.RecordingActive())
	require.False(t, f.ctrl.MagicActive())
	f.release(t, b)
	f.release(t, f.trigger(t))

	// Replay through the magic overlay.
	f.press(t, f.trigger(t))
	mark := len(f.tx.sent)
	f.press(t, f.key(t, keycode.KeyP))
	assert.False(t, f.ctrl.MagicActive(), "replay exits magic mode")

	replayed := f.tx.sent[mark:]
	require.Len(t, replayed, 4)
	assert.Equal(t, report.Report{}, replayed[0], "replay starts from a cleared report")
	assert.Equal(t, [6]uint8{keycode.KeyA}, replayed[1].Keys)
	assert.Equal(t, report.Report{}, replayed[2])
	assert.Equal(t, [6]uint8{keycode.KeyB}, replayed[3].Keys)
}

func TestTriggerDuringRecordingPreservesCapture(t *testing.T) {
	f := newFixture(t, true)
	a := f.key(t, keycode.KeyA)

	f.press(t, f.trigger(t))
	f.release(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyR))
	f.release(t, f.key(t, keycode.KeyR))

	f.press(t, a)
	f.release(t, a)

	f.press(t, f.trigger(t)) // stop recording, stay in normal mode
	require.False(t, f.ctrl.RecordingActive())
	f.release(t, f.trigger(t))

	f.press(t, f.trigger(t))
	mark := len(f.tx.sent)
	f.press(t, f.key(t, keycode.KeyP))

	replayed := f.tx.sent[mark:]
	require.Len(t, replayed, 3, "aborted session still replays what was captured")
	assert.Equal(t, [6]uint8{keycode.KeyA}, replayed[1].Keys)
	assert.Equal(t, report.Report{}, replayed[2])
}

func TestMacrosDisabledVariant(t *testing.T) {
	f := newFixture(t, false)

	f.press(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyR))
	f.release(t, f.key(t, keycode.KeyR))
	assert.False(t, f.ctrl.RecordingActive(), "record binding is inert")

	f.press(t, f.key(t, keycode.KeyP))
	assert.True(t, f.ctrl.MagicActive(), "replay binding is inert")
	assert.Empty(t, f.tx.sent)

	// Self-test still works in the reduced variant.
	f.press(t, f.key(t, keycode.KeyX))
	assert.Len(t, f.tx.sent, 4)
}

func TestIndicatorPatterns(t *testing.T) {
	f := newFixture(t, true)

	f.cycles(t, 1)
	assert.Equal(t, uint8(0), f.indicator.pattern)

	f.ctrl.SetHostLEDs(keycode.LEDCapsLock)
	f.cycles(t, 1)
	assert.Equal(t, uint8(keycode.LEDCapsLock), f.indicator.pattern, "normal mode passes host LEDs through")

	f.press(t, f.trigger(t))
	assert.Equal(t, uint8(keycode.LEDCapsLock|keycode.LEDScrollLock), f.indicator.pattern)

	f.release(t, f.trigger(t))
	f.press(t, f.key(t, keycode.KeyR))
	f.release(t, f.key(t, keycode.KeyR))
	assert.Equal(t, uint8(keycode.LEDNumLock|keycode.LEDCapsLock|keycode.LEDScrollLock), f.indicator.pattern)
}

func TestReentrantScanCycleIsDropped(t *testing.T) {
	l := layout.ANSI60()
	scanner := sim.New(l.Rows(), l.Cols())

	var ctrl *core.Controller
	reentered := false
	tx := report.TransmitterFunc(func(report.Report) error {
		// A transmit that re-invokes the scan cycle must be a no-op, not a
		// recursive scan.
		reentered = true
		return ctrl.RunScanCycle()
	})

	ctrl, err := core.New(core.Options{Layout: l, Scanner: scanner, Output: tx, Macros: true})
	require.NoError(t, err)

	k := 0
	for ; k < l.NumKeys(); k++ {
		if l.At(k) == (layout.Entry{Kind: layout.Key, Value: keycode.KeyA}) {
			break
		}
	}
	scanner.Hold(k)
	for i := 0; i < debounceCycles; i++ {
		require.NoError(t, ctrl.RunScanCycle())
	}
	assert.True(t, reentered)
}

func TestSetLayoutWithNewShapeResetsState(t *testing.T) {
	f := newFixture(t, true)
	f.press(t, f.key(t, keycode.KeyA))

	small, err := layout.FromNames(1, 2, [][]string{{"a", "b"}})
	require.NoError(t, err)
	require.NoError(t, f.ctrl.SetLayout(small))

	assert.Equal(t, report.Report{}, f.tx.last(), "shape change clears the report")
}
