// Package core is the top-level state machine of the input pipeline. A
// Controller owns the key table, mode flags, report queue and macro buffer;
// its single entry point RunScanCycle is invoked once per timer period and
// routes every debounced edge to the report queue, the macro recorder or the
// magic-mode overlay.
package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/layout"
	"github.com/phantomkb/phantom/matrix"
	"github.com/phantomkb/phantom/report"
)

// Bootloader diverges control to firmware-update mode. Enter never returns.
type Bootloader interface {
	Enter()
}

// Indicator receives the status LED pattern once per scan cycle.
type Indicator interface {
	Set(pattern uint8)
}

// Indicator patterns for the overlay modes. In normal mode the host-driven
// LED byte is passed through instead.
const (
	magicPattern     uint8 = keycode.LEDCapsLock | keycode.LEDScrollLock
	recordingPattern uint8 = keycode.LEDNumLock | keycode.LEDCapsLock | keycode.LEDScrollLock
)

// Options configures a Controller. Layout, Scanner and Output are required;
// everything else has a usable zero value or default.
type Options struct {
	Layout  layout.Layout
	Scanner matrix.Scanner
	Output  report.Transmitter

	Bootloader Bootloader   // optional; bootloader command is inert when nil
	Indicator  Indicator    // optional
	Logger     *slog.Logger // optional

	// MagicKey is the overlay trigger; zero value selects Right GUI.
	MagicKey layout.Entry

	// Magic overlay command bindings, matched against layout usage codes.
	// Zero values select X (self-test), P (replay), B (bootloader) and
	// R (record).
	SelfTestKey   uint8
	ReplayKey     uint8
	BootloaderKey uint8
	RecordKey     uint8

	// Macros enables the recording/replay subsystem. With it disabled the
	// record and replay bindings are inert (the reduced firmware variant).
	Macros bool
}

type keyState struct {
	pressed bool
}

// Controller is the exclusive owner of all pipeline state. It must only be
// driven from a single goroutine; RunScanCycle additionally carries a
// reentrancy guard so an overlapping invocation is dropped rather than
// interleaved.
type Controller struct {
	layout  layout.Layout
	scanner matrix.Scanner
	queue   *report.Queue
	deb     *matrix.Debouncer

	boot      Bootloader
	indicator Indicator
	logger    *slog.Logger

	keys      []keyState
	magic     bool
	recording bool
	macro     macroBuffer
	macros    bool

	magicKey layout.Entry
	selfTest uint8
	replay   uint8
	bootload uint8
	record   uint8

	hostLEDs atomic.Uint32
	busy     atomic.Bool
}

// New validates o and returns a Controller with all keys unpressed and an
// empty report.
func New(o Options) (*Controller, error) {
	if o.Layout.NumKeys() == 0 {
		return nil, errors.New("core: layout is required")
	}
	if o.Scanner == nil {
		return nil, errors.New("core: scanner is required")
	}
	if o.Output == nil {
		return nil, errors.New("core: output transmitter is required")
	}
	if o.Macros && o.Layout.NumKeys() > 256 {
		return nil, fmt.Errorf("core: macro recording supports at most 256 keys, layout has %d", o.Layout.NumKeys())
	}

	c := &Controller{
		layout:    o.Layout,
		scanner:   o.Scanner,
		queue:     report.NewQueue(o.Output),
		deb:       matrix.NewDebouncer(o.Layout.NumKeys()),
		boot:      o.Bootloader,
		indicator: o.Indicator,
		logger:    o.Logger,
		keys:      make([]keyState, o.Layout.NumKeys()),
		macros:    o.Macros,
		magicKey:  o.MagicKey,
		selfTest:  o.SelfTestKey,
		replay:    o.ReplayKey,
		bootload:  o.BootloaderKey,
		record:    o.RecordKey,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if (c.magicKey == layout.Entry{}) {
		c.magicKey = layout.Entry{Kind: layout.Modifier, Value: keycode.ModRightGUI}
	}
	if c.selfTest == 0 {
		c.selfTest = keycode.KeyX
	}
	if c.replay == 0 {
		c.replay = keycode.KeyP
	}
	if c.bootload == 0 {
		c.bootload = keycode.KeyB
	}
	if c.record == 0 {
		c.record = keycode.KeyR
	}
	return c, nil
}

// RunScanCycle performs one full matrix scan: sample every key, debounce,
// dispatch the resulting edges and refresh the status indicator. It is the
// core's only entry point. If a previous cycle is still running the call
// returns immediately, mirroring the original disable-timer-on-entry
// discipline.
func (c *Controller) RunScanCycle() error {
	if !c.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer c.busy.Store(false)

	var errs []error
	rows, cols := c.layout.Rows(), c.layout.Cols()
	for r, k := 0, 0; r < rows; r++ {
		c.scanner.PullRow(r)
		for col := 0; col < cols; col, k = col+1, k+1 {
			contact := c.scanner.ProbeColumn(col)
			switch c.deb.Sample(k, contact, c.keys[k].pressed) {
			case matrix.EdgePress:
				if err := c.keyPress(k); err != nil {
					errs = append(errs, err)
				}
			case matrix.EdgeRelease:
				if err := c.keyRelease(k); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	c.scanner.ReleaseRows()

	c.updateIndicator()
	return errors.Join(errs...)
}

// SetHostLEDs stores the LED byte most recently written by the host. Safe to
// call from the USB collaborator's goroutine; the scan cycle reads it once
// per pass.
func (c *Controller) SetHostLEDs(b uint8) {
	c.hostLEDs.Store(uint32(b))
}

// SetLayout swaps the key table. Must be called from the scan goroutine,
// between cycles. If the matrix shape changes, all key state is reset and an
// empty report is transmitted.
func (c *Controller) SetLayout(l layout.Layout) error {
	if l.NumKeys() == 0 {
		return errors.New("core: layout is required")
	}
	if c.macros && l.NumKeys() > 256 {
		return fmt.Errorf("core: macro recording supports at most 256 keys, layout has %d", l.NumKeys())
	}
	if l.NumKeys() != c.layout.NumKeys() {
		c.keys = make([]keyState, l.NumKeys())
		c.deb = matrix.NewDebouncer(l.NumKeys())
		if err := c.queue.Clear(); err != nil {
			c.layout = l
			return err
		}
	}
	c.layout = l
	return nil
}

// MagicActive reports whether the magic overlay is engaged.
func (c *Controller) MagicActive() bool { return c.magic }

// RecordingActive reports whether a macro recording session is in progress.
func (c *Controller) RecordingActive() bool { return c.recording }

func (c *Controller) updateIndicator() {
	if c.indicator == nil {
		return
	}
	switch {
	case c.recording:
		c.indicator.Set(recordingPattern)
	case c.magic:
		c.indicator.Set(magicPattern)
	default:
		c.indicator.Set(uint8(c.hostLEDs.Load()))
	}
}
