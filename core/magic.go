package core

import "github.com/phantomkb/phantom/layout"

// The magic overlay repurposes keystrokes as maintenance commands while it
// is engaged. Nothing the overlay sees is forwarded to the report queue;
// unbound keys are silently absorbed.

// magicPress interprets a press edge while the overlay is engaged.
func (c *Controller) magicPress(k int) error {
	if c.isMagicKey(k) {
		// Pressing the trigger again leaves the overlay. It is exclusively
		// an exit: a command bound to the same usage code is not executed.
		c.magic = false
		c.logger.Debug("magic mode exited")
		return nil
	}

	e := c.layout.At(k)
	if e.Kind != layout.Key {
		return nil
	}
	switch e.Value {
	case c.selfTest:
		return c.runSelfTest()
	case c.replay:
		if c.macros {
			c.magic = false
			c.logger.Debug("macro replay", "entries", c.macro.len())
			return c.replayMacro()
		}
	case c.bootload:
		if c.boot != nil {
			c.logger.Info("entering bootloader")
			c.boot.Enter()
			// Enter never returns on real hardware; tolerate fakes.
		}
	}
	return nil
}

// magicRelease interprets a release edge while the overlay is engaged.
// Recording deliberately starts on the release of its key so the triggering
// keystroke itself is not captured as the first macro event.
func (c *Controller) magicRelease(k int) error {
	e := c.layout.At(k)
	if c.macros && e.Kind == layout.Key && e.Value == c.record {
		return c.startRecording()
	}
	return nil
}

// runSelfTest emits two synthetic press+release pairs of the diagnostic
// usage code through the low-level queue primitives, bypassing the debounce
// path. Exercises the full report/transmit chain as a hardware probe.
func (c *Controller) runSelfTest() error {
	for i := 0; i < 2; i++ {
		if err := c.queue.Press(c.selfTest); err != nil {
			return err
		}
		if err := c.queue.Release(c.selfTest); err != nil {
			return err
		}
	}
	return nil
}
