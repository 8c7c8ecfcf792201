package core

import "github.com/phantomkb/phantom/layout"

// keyPress handles a debounced press edge. The logical pressed flag is set
// first; the debounce engine gates on it, and macro replay relies on it to
// infer event types.
func (c *Controller) keyPress(k int) error {
	c.keys[k].pressed = true

	switch {
	case c.magic:
		return c.magicPress(k)
	case c.isMagicKey(k):
		if c.recording {
			// Pressing the trigger during a session stops recording but
			// keeps whatever was captured for later replay.
			c.recording = false
			c.logger.Debug("recording stopped", "entries", c.macro.len())
		} else {
			c.magic = true
			c.logger.Debug("magic mode entered")
		}
		return nil
	}

	if c.recording {
		c.recordKey(k)
	}
	e := c.layout.At(k)
	switch e.Kind {
	case layout.Modifier:
		return c.queue.PressModifier(e.Value)
	case layout.Key:
		return c.queue.Press(e.Value)
	}
	return nil
}

// keyRelease handles a debounced release edge.
func (c *Controller) keyRelease(k int) error {
	c.keys[k].pressed = false

	if c.magic {
		return c.magicRelease(k)
	}

	if c.recording {
		c.recordKey(k)
	}
	e := c.layout.At(k)
	switch e.Kind {
	case layout.Modifier:
		return c.queue.ReleaseModifier(e.Value)
	case layout.Key:
		return c.queue.Release(e.Value)
	}
	return nil
}

// isMagicKey reports whether key k is bound to the magic overlay trigger.
func (c *Controller) isMagicKey(k int) bool {
	return c.layout.At(k) == c.magicKey
}
