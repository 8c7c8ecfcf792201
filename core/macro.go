package core

// MacroCapacity is the maximum number of key events one recording session
// can hold.
const MacroCapacity = 255

// macroBuffer is an append-only sequence of key indices captured during a
// recording session. It stores indices only, not event types: replay infers
// press versus release from the key's logical state at replay time. A macro
// that presses the same key twice before releasing it is therefore
// unrepresentable and will misreplay the second press as a release. That is
// a known limitation of the recording format, kept deliberately.
type macroBuffer struct {
	entries []uint8
}

func (m *macroBuffer) reset() {
	m.entries = m.entries[:0]
}

func (m *macroBuffer) len() int { return len(m.entries) }

// record appends a key index. Returns false without appending when the
// buffer is full.
func (m *macroBuffer) record(k uint8) bool {
	if len(m.entries) >= MacroCapacity {
		return false
	}
	m.entries = append(m.entries, k)
	return true
}

// startRecording begins a fresh session: the buffer is overwritten, the
// overlay is left, and the report queue is cleared so no host-side key stays
// stuck held while recording.
func (c *Controller) startRecording() error {
	c.macro.reset()
	c.recording = true
	c.magic = false
	c.logger.Debug("recording started")
	return c.queue.Clear()
}

// recordKey captures one key event. A full buffer force-exits the recording
// session; the event that overflowed is not captured and no error is
// raised.
func (c *Controller) recordKey(k int) {
	if !c.macro.record(uint8(k)) {
		c.recording = false
		c.logger.Debug("macro buffer full, recording stopped", "entries", c.macro.len())
	}
}

// replayMacro re-injects the captured session as synthetic edges. Replay
// starts from a known-empty state: the report queue and every logical
// pressed flag are cleared first. Each stored index then synthesizes a press
// if the key reads unpressed, otherwise a release.
func (c *Controller) replayMacro() error {
	if err := c.queue.Clear(); err != nil {
		return err
	}
	for i := range c.keys {
		c.keys[i].pressed = false
	}

	for _, k := range c.macro.entries {
		var err error
		if !c.keys[k].pressed {
			err = c.keyPress(int(k))
		} else {
			err = c.keyRelease(int(k))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
