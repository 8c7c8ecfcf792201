// Package report maintains the bounded ordered set of held keys and
// assembles the outgoing HID report on every change.
package report

// Slots is the fixed report width: the number of simultaneously reported
// non-modifier keys (boot protocol 6-key rollover).
const Slots = 6

// Report is the assembled HID payload: held normal-key usage codes in
// most-recently-pressed-first order plus the modifier bitmask.
type Report struct {
	Keys      [Slots]uint8
	Modifiers uint8
}

// Transmitter hands an assembled report to the USB collaborator. Send is
// synchronous and may block briefly on device readiness.
type Transmitter interface {
	Send(Report) error
}

// TransmitterFunc adapts a function to the Transmitter interface.
type TransmitterFunc func(Report) error

func (f TransmitterFunc) Send(r Report) error { return f(r) }

// Discard is a Transmitter that drops every report.
var Discard Transmitter = TransmitterFunc(func(Report) error { return nil })
