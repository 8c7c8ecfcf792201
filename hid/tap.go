package hid

import (
	"github.com/phantomkb/phantom/internal/log"
	"github.com/phantomkb/phantom/report"
)

// Tap wraps a Transmitter and hex-dumps every outgoing report to a
// ReportLogger before forwarding it.
type Tap struct {
	next report.Transmitter
	rl   log.ReportLogger
}

// NewTap returns a Tap forwarding to next.
func NewTap(next report.Transmitter, rl log.ReportLogger) *Tap {
	return &Tap{next: next, rl: rl}
}

func (t *Tap) Send(r report.Report) error {
	t.rl.Log(false, Encode(r))
	return t.next.Send(r)
}
