package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// ReportLogger handles raw HID report logging with optional file output.
type ReportLogger interface {
	Log(fromHost bool, data []byte)
}

// reportLogger implements ReportLogger with thread-safe output.
type reportLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewReportLogger creates a ReportLogger. If w is nil, logging is a no-op.
func NewReportLogger(w io.Writer) ReportLogger {
	return &reportLogger{w: w}
}

// Log emits a single-line hex dump with timestamp and direction.
// fromHost=true marks host output reports (LED state), fromHost=false marks
// device input reports.
func (r *reportLogger) Log(fromHost bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "D->H"
	if fromHost {
		dir = "H->D"
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s report: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
