package hid

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/phantomkb/phantom/report"
)

// Gadget transmits boot-protocol reports through a Linux USB gadget HID
// endpoint (typically /dev/hidg0) and forwards the host's 1-byte LED output
// reports to a callback.
type Gadget struct {
	f      *os.File
	logger *slog.Logger

	mu   sync.Mutex
	leds func(uint8)

	closeOnce sync.Once
	done      chan struct{}
}

// OpenGadget opens the gadget endpoint and starts the LED reader.
func OpenGadget(path string, logger *slog.Logger) (*Gadget, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open hid gadget %s: %w", path, err)
	}
	g := &Gadget{f: f, logger: logger, done: make(chan struct{})}
	go g.readLEDs()
	return g, nil
}

// SetLEDCallback sets a callback invoked with each LED byte written by the
// host. The callback runs on the reader goroutine.
func (g *Gadget) SetLEDCallback(f func(uint8)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.leds = f
}

// Send writes one input report. Blocks until the endpoint accepts it.
func (g *Gadget) Send(r report.Report) error {
	if _, err := g.f.Write(Encode(r)); err != nil {
		return fmt.Errorf("write hid report: %w", err)
	}
	return nil
}

// Close stops the LED reader and closes the endpoint.
func (g *Gadget) Close() error {
	var err error
	g.closeOnce.Do(func() {
		close(g.done)
		err = g.f.Close()
	})
	return err
}

func (g *Gadget) readLEDs() {
	buf := make([]byte, 1)
	for {
		_, err := g.f.Read(buf)
		if err != nil {
			select {
			case <-g.done:
			default:
				if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
					g.logger.Warn("hid gadget LED read failed", "error", err)
				}
			}
			return
		}
		g.mu.Lock()
		cb := g.leds
		g.mu.Unlock()
		if cb != nil {
			cb(buf[0])
		}
	}
}

var _ report.Transmitter = (*Gadget)(nil)
