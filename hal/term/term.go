// Package term maps raw-mode terminal input onto matrix contacts, giving
// the controller a keyboard to scan when developing off hardware.
//
// Terminals report keystrokes, not key state, so each received byte asserts
// the mapped contact long enough for the debounce engine to register a press
// and then clears it again.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/phantomkb/phantom/hal/sim"
	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/layout"
)

// Scanner is a sim.Scanner fed by terminal input.
type Scanner struct {
	*sim.Scanner

	hold   time.Duration
	in     *os.File
	logger *slog.Logger
	index  map[uint8]int // usage code -> key index
}

// New builds a Scanner for the given layout reading from in (normally
// os.Stdin). hold is how long each keystroke keeps its contact closed; it
// must cover at least seven scan cycles to pass debounce.
func New(l layout.Layout, in *os.File, hold time.Duration, logger *slog.Logger) *Scanner {
	index := make(map[uint8]int)
	for k := 0; k < l.NumKeys(); k++ {
		e := l.At(k)
		if e.Kind != layout.Key {
			continue
		}
		if _, ok := index[e.Value]; !ok {
			index[e.Value] = k
		}
	}
	return &Scanner{
		Scanner: sim.New(l.Rows(), l.Cols()),
		hold:    hold,
		in:      in,
		logger:  logger,
		index:   index,
	}
}

// Run puts the terminal into raw mode and feeds input into the contact
// table until ctx is done, Ctrl-C is received, or the input closes.
func (s *Scanner) Run(ctx context.Context) error {
	fd := int(s.in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, old) }()

	bytes := make(chan byte)
	go func() {
		// This reader blocks on the terminal and is abandoned on exit;
		// acceptable for a development harness.
		defer close(bytes)
		buf := make([]byte, 1)
		for {
			if _, err := s.in.Read(buf); err != nil {
				return
			}
			select {
			case bytes <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-bytes:
			if !ok {
				return nil
			}
			if b == 0x03 { // Ctrl-C in raw mode
				return nil
			}
			s.tap(b)
		}
	}
}

func (s *Scanner) tap(b byte) {
	code := keycode.FromChar(b)
	if code == 0 {
		return
	}
	k, ok := s.index[code]
	if !ok {
		s.logger.Debug("no matrix position for key", "usage", code)
		return
	}
	s.Hold(k)
	time.AfterFunc(s.hold, func() { s.Release(k) })
}
