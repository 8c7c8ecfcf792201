package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phantomkb/phantom/core"
	"github.com/phantomkb/phantom/hal/term"
	"github.com/phantomkb/phantom/hid"
	"github.com/phantomkb/phantom/internal/log"
	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/layout"
	"github.com/phantomkb/phantom/report"
)

// Run drives the controller scan loop on a ticker, scanning terminal input
// when developing off hardware and transmitting through a HID gadget
// endpoint when one is configured.
type Run struct {
	Layout string        `help:"Layout file (TOML or YAML); built-in ANSI 60% when empty" type:"path" env:"PHANTOM_LAYOUT"`
	Watch  bool          `help:"Reload the layout file when it changes"`
	Tick   time.Duration `help:"Scan cycle period" default:"1ms" env:"PHANTOM_TICK"`
	Output string        `help:"HID gadget endpoint (e.g. /dev/hidg0); reports are only logged when empty" env:"PHANTOM_OUTPUT"`
	Hold   time.Duration `help:"How long a terminal keystroke holds its matrix contact closed" default:"25ms"`
	Macros bool          `help:"Enable macro recording and replay" default:"true" negatable:""`

	MagicKey      string `help:"Magic overlay trigger key" default:"rgui"`
	SelfTestKey   string `help:"Magic overlay self-test key" default:"x"`
	ReplayKey     string `help:"Magic overlay macro replay key" default:"p"`
	BootloaderKey string `help:"Magic overlay bootloader key" default:"b"`
	RecordKey     string `help:"Magic overlay record key" default:"r"`
}

// Run is called by kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, reportLog log.ReportLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := layout.ANSI60()
	if r.Layout != "" {
		var err error
		if l, err = layout.Load(r.Layout); err != nil {
			return err
		}
	}

	magicKey, err := layout.ParseName(r.MagicKey)
	if err != nil {
		return fmt.Errorf("--magic-key: %w", err)
	}
	bindings := [4]uint8{}
	for i, b := range []struct{ flag, name string }{
		{"--self-test-key", r.SelfTestKey},
		{"--replay-key", r.ReplayKey},
		{"--bootloader-key", r.BootloaderKey},
		{"--record-key", r.RecordKey},
	} {
		code, ok := keycode.Usages[b.name]
		if !ok {
			return fmt.Errorf("%s: unknown key name %q", b.flag, b.name)
		}
		bindings[i] = code
	}

	scanner := term.New(l, os.Stdin, r.Hold, logger)

	var output report.Transmitter = report.Discard
	var gadget *hid.Gadget
	if r.Output != "" {
		if gadget, err = hid.OpenGadget(r.Output, logger); err != nil {
			return err
		}
		defer func() { _ = gadget.Close() }()
		output = gadget
	}

	ctrl, err := core.New(core.Options{
		Layout:        l,
		Scanner:       scanner,
		Output:        hid.NewTap(output, reportLog),
		Bootloader:    &hostBootloader{logger: logger},
		Indicator:     &ledIndicator{logger: logger},
		Logger:        logger,
		MagicKey:      magicKey,
		SelfTestKey:   bindings[0],
		ReplayKey:     bindings[1],
		BootloaderKey: bindings[2],
		RecordKey:     bindings[3],
		Macros:        r.Macros,
	})
	if err != nil {
		return err
	}
	if gadget != nil {
		gadget.SetLEDCallback(ctrl.SetHostLEDs)
	}

	var layouts <-chan layout.Layout
	if r.Watch && r.Layout != "" {
		if layouts, err = layout.Watch(ctx, r.Layout, logger); err != nil {
			return fmt.Errorf("watch layout: %w", err)
		}
	}

	go func() {
		if err := scanner.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("input scanner stopped", "error", err)
		}
		stop()
	}()

	logger.Info("scan loop started",
		"rows", l.Rows(), "cols", l.Cols(), "tick", r.Tick, "macros", r.Macros)

	ticker := time.NewTicker(r.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scan loop stopped")
			return nil
		case nl := <-layouts:
			if err := ctrl.SetLayout(nl); err != nil {
				logger.Warn("layout swap rejected", "error", err)
				continue
			}
			logger.Info("layout reloaded", "path", r.Layout)
		case <-ticker.C:
			if err := ctrl.RunScanCycle(); err != nil {
				logger.Warn("report transmit failed", "error", err)
			}
		}
	}
}

// hostBootloader stands in for the firmware bootloader entry on a host
// build: it terminates the process, which is as close to "never returns"
// as a host process gets.
type hostBootloader struct {
	logger *slog.Logger
}

func (b *hostBootloader) Enter() {
	b.logger.Info("bootloader handoff, exiting")
	os.Exit(0)
}

// ledIndicator logs indicator pattern changes instead of driving LEDs.
type ledIndicator struct {
	logger *slog.Logger
	last   uint8
	seen   bool
}

func (i *ledIndicator) Set(pattern uint8) {
	if i.seen && pattern == i.last {
		return
	}
	i.last, i.seen = pattern, true
	i.logger.Debug("indicator", "pattern", fmt.Sprintf("0b%05b", pattern))
}
