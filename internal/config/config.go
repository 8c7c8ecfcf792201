// Package config defines the top-level CLI grammar.
package config

import "github.com/phantomkb/phantom/internal/cmd"

// LogConfig holds the logging flags shared by all commands.
type LogConfig struct {
	Level      string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"PHANTOM_LOG_LEVEL"`
	File       string `help:"Log file path (stdout/stderr when empty)" env:"PHANTOM_LOG_FILE"`
	ReportFile string `help:"Raw HID report log file" env:"PHANTOM_LOG_REPORT_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config string    `help:"Path to a configuration file (JSON, YAML, or TOML)" env:"PHANTOM_CONFIG"`
	Log    LogConfig `embed:"" prefix:"log."`

	Run       cmd.Run           `cmd:"" help:"Run the keyboard controller scan loop"`
	Layout    cmd.LayoutCommand `cmd:"" help:"Layout file utilities"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration utilities"`
}
