package cmd

import (
	"fmt"
	"log/slog"

	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/layout"
)

// LayoutCommand groups layout-file subcommands.
type LayoutCommand struct {
	Check LayoutCheck `cmd:"" help:"Parse a layout file and print its matrix"`
}

// LayoutCheck validates a layout file and prints the resolved matrix.
type LayoutCheck struct {
	Path string `arg:"" name:"path" help:"Layout file (TOML or YAML)" type:"path"`
}

func (c *LayoutCheck) Run(logger *slog.Logger) error {
	l, err := layout.Load(c.Path)
	if err != nil {
		return err
	}

	keys, mods, unused := 0, 0, 0
	for k := 0; k < l.NumKeys(); k++ {
		switch l.At(k).Kind {
		case layout.Key:
			keys++
		case layout.Modifier:
			mods++
		default:
			unused++
		}
	}

	fmt.Printf("%s: %dx%d matrix, %d keys, %d modifiers, %d unused positions\n",
		c.Path, l.Rows(), l.Cols(), keys, mods, unused)
	for r := 0; r < l.Rows(); r++ {
		for col := 0; col < l.Cols(); col++ {
			e := l.At(r*l.Cols() + col)
			switch e.Kind {
			case layout.Key:
				name := keycode.UsageName(e.Value)
				if name == "" {
					name = fmt.Sprintf("0x%02x", e.Value)
				}
				fmt.Printf("%-10s", name)
			case layout.Modifier:
				fmt.Printf("%-10s", modifierName(e.Value))
			default:
				fmt.Printf("%-10s", ".")
			}
		}
		fmt.Println()
	}
	return nil
}

func modifierName(mask uint8) string {
	for name, m := range keycode.Modifiers {
		if m == mask {
			return name
		}
	}
	return fmt.Sprintf("mod:0x%02x", mask)
}
