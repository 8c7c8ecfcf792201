// Package layout defines the static mapping from matrix key indices to HID
// usage codes or modifier bitmasks. A Layout is built once (from a file or a
// built-in table) and never mutated by the scan pipeline.
package layout

import (
	"fmt"

	"github.com/phantomkb/phantom/keycode"
)

// Kind classifies a matrix position.
type Kind uint8

const (
	// None marks an unused matrix position.
	None Kind = iota
	// Key is a normal key; Value is its HID usage code.
	Key
	// Modifier is a modifier key; Value is its modifier bitmask.
	Modifier
)

// Entry maps one matrix position to a HID usage code or modifier bitmask.
type Entry struct {
	Kind  Kind
	Value uint8
}

// IsModifier reports whether the entry is a modifier key.
func (e Entry) IsModifier() bool { return e.Kind == Modifier }

// Layout is a read-only key-index-to-entry table sized rows*cols.
type Layout struct {
	rows, cols int
	entries    []Entry
}

// New builds a Layout from a flat entry slice in row-major order.
func New(rows, cols int, entries []Entry) (Layout, error) {
	if rows <= 0 || cols <= 0 {
		return Layout{}, fmt.Errorf("invalid matrix dimensions %dx%d", rows, cols)
	}
	if len(entries) != rows*cols {
		return Layout{}, fmt.Errorf("layout has %d entries, matrix %dx%d needs %d",
			len(entries), rows, cols, rows*cols)
	}
	return Layout{rows: rows, cols: cols, entries: entries}, nil
}

// FromNames builds a Layout from named rows of keys. Names resolve through
// keycode.Usages and keycode.Modifiers; "none" or "" marks an unused
// position.
func FromNames(rows, cols int, matrix [][]string) (Layout, error) {
	if len(matrix) != rows {
		return Layout{}, fmt.Errorf("matrix has %d rows, expected %d", len(matrix), rows)
	}
	entries := make([]Entry, 0, rows*cols)
	for r, row := range matrix {
		if len(row) != cols {
			return Layout{}, fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
		for c, name := range row {
			e, err := ParseName(name)
			if err != nil {
				return Layout{}, fmt.Errorf("row %d column %d: %w", r, c, err)
			}
			entries = append(entries, e)
		}
	}
	return New(rows, cols, entries)
}

// ParseName resolves a single key name to an Entry.
func ParseName(name string) (Entry, error) {
	switch name {
	case "", "none":
		return Entry{}, nil
	}
	if mask, ok := keycode.Modifiers[name]; ok {
		return Entry{Kind: Modifier, Value: mask}, nil
	}
	if code, ok := keycode.Usages[name]; ok {
		return Entry{Kind: Key, Value: code}, nil
	}
	return Entry{}, fmt.Errorf("unknown key name %q", name)
}

// At returns the entry for a key index. Out-of-range indices map to None.
func (l Layout) At(k int) Entry {
	if k < 0 || k >= len(l.entries) {
		return Entry{}
	}
	return l.entries[k]
}

// Rows returns the matrix row count.
func (l Layout) Rows() int { return l.rows }

// Cols returns the matrix column count.
func (l Layout) Cols() int { return l.cols }

// NumKeys returns the total number of matrix positions.
func (l Layout) NumKeys() int { return len(l.entries) }

// ANSI60 returns the built-in 5x14 ANSI 60% matrix.
func ANSI60() Layout {
	l, err := FromNames(5, 14, [][]string{
		{"grave", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "minus", "equal", "backspace"},
		{"tab", "q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "lbracket", "rbracket", "backslash"},
		{"caps", "a", "s", "d", "f", "g", "h", "j", "k", "l", "semicolon", "quote", "enter", "none"},
		{"lshift", "z", "x", "c", "v", "b", "n", "m", "comma", "period", "slash", "rshift", "none", "none"},
		{"lctrl", "lgui", "lalt", "none", "none", "space", "none", "none", "none", "ralt", "rgui", "none", "rctrl", "none"},
	})
	if err != nil {
		panic(err) // built-in table, cannot fail
	}
	return l
}
