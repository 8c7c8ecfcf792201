package keycode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phantomkb/phantom/keycode"
)

func TestUsageNameRoundTrip(t *testing.T) {
	for name, code := range keycode.Usages {
		assert.Equal(t, name, keycode.UsageName(code), "usage 0x%02x", code)
	}
}

func TestUsageNameUnknown(t *testing.T) {
	assert.Equal(t, "", keycode.UsageName(0xFF))
}

func TestFromChar(t *testing.T) {
	assert.Equal(t, uint8(keycode.KeyA), keycode.FromChar('a'))
	assert.Equal(t, uint8(keycode.KeyEnter), keycode.FromChar('\r'))
	assert.Equal(t, uint8(keycode.KeySpace), keycode.FromChar(' '))
	assert.Equal(t, uint8(0), keycode.FromChar(0x00))
	assert.Equal(t, uint8(0), keycode.FromChar('A'), "shifted characters are not mapped")
}
