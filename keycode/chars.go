package keycode

// CharToKey maps ASCII characters to HID usage codes, used by the terminal
// scan harness. Shifted characters are not represented; the harness only
// drives unshifted positions.
var CharToKey = map[byte]uint8{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF,
	'g': KeyG, 'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL,
	'm': KeyM, 'n': KeyN, 'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR,
	's': KeyS, 't': KeyT, 'u': KeyU, 'v': KeyV, 'w': KeyW, 'x': KeyX,
	'y': KeyY, 'z': KeyZ,

	'1': Key1, '2': Key2, '3': Key3, '4': Key4, '5': Key5,
	'6': Key6, '7': Key7, '8': Key8, '9': Key9, '0': Key0,

	'\r': KeyEnter,
	'\n': KeyEnter,
	0x1B: KeyEscape,
	0x7F: KeyBackspace,
	'\t': KeyTab,
	' ':  KeySpace,
	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBrace,
	']':  KeyRightBrace,
	'\\': KeyBackslash,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	'`':  KeyGrave,
	',':  KeyComma,
	'.':  KeyPeriod,
	'/':  KeySlash,
}

// FromChar converts an ASCII character to its HID usage code.
// Returns 0 if the character is not supported.
func FromChar(c byte) uint8 {
	if code, ok := CharToKey[c]; ok {
		return code
	}
	return 0
}
