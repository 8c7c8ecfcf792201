package keycode

// Usages maps layout-file key names to HID usage codes.
var Usages = map[string]uint8{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,

	"1": Key1, "2": Key2, "3": Key3, "4": Key4, "5": Key5,
	"6": Key6, "7": Key7, "8": Key8, "9": Key9, "0": Key0,

	"enter":     KeyEnter,
	"esc":       KeyEscape,
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"space":     KeySpace,
	"minus":     KeyMinus,
	"equal":     KeyEqual,
	"lbracket":  KeyLeftBrace,
	"rbracket":  KeyRightBrace,
	"backslash": KeyBackslash,
	"semicolon": KeySemicolon,
	"quote":     KeyApostrophe,
	"grave":     KeyGrave,
	"comma":     KeyComma,
	"period":    KeyPeriod,
	"slash":     KeySlash,
	"caps":      KeyCapsLock,

	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4,
	"f5": KeyF5, "f6": KeyF6, "f7": KeyF7, "f8": KeyF8,
	"f9": KeyF9, "f10": KeyF10, "f11": KeyF11, "f12": KeyF12,

	"print":    KeyPrintScreen,
	"scroll":   KeyScrollLock,
	"pause":    KeyPause,
	"insert":   KeyInsert,
	"home":     KeyHome,
	"pageup":   KeyPageUp,
	"delete":   KeyDelete,
	"end":      KeyEnd,
	"pagedown": KeyPageDown,

	"right": KeyRight, "left": KeyLeft, "down": KeyDown, "up": KeyUp,
}

// Modifiers maps layout-file modifier names to modifier bitmasks.
var Modifiers = map[string]uint8{
	"lctrl":  ModLeftCtrl,
	"lshift": ModLeftShift,
	"lalt":   ModLeftAlt,
	"lgui":   ModLeftGUI,
	"rctrl":  ModRightCtrl,
	"rshift": ModRightShift,
	"ralt":   ModRightAlt,
	"rgui":   ModRightGUI,
}

// UsageName returns the layout-file name for a HID usage code, or "" if the
// code has no name.
func UsageName(code uint8) string {
	for name, c := range Usages {
		if c == code {
			return name
		}
	}
	return ""
}
