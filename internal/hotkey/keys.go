package hotkey

import "strings"

// Modifier is a canonical modifier identifier.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModShift Modifier = "shift"
	// ModSuper is the platform meta key: Command on macOS, the Windows
	// key elsewhere. "cmd" and "win" are aliases so the same config file
	// works on either platform.
	ModSuper Modifier = "super"
)

// modifierAliases maps every accepted modifier spelling to its canonical form.
var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"windows": ModSuper,
	"super":   ModSuper,
	"meta":    ModSuper,
}

// keyAliases maps raw key names delivered by the hook (including left/right
// modifier variants) to canonical names. Names not present here pass through
// lowercased.
var keyAliases = map[string]string{
	"lctrl":       "ctrl",
	"rctrl":       "ctrl",
	"control":     "ctrl",
	"left ctrl":   "ctrl",
	"right ctrl":  "ctrl",
	"lshift":      "shift",
	"rshift":      "shift",
	"left shift":  "shift",
	"right shift": "shift",
	"lalt":        "alt",
	"ralt":        "alt",
	"option":      "alt",
	"left alt":    "alt",
	"right alt":   "alt",
	"lcmd":        "super",
	"rcmd":        "super",
	"cmd":         "super",
	"command":     "super",
	"lwin":        "super",
	"rwin":        "super",
	"win":         "super",
	"meta":        "super",
	"return":      "enter",
	"escape":      "esc",
	"spacebar":    "space",
	"caps lock":   "capslock",
	"delete":      "del",
	"page up":     "pageup",
	"page down":   "pagedown",
}

// namedKeys is the set of recognized non-modifier, non-alphanumeric key names.
var namedKeys = map[string]bool{
	"space": true, "enter": true, "esc": true, "tab": true,
	"backspace": true, "del": true, "insert": true, "home": true,
	"end": true, "pageup": true, "pagedown": true,
	"up": true, "down": true, "left": true, "right": true,
}

// NormalizeKeyName folds a raw key name to its canonical lowercase form,
// collapsing left/right modifier variants into one logical key.
func NormalizeKeyName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canon, ok := keyAliases[name]; ok {
		return canon
	}
	return name
}

// ParseModifier resolves a configured modifier name to its canonical form.
func ParseModifier(name string) (Modifier, bool) {
	m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// validKeyName reports whether name is a recognized primary key: a single
// letter or digit, f1..f12, or a named key.
func validKeyName(name string) bool {
	if len(name) == 1 {
		c := name[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	if fn, ok := strings.CutPrefix(name, "f"); ok && len(fn) <= 2 {
		switch fn {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
			return true
		}
	}
	return namedKeys[name]
}

// isModifierName reports whether the canonical name is a modifier key.
func isModifierName(name string) bool {
	_, ok := modifierAliases[name]
	return ok
}
