package hotkey

import (
	"fmt"
	"slices"
	"strings"
)

// Chord is the configured hotkey: a set of modifiers plus exactly one
// primary key. Immutable once parsed.
type Chord struct {
	Modifiers []Modifier
	Key       string
}

// ParseChord validates and canonicalizes a modifier list and key name from
// configuration. The key is required; the modifier set may be empty.
// Errors name the offending config field and value.
func ParseChord(modifiers []string, key string) (Chord, error) {
	var chord Chord

	seen := make(map[Modifier]bool)
	for _, name := range modifiers {
		mod, ok := ParseModifier(name)
		if !ok {
			return Chord{}, fmt.Errorf("keybind.modifiers: unknown modifier %q (recognized: ctrl, alt, shift, cmd, win)", name)
		}
		if seen[mod] {
			continue
		}
		seen[mod] = true
		chord.Modifiers = append(chord.Modifiers, mod)
	}
	slices.Sort(chord.Modifiers)

	if strings.TrimSpace(key) == "" {
		return Chord{}, fmt.Errorf("keybind.key: a key is required")
	}
	k := NormalizeKeyName(key)
	if isModifierName(k) {
		return Chord{}, fmt.Errorf("keybind.key: %q is a modifier, not a key", key)
	}
	if !validKeyName(k) {
		return Chord{}, fmt.Errorf("keybind.key: unknown key %q (expected a letter, digit, or f1..f12)", key)
	}
	chord.Key = k

	return chord, nil
}

// Match reports whether the pressed-key set satisfies the chord: it must
// contain every chord modifier and the primary key. The result does not
// depend on the set's insertion order, and Match keeps no state.
func (c Chord) Match(pressed map[string]struct{}) bool {
	for _, mod := range c.Modifiers {
		if _, ok := pressed[string(mod)]; !ok {
			return false
		}
	}
	_, ok := pressed[c.Key]
	return ok
}

// String renders the chord for logs and the check command, e.g. "ctrl+shift+f".
func (c Chord) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, mod := range c.Modifiers {
		parts = append(parts, string(mod))
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
