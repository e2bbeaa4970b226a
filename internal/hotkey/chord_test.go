package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pressedSet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func TestParseChord_KeyOnly(t *testing.T) {
	chord, err := ParseChord(nil, "f9")
	require.NoError(t, err)
	assert.Empty(t, chord.Modifiers)
	assert.Equal(t, "f9", chord.Key)
}

func TestParseChord_CaseAndAliasInsensitive(t *testing.T) {
	a, err := ParseChord([]string{"ctrl"}, "F")
	require.NoError(t, err)
	b, err := ParseChord([]string{"CTRL"}, "f")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// cmd, command, win and windows all canonicalize to the same modifier
	for _, name := range []string{"cmd", "Command", "win", "WINDOWS", "super", "meta"} {
		chord, err := ParseChord([]string{name}, "a")
		require.NoError(t, err)
		assert.Equal(t, []Modifier{ModSuper}, chord.Modifiers, "alias %q", name)
	}
}

func TestParseChord_ModifierOrderIrrelevant(t *testing.T) {
	a, err := ParseChord([]string{"shift", "ctrl"}, "f")
	require.NoError(t, err)
	b, err := ParseChord([]string{"ctrl", "shift"}, "f")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseChord_DuplicateModifiersCollapse(t *testing.T) {
	chord, err := ParseChord([]string{"ctrl", "control", "CTRL"}, "f")
	require.NoError(t, err)
	assert.Equal(t, []Modifier{ModCtrl}, chord.Modifiers)
}

func TestParseChord_UnknownModifier(t *testing.T) {
	_, err := ParseChord([]string{"meta2"}, "f")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta2")
	assert.Contains(t, err.Error(), "keybind.modifiers")
}

func TestParseChord_MissingKey(t *testing.T) {
	_, err := ParseChord([]string{"ctrl"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keybind.key")
}

func TestParseChord_ModifierAsKey(t *testing.T) {
	_, err := ParseChord(nil, "shift")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifier")
}

func TestParseChord_UnknownKey(t *testing.T) {
	for _, key := range []string{"f13", "??", "keypad5"} {
		_, err := ParseChord(nil, key)
		require.Error(t, err, "key %q", key)
		assert.Contains(t, err.Error(), "keybind.key")
	}
}

func TestParseChord_FunctionKeys(t *testing.T) {
	for _, key := range []string{"f1", "F9", "f12"} {
		chord, err := ParseChord(nil, key)
		require.NoError(t, err, "key %q", key)
		assert.NotEmpty(t, chord.Key)
	}
}

func TestMatch_SupersetSemantics(t *testing.T) {
	chord, err := ParseChord([]string{"ctrl", "shift"}, "f")
	require.NoError(t, err)

	// Exact chord
	assert.True(t, chord.Match(pressedSet("ctrl", "shift", "f")))
	// Superset still matches: extra held keys don't break the chord
	assert.True(t, chord.Match(pressedSet("ctrl", "shift", "f", "a")))
	// Missing modifier
	assert.False(t, chord.Match(pressedSet("ctrl", "f")))
	// Missing primary key
	assert.False(t, chord.Match(pressedSet("ctrl", "shift")))
	// Empty set
	assert.False(t, chord.Match(pressedSet()))
}

func TestMatch_NoModifiers(t *testing.T) {
	chord, err := ParseChord(nil, "f9")
	require.NoError(t, err)

	assert.True(t, chord.Match(pressedSet("f9")))
	assert.True(t, chord.Match(pressedSet("ctrl", "f9")))
	assert.False(t, chord.Match(pressedSet("f8")))
}

func TestMatch_Stateless(t *testing.T) {
	chord, err := ParseChord([]string{"ctrl"}, "f")
	require.NoError(t, err)

	set := pressedSet("ctrl", "f")
	for range 5 {
		assert.True(t, chord.Match(set))
	}
}

func TestNormalizeKeyName_FoldsVariants(t *testing.T) {
	cases := map[string]string{
		"LCTRL":  "ctrl",
		"rctrl":  "ctrl",
		"lshift": "shift",
		"ralt":   "alt",
		"lcmd":   "super",
		"rwin":   "super",
		"A":      "a",
		"F9":     "f9",
		"return": "enter",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeKeyName(raw), "raw %q", raw)
	}
}

func TestChordString(t *testing.T) {
	chord, err := ParseChord([]string{"shift", "ctrl"}, "f")
	require.NoError(t, err)
	assert.Equal(t, "ctrl+shift+f", chord.String())
}
