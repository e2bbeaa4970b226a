// Package hotkey provides the global hotkey pipeline: a chord model parsed
// from configuration, key-name normalization, and a listener that maintains
// the pressed-key set over a system-wide keyboard hook and fires a trigger
// on the rising edge of a chord match.
package hotkey
