package hotkey

import (
	"log/slog"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// handshakeTimeout bounds how long we wait for the OS to confirm hook
// installation before treating it as a permission denial.
const handshakeTimeout = 3 * time.Second

// HookSource adapts the gohook system-wide keyboard hook to the KeySource
// interface. Key-hold (OS repeat) events are delivered as key-down; the
// listener's set semantics make them edge-neutral.
type HookSource struct {
	logger *slog.Logger

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewHookSource creates a key source backed by the OS keyboard hook.
func NewHookSource(logger *slog.Logger) *HookSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HookSource{logger: logger}
}

// Start installs the hook and returns the translated key event stream.
// gohook reports no install error itself, so the absence of the
// hook-enabled handshake within the timeout is treated as the OS denying
// the hook (typically a missing accessibility or input-monitoring grant).
func (s *HookSource) Start() (<-chan KeyEvent, error) {
	s.mu.Lock()
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	raw := hook.Start()

	select {
	case first, ok := <-raw:
		if !ok {
			hook.End()
			return nil, ErrPermissionDenied
		}
		s.logger.Debug("keyboard hook installed")
		out := make(chan KeyEvent, 64)
		go s.translate(raw, out, stopCh, first)
		return out, nil
	case <-time.After(handshakeTimeout):
		hook.End()
		return nil, ErrPermissionDenied
	}
}

// Stop releases the OS hook; the event stream closes as a consequence.
func (s *HookSource) Stop() {
	s.mu.Lock()
	if s.stopCh != nil {
		select {
		case <-s.stopCh:
		default:
			close(s.stopCh)
		}
	}
	s.mu.Unlock()
	hook.End()
}

// SupportedModifiers reports the modifiers gohook can deliver. The meta key
// is observed as "cmd" raw names on every platform gohook supports.
func (s *HookSource) SupportedModifiers() []Modifier {
	return []Modifier{ModCtrl, ModAlt, ModShift, ModSuper}
}

func (s *HookSource) translate(raw chan hook.Event, out chan<- KeyEvent, stopCh <-chan struct{}, first hook.Event) {
	defer close(out)

	deliver := func(ev hook.Event) bool {
		ke, ok := toKeyEvent(ev)
		if !ok {
			return true
		}
		select {
		case out <- ke:
			return true
		case <-stopCh:
			return false
		}
	}

	if !deliver(first) {
		return
	}
	for {
		select {
		case ev, ok := <-raw:
			if !ok {
				return
			}
			if !deliver(ev) {
				return
			}
		case <-stopCh:
			return
		}
	}
}

// toKeyEvent translates a raw hook event into a canonical key transition.
// Non-key events (mouse, hook lifecycle) are discarded.
func toKeyEvent(ev hook.Event) (KeyEvent, bool) {
	var down bool
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		down = true
	case hook.KeyUp:
		down = false
	default:
		return KeyEvent{}, false
	}

	name := hook.RawcodetoKeychar(ev.Rawcode)
	if name == "" && ev.Keychar != 0 && ev.Keychar != 65535 {
		name = string(ev.Keychar)
	}
	name = NormalizeKeyName(name)
	if name == "" {
		return KeyEvent{}, false
	}
	return KeyEvent{Key: name, Down: down}, true
}
