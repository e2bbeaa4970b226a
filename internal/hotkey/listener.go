package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors surfaced by the listener and its key sources.
var (
	// ErrPermissionDenied means the OS refused the global keyboard hook.
	ErrPermissionDenied = errors.New("global keyboard hook denied: grant accessibility/input-monitoring permission to this process and restart")

	// ErrHookLost means the hook dropped mid-run and one reconnection
	// attempt also failed.
	ErrHookLost = errors.New("global keyboard hook lost")
)

// KeyEvent is one key transition delivered by a KeySource.
// Key is a canonical key name (see NormalizeKeyName).
type KeyEvent struct {
	Key  string
	Down bool
}

// KeySource is the capability interface over a platform keyboard hook.
// Start installs the hook and returns the event stream; the stream closes
// when the hook is lost or Stop is called.
type KeySource interface {
	Start() (<-chan KeyEvent, error)
	Stop()
	// SupportedModifiers lists the modifiers this source can deliver on
	// the host platform.
	SupportedModifiers() []Modifier
}

// Listener owns the pressed-key set and performs edge detection over a
// KeySource's event stream. On the false->true transition of the chord
// match it invokes the trigger callback; releasing any chord key re-arms
// it. With repeat enabled, a key-down of the primary key while the chord
// is held also triggers, mirroring OS key-repeat.
type Listener struct {
	source  KeySource
	chord   Chord
	repeat  bool
	trigger func()
	logger  *slog.Logger

	// pressed is touched only by the run goroutine.
	pressed   map[string]struct{}
	satisfied bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	errCh   chan error
}

// NewListener creates a listener for the given chord. The trigger callback
// is invoked from the listener goroutine and must not block; hand expensive
// work off to another goroutine.
func NewListener(source KeySource, chord Chord, trigger func(), logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		source:  source,
		chord:   chord,
		trigger: trigger,
		logger:  logger,
		pressed: make(map[string]struct{}),
		errCh:   make(chan error, 1),
	}
}

// SetRepeat enables re-firing on primary-key repeat while the chord is held.
// Must be called before Start.
func (l *Listener) SetRepeat(repeat bool) {
	l.repeat = repeat
}

// Start installs the hook and begins consuming key events on a dedicated
// goroutine. It returns immediately; fatal mid-run errors are delivered on
// Err. A chord modifier the source cannot deliver produces a warning, not
// an error: the chord simply never fires.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}

	l.warnUnsupported()

	events, err := l.source.Start()
	if err != nil {
		return fmt.Errorf("failed to start key capture: %w", err)
	}

	l.running = true
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	l.pressed = make(map[string]struct{})
	l.satisfied = false

	go l.run(events)

	l.logger.Info("key listener started", "chord", l.chord.String(), "repeat", l.repeat)
	return nil
}

// Stop terminates capture and releases the hook.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	l.source.Stop()
	<-l.doneCh
	l.logger.Debug("key listener stopped")
}

// Err delivers at most one fatal listener error, after which the listener
// is no longer capturing.
func (l *Listener) Err() <-chan error {
	return l.errCh
}

func (l *Listener) run(events <-chan KeyEvent) {
	defer close(l.doneCh)

	reconnected := false
	for {
		select {
		case <-l.stopCh:
			return
		case ev, ok := <-events:
			if !ok {
				// Hook dropped. Try one reconnection, then give up.
				if l.stopping() {
					return
				}
				if reconnected {
					l.fail(fmt.Errorf("%w: reconnection failed", ErrHookLost))
					return
				}
				l.logger.Warn("keyboard hook lost, reconnecting")
				next, err := l.source.Start()
				if err != nil {
					l.fail(fmt.Errorf("%w: %v", ErrHookLost, err))
					return
				}
				reconnected = true
				events = next
				// The hook restarted with no held keys.
				l.pressed = make(map[string]struct{})
				l.satisfied = false
				continue
			}
			l.handle(ev)
		}
	}
}

// handle updates the pressed-key set and fires on the completing edge.
func (l *Listener) handle(ev KeyEvent) {
	if ev.Down {
		l.pressed[ev.Key] = struct{}{}
	} else {
		delete(l.pressed, ev.Key)
	}

	now := l.chord.Match(l.pressed)
	switch {
	case now && !l.satisfied:
		l.fire()
	case now && l.repeat && ev.Down && ev.Key == l.chord.Key:
		// OS key-repeat of the primary key, opted in via keybind.repeat.
		l.fire()
	}
	l.satisfied = now
}

func (l *Listener) fire() {
	l.logger.Debug("chord triggered", "chord", l.chord.String())
	if l.trigger != nil {
		l.trigger()
	}
}

func (l *Listener) fail(err error) {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
	select {
	case l.errCh <- err:
	default:
	}
}

func (l *Listener) stopping() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

func (l *Listener) warnUnsupported() {
	supported := make(map[Modifier]bool)
	for _, m := range l.source.SupportedModifiers() {
		supported[m] = true
	}
	for _, m := range l.chord.Modifiers {
		if !supported[m] {
			l.logger.Warn("modifier not available on this platform, hotkey will never fire",
				"modifier", string(m))
		}
	}
}
