package daemon

import (
	"context"
	"log/slog"

	"github.com/pressplay/pressplay/internal/audio"
	"github.com/pressplay/pressplay/internal/notify"
)

// Listener is the slice of the key listener the runner drives.
type Listener interface {
	Start() error
	Stop()
	Err() <-chan error
}

// Runner ties the listener lifecycle to process lifetime. It blocks in Run
// until the context is cancelled by a termination signal or the listener
// reports a fatal error.
type Runner struct {
	logger   *slog.Logger
	listener Listener
	watcher  *audio.Watcher
	pidFile  *PIDFile
}

// NewRunner creates a runner. watcher and pidFile may be nil.
func NewRunner(listener Listener, watcher *audio.Watcher, pidFile *PIDFile, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:   logger,
		listener: listener,
		watcher:  watcher,
		pidFile:  pidFile,
	}
}

// Run starts capture and blocks until shutdown. It returns nil on an
// orderly stop and the fatal error otherwise. In-flight playback instances
// are abandoned on exit; they hold no state worth preserving.
func (r *Runner) Run(ctx context.Context) error {
	if r.pidFile != nil {
		if err := r.pidFile.Write(); err != nil {
			// The marker only serves external tooling; keep running.
			r.logger.Warn("failed to write pid file", "path", r.pidFile.Path(), "error", err)
		} else {
			defer func() {
				if err := r.pidFile.Remove(); err != nil {
					r.logger.Warn("failed to remove pid file", "error", err)
				}
			}()
		}
	}

	if r.watcher != nil {
		if err := r.watcher.Start(); err != nil {
			r.logger.Warn("failed to start clip watcher", "error", err)
		} else {
			defer func() { _ = r.watcher.Stop() }()
		}
	}

	if err := r.listener.Start(); err != nil {
		return err
	}
	defer r.listener.Stop()

	select {
	case <-ctx.Done():
		r.logger.Info("shutting down")
		return nil
	case err := <-r.listener.Err():
		return err
	}
}

// TriggerFunc builds the listener's trigger callback: each activation
// starts a new playback instance on its own goroutine so a slow decode
// never delays chord detection for subsequent key events.
func TriggerFunc(engine *audio.Engine, clipPath string, notifier *notify.Notifier, logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}
	return func() {
		go func() {
			if err := engine.Play(clipPath); err != nil {
				logger.Error("playback failed", "path", clipPath, "error", err)
				if notifier != nil {
					if nerr := notifier.Send("pressplay: playback failed", err.Error()); nerr != nil {
						logger.Debug("failed to send notification", "error", nerr)
					}
				}
			}
		}()
	}
}
