package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pressplay/pressplay/internal/audio"
	"github.com/pressplay/pressplay/internal/config"
	"github.com/pressplay/pressplay/internal/daemon"
	"github.com/pressplay/pressplay/internal/hotkey"
	"github.com/pressplay/pressplay/internal/notify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hotkey listener in the foreground",
	Long: `Run the global hotkey listener in the foreground.

The process installs a system-wide keyboard hook, initializes the audio
output, and blocks until it receives SIGINT or SIGTERM. Every activation
of the configured chord starts a new, independent playback instance.

Exit code is 0 on orderly shutdown and non-zero on startup failure
(invalid config, hook permission denied, no audio device) or when the
keyboard hook is lost and cannot be reacquired.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	// Validate the chord before touching any OS resources so config
	// errors surface as a clean exit code for external tooling.
	chord, err := hotkey.ParseChord(cfg.Keybind.Modifiers, cfg.Keybind.Key)
	if err != nil {
		return err
	}

	engine := audio.NewEngine(logger)
	engine.SetVolume(float64(cfg.Audio.Volume) / 100.0)
	if err := engine.Initialize(); err != nil {
		return err
	}
	defer engine.Close()

	clipPath := cfg.ResolveAudioFile()
	if err := engine.Preload(clipPath); err != nil {
		// Recoverable: the path may become valid before the next trigger.
		logger.Warn("failed to preload clip", "path", clipPath, "error", err)
	}

	var notifier *notify.Notifier
	if cfg.Notify.OnError {
		notifier, err = notify.New(logger)
		if err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			defer notifier.Close()
		}
	}

	var watcher *audio.Watcher
	if cfg.Audio.Watch && clipPath != "" {
		watcher, err = audio.NewWatcher(engine, clipPath, logger)
		if err != nil {
			logger.Warn("clip watcher unavailable", "error", err)
		}
	}

	source := hotkey.NewHookSource(logger)
	trigger := daemon.TriggerFunc(engine, clipPath, notifier, logger)
	listener := hotkey.NewListener(source, chord, trigger, logger)
	listener.SetRepeat(cfg.Keybind.Repeat)

	clipName := clipPath
	if clipName == "" {
		clipName = audio.DefaultClipName
	}
	logger.Info("pressplay ready", "chord", chord.String(), "clip", clipName)
	fmt.Fprintf(os.Stderr, "Press %s to play. Ctrl+C to stop.\n", chord.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal", "signal", sig)
		cancel()
	}()

	runner := daemon.NewRunner(listener, watcher, daemon.NewPIDFile(config.RuntimePath()), logger)
	return runner.Run(ctx)
}
