package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pressplay/pressplay/internal/audio"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the configured clip once and exit",
	Long: `Play the configured audio clip once, wait for it to finish, and exit.

Useful for testing the audio path and volume without installing the
keyboard hook.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine := audio.NewEngine(logger)
	engine.SetVolume(float64(cfg.Audio.Volume) / 100.0)
	if err := engine.Initialize(); err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Play(cfg.ResolveAudioFile()); err != nil {
		return err
	}

	// Playback is fire-and-forget; poll the active count for completion.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if engine.ActiveCount() == 0 {
			return nil
		}
	}
	return nil
}
