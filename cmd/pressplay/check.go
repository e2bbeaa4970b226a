package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pressplay/pressplay/internal/audio"
	"github.com/pressplay/pressplay/internal/hotkey"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and print the resolved hotkey",
	Long: `Validate the configuration file and print the resolved chord and clip
path. Exits non-zero when the keybind or any other field is invalid,
without installing the keyboard hook or opening the audio device.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	chord, err := hotkey.ParseChord(cfg.Keybind.Modifiers, cfg.Keybind.Key)
	if err != nil {
		return err
	}

	clipPath := cfg.ResolveAudioFile()
	clipName := clipPath
	clipStatus := "ok"
	if clipPath == "" {
		clipName = audio.DefaultClipName
	} else if _, err := os.Stat(clipPath); err != nil {
		clipStatus = "missing"
	}

	fmt.Printf("hotkey:  %s\n", chord.String())
	fmt.Printf("repeat:  %v\n", cfg.Keybind.Repeat)
	fmt.Printf("clip:    %s (%s)\n", clipName, clipStatus)
	fmt.Printf("volume:  %d\n", cfg.Audio.Volume)
	return nil
}
