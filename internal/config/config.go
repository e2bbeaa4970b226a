// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultKey    = "f"
	DefaultVolume = 100
)

// Config represents the pressplay configuration.
type Config struct {
	// AudioFile is the clip played on each trigger. Empty means the
	// embedded default chime. Relative paths resolve against the
	// directory containing the config file, never the CWD.
	AudioFile string `toml:"audio_file" yaml:"audio_file"`

	Keybind KeybindConfig `toml:"keybind" yaml:"keybind"`
	Audio   AudioConfig   `toml:"audio" yaml:"audio"`
	Notify  NotifyConfig  `toml:"notify" yaml:"notify"`

	// baseDir is the directory the config file was loaded from.
	baseDir string
}

// KeybindConfig describes the global hotkey chord.
type KeybindConfig struct {
	Modifiers []string `toml:"modifiers" yaml:"modifiers"` // ctrl, alt, shift, cmd, win (+ aliases)
	Key       string   `toml:"key" yaml:"key"`             // letter, digit, or function key
	Repeat    bool     `toml:"repeat" yaml:"repeat"`       // re-fire on OS key-repeat while held
}

// AudioConfig contains playback settings.
type AudioConfig struct {
	Volume int  `toml:"volume" yaml:"volume"` // 0-100
	Watch  bool `toml:"watch" yaml:"watch"`   // reload the clip when the file changes
}

// NotifyConfig contains desktop notification settings.
type NotifyConfig struct {
	OnError bool `toml:"on_error" yaml:"on_error"` // notify on playback failures
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		AudioFile: "",
		Keybind: KeybindConfig{
			Modifiers: nil,
			Key:       DefaultKey,
			Repeat:    false,
		},
		Audio: AudioConfig{
			Volume: DefaultVolume,
			Watch:  true,
		},
		Notify: NotifyConfig{
			OnError: false,
		},
	}
}

// ConfigPath returns the default path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pressplay", "config.toml")
}

// RuntimePath returns the path for the PID marker file.
// Uses XDG_RUNTIME_DIR if set, otherwise the system temp directory.
func RuntimePath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pressplay.pid")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()
	cfg.baseDir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 100 {
		return nil, fmt.Errorf("audio.volume: %d is out of range 0-100", cfg.Audio.Volume)
	}

	return cfg, nil
}

// BaseDir returns the directory the config file was loaded from.
func (c *Config) BaseDir() string {
	return c.baseDir
}

// ResolveAudioFile returns the absolute path to the configured clip, or the
// empty string when no clip is configured (meaning the embedded default).
// Relative paths resolve against the config file's directory so playback is
// deterministic regardless of how the process was launched.
func (c *Config) ResolveAudioFile() string {
	path := c.AudioFile
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.baseDir, path)
}
