package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.AudioFile)
	assert.Empty(t, cfg.Keybind.Modifiers)
	assert.Equal(t, "f", cfg.Keybind.Key)
	assert.False(t, cfg.Keybind.Repeat)
	assert.Equal(t, 100, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Watch)
	assert.False(t, cfg.Notify.OnError)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Keybind.Key, cfg.Keybind.Key)
	assert.Equal(t, "/nonexistent/path", cfg.BaseDir())
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
audio_file = "fah.mp3"

[keybind]
modifiers = ["ctrl", "shift"]
key = "f"
repeat = true

[audio]
volume = 60
watch = false

[notify]
on_error = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fah.mp3", cfg.AudioFile)
	assert.Equal(t, []string{"ctrl", "shift"}, cfg.Keybind.Modifiers)
	assert.Equal(t, "f", cfg.Keybind.Key)
	assert.True(t, cfg.Keybind.Repeat)
	assert.Equal(t, 60, cfg.Audio.Volume)
	assert.False(t, cfg.Audio.Watch)
	assert.True(t, cfg.Notify.OnError)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
audio_file: fah.mp3
keybind:
  modifiers: [ctrl]
  key: f9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fah.mp3", cfg.AudioFile)
	assert.Equal(t, []string{"ctrl"}, cfg.Keybind.Modifiers)
	assert.Equal(t, "f9", cfg.Keybind.Key)
	// Fields absent from the file keep defaults
	assert.Equal(t, 100, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Watch)
}

func TestLoadConfig_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[keybind]
key = "f9"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "f9", cfg.Keybind.Key)
	assert.Equal(t, 100, cfg.Audio.Volume)
	assert.Empty(t, cfg.AudioFile)
}

func TestLoadConfig_UnknownFieldsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
audio_file = "fah.mp3"
future_field = "whatever"

[keybind]
key = "f"
chording = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fah.mp3", cfg.AudioFile)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not valid toml ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_VolumeOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 150\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio.volume")
}

func TestResolveAudioFile_RelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`audio_file = "sounds/fah.mp3"`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Relative paths anchor at the config file's directory, never the CWD
	assert.Equal(t, filepath.Join(dir, "sounds", "fah.mp3"), cfg.ResolveAudioFile())
}

func TestResolveAudioFile_AbsoluteUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AudioFile = "/srv/sounds/fah.mp3"
	assert.Equal(t, "/srv/sounds/fah.mp3", cfg.ResolveAudioFile())
}

func TestResolveAudioFile_EmptyMeansEmbedded(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.ResolveAudioFile())
}
