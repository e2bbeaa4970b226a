package audio

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/oklog/ulid/v2"
)

// Errors surfaced by the engine.
var (
	// ErrNoDevice means the audio output subsystem could not be opened.
	ErrNoDevice = errors.New("no usable audio output device")

	// ErrNotReady means Play was called before Initialize.
	ErrNotReady = errors.New("audio engine not initialized")
)

// Speaker sample rate; clips at other rates are resampled per instance.
const sampleRate = beep.SampleRate(44100)

// activeAdvisory is the documented soft cap on concurrent instances. The
// speaker mixer itself is unbounded and does its own summing, so nothing is
// evicted; crossing the threshold is only logged.
const activeAdvisory = 32

// Engine decodes clips and starts fire-and-forget playback instances.
// State machine: Uninitialized -> Initialize() -> Ready (terminal for the
// process lifetime). Play is valid only when Ready.
type Engine struct {
	logger *slog.Logger

	mu     sync.Mutex
	ready  bool
	volume float64

	// Decoded clip cache, shared by all instances of the same path.
	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer

	// Live playback instances, kept only for cleanup and observability.
	// Entries are independent; inserts race with completion callbacks.
	activeMu sync.Mutex
	active   map[ulid.ULID]time.Time

	// play submits a streamer to the mixer. Swapped out in tests.
	play func(...beep.Streamer)
}

// NewEngine creates an engine in the Uninitialized state.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger,
		volume: 1.0,
		cache:  make(map[string]*beep.Buffer),
		active: make(map[ulid.ULID]time.Time),
		play:   speaker.Play,
	}
}

// SetVolume sets the playback volume (0.0 to 1.0) applied to new instances.
func (e *Engine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = math.Min(math.Max(volume, 0), 1)
}

// Initialize performs one-time setup of the audio output subsystem and
// fails fast when no output device is usable.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	e.ready = true
	e.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// Play starts a new, independent playback instance of the clip at path from
// its beginning and returns immediately. Concurrent calls each get their own
// instance over the shared decoded buffer; nothing already playing is cut
// off or queued behind it. An empty path plays the embedded default chime.
// Failures (missing file, decode error) only affect this call.
func (e *Engine) Play(path string) error {
	e.mu.Lock()
	ready, volume := e.ready, e.volume
	e.mu.Unlock()
	if !ready {
		return ErrNotReady
	}

	buf, err := e.buffer(path)
	if err != nil {
		return err
	}

	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buf.Format().SampleRate, sampleRate, streamer)
	}
	if volume < 1.0 {
		// effects.Volume scales by Base^Volume, so log10 of the linear
		// volume with base 10 yields the linear gain exactly.
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     10,
			Volume:   math.Log10(math.Max(volume, 1e-5)),
			Silent:   volume == 0,
		}
	}

	id := ulid.Make()
	e.activeMu.Lock()
	e.active[id] = time.Now()
	count := len(e.active)
	e.activeMu.Unlock()

	e.play(beep.Seq(streamer, beep.Callback(func() {
		e.finish(id)
	})))

	if count > activeAdvisory {
		e.logger.Debug("many concurrent playback instances", "active", count)
	}
	e.logger.Debug("playback started", "instance", id.String(), "active", count)
	return nil
}

// ActiveCount returns the number of in-flight playback instances.
func (e *Engine) ActiveCount() int {
	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	return len(e.active)
}

// Preload decodes the clip into the cache so the first trigger is instant,
// and surfaces problems with the configured path at startup.
func (e *Engine) Preload(path string) error {
	_, err := e.buffer(path)
	return err
}

// InvalidateCache drops the cached decode for path; the next trigger
// re-reads the file.
func (e *Engine) InvalidateCache(path string) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	delete(e.cache, path)
}

// Close releases the audio output. In-flight instances are abandoned; they
// hold no state worth preserving.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		speaker.Close()
		e.ready = false
	}
	e.logger.Debug("audio engine closed")
}

// finish removes a completed instance from the active collection.
func (e *Engine) finish(id ulid.ULID) {
	e.activeMu.Lock()
	delete(e.active, id)
	count := len(e.active)
	e.activeMu.Unlock()
	e.logger.Debug("playback finished", "instance", id.String(), "active", count)
}

// buffer returns the decoded clip for path, loading and caching it on first
// use. The empty path maps to the embedded default chime.
func (e *Engine) buffer(path string) (*beep.Buffer, error) {
	key := path
	if key == "" {
		key = DefaultClipName
	}

	e.cacheMu.RLock()
	buf, ok := e.cache[key]
	e.cacheMu.RUnlock()
	if ok {
		return buf, nil
	}

	buf, err := e.load(path)
	if err != nil {
		return nil, err
	}

	e.cacheMu.Lock()
	e.cache[key] = buf
	e.cacheMu.Unlock()
	return buf, nil
}

// load decodes a clip from disk, or the embedded chime for the empty path.
func (e *Engine) load(path string) (*beep.Buffer, error) {
	if path == "" {
		streamer, format, err := wav.Decode(bytes.NewReader(defaultChime))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded clip: %w", err)
		}
		defer func() { _ = streamer.Close() }()
		buf := beep.NewBuffer(format)
		buf.Append(streamer)
		e.logger.Debug("clip loaded", "path", DefaultClipName)
		return buf, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format %q (supported: .wav, .ogg, .mp3)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode clip: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)

	size := "unknown"
	if info, serr := os.Stat(path); serr == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	e.logger.Info("clip loaded", "path", path, "size", size,
		"duration", format.SampleRate.D(buf.Len()).Round(time.Millisecond))
	return buf, nil
}
