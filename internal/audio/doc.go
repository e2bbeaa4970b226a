// Package audio provides trigger-driven sound playback.
// It uses the beep library to decode WAV, OGG, and MP3 clips and starts an
// independent, self-terminating playback instance per trigger on the shared
// speaker mixer, so rapid triggers overlap instead of queueing.
package audio
