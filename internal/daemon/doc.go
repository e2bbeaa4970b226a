// Package daemon orchestrates the run loop: it wires the global key
// listener to the playback engine, manages the PID marker file and the
// clip watcher, and blocks until an external termination signal or a fatal
// listener error.
package daemon
