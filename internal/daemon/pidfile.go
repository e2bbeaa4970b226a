package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// PIDFile is the optional process-id marker consumed by external
// start/stop tooling. It carries no runtime state.
type PIDFile struct {
	path string
}

// NewPIDFile creates a marker for the given path.
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the marker location.
func (p *PIDFile) Path() string {
	return p.path
}

// Write records the current process id.
func (p *PIDFile) Write() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create pid file directory: %w", err)
	}
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(p.path, []byte(pid+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

// Remove deletes the marker. Missing files are not an error.
func (p *PIDFile) Remove() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
