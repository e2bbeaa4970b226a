// Package notify sends desktop notifications over the session D-Bus.
// A background daemon has no terminal to report to, so playback failures
// can optionally be surfaced through org.freedesktop.Notifications.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyInterface = "org.freedesktop.Notifications.Notify"

	// expireTimeoutMs is how long notifications stay visible.
	expireTimeoutMs = int32(5000)
)

// Notifier is a minimal client for the freedesktop notification service.
type Notifier struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// New connects to the session bus. Callers treat failure as non-fatal:
// notifications are a convenience, not part of the trigger pipeline.
func New(logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Notifier{conn: conn, logger: logger}, nil
}

// Send posts a transient notification.
func (n *Notifier) Send(summary, body string) error {
	obj := n.conn.Object(notifyService, notifyPath)
	call := obj.Call(notifyInterface, 0,
		"pressplay",              // app_name
		uint32(0),                // replaces_id
		"",                       // app_icon
		summary,                  // summary
		body,                     // body
		[]string{},               // actions
		map[string]dbus.Variant{ // hints
			"urgency": dbus.MakeVariant(byte(1)),
		},
		expireTimeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (n *Notifier) Close() {
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
