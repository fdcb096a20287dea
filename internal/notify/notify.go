// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux (notify-send).
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// AppName identifies the planner to the notification daemon.
const AppName = "planner"

// sendTimeout bounds a single notifier invocation.
const sendTimeout = 5 * time.Second

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// commandNotifier delivers notifications by running an external program.
type commandNotifier struct {
	bin  string
	args func(title, message string, sound bool) []string
}

func (n *commandNotifier) Send(title, message string) error {
	return n.run(title, message, false)
}

func (n *commandNotifier) SendWithSound(title, message string) error {
	return n.run(title, message, true)
}

func (n *commandNotifier) IsSupported() bool {
	_, err := exec.LookPath(n.bin)
	return err == nil
}

func (n *commandNotifier) run(title, message string, sound bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, n.bin, n.args(title, message, sound)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", n.bin, err, out)
	}
	return nil
}
