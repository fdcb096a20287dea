//go:build !darwin && !linux

package notify

// Notifications are not supported here; New falls back to a no-op notifier.
func newPlatformNotifier() Notifier {
	return nil
}
