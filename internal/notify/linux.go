//go:build linux

package notify

func newPlatformNotifier() Notifier {
	return &commandNotifier{bin: "notify-send", args: notifySendArgs}
}

// notifySendArgs builds the notify-send command line. Sound depends on the
// notification daemon; normal urgency is the closest portable hint.
func notifySendArgs(title, message string, sound bool) []string {
	args := []string{"--app-name=" + AppName}
	if sound {
		args = append(args, "--urgency=normal")
	}
	return append(args, title, message)
}
