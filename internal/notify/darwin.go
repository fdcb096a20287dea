//go:build darwin

package notify

import (
	"fmt"
	"strings"
)

func newPlatformNotifier() Notifier {
	return &commandNotifier{bin: "osascript", args: osascriptArgs}
}

func osascriptArgs(title, message string, sound bool) []string {
	script := fmt.Sprintf("display notification %s with title %s", appleScriptString(message), appleScriptString(title))
	if sound {
		script += ` sound name "default"`
	}
	return []string{"-e", script}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
