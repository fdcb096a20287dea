package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"planner/internal/planner"
)

// CompletionWatcher sends one notification per day, the first time every
// task of that day is completed. Register Observe with
// planner.OnTaskListChanged.
type CompletionWatcher struct {
	mu       sync.Mutex
	notifier Notifier
	sound    bool
	today    func() string
	log      *log.Logger

	notified string // date key of the last notification
}

// NewCompletionWatcher returns a watcher that reads the current date key from today.
func NewCompletionWatcher(n Notifier, sound bool, today func() string, logger *log.Logger) *CompletionWatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CompletionWatcher{notifier: n, sound: sound, today: today, log: logger}
}

// Observe inspects a task list change and notifies when today became fully
// completed.
func (w *CompletionWatcher) Observe(ev planner.TaskListChanged) {
	today := w.today()
	st, ok := ev.Stats[today]
	if !ok || !st.HasTasks || st.Completed < st.Total {
		return
	}

	w.mu.Lock()
	if w.notified == today {
		w.mu.Unlock()
		return
	}
	w.notified = today
	w.mu.Unlock()

	title := "All done for today"
	msg := fmt.Sprintf("%d of %d tasks completed", st.Completed, st.Total)
	send := w.notifier.Send
	if w.sound {
		send = w.notifier.SendWithSound
	}
	if err := send(title, msg); err != nil {
		w.log.Warn("notification failed", "err", err)
	}
}
