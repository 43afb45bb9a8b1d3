package reschedule

import (
	"context"
	"log/slog"
	"sync"

	"github.com/globetrotter/planner/internal/domain"
)

// Notifier receives user-facing messages about the outcome of a gesture.
type Notifier interface {
	Notify(level domain.NotificationLevel, message string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(level domain.NotificationLevel, message string)

// Notify calls f.
func (f NotifierFunc) Notify(level domain.NotificationLevel, message string) {
	f(level, message)
}

// LogNotifier writes notifications to a structured logger.
// Error-level notifications are logged at WARN.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs message with its level under the "kind" key.
func (n LogNotifier) Notify(level domain.NotificationLevel, message string) {
	lvl := slog.LevelInfo
	if level == domain.LevelError {
		lvl = slog.LevelWarn
	}
	n.Logger.Log(context.Background(), lvl, message, "kind", string(level))
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []domain.Notification
}

// Notify appends the notification.
func (r *Recorder) Notify(level domain.NotificationLevel, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, domain.Notification{Level: level, Message: message})
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.items...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return domain.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Multi fans a notification out to every notifier in order.
func Multi(ns ...Notifier) Notifier {
	return NotifierFunc(func(level domain.NotificationLevel, message string) {
		for _, n := range ns {
			n.Notify(level, message)
		}
	})
}
