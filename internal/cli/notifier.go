package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/reschedule"
)

// termNotifier prints session notifications as styled one-line toasts.
type termNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ reschedule.Notifier = (*termNotifier)(nil)

func newTermNotifier(w io.Writer) *termNotifier {
	return &termNotifier{w: w}
}

func (n *termNotifier) Notify(level domain.NotificationLevel, message string) {
	var line string
	switch level {
	case domain.LevelSuccess:
		line = successStyle.Render("✓ " + message)
	case domain.LevelError:
		line = errorStyle.Render("✗ " + message)
	default:
		line = infoStyle.Render("· " + message)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, line)
}
