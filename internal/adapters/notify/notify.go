package notify

import (
	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
)

// LogNotifier writes fired reminders to the structured log. Real push
// delivery is out of scope for the demo, so the log line is the
// user-visible notification.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.WithComponent("notifier")}
}

// Notify logs the reminder notification
func (n *LogNotifier) Notify(r entities.Reminder) {
	n.logger.Infow("Health Helper Reminder",
		"reminder_id", r.ID,
		"type", r.Type,
		"title", r.Title,
		"time", r.Time,
		"frequency", r.Frequency,
	)
}
