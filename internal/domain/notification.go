package domain

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a toast-style message reported back to the user after a
// rescheduling decision.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}
