package dto

// NotificationLevel mirrors the toast levels of the UI.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification is a user-facing message attached to a response.
type Notification struct {
	Message string            `json:"message"`
	Level   NotificationLevel `json:"level"`
}

// NewNotification builds a Notification.
func NewNotification(level NotificationLevel, message string) Notification {
	return Notification{Message: message, Level: level}
}
