package types

import "fmt"

// NotificationType classifies a persistent notification
type NotificationType string

const (
	NotificationTypeActionError      NotificationType = "action_error"
	NotificationTypeTaskAssigned     NotificationType = "task_assigned"
	NotificationTypeMeetingScheduled NotificationType = "meeting_scheduled"
	NotificationTypeFollowUpDue      NotificationType = "follow_up_due"
	NotificationTypeTaskCompleted    NotificationType = "task_completed"
	NotificationTypeTicketRaised     NotificationType = "ticket_raised"
	NotificationTypeTicketResolved   NotificationType = "ticket_resolved"
)

// AllNotificationTypes returns all valid notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationTypeActionError,
		NotificationTypeTaskAssigned,
		NotificationTypeMeetingScheduled,
		NotificationTypeFollowUpDue,
		NotificationTypeTaskCompleted,
		NotificationTypeTicketRaised,
		NotificationTypeTicketResolved,
	}
}

// IsValid checks if the notification type is valid
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeActionError,
		NotificationTypeTaskAssigned,
		NotificationTypeMeetingScheduled,
		NotificationTypeFollowUpDue,
		NotificationTypeTaskCompleted,
		NotificationTypeTicketRaised,
		NotificationTypeTicketResolved:
		return true
	default:
		return false
	}
}

// Priority orders notification types. Only the highest priority type is
// promoted to an alert toast.
func (t NotificationType) Priority() int {
	switch t {
	case NotificationTypeActionError:
		return 2
	case "":
		return 0
	default:
		return 1
	}
}

// IsAlert reports whether notifications of this type are promoted to alerts
func (t NotificationType) IsAlert() bool {
	return t.Priority() == NotificationTypeActionError.Priority()
}

func (t NotificationType) String() string {
	return string(t)
}

// ParseNotificationType parses a string into a NotificationType
func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}

// ToastKind separates feedback notices from promoted alerts
type ToastKind string

const (
	ToastKindNotice ToastKind = "notice"
	ToastKindAlert  ToastKind = "alert"
)

// ToastLevel is the severity shown on a toast
type ToastLevel string

const (
	ToastLevelSuccess ToastLevel = "success"
	ToastLevelError   ToastLevel = "error"
	ToastLevelInfo    ToastLevel = "info"
)
