package model

import (
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// Notification is a server stored, per user notification
type Notification struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"userId"`
	Type          types.NotificationType `json:"type"`
	Title         string                 `json:"title"`
	Message       string                 `json:"message"`
	Link          string                 `json:"link,omitempty"`
	RelatedTaskID string                 `json:"relatedTaskId,omitempty"`
	ContactID     string                 `json:"contactId,omitempty"`
	ClaimID       string                 `json:"claimId,omitempty"`
	IsRead        bool                   `json:"isRead"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// Clone returns a copy of the notification
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	copied := *n
	return &copied
}

// IsUnreadAlert reports whether n should raise an alert toast
func (n *Notification) IsUnreadAlert() bool {
	return n.Type.IsAlert() && !n.IsRead
}

// Toast is a transient, in memory message shown to the user. It is never
// persisted.
type Toast struct {
	ID             string
	Kind           types.ToastKind
	Level          types.ToastLevel
	Title          string
	Message        string
	NotificationID string
	Exiting        bool
	CreatedAt      time.Time
}

// Clone returns a copy of the toast
func (t *Toast) Clone() *Toast {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

// ToastTimings controls how long toasts stay visible and how long their exit
// phase lasts before removal.
type ToastTimings struct {
	NoticeLifetime time.Duration
	NoticeExit     time.Duration
	AlertLifetime  time.Duration
	AlertExit      time.Duration
}

// DefaultToastTimings returns the standard toast durations
func DefaultToastTimings() ToastTimings {
	return ToastTimings{
		NoticeLifetime: 3 * time.Second,
		NoticeExit:     400 * time.Millisecond,
		AlertLifetime:  10 * time.Second,
		AlertExit:      500 * time.Millisecond,
	}
}

// Lifetime returns the visible duration for the toast kind
func (t ToastTimings) Lifetime(kind types.ToastKind) time.Duration {
	if kind == types.ToastKindAlert {
		return t.AlertLifetime
	}
	return t.NoticeLifetime
}

// Exit returns the exit phase duration for the toast kind
func (t ToastTimings) Exit(kind types.ToastKind) time.Duration {
	if kind == types.ToastKindAlert {
		return t.AlertExit
	}
	return t.NoticeExit
}
