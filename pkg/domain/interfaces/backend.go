package interfaces

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// ClaimAPI is the claims resource of the case management backend
type ClaimAPI interface {
	// ListClaims returns every claim visible to the caller
	ListClaims(ctx context.Context) ([]*model.Claim, error)

	// UpdateClaimStatus moves one claim to status
	UpdateClaimStatus(ctx context.Context, claimID string, status types.ClaimStatus) error

	// BulkUpdateClaimStatus moves all claims to status in one request and
	// returns the number of claims the backend updated
	BulkUpdateClaimStatus(ctx context.Context, claimIDs []string, status types.ClaimStatus) (int, error)

	// CreateClaim adds a claim to a contact. A duplicate lender returns ErrConflict.
	CreateClaim(ctx context.Context, contactID string, claim *model.Claim) (*model.ClaimCreation, error)

	// UpdateClaim replaces the claim's editable details and returns the stored
	// claim. A lender already claimed by the same contact returns ErrConflict.
	UpdateClaim(ctx context.Context, claimID string, details model.ClaimDetails) (*model.Claim, error)

	DeleteClaim(ctx context.Context, claimID string) error
}

// ContactAPI is the contacts resource of the backend
type ContactAPI interface {
	ListContacts(ctx context.Context, query model.ContactQuery) (*model.ContactPage, error)
	CreateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	UpdateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error)

	// DeleteContact removes the contact together with its claims and notes
	DeleteContact(ctx context.Context, contactID string) error
}

// TaskAPI is the calendar resource of the backend
type TaskAPI interface {
	ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID string) error

	// CompleteTask marks the task completed; the backend stamps completion time
	CompleteTask(ctx context.Context, taskID, completedBy string) (*model.Task, error)

	// RescheduleTask moves the task and may mint a successor occurrence
	RescheduleTask(ctx context.Context, taskID string, req model.RescheduleRequest) (*model.Reschedule, error)
}

// NotificationAPI is the persistent notifications resource of the backend
type NotificationAPI interface {
	ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// ReminderAPI asks the backend to dispatch due task reminders
type ReminderAPI interface {
	// CheckReminders returns the number of reminders the backend sent
	CheckReminders(ctx context.Context) (int, error)
}

// NoteAPI is the contact notes resource of the backend
type NoteAPI interface {
	ListNotes(ctx context.Context, contactID string) ([]*model.Note, error)
	CreateNote(ctx context.Context, note *model.Note) (*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

// ActionLogAPI reads the backend's audit trail
type ActionLogAPI interface {
	ListActionLogs(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error)
	ListAllActionLogs(ctx context.Context) ([]*model.ActionLogEntry, error)
}

// TicketAPI is the support tickets resource of the backend
type TicketAPI interface {
	// ListTickets returns the tickets visible to userID
	ListTickets(ctx context.Context, userID string) ([]*model.Ticket, error)
	CreateTicket(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	ResolveTicket(ctx context.Context, ticketID, resolvedBy, resolvedByName string) (*model.Ticket, error)
}

// Backend is the full REST surface the client synchronises against
type Backend interface {
	ClaimAPI
	ContactAPI
	TaskAPI
	NotificationAPI
	ReminderAPI
	NoteAPI
	ActionLogAPI
	TicketAPI
}
