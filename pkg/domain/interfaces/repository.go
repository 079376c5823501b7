package interfaces

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/model"
)

// Repository is the storage behind the reference backend
type Repository interface {
	Contact() ContactRepository
	Claim() ClaimRepository
	Task() TaskRepository
	Notification() NotificationRepository
	ActionLog() ActionLogRepository
	Note() NoteRepository
	Ticket() TicketRepository

	Close() error
}

// ContactRepository stores contacts
type ContactRepository interface {
	// Create stores a new contact with an auto-generated ID
	Create(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	Get(ctx context.Context, id string) (*model.Contact, error)

	// List returns all contacts, newest first
	List(ctx context.Context) ([]*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ClaimRepository stores claims
type ClaimRepository interface {
	Create(ctx context.Context, claim *model.Claim) (*model.Claim, error)
	Get(ctx context.Context, id string) (*model.Claim, error)

	// List returns all claims ordered by creation
	List(ctx context.Context) ([]*model.Claim, error)

	// ListByContact returns the contact's claims ordered by creation
	ListByContact(ctx context.Context, contactID string) ([]*model.Claim, error)
	Update(ctx context.Context, claim *model.Claim) (*model.Claim, error)
	Delete(ctx context.Context, id string) error
}

// TaskRepository stores calendar tasks
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)

	// List returns tasks matching filter ordered by date and start time
	List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository stores per user notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	Get(ctx context.Context, id string) (*model.Notification, error)

	// ListByUser returns the user's notifications, newest first
	ListByUser(ctx context.Context, userID string) ([]*model.Notification, error)
	Update(ctx context.Context, n *model.Notification) (*model.Notification, error)
}

// ActionLogRepository stores the append-only audit trail
type ActionLogRepository interface {
	Append(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error)

	// ListByClient returns the client's entries, newest first
	ListByClient(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error)

	// List returns all entries, newest first
	List(ctx context.Context) ([]*model.ActionLogEntry, error)
}

// NoteRepository stores contact notes
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) (*model.Note, error)
	Get(ctx context.Context, id string) (*model.Note, error)

	// ListByContact returns the contact's notes, newest first
	ListByContact(ctx context.Context, contactID string) ([]*model.Note, error)
	Update(ctx context.Context, note *model.Note) (*model.Note, error)
	Delete(ctx context.Context, id string) error
}

// TicketRepository stores support tickets
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	Get(ctx context.Context, id string) (*model.Ticket, error)

	// List returns all tickets, newest first
	List(ctx context.Context) ([]*model.Ticket, error)

	// ListByUser returns the tickets the user raised, newest first
	ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error)
	Update(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
}
