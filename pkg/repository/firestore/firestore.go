package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned (wrapped) when a document does not exist
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client       *firestore.Client
	contact      *contactRepository
	claim        *claimRepository
	task         *taskRepository
	notification *notificationRepository
	actionLog    *actionLogRepository
	note         *noteRepository
	ticket       *ticketRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, counters included
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		for _, c := range f.collections() {
			c.prefix = prefix
		}
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		contact:      &contactRepository{collection: newCollection(client, "contacts")},
		claim:        &claimRepository{collection: newCollection(client, "claims")},
		task:         &taskRepository{collection: newCollection(client, "tasks")},
		notification: &notificationRepository{collection: newCollection(client, "notifications")},
		actionLog:    &actionLogRepository{collection: newCollection(client, "action_logs")},
		note:         &noteRepository{collection: newCollection(client, "notes")},
		ticket:       &ticketRepository{collection: newCollection(client, "tickets")},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) collections() []*collection {
	return []*collection{
		&f.contact.collection,
		&f.claim.collection,
		&f.task.collection,
		&f.notification.collection,
		&f.actionLog.collection,
		&f.note.collection,
		&f.ticket.collection,
	}
}

func (f *Firestore) Contact() interfaces.ContactRepository {
	return f.contact
}

func (f *Firestore) Claim() interfaces.ClaimRepository {
	return f.claim
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) ActionLog() interfaces.ActionLogRepository {
	return f.actionLog
}

func (f *Firestore) Note() interfaces.NoteRepository {
	return f.note
}

func (f *Firestore) Ticket() interfaces.TicketRepository {
	return f.ticket
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
