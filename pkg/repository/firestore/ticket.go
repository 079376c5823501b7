package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type ticketRepository struct {
	collection
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	created := ticket.Clone()
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket", goerr.V("id", id))
	}
	return created, nil
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return get[model.Ticket](ctx, &r.collection, id, "ticket")
}

func (r *ticketRepository) List(ctx context.Context) ([]*model.Ticket, error) {
	iter := r.ref().OrderBy("CreatedAt", firestore.Desc).Documents(ctx)
	items, err := collect[model.Ticket](iter, "tickets")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tickets")
	}
	return items, nil
}

// ListByUser needs the (UserID ASC, CreatedAt DESC) composite index
func (r *ticketRepository) ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	iter := r.ref().
		Where("UserID", "==", userID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)

	items, err := collect[model.Ticket](iter, "tickets")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tickets", goerr.V("user_id", userID))
	}
	return items, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	existing, err := r.Get(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	updated := ticket.Clone()
	updated.CreatedAt = existing.CreatedAt
	if _, err := r.doc(ticket.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update ticket", goerr.V("id", ticket.ID))
	}
	return updated, nil
}
