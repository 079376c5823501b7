package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type contactRepository struct {
	collection
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := contact.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create contact", goerr.V("id", id))
	}
	return created, nil
}

func (r *contactRepository) Get(ctx context.Context, id string) (*model.Contact, error) {
	return get[model.Contact](ctx, &r.collection, id, "contact")
}

func (r *contactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	iter := r.ref().OrderBy("CreatedAt", firestore.Desc).Documents(ctx)
	return collect[model.Contact](iter, "contacts")
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	existing, err := r.Get(ctx, contact.ID)
	if err != nil {
		return nil, err
	}

	updated := contact.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(contact.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update contact", goerr.V("id", contact.ID))
	}
	return updated, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, "contact")
}
