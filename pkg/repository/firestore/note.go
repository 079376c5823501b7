package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type noteRepository struct {
	collection
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := note.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V("id", id))
	}
	return created, nil
}

func (r *noteRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	return get[model.Note](ctx, &r.collection, id, "note")
}

// ListByContact needs the (ContactID ASC, CreatedAt DESC) composite index
func (r *noteRepository) ListByContact(ctx context.Context, contactID string) ([]*model.Note, error) {
	iter := r.ref().
		Where("ContactID", "==", contactID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)

	notes, err := collect[model.Note](iter, "notes")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V("contact_id", contactID))
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) (*model.Note, error) {
	existing, err := r.Get(ctx, note.ID)
	if err != nil {
		return nil, err
	}

	updated := note.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(note.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update note", goerr.V("id", note.ID))
	}
	return updated, nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, "note")
}
