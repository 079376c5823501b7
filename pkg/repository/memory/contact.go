package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type contactRepository struct {
	mu       sync.RWMutex
	contacts map[string]*model.Contact
	seq      sequence
}

func newContactRepository() *contactRepository {
	return &contactRepository{
		contacts: make(map[string]*model.Contact),
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := contact.Clone()
	created.ID = r.seq.nextID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.contacts[created.ID] = created
	return created.Clone(), nil
}

func (r *contactRepository) Get(ctx context.Context, id string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "contact not found", goerr.V("id", id))
	}
	return c.Clone(), nil
}

func (r *contactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		contacts = append(contacts, c.Clone())
	}
	sortNewestFirst(contacts, func(c *model.Contact) (int64, string) {
		return c.CreatedAt.UnixNano(), c.ID
	})
	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.contacts[contact.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "contact not found", goerr.V("id", contact.ID))
	}

	updated := contact.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.contacts[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return goerr.Wrap(ErrNotFound, "contact not found", goerr.V("id", id))
	}
	delete(r.contacts, id)
	return nil
}
