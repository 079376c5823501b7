package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type noteRepository struct {
	mu    sync.RWMutex
	notes map[string]*model.Note
	seq   sequence
}

func newNoteRepository() *noteRepository {
	return &noteRepository{
		notes: make(map[string]*model.Note),
	}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := note.Clone()
	created.ID = r.seq.nextID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.notes[created.ID] = created
	return created.Clone(), nil
}

func (r *noteRepository) Get(ctx context.Context, id string) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id))
	}
	return n.Clone(), nil
}

func (r *noteRepository) ListByContact(ctx context.Context, contactID string) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Note, 0)
	for _, n := range r.notes {
		if n.ContactID == contactID {
			result = append(result, n.Clone())
		}
	}
	sortNewestFirst(result, func(n *model.Note) (int64, string) {
		return n.CreatedAt.UnixNano(), n.ID
	})
	return result, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notes[note.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", note.ID))
	}

	updated := note.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.notes[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id))
	}
	delete(r.notes, id)
	return nil
}
