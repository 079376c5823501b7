package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*model.Ticket
	seq     sequence
}

func newTicketRepository() *ticketRepository {
	return &ticketRepository{
		tickets: make(map[string]*model.Ticket),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := ticket.Clone()
	created.ID = r.seq.nextID()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.tickets[created.ID] = created
	return created.Clone(), nil
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}
	return t.Clone(), nil
}

func (r *ticketRepository) List(ctx context.Context) ([]*model.Ticket, error) {
	return r.list(func(*model.Ticket) bool { return true }), nil
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	return r.list(func(t *model.Ticket) bool { return t.UserID == userID }), nil
}

func (r *ticketRepository) list(match func(*model.Ticket) bool) []*model.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Ticket, 0)
	for _, t := range r.tickets {
		if match(t) {
			result = append(result, t.Clone())
		}
	}
	sortNewestFirst(result, func(t *model.Ticket) (int64, string) {
		return t.CreatedAt.UnixNano(), t.ID
	})
	return result
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tickets[ticket.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", ticket.ID))
	}

	updated := ticket.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.tickets[updated.ID] = updated
	return updated.Clone(), nil
}
