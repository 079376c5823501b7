package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type claimRepository struct {
	mu     sync.RWMutex
	claims map[string]*model.Claim
	seq    sequence
}

func newClaimRepository() *claimRepository {
	return &claimRepository{
		claims: make(map[string]*model.Claim),
	}
}

func (r *claimRepository) Create(ctx context.Context, claim *model.Claim) (*model.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := claim.Clone()
	created.ID = r.seq.nextID()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.claims[created.ID] = created
	return created.Clone(), nil
}

func (r *claimRepository) Get(ctx context.Context, id string) (*model.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.claims[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "claim not found", goerr.V("id", id))
	}
	return c.Clone(), nil
}

func (r *claimRepository) List(ctx context.Context) ([]*model.Claim, error) {
	return r.filter(func(*model.Claim) bool { return true }), nil
}

func (r *claimRepository) ListByContact(ctx context.Context, contactID string) ([]*model.Claim, error) {
	return r.filter(func(c *model.Claim) bool { return c.ContactID == contactID }), nil
}

func (r *claimRepository) filter(match func(*model.Claim) bool) []*model.Claim {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claims := make([]*model.Claim, 0)
	for _, c := range r.claims {
		if match(c) {
			claims = append(claims, c.Clone())
		}
	}
	model.SortClaims(claims)
	return claims
}

func (r *claimRepository) Update(ctx context.Context, claim *model.Claim) (*model.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.claims[claim.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "claim not found", goerr.V("id", claim.ID))
	}

	updated := claim.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.claims[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.claims[id]; !ok {
		return goerr.Wrap(ErrNotFound, "claim not found", goerr.V("id", id))
	}
	delete(r.claims, id)
	return nil
}
