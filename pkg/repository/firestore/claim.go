package firestore

import (
	"context"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type claimRepository struct {
	collection
}

func (r *claimRepository) Create(ctx context.Context, claim *model.Claim) (*model.Claim, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := claim.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create claim", goerr.V("id", id))
	}
	return created, nil
}

func (r *claimRepository) Get(ctx context.Context, id string) (*model.Claim, error) {
	return get[model.Claim](ctx, &r.collection, id, "claim")
}

func (r *claimRepository) List(ctx context.Context) ([]*model.Claim, error) {
	claims, err := collect[model.Claim](r.ref().Documents(ctx), "claims")
	if err != nil {
		return nil, err
	}
	model.SortClaims(claims)
	return claims, nil
}

// ListByContact sorts in process so that only the single field ContactID
// index is needed
func (r *claimRepository) ListByContact(ctx context.Context, contactID string) ([]*model.Claim, error) {
	iter := r.ref().Where("ContactID", "==", contactID).Documents(ctx)
	claims, err := collect[model.Claim](iter, "claims")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list claims by contact", goerr.V("contact_id", contactID))
	}
	model.SortClaims(claims)
	return claims, nil
}

func (r *claimRepository) Update(ctx context.Context, claim *model.Claim) (*model.Claim, error) {
	existing, err := r.Get(ctx, claim.ID)
	if err != nil {
		return nil, err
	}

	updated := claim.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(claim.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update claim", goerr.V("id", claim.ID))
	}
	return updated, nil
}

func (r *claimRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, "claim")
}
