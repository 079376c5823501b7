package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

const (
	msgInvalidStatus     = "Invalid status provided"
	msgNoClaimsSelected  = "No claims selected"
	msgStatusConflict    = "Status change needs confirmation"
	msgStatusFailed      = "Failed to update claim status"
	msgDuplicateLender   = "A claim against this lender already exists"
	msgClaimCreateFailed = "Failed to add claim"
	msgClaimDeleteFailed = "Failed to delete claim"
	msgClaimUpdateFailed = "Failed to update claim"
	msgClaimIncomplete   = "Claim details are incomplete"
)

// ClaimUseCase owns claim status transitions. Status changes are applied
// optimistically and reverted when the backend refuses them; adding and
// deleting claims waits for the backend.
type ClaimUseCase struct {
	backend interfaces.ClaimAPI
	store   *Store
	cache   *ClaimCache
	toaster *Toaster
	clock   func() time.Time
}

func newClaimUseCase(backend interfaces.ClaimAPI, store *Store, cache *ClaimCache, toaster *Toaster, clock func() time.Time) *ClaimUseCase {
	return &ClaimUseCase{
		backend: backend,
		store:   store,
		cache:   cache,
		toaster: toaster,
		clock:   clock,
	}
}

// FetchAll is ClaimCache.FetchAll
func (uc *ClaimUseCase) FetchAll(ctx context.Context) error {
	return uc.cache.FetchAll(ctx)
}

// SetStatus moves one claim to status
func (uc *ClaimUseCase) SetStatus(ctx context.Context, claimID string, status types.ClaimStatus) *model.Result {
	if res := uc.validateStatus(ctx, status); res != nil {
		return res
	}
	return uc.transition(ctx, []string{claimID}, status, false)
}

// BulkSetStatus moves every selected claim to status in a single request
func (uc *ClaimUseCase) BulkSetStatus(ctx context.Context, claimIDs []string, status types.ClaimStatus) *model.Result {
	if len(claimIDs) == 0 {
		uc.toaster.Notice(ctx, types.ToastLevelError, msgNoClaimsSelected)
		res := model.Invalid(msgNoClaimsSelected)
		res.Err = goerr.Wrap(ErrNothingSelected, "no claims selected")
		return res
	}
	if res := uc.validateStatus(ctx, status); res != nil {
		return res
	}
	return uc.transition(ctx, claimIDs, status, true)
}

// SelectClaims returns the IDs of local claims matching criteria, in store
// order
func (uc *ClaimUseCase) SelectClaims(criteria model.ClaimCriteria) []string {
	var ids []string
	uc.store.read(func(st *state) {
		for _, c := range st.claims {
			if criteria.Matches(c) {
				ids = append(ids, c.ID)
			}
		}
	})
	return ids
}

// BulkSetStatusWhere moves every local claim matching criteria to status. A
// selection that matches nothing is reported like an empty bulk selection.
func (uc *ClaimUseCase) BulkSetStatusWhere(ctx context.Context, criteria model.ClaimCriteria, status types.ClaimStatus) *model.Result {
	if res := uc.validateStatus(ctx, status); res != nil {
		return res
	}
	return uc.BulkSetStatus(ctx, uc.SelectClaims(criteria), status)
}

func (uc *ClaimUseCase) validateStatus(ctx context.Context, status types.ClaimStatus) *model.Result {
	if status.IsValid() {
		return nil
	}
	uc.toaster.Notice(ctx, types.ToastLevelError, msgInvalidStatus)
	res := model.Invalid(msgInvalidStatus)
	res.Err = goerr.Wrap(ErrInvalidStatus, "unknown claim status", goerr.V(StatusKey, status))
	return res
}

func (uc *ClaimUseCase) transition(ctx context.Context, claimIDs []string, status types.ClaimStatus, bulk bool) *model.Result {
	var previous map[string]claimSnapshot
	epoch := uc.store.begin(func(st *state) {
		previous = transitionClaims(st, claimIDs, status)
		st.claimsGen++
	})

	count := 1
	var err error
	if bulk {
		count, err = uc.backend.BulkUpdateClaimStatus(ctx, claimIDs, status)
	} else {
		err = uc.backend.UpdateClaimStatus(ctx, claimIDs[0], status)
	}

	if err != nil {
		live := uc.store.commit(epoch, func(st *state) {
			revertClaims(st, previous, status)
		})

		if errors.Is(err, interfaces.ErrConflict) {
			if live {
				uc.toaster.Notice(ctx, types.ToastLevelInfo, msgStatusConflict)
			}
			return model.Conflict(msgStatusConflict, err)
		}

		errutil.Handle(ctx, goerr.Wrap(err, "failed to update claim status",
			goerr.V(StatusKey, status), goerr.V("claim_ids", claimIDs)), "claim status update failed")
		if live {
			uc.toaster.Notice(ctx, types.ToastLevelError, msgStatusFailed)
		}
		return model.Failed(msgStatusFailed, err)
	}

	title := "Status Updated"
	if bulk {
		title = "Bulk Status Update"
	}
	now := uc.clock()
	live := uc.store.commit(epoch, func(st *state) {
		for _, id := range claimIDs {
			snap, ok := previous[id]
			if !ok {
				continue
			}
			st.appendActivity(now, snap.contactID, id, title,
				fmt.Sprintf("%s claim moved to %s (from %s)", snap.lender, status, snap.status))
			delete(previous, id)
		}
	})
	uc.cache.Invalidate()

	msg := fmt.Sprintf("Claim moved to %s", status)
	if bulk {
		msg = fmt.Sprintf("Updated %d claims to %s", count, status)
	}
	if live {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, msg)
	}

	res := model.OK(msg)
	res.Count = count
	return res
}

// AddClaim creates a claim for a contact. Lenders the backend handles as
// category 3 are answered with a confirmation email and no claim is stored.
func (uc *ClaimUseCase) AddClaim(ctx context.Context, contactID string, claim *model.Claim) *model.Result {
	input := model.NewClaimInput(contactID, claim)
	if err := input.Validate(); err != nil {
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimIncomplete)
		res := model.Invalid(msgClaimIncomplete)
		res.Err = err
		return res
	}

	epoch := uc.store.currentEpoch()
	creation, err := uc.backend.CreateClaim(ctx, contactID, input)
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			uc.toaster.Notice(ctx, types.ToastLevelInfo, msgDuplicateLender)
			return model.Conflict(msgDuplicateLender, err)
		}
		errutil.Handle(ctx, goerr.Wrap(err, "failed to create claim",
			goerr.V(ContactIDKey, contactID), goerr.V("lender", input.Lender)), "claim creation failed")
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimCreateFailed)
		return model.Failed(msgClaimCreateFailed, err)
	}

	now := uc.clock()
	if creation.Category3 {
		msg := creation.Message
		if msg == "" {
			msg = fmt.Sprintf("Confirmation email sent to client for %s", input.Lender)
		}
		if uc.store.commit(epoch, func(st *state) {
			st.appendActivity(now, contactID, "", "Confirmation Sent", msg)
		}) {
			uc.toaster.Notice(ctx, types.ToastLevelSuccess, msg)
		}
		res := model.OK(msg)
		res.Category3 = true
		return res
	}

	created := creation.Claim
	if created == nil {
		err := goerr.Wrap(interfaces.ErrMalformedResponse, "claim creation returned no claim")
		errutil.Handle(ctx, err, "claim creation failed")
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimCreateFailed)
		return model.Failed(msgClaimCreateFailed, err)
	}

	if uc.store.commit(epoch, func(st *state) {
		if st.findClaim(created.ID) == nil {
			st.claims = append(st.claims, created.Clone())
		}
		st.mirrorContacts(map[string]struct{}{created.ContactID: {}}, false)
		st.appendActivity(now, created.ContactID, created.ID, "Claim Added",
			fmt.Sprintf("%s claim added", created.Lender))
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, fmt.Sprintf("%s claim added", created.Lender))
	}
	uc.cache.Invalidate()

	res := model.OK("Claim added")
	res.ID = created.ID
	return res
}

// UpdateClaim edits a claim's details once the backend accepts them. The
// status is never part of the edit.
func (uc *ClaimUseCase) UpdateClaim(ctx context.Context, claimID string, details model.ClaimDetails) *model.Result {
	if err := details.Validate(); err != nil {
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimIncomplete)
		res := model.Invalid(msgClaimIncomplete)
		res.Err = err
		return res
	}

	epoch := uc.store.currentEpoch()
	updated, err := uc.backend.UpdateClaim(ctx, claimID, details)
	if err == nil && updated == nil {
		err = goerr.Wrap(interfaces.ErrMalformedResponse, "claim update returned no claim")
	}
	if err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			uc.toaster.Notice(ctx, types.ToastLevelInfo, msgDuplicateLender)
			return model.Conflict(msgDuplicateLender, err)
		}
		errutil.Handle(ctx, goerr.Wrap(err, "failed to update claim", goerr.V(ClaimIDKey, claimID)), "claim update failed")
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimUpdateFailed)
		return model.Failed(msgClaimUpdateFailed, err)
	}

	now := uc.clock()
	if uc.store.commit(epoch, func(st *state) {
		claim := st.findClaim(claimID)
		if claim == nil {
			return
		}
		claim.ApplyDetails(updated.Details())
		claim.UpdatedAt = updated.UpdatedAt
		st.mirrorContacts(map[string]struct{}{claim.ContactID: {}}, false)
		st.appendActivity(now, claim.ContactID, claimID, "Claim Updated",
			fmt.Sprintf("%s claim details updated", claim.Lender))
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Claim updated")
	}
	uc.cache.Invalidate()

	res := model.OK("Claim updated")
	res.ID = claimID
	return res
}

// DeleteClaim removes a claim once the backend acknowledges it
func (uc *ClaimUseCase) DeleteClaim(ctx context.Context, claimID string) *model.Result {
	epoch := uc.store.currentEpoch()
	if err := uc.backend.DeleteClaim(ctx, claimID); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to delete claim", goerr.V(ClaimIDKey, claimID)), "claim deletion failed")
		uc.toaster.Notice(ctx, types.ToastLevelError, msgClaimDeleteFailed)
		return model.Failed(msgClaimDeleteFailed, err)
	}

	now := uc.clock()
	if uc.store.commit(epoch, func(st *state) {
		removed := st.findClaim(claimID)
		if removed == nil {
			return
		}
		st.claims = filterOut(st.claims, func(c *model.Claim) bool { return c.ID == claimID })
		st.mirrorContacts(map[string]struct{}{removed.ContactID: {}}, true)
		st.appendActivity(now, removed.ContactID, claimID, "Claim Deleted",
			fmt.Sprintf("%s claim deleted", removed.Lender))
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Claim deleted")
	}
	uc.cache.Invalidate()

	return model.OK("Claim deleted")
}
