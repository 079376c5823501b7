package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) ListClaims(ctx context.Context) ([]*model.Claim, error) {
	claims, err := s.repo.Claim().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list claims")
	}
	return claims, nil
}

func (s *Service) UpdateClaimStatus(ctx context.Context, claimID string, status types.ClaimStatus) error {
	if !status.IsValid() {
		return goerr.Wrap(interfaces.ErrInvalidInput, "invalid claim status", goerr.V("status", status))
	}

	claim, err := s.repo.Claim().Get(ctx, claimID)
	if err != nil {
		return goerr.Wrap(err, "failed to get claim", goerr.V("claim_id", claimID))
	}
	return s.moveClaim(ctx, claim, status, "status_changed")
}

func (s *Service) BulkUpdateClaimStatus(ctx context.Context, claimIDs []string, status types.ClaimStatus) (int, error) {
	if !status.IsValid() {
		return 0, goerr.Wrap(interfaces.ErrInvalidInput, "invalid claim status", goerr.V("status", status))
	}
	if len(claimIDs) == 0 {
		return 0, goerr.Wrap(interfaces.ErrInvalidInput, "no claim IDs given")
	}

	updated := 0
	for _, id := range claimIDs {
		claim, err := s.repo.Claim().Get(ctx, id)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return updated, goerr.Wrap(err, "failed to get claim", goerr.V("claim_id", id))
		}
		if err := s.moveClaim(ctx, claim, status, "bulk_status_changed"); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *Service) moveClaim(ctx context.Context, claim *model.Claim, status types.ClaimStatus, actionType string) error {
	from := claim.Status
	claim.Status = status
	claim.DaysInStage = 0
	if _, err := s.repo.Claim().Update(ctx, claim); err != nil {
		return goerr.Wrap(err, "failed to update claim", goerr.V("claim_id", claim.ID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       claim.ContactID,
		ClaimID:        claim.ID,
		ActionType:     actionType,
		ActionCategory: types.ActionCategoryClaims,
		Description:    fmt.Sprintf("%s claim moved from %s to %s", claim.Lender, from, status),
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(status),
		},
	})
	s.refreshMirror(ctx, claim.ContactID)
	return nil
}

// CreateClaim adds a claim to a contact. A category 3 lender gets a
// confirmation email instead, and a second claim against the same lender is a
// conflict.
func (s *Service) CreateClaim(ctx context.Context, contactID string, claim *model.Claim) (*model.ClaimCreation, error) {
	if err := claim.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid claim", goerr.V("reason", err.Error()))
	}

	contact, err := s.repo.Contact().Get(ctx, contactID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get contact", goerr.V("contact_id", contactID))
	}

	if s.isCategory3(claim.Lender) {
		msg := fmt.Sprintf("Confirmation email sent to client for %s", claim.Lender)
		s.appendLog(ctx, &model.ActionLogEntry{
			ClientID:       contactID,
			ActionType:     "confirmation_sent",
			ActionCategory: types.ActionCategoryCommunication,
			Description:    msg,
			Metadata:       map[string]string{"lender": claim.Lender},
		})
		return &model.ClaimCreation{Category3: true, Message: msg}, nil
	}

	existing, err := s.repo.Claim().ListByContact(ctx, contactID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list claims", goerr.V("contact_id", contactID))
	}
	for _, c := range existing {
		if sameLender(c.Lender, claim.Lender) {
			return nil, goerr.Wrap(interfaces.ErrConflict, "claim against lender already exists",
				goerr.V("contact_id", contactID), goerr.V("lender", claim.Lender))
		}
	}

	input := model.NewClaimInput(contactID, claim)
	input.ContactName = contact.DisplayName()

	created, err := s.repo.Claim().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create claim", goerr.V("contact_id", contactID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       contactID,
		ClaimID:        created.ID,
		ActionType:     "claim_created",
		ActionCategory: types.ActionCategoryClaims,
		Description:    fmt.Sprintf("%s claim created", created.Lender),
	})
	s.refreshMirror(ctx, contactID)

	return &model.ClaimCreation{Claim: created}, nil
}

// UpdateClaim edits the claim's details. Renaming the lender to one the contact
// already has a claim against is a conflict.
func (s *Service) UpdateClaim(ctx context.Context, claimID string, details model.ClaimDetails) (*model.Claim, error) {
	if err := details.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid claim details", goerr.V("reason", err.Error()))
	}

	claim, err := s.repo.Claim().Get(ctx, claimID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get claim", goerr.V("claim_id", claimID))
	}

	if !sameLender(claim.Lender, details.Lender) {
		siblings, err := s.repo.Claim().ListByContact(ctx, claim.ContactID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list claims", goerr.V("contact_id", claim.ContactID))
		}
		for _, c := range siblings {
			if c.ID != claim.ID && sameLender(c.Lender, details.Lender) {
				return nil, goerr.Wrap(interfaces.ErrConflict, "claim against lender already exists",
					goerr.V("contact_id", claim.ContactID), goerr.V("lender", details.Lender))
			}
		}
	}

	claim.ApplyDetails(details)
	updated, err := s.repo.Claim().Update(ctx, claim)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update claim", goerr.V("claim_id", claimID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       updated.ContactID,
		ClaimID:        updated.ID,
		ActionType:     "claim_updated",
		ActionCategory: types.ActionCategoryClaims,
		Description:    fmt.Sprintf("%s claim details updated", updated.Lender),
	})
	s.refreshMirror(ctx, updated.ContactID)
	return updated, nil
}

func sameLender(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s *Service) DeleteClaim(ctx context.Context, claimID string) error {
	claim, err := s.repo.Claim().Get(ctx, claimID)
	if err != nil {
		return goerr.Wrap(err, "failed to get claim", goerr.V("claim_id", claimID))
	}
	if err := s.repo.Claim().Delete(ctx, claimID); err != nil {
		return goerr.Wrap(err, "failed to delete claim", goerr.V("claim_id", claimID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       claim.ContactID,
		ClaimID:        claimID,
		ActionType:     "claim_deleted",
		ActionCategory: types.ActionCategoryClaims,
		Description:    fmt.Sprintf("%s claim deleted", claim.Lender),
	})
	s.refreshMirror(ctx, claim.ContactID)
	return nil
}
