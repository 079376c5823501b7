package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ListContacts returns one page of contacts, newest first, matching the
// query's filter. Page defaults to 1 and limit to DefaultPageLimit.
func (s *Service) ListContacts(ctx context.Context, query model.ContactQuery) (*model.ContactPage, error) {
	page, limit := query.Page, query.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = model.DefaultPageLimit
	}

	all, err := s.repo.Contact().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list contacts")
	}

	matched := make([]*model.Contact, 0, len(all))
	for _, c := range all {
		if matchContact(c, query.Filter) {
			matched = append(matched, c)
		}
	}

	total := len(matched)
	totalPages := model.TotalPages(total, limit)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &model.ContactPage{
		Contacts:   matched[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}, nil
}

func matchContact(c *model.Contact, f model.ContactFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hit := false
		for _, field := range []string{c.DisplayName(), c.Email, c.Phone, c.Address.PostalCode, c.ClientID} {
			if strings.Contains(strings.ToLower(field), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.FullName != "" && !containsFold(c.DisplayName(), f.FullName) {
		return false
	}
	if f.Email != "" && !containsFold(c.Email, f.Email) {
		return false
	}
	if f.Phone != "" && !strings.Contains(digits(c.Phone), digits(f.Phone)) {
		return false
	}
	if f.Postcode != "" && !containsFold(strings.ReplaceAll(c.Address.PostalCode, " ", ""), strings.ReplaceAll(f.Postcode, " ", "")) {
		return false
	}
	if f.ClientID != "" && c.ClientID != f.ClientID {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Service) CreateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid contact", goerr.V("reason", err.Error()))
	}

	input := contact.Clone()
	if input.FullName == "" {
		input.FullName = input.DisplayName()
	}
	input.MirrorPrimary(nil)

	created, err := s.repo.Contact().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create contact")
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       created.ID,
		ActionType:     "contact_created",
		ActionCategory: types.ActionCategoryAccount,
		Description:    fmt.Sprintf("Contact %s created", created.DisplayName()),
	})
	return created, nil
}

// UpdateContact stores the edited contact. The primary claim mirror is kept
// from the stored copy.
func (s *Service) UpdateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid contact", goerr.V("reason", err.Error()))
	}

	existing, err := s.repo.Contact().Get(ctx, contact.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get contact", goerr.V("contact_id", contact.ID))
	}

	input := contact.Clone()
	input.Status = existing.Status
	input.Lender = existing.Lender
	input.ClaimValue = existing.ClaimValue

	updated, err := s.repo.Contact().Update(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update contact", goerr.V("contact_id", contact.ID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       updated.ID,
		ActionType:     "contact_updated",
		ActionCategory: types.ActionCategoryAccount,
		Description:    fmt.Sprintf("Contact %s updated", updated.DisplayName()),
	})
	return updated, nil
}

// DeleteContact removes the contact together with its claims and notes
func (s *Service) DeleteContact(ctx context.Context, contactID string) error {
	if _, err := s.repo.Contact().Get(ctx, contactID); err != nil {
		return goerr.Wrap(err, "failed to get contact", goerr.V("contact_id", contactID))
	}

	claims, err := s.repo.Claim().ListByContact(ctx, contactID)
	if err != nil {
		return goerr.Wrap(err, "failed to list claims", goerr.V("contact_id", contactID))
	}
	for _, c := range claims {
		if err := s.repo.Claim().Delete(ctx, c.ID); err != nil {
			return goerr.Wrap(err, "failed to delete claim", goerr.V("claim_id", c.ID))
		}
	}

	notes, err := s.repo.Note().ListByContact(ctx, contactID)
	if err != nil {
		return goerr.Wrap(err, "failed to list notes", goerr.V("contact_id", contactID))
	}
	for _, n := range notes {
		if err := s.repo.Note().Delete(ctx, n.ID); err != nil {
			return goerr.Wrap(err, "failed to delete note", goerr.V("note_id", n.ID))
		}
	}

	if err := s.repo.Contact().Delete(ctx, contactID); err != nil {
		return goerr.Wrap(err, "failed to delete contact", goerr.V("contact_id", contactID))
	}
	return nil
}
