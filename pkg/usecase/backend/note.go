package backend

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) ListNotes(ctx context.Context, contactID string) ([]*model.Note, error) {
	notes, err := s.repo.Note().ListByContact(ctx, contactID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V("contact_id", contactID))
	}
	return notes, nil
}

func (s *Service) CreateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	if err := note.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid note", goerr.V("reason", err.Error()))
	}
	if _, err := s.repo.Contact().Get(ctx, note.ContactID); err != nil {
		return nil, goerr.Wrap(err, "failed to get contact", goerr.V("contact_id", note.ContactID))
	}

	input := note.Clone()
	if input.CreatedBy == "" {
		input.CreatedBy = ActorFrom(ctx).ID
	}

	created, err := s.repo.Note().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V("contact_id", note.ContactID))
	}

	s.appendLog(ctx, &model.ActionLogEntry{
		ClientID:       created.ContactID,
		ActionType:     "note_added",
		ActionCategory: types.ActionCategoryNotes,
		Description:    "Note added",
	})
	return created, nil
}

// UpdateNote changes content and pinning. A note never moves to another
// contact.
func (s *Service) UpdateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	existing, err := s.repo.Note().Get(ctx, note.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get note", goerr.V("note_id", note.ID))
	}

	input := note.Clone()
	input.ContactID = existing.ContactID
	input.CreatedBy = existing.CreatedBy
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid note", goerr.V("reason", err.Error()))
	}

	updated, err := s.repo.Note().Update(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update note", goerr.V("note_id", note.ID))
	}
	return updated, nil
}

func (s *Service) DeleteNote(ctx context.Context, noteID string) error {
	if err := s.repo.Note().Delete(ctx, noteID); err != nil {
		return goerr.Wrap(err, "failed to delete note", goerr.V("note_id", noteID))
	}
	return nil
}
