package usecase

import (
	"context"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type NoteUseCase struct {
	backend interfaces.NoteAPI
	store   *Store
	toaster *Toaster
	clock   func() time.Time
}

func newNoteUseCase(backend interfaces.NoteAPI, store *Store, toaster *Toaster, clock func() time.Time) *NoteUseCase {
	return &NoteUseCase{
		backend: backend,
		store:   store,
		toaster: toaster,
		clock:   clock,
	}
}

// Fetch replaces the notes of one contact, leaving other contacts' notes
func (uc *NoteUseCase) Fetch(ctx context.Context, contactID string) error {
	epoch := uc.store.currentEpoch()
	notes, err := uc.backend.ListNotes(ctx, contactID)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch notes", goerr.V(ContactIDKey, contactID))
	}

	uc.store.commit(epoch, func(st *state) {
		st.notes = filterOut(st.notes, func(n *model.Note) bool { return n.ContactID == contactID })
		for _, n := range notes {
			if n.ContactID == contactID {
				st.notes = append(st.notes, n.Clone())
			}
		}
	})
	return nil
}

func (uc *NoteUseCase) AddNote(ctx context.Context, note *model.Note) *model.Result {
	input := note.Clone()
	if session := uc.store.Session(); session != nil && input.CreatedBy == "" {
		input.CreatedBy = session.UserID
	}
	if err := input.Validate(); err != nil {
		uc.toaster.Notice(ctx, types.ToastLevelError, "Note is empty")
		res := model.Invalid("Note is empty")
		res.Err = err
		return res
	}

	epoch := uc.store.currentEpoch()
	created, err := uc.backend.CreateNote(ctx, input)
	if err != nil {
		return uc.failed(ctx, "Failed to add note", goerr.Wrap(err, "failed to create note", goerr.V(ContactIDKey, input.ContactID)))
	}

	now := uc.clock()
	if uc.store.commit(epoch, func(st *state) {
		st.notes = append([]*model.Note{created.Clone()}, st.notes...)
		st.appendActivity(now, created.ContactID, "", "Note Added", "Note added to contact")
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Note added")
	}

	res := model.OK("Note added")
	res.ID = created.ID
	return res
}

func (uc *NoteUseCase) UpdateNote(ctx context.Context, note *model.Note) *model.Result {
	if err := note.Validate(); err != nil {
		uc.toaster.Notice(ctx, types.ToastLevelError, "Note is empty")
		res := model.Invalid("Note is empty")
		res.Err = err
		return res
	}

	epoch := uc.store.currentEpoch()
	updated, err := uc.backend.UpdateNote(ctx, note)
	if err != nil {
		return uc.failed(ctx, "Failed to update note", goerr.Wrap(err, "failed to update note", goerr.V(NoteIDKey, note.ID)))
	}

	if uc.store.commit(epoch, func(st *state) {
		for i, n := range st.notes {
			if n.ID == updated.ID {
				st.notes[i] = updated.Clone()
				return
			}
		}
		st.notes = append(st.notes, updated.Clone())
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Note updated")
	}
	return model.OK("Note updated")
}

func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) *model.Result {
	epoch := uc.store.currentEpoch()
	if err := uc.backend.DeleteNote(ctx, noteID); err != nil {
		return uc.failed(ctx, "Failed to delete note", goerr.Wrap(err, "failed to delete note", goerr.V(NoteIDKey, noteID)))
	}

	if uc.store.commit(epoch, func(st *state) {
		st.notes = filterOut(st.notes, func(n *model.Note) bool { return n.ID == noteID })
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Note deleted")
	}
	return model.OK("Note deleted")
}

func (uc *NoteUseCase) failed(ctx context.Context, msg string, err error) *model.Result {
	errutil.Handle(ctx, err, "note operation failed")
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	return model.Failed(msg, err)
}
