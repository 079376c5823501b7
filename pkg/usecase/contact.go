package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// ContactUseCase keeps the paged contacts collection. A page fetch replaces
// the collection; LoadMore appends the next page. Pagination metadata is kept
// apart from the collection.
type ContactUseCase struct {
	backend interfaces.ContactAPI
	store   *Store
	toaster *Toaster
	clock   func() time.Time
}

func newContactUseCase(backend interfaces.ContactAPI, store *Store, toaster *Toaster, clock func() time.Time) *ContactUseCase {
	return &ContactUseCase{
		backend: backend,
		store:   store,
		toaster: toaster,
		clock:   clock,
	}
}

// FetchPage replaces the collection with one page. Every call supersedes
// earlier page fetches and any LoadMore still in flight.
func (uc *ContactUseCase) FetchPage(ctx context.Context, page, limit int, filter model.ContactFilter) error {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = model.DefaultPageLimit
	}

	var token uint64
	epoch := uc.store.begin(func(st *state) {
		st.contactsEpoch++
		token = st.contactsEpoch
	})

	query := model.ContactQuery{Page: page, Limit: limit, Filter: filter}
	result, err := uc.backend.ListContacts(ctx, query)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch contacts page", goerr.V("page", page), goerr.V("limit", limit))
	}

	uc.store.commit(epoch, func(st *state) {
		if st.contactsEpoch != token {
			return
		}
		st.contacts = cloneAll(result.Contacts, (*model.Contact).Clone)
		st.contactFilter = filter
		st.pagination = pageMeta(result, query)
		st.mirrorContacts(contactIDs(st.contacts), false)
	})
	return nil
}

// LoadMore appends the next page. It does nothing when there are no more
// pages or another LoadMore is in flight. A non-empty search overrides the
// search term of the last page fetch.
func (uc *ContactUseCase) LoadMore(ctx context.Context, search string) error {
	var (
		query   model.ContactQuery
		seq     uint64
		token   uint64
		started bool
	)
	epoch := uc.store.begin(func(st *state) {
		if !st.pagination.HasMore || st.pagination.LoadingMore {
			return
		}
		st.pagination.LoadingMore = true
		st.loadSeq++
		seq = st.loadSeq
		token = st.contactsEpoch

		filter := st.contactFilter
		if search != "" {
			filter.Search = search
		}
		query = model.ContactQuery{
			Page:   st.pagination.Page + 1,
			Limit:  st.pagination.Limit,
			Filter: filter,
		}
		started = true
	})
	if !started {
		return nil
	}

	result, err := uc.backend.ListContacts(ctx, query)

	uc.store.commit(epoch, func(st *state) {
		if st.loadSeq == seq {
			st.pagination.LoadingMore = false
		}
		if err != nil || st.contactsEpoch != token {
			return
		}

		existing := contactIDs(st.contacts)
		appended := make(map[string]struct{})
		for _, c := range result.Contacts {
			if _, dup := existing[c.ID]; dup {
				continue
			}
			existing[c.ID] = struct{}{}
			appended[c.ID] = struct{}{}
			st.contacts = append(st.contacts, c.Clone())
		}

		loading := st.pagination.LoadingMore
		st.pagination = pageMeta(result, query)
		st.pagination.LoadingMore = loading
		st.mirrorContacts(appended, false)
	})

	if err != nil {
		return goerr.Wrap(err, "failed to load more contacts", goerr.V("page", query.Page))
	}
	return nil
}

func pageMeta(result *model.ContactPage, query model.ContactQuery) model.Pagination {
	p := model.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		HasMore:    result.HasMore,
	}
	if p.Page < 1 {
		p.Page = query.Page
	}
	if p.Limit <= 0 {
		p.Limit = query.Limit
	}
	return p
}

func contactIDs(contacts []*model.Contact) map[string]struct{} {
	ids := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// AddContact creates a contact and puts it at the head of the collection
func (uc *ContactUseCase) AddContact(ctx context.Context, contact *model.Contact) *model.Result {
	if err := contact.Validate(); err != nil {
		return uc.invalid(ctx, "Contact details are invalid", err)
	}

	epoch := uc.store.currentEpoch()
	created, err := uc.backend.CreateContact(ctx, contact)
	if err != nil {
		return uc.failed(ctx, "Failed to create contact", goerr.Wrap(err, "failed to create contact"))
	}

	now := uc.clock()
	if uc.store.commit(epoch, func(st *state) {
		st.contacts = append([]*model.Contact{created.Clone()}, st.contacts...)
		st.pagination.Total++
		st.appendActivity(now, created.ID, "", "Contact Created",
			fmt.Sprintf("%s added as a contact", created.DisplayName()))
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Contact created")
	}

	res := model.OK("Contact created")
	res.ID = created.ID
	return res
}

// UpdateContact sends the edited contact and stores the backend's copy
func (uc *ContactUseCase) UpdateContact(ctx context.Context, contact *model.Contact) *model.Result {
	if err := contact.Validate(); err != nil {
		return uc.invalid(ctx, "Contact details are invalid", err)
	}

	epoch := uc.store.currentEpoch()
	updated, err := uc.backend.UpdateContact(ctx, contact)
	if err != nil {
		return uc.failed(ctx, "Failed to update contact",
			goerr.Wrap(err, "failed to update contact", goerr.V(ContactIDKey, contact.ID)))
	}

	now := uc.clock()
	if uc.store.commit(epoch, func(st *state) {
		for i, c := range st.contacts {
			if c.ID == updated.ID {
				st.contacts[i] = updated.Clone()
				break
			}
		}
		st.appendActivity(now, updated.ID, "", "Contact Updated",
			fmt.Sprintf("%s details updated", updated.DisplayName()))
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Contact updated")
	}
	return model.OK("Contact updated")
}

// DeleteContacts deletes each selected contact. Contacts the backend deleted
// are removed locally together with their claims and notes, even when other
// deletions failed.
func (uc *ContactUseCase) DeleteContacts(ctx context.Context, ids []string) *model.Result {
	if len(ids) == 0 {
		return uc.invalid(ctx, "No contacts selected", goerr.Wrap(ErrNothingSelected, "no contacts selected"))
	}

	epoch := uc.store.currentEpoch()
	deleted := make(map[string]struct{}, len(ids))
	var lastErr error
	for _, id := range ids {
		if err := uc.backend.DeleteContact(ctx, id); err != nil {
			errutil.Handle(ctx, goerr.Wrap(err, "failed to delete contact", goerr.V(ContactIDKey, id)), "contact deletion failed")
			lastErr = err
			continue
		}
		deleted[id] = struct{}{}
	}

	live := uc.store.commit(epoch, func(st *state) {
		before := len(st.contacts)
		st.removeContacts(deleted)
		st.pagination.Total -= before - len(st.contacts)
		if st.pagination.Total < 0 {
			st.pagination.Total = 0
		}
	})

	failed := len(ids) - len(deleted)
	if failed > 0 {
		msg := fmt.Sprintf("Failed to delete %d of %d contacts", failed, len(ids))
		if live {
			uc.toaster.Notice(ctx, types.ToastLevelError, msg)
		}
		res := model.Failed(msg, lastErr)
		res.Count = len(deleted)
		return res
	}

	msg := fmt.Sprintf("Deleted %d contacts", len(deleted))
	if live {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, msg)
	}
	res := model.OK(msg)
	res.Count = len(deleted)
	return res
}

func (uc *ContactUseCase) invalid(ctx context.Context, msg string, err error) *model.Result {
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	res := model.Invalid(msg)
	res.Err = err
	return res
}

func (uc *ContactUseCase) failed(ctx context.Context, msg string, err error) *model.Result {
	errutil.Handle(ctx, err, "contact operation failed")
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	return model.Failed(msg, err)
}
