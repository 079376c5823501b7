package usecase

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	msgTicketLogin      = "You must be logged in to raise tickets"
	msgTicketIncomplete = "Ticket needs a title and description"
)

// TicketUseCase raises and resolves support tickets. Raising a ticket
// notifies support users on the backend, so the notification list is
// refreshed once the ticket is stored.
type TicketUseCase struct {
	backend interfaces.TicketAPI
	store   *Store
	toaster *Toaster
	refresh func(ctx context.Context) error
}

func newTicketUseCase(backend interfaces.TicketAPI, store *Store, toaster *Toaster, refresh func(ctx context.Context) error) *TicketUseCase {
	return &TicketUseCase{
		backend: backend,
		store:   store,
		toaster: toaster,
		refresh: refresh,
	}
}

// Fetch replaces the tickets visible to the session user. Without a session
// it does nothing.
func (uc *TicketUseCase) Fetch(ctx context.Context) error {
	session, epoch := uc.store.session()
	if session == nil {
		return nil
	}

	tickets, err := uc.backend.ListTickets(ctx, session.UserID)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch tickets", goerr.V(UserIDKey, session.UserID))
	}

	uc.store.commit(epoch, func(st *state) {
		st.tickets = cloneAll(tickets, (*model.Ticket).Clone)
	})
	return nil
}

// Create raises a ticket as the session user
func (uc *TicketUseCase) Create(ctx context.Context, title, description string) *model.Result {
	session, epoch := uc.store.session()
	if session == nil {
		return uc.invalid(ctx, msgTicketLogin, goerr.Wrap(ErrNoSession, "create ticket without session"))
	}

	input := &model.Ticket{
		UserID:      session.UserID,
		UserName:    session.UserName,
		Title:       title,
		Description: description,
		Status:      types.TicketStatusOpen,
	}
	if err := input.Validate(); err != nil {
		return uc.invalid(ctx, msgTicketIncomplete, err)
	}

	created, err := uc.backend.CreateTicket(ctx, input)
	if err != nil {
		return uc.failed(ctx, "Failed to create ticket", goerr.Wrap(err, "failed to create ticket", goerr.V(UserIDKey, session.UserID)))
	}

	if uc.store.commit(epoch, func(st *state) { st.upsertTicket(created) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Ticket created successfully")
	}
	if uc.refresh != nil {
		if err := uc.refresh(ctx); err != nil {
			logging.From(ctx).Warn("Failed to refresh notifications after ticket", "error", err)
		}
	}

	res := model.OK("Ticket created successfully")
	res.ID = created.ID
	return res
}

// Resolve closes a ticket on behalf of the session user
func (uc *TicketUseCase) Resolve(ctx context.Context, ticketID string) *model.Result {
	session, epoch := uc.store.session()
	if session == nil {
		return uc.invalid(ctx, "You must be logged in to resolve tickets",
			goerr.Wrap(ErrNoSession, "resolve ticket without session", goerr.V(TicketIDKey, ticketID)))
	}

	resolved, err := uc.backend.ResolveTicket(ctx, ticketID, session.UserID, session.UserName)
	if err == nil && resolved == nil {
		err = goerr.Wrap(interfaces.ErrMalformedResponse, "resolve returned no ticket")
	}
	if err != nil {
		return uc.failed(ctx, "Failed to resolve ticket", goerr.Wrap(err, "failed to resolve ticket", goerr.V(TicketIDKey, ticketID)))
	}

	if uc.store.commit(epoch, func(st *state) { st.upsertTicket(resolved) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Ticket resolved successfully")
	}
	return model.OK("Ticket resolved successfully")
}

func (uc *TicketUseCase) invalid(ctx context.Context, msg string, err error) *model.Result {
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	res := model.Invalid(msg)
	res.Err = err
	return res
}

func (uc *TicketUseCase) failed(ctx context.Context, msg string, err error) *model.Result {
	errutil.Handle(ctx, err, "ticket operation failed")
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	return model.Failed(msg, err)
}
