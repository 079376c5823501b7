package backend

import (
	"context"
	"fmt"
	"slices"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) isSupportUser(userID string) bool {
	return slices.Contains(s.supportUsers, userID)
}

// ListTickets returns every ticket to support users and only their own to
// everybody else
func (s *Service) ListTickets(ctx context.Context, userID string) ([]*model.Ticket, error) {
	if userID == "" {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "user ID is required")
	}

	var tickets []*model.Ticket
	var err error
	if s.isSupportUser(userID) {
		tickets, err = s.repo.Ticket().List(ctx)
	} else {
		tickets, err = s.repo.Ticket().ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tickets", goerr.V("user_id", userID))
	}
	return tickets, nil
}

// CreateTicket stores an open ticket and tells every support user about it
func (s *Service) CreateTicket(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if err := ticket.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid ticket", goerr.V("reason", err.Error()))
	}
	if ticket.UserID == "" {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "ticket has no reporter")
	}

	input := ticket.Clone()
	input.ID = ""
	input.Status = types.TicketStatusOpen
	input.ResolvedBy = ""
	input.ResolvedByName = ""
	input.ResolvedAt = nil
	input.CreatedAt = s.clock()

	created, err := s.repo.Ticket().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket", goerr.V("user_id", ticket.UserID))
	}

	reporter := created.UserName
	if reporter == "" {
		reporter = created.UserID
	}
	for _, userID := range s.supportUsers {
		if userID == created.UserID {
			continue
		}
		s.notify(ctx, &model.Notification{
			UserID:  userID,
			Type:    types.NotificationTypeTicketRaised,
			Title:   "New support ticket",
			Message: fmt.Sprintf("%s: %s", reporter, created.Title),
		})
	}
	return created, nil
}

// ResolveTicket closes the ticket and notifies its reporter. Resolving a
// resolved ticket returns it unchanged.
func (s *Service) ResolveTicket(ctx context.Context, ticketID, resolvedBy, resolvedByName string) (*model.Ticket, error) {
	if resolvedBy == "" {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "resolver is required", goerr.V("ticket_id", ticketID))
	}

	ticket, err := s.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}
	if !ticket.IsOpen() {
		return ticket, nil
	}

	now := s.clock()
	ticket.Status = types.TicketStatusResolved
	ticket.ResolvedBy = resolvedBy
	ticket.ResolvedByName = resolvedByName
	ticket.ResolvedAt = &now

	updated, err := s.repo.Ticket().Update(ctx, ticket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update ticket", goerr.V("ticket_id", ticketID))
	}

	if updated.UserID != resolvedBy {
		s.notify(ctx, &model.Notification{
			UserID:  updated.UserID,
			Type:    types.NotificationTypeTicketResolved,
			Title:   "Support ticket resolved",
			Message: updated.Title,
		})
	}
	return updated, nil
}
