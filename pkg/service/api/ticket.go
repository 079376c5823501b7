package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	wire "github.com/lexdesk/claimsync/pkg/domain/model/api"
)

func (c *Client) ListTickets(ctx context.Context, userID string) ([]*model.Ticket, error) {
	var tickets []*model.Ticket
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/tickets",
		query:  url.Values{"userId": {userID}},
		out:    &tickets,
		list:   true,
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) CreateTicket(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	var created model.Ticket
	err := c.do(ctx, call{method: http.MethodPost, path: "/tickets", body: ticket, out: &created})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ResolveTicket(ctx context.Context, ticketID, resolvedBy, resolvedByName string) (*model.Ticket, error) {
	var resolved model.Ticket
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/tickets/{id}/resolve",
		params: id(ticketID),
		body:   wire.ResolveTicketRequest{ResolvedBy: resolvedBy, ResolvedByName: resolvedByName},
		out:    &resolved,
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
