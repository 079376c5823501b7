package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "userId is required"))
		return
	}
	tickets, err := s.backend.ListTickets(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, tickets)
}

// createTicket files the ticket under the acting user when the body names
// no reporter
func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var ticket model.Ticket
	if !decodeJSON(w, r, &ticket) {
		return
	}
	if ticket.UserID == "" {
		actor := backend.ActorFrom(r.Context())
		ticket.UserID = actor.ID
		ticket.UserName = actor.Name
	}
	created, err := s.backend.CreateTicket(r.Context(), &ticket)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) resolveTicket(w http.ResponseWriter, r *http.Request) {
	var req api.ResolveTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ResolvedBy == "" {
		actor := backend.ActorFrom(r.Context())
		req.ResolvedBy = actor.ID
		req.ResolvedByName = actor.Name
	}
	resolved, err := s.backend.ResolveTicket(r.Context(), chi.URLParam(r, "id"), req.ResolvedBy, req.ResolvedByName)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resolved)
}
