package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"))
	if err != nil {
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "invalid page", goerr.V("page", q.Get("page"))))
		return
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "invalid limit", goerr.V("limit", q.Get("limit"))))
		return
	}

	result, err := s.backend.ListContacts(r.Context(), model.ContactQuery{
		Page:  page,
		Limit: limit,
		Filter: model.ContactFilter{
			Search:   q.Get("search"),
			FullName: q.Get("fullName"),
			Email:    q.Get("email"),
			Phone:    q.Get("phone"),
			Postcode: q.Get("postcode"),
			ClientID: q.Get("clientId"),
		},
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.NewContactsPageResponse(result))
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if !decodeJSON(w, r, &contact) {
		return
	}
	created, err := s.backend.CreateContact(r.Context(), &contact)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if !decodeJSON(w, r, &contact) {
		return
	}
	contact.ID = chi.URLParam(r, "id")
	updated, err := s.backend.UpdateContact(r.Context(), &contact)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
