package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/model"
)

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.backend.ListNotes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, notes)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var note model.Note
	if !decodeJSON(w, r, &note) {
		return
	}
	note.ContactID = chi.URLParam(r, "id")
	created, err := s.backend.CreateNote(r.Context(), &note)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var note model.Note
	if !decodeJSON(w, r, &note) {
		return
	}
	note.ID = chi.URLParam(r, "id")
	updated, err := s.backend.UpdateNote(r.Context(), &note)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listActionLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.ListActionLogs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, entries)
}

func (s *Server) listAllActionLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.ListAllActionLogs(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, entries)
}
