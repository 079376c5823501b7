package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "userId is required"))
		return
	}
	items, err := s.backend.ListNotifications(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, items)
}

func (s *Server) countUnread(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "userId is required"))
		return
	}
	n, err := s.backend.CountUnread(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.CountResponse{Count: n})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.MarkNotificationRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	var req api.MarkAllReadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.backend.MarkAllNotificationsRead(r.Context(), req.UserID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	var req api.CreateNotificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := s.backend.CreateNotification(r.Context(), &model.Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		ContactID: req.ContactID,
		ClaimID:   req.ClaimID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}
