// Package http serves the case management REST resources over chi.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
)

// Backend is what the server exposes. Notification creation is only reachable
// over HTTP for back office workflows.
type Backend interface {
	interfaces.Backend
	CreateNotification(ctx context.Context, n *model.Notification) (*model.Notification, error)
}

type Server struct {
	router    *chi.Mux
	backend   Backend
	accessLog bool
}

type Options func(*Server)

// WithAccessLog toggles per request access logging
func WithAccessLog(enabled bool) Options {
	return func(s *Server) {
		s.accessLog = enabled
	}
}

func New(backend Backend, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		backend:   backend,
		accessLog: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	if s.accessLog {
		r.Use(accessLogger)
	}
	r.Use(middleware.Recoverer)
	r.Use(actorMiddleware)

	r.Route("/claims", func(r chi.Router) {
		r.Get("/", s.listClaims)
		r.Patch("/bulk/status", s.bulkUpdateClaimStatus)
		r.Patch("/{id}", s.updateClaim)
		r.Delete("/{id}", s.deleteClaim)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/paginated", s.listContacts)
		r.Post("/", s.createContact)
		r.Patch("/{id}", s.updateContact)
		r.Delete("/{id}", s.deleteContact)
		r.Post("/{id}/claims", s.createClaim)
		r.Get("/{id}/notes", s.listNotes)
		r.Post("/{id}/notes", s.createNote)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Patch("/{id}", s.updateNote)
		r.Delete("/{id}", s.deleteNote)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Patch("/{id}", s.updateTask)
		r.Delete("/{id}", s.deleteTask)
		r.Post("/{id}/complete", s.completeTask)
		r.Post("/{id}/reschedule", s.rescheduleTask)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", s.listNotifications)
		r.Post("/", s.createNotification)
		r.Get("/count", s.countUnread)
		r.Patch("/read-all", s.markAllNotificationsRead)
		r.Patch("/{id}/read", s.markNotificationRead)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", s.listTickets)
		r.Post("/", s.createTicket)
		r.Patch("/{id}/resolve", s.resolveTicket)
	})

	r.Post("/reminders/check", s.checkReminders)
	r.Get("/clients/{id}/actions", s.listActionLogs)
	r.Get("/actions/all", s.listAllActionLogs)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
