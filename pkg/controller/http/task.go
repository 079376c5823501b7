package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/lexdesk/claimsync/pkg/domain/types"
)

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := s.backend.ListTasks(r.Context(), model.TaskFilter{
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Status:     types.TaskStatus(q.Get("status")),
		AssignedTo: q.Get("assignedTo"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if !decodeJSON(w, r, &task) {
		return
	}
	created, err := s.backend.CreateTask(r.Context(), &task)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if !decodeJSON(w, r, &task) {
		return
	}
	task.ID = chi.URLParam(r, "id")
	updated, err := s.backend.UpdateTask(r.Context(), &task)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	var req api.CompleteTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	task, err := s.backend.CompleteTask(r.Context(), chi.URLParam(r, "id"), req.CompletedBy)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, task)
}

func (s *Server) rescheduleTask(w http.ResponseWriter, r *http.Request) {
	var req api.RescheduleTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := s.backend.RescheduleTask(r.Context(), chi.URLParam(r, "id"), model.RescheduleRequest{
		NewDate:       req.NewDate,
		NewStartTime:  req.NewStartTime,
		RescheduledBy: req.RescheduledBy,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := api.RescheduleTaskResponse{Task: result.Task, NewTask: result.NewTask}
	if result.NewTask != nil {
		resp.NewTaskID = result.NewTask.ID
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) checkReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := s.backend.CheckReminders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.ReminderCheckResponse{Sent: sent})
}
