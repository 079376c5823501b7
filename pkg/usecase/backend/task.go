package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	tasks, err := s.repo.Task().List(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return tasks, nil
}

// CreateTask stores a task and notifies the assignee when someone else
// assigned it
func (s *Service) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	input := task.Clone()
	if input.Status == "" {
		input.Status = types.TaskStatusPending
	}
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid task", goerr.V("reason", err.Error()))
	}
	for i := range input.Reminders {
		if input.Reminders[i].ID == "" {
			input.Reminders[i].ID = uuid.NewString()
		}
		if input.Reminders[i].Channel == "" {
			input.Reminders[i].Channel = types.ReminderChannelInApp
		}
	}

	created, err := s.repo.Task().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	if created.AssignedTo != "" && created.AssignedTo != created.AssignedBy {
		s.notify(ctx, &model.Notification{
			UserID:        created.AssignedTo,
			Type:          types.NotificationTypeTaskAssigned,
			Title:         "New task assigned",
			Message:       fmt.Sprintf("%s on %s", created.Title, created.Date),
			RelatedTaskID: created.ID,
		})
	}
	return created, nil
}

func (s *Service) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid task", goerr.V("reason", err.Error()))
	}
	updated, err := s.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("task_id", task.ID))
	}
	return updated, nil
}

func (s *Service) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.repo.Task().Delete(ctx, taskID); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("task_id", taskID))
	}
	return nil
}

// CompleteTask stamps completion and tells the assigner when someone else
// completed the task
func (s *Service) CompleteTask(ctx context.Context, taskID, completedBy string) (*model.Task, error) {
	task, err := s.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("task_id", taskID))
	}

	now := s.clock()
	task.Status = types.TaskStatusCompleted
	task.CompletedBy = completedBy
	task.CompletedAt = &now

	updated, err := s.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to complete task", goerr.V("task_id", taskID))
	}

	if updated.AssignedBy != "" && updated.AssignedBy != completedBy {
		s.notify(ctx, &model.Notification{
			UserID:        updated.AssignedBy,
			Type:          types.NotificationTypeTaskCompleted,
			Title:         "Task completed",
			Message:       updated.Title,
			RelatedTaskID: updated.ID,
		})
	}
	return updated, nil
}

// RescheduleTask moves a task. A recurring task keeps its original as a
// rescheduled record and gets a successor occurrence at the new slot; a
// one-off task moves in place. Reminders move by the same amount as the
// event.
func (s *Service) RescheduleTask(ctx context.Context, taskID string, req model.RescheduleRequest) (*model.Reschedule, error) {
	if err := model.ValidateDate(req.NewDate); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid date", goerr.V("date", req.NewDate))
	}
	if err := model.ValidateClock(req.NewStartTime); err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid start time", goerr.V("start_time", req.NewStartTime))
	}

	task, err := s.repo.Task().Get(ctx, taskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("task_id", taskID))
	}

	startTime := req.NewStartTime
	if startTime == "" {
		startTime = task.StartTime
	}
	oldEvent, err := model.EventTime(task.Date, task.StartTime, s.loc)
	if err != nil {
		return nil, goerr.Wrap(err, "stored task has an invalid slot", goerr.V("task_id", taskID))
	}
	newEvent, err := model.EventTime(req.NewDate, startTime, s.loc)
	if err != nil {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid new slot", goerr.V("task_id", taskID))
	}
	delta := newEvent.Sub(oldEvent)
	endTime := shiftEndTime(task, startTime)

	if !task.IsRecurring {
		task.Date = req.NewDate
		task.StartTime = startTime
		task.EndTime = endTime
		task.Reminders = model.ShiftReminders(task.Reminders, delta)

		updated, err := s.repo.Task().Update(ctx, task)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to move task", goerr.V("task_id", taskID))
		}
		return &model.Reschedule{Task: updated}, nil
	}

	successor := task.Clone()
	successor.ID = ""
	successor.ParentTaskID = task.ID
	successor.Date = req.NewDate
	successor.StartTime = startTime
	successor.EndTime = endTime
	successor.Status = types.TaskStatusPending
	successor.CompletedAt = nil
	successor.CompletedBy = ""
	successor.Reminders = model.ShiftReminders(task.Reminders, delta)
	for i := range successor.Reminders {
		successor.Reminders[i].ID = uuid.NewString()
	}

	created, err := s.repo.Task().Create(ctx, successor)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create successor task", goerr.V("task_id", taskID))
	}

	task.MarkRescheduled()
	original, err := s.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to mark task rescheduled", goerr.V("task_id", taskID))
	}

	return &model.Reschedule{Task: original, NewTask: created}, nil
}

// shiftEndTime keeps the task's duration when the start time changes. It
// returns "" when the end would fall past midnight.
func shiftEndTime(task *model.Task, newStart string) string {
	if task.EndTime == "" || task.StartTime == "" || newStart == task.StartTime {
		return task.EndTime
	}
	start, err1 := time.Parse("15:04", task.StartTime)
	end, err2 := time.Parse("15:04", task.EndTime)
	moved, err3 := time.Parse("15:04", newStart)
	if err1 != nil || err2 != nil || err3 != nil {
		return task.EndTime
	}
	newEnd := moved.Add(end.Sub(start))
	if newEnd.Day() != moved.Day() {
		return ""
	}
	return newEnd.Format("15:04")
}

// CheckReminders turns every due, unsent reminder of an open task into a
// notification for the assignee and marks it sent
func (s *Service) CheckReminders(ctx context.Context) (int, error) {
	tasks, err := s.repo.Task().List(ctx, model.TaskFilter{})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list tasks")
	}

	now := s.clock()
	sent := 0
	for _, task := range tasks {
		if !task.Status.IsOpen() {
			continue
		}

		recipient := task.AssignedTo
		if recipient == "" {
			recipient = task.CreatedBy
		}

		changed := false
		for i := range task.Reminders {
			r := &task.Reminders[i]
			if r.IsSent || r.ReminderTime.After(now) {
				continue
			}

			if recipient != "" {
				s.notify(ctx, &model.Notification{
					UserID:        recipient,
					Type:          reminderNotificationType(task.Type),
					Title:         fmt.Sprintf("Reminder: %s", task.Title),
					Message:       reminderMessage(task),
					RelatedTaskID: task.ID,
				})
				sent++
			}
			sentAt := now
			r.IsSent = true
			r.SentAt = &sentAt
			changed = true
		}

		if changed {
			if _, err := s.repo.Task().Update(ctx, task); err != nil {
				return sent, goerr.Wrap(err, "failed to mark reminders sent", goerr.V("task_id", task.ID))
			}
		}
	}
	return sent, nil
}

func reminderNotificationType(t types.TaskType) types.NotificationType {
	switch t {
	case types.TaskTypeMeeting, types.TaskTypeAppointment:
		return types.NotificationTypeMeetingScheduled
	default:
		return types.NotificationTypeFollowUpDue
	}
}

func reminderMessage(task *model.Task) string {
	start := task.StartTime
	if start == "" {
		start = model.DefaultStartTime
	}
	return fmt.Sprintf("%s at %s on %s", task.Title, start, task.Date)
}

func (s *Service) notify(ctx context.Context, n *model.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock()
	}
	if _, err := s.repo.Notification().Create(ctx, n); err != nil {
		errutil.Handle(ctx, err, "failed to create notification")
	}
}
