package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// TaskInput is a new calendar task as entered by the user
type TaskInput struct {
	Title             string
	Description       string
	Type              types.TaskType
	Date              string
	StartTime         string
	EndTime           string
	AssignedTo        string
	IsRecurring       bool
	RecurrencePattern types.RecurrencePattern
	RecurrenceEndDate string
	ContactIDs        []string
	ClaimIDs          []string
	Reminders         []model.ReminderOffset
}

// TaskUseCase manages calendar tasks. Nothing is applied locally before the
// backend answers.
type TaskUseCase struct {
	backend interfaces.TaskAPI
	store   *Store
	toaster *Toaster
	loc     *time.Location
}

func newTaskUseCase(backend interfaces.TaskAPI, store *Store, toaster *Toaster, loc *time.Location) *TaskUseCase {
	return &TaskUseCase{
		backend: backend,
		store:   store,
		toaster: toaster,
		loc:     loc,
	}
}

// Fetch replaces the task collection with the tasks matching filter
func (uc *TaskUseCase) Fetch(ctx context.Context, filter model.TaskFilter) error {
	epoch := uc.store.currentEpoch()
	tasks, err := uc.backend.ListTasks(ctx, filter)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch tasks")
	}

	uc.store.commit(epoch, func(st *state) {
		st.tasks = cloneAll(tasks, (*model.Task).Clone)
	})
	return nil
}

// AddTask creates a task. Reminder offsets are turned into absolute in-app
// reminders relative to the task's date and start time.
func (uc *TaskUseCase) AddTask(ctx context.Context, input TaskInput) *model.Result {
	session, epoch := uc.store.session()

	task := &model.Task{
		Title:             input.Title,
		Description:       input.Description,
		Type:              input.Type,
		Status:            types.TaskStatusPending,
		Date:              input.Date,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		AssignedTo:        input.AssignedTo,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		RecurrenceEndDate: input.RecurrenceEndDate,
		ContactIDs:        input.ContactIDs,
		ClaimIDs:          input.ClaimIDs,
	}
	if session != nil {
		task.CreatedBy = session.UserID
		task.AssignedBy = session.UserID
		if task.AssignedTo == "" {
			task.AssignedTo = session.UserID
		}
	}

	if err := task.Validate(); err != nil {
		return uc.invalid(ctx, "Task details are invalid", err)
	}

	times, err := model.ComputeReminderTimes(task.Date, task.StartTime, input.Reminders, uc.loc)
	if err != nil {
		return uc.invalid(ctx, "Task details are invalid", err)
	}
	for _, t := range times {
		task.Reminders = append(task.Reminders, model.TaskReminder{
			ID:           uuid.NewString(),
			ReminderTime: t,
			Channel:      types.ReminderChannelInApp,
		})
	}

	created, err := uc.backend.CreateTask(ctx, task)
	if err != nil {
		return uc.failed(ctx, "Failed to create task", goerr.Wrap(err, "failed to create task"))
	}

	if uc.store.commit(epoch, func(st *state) { st.upsertTask(created) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Task created")
	}

	res := model.OK("Task created")
	res.ID = created.ID
	return res
}

// UpdateTask sends the edited task and stores the backend's copy
func (uc *TaskUseCase) UpdateTask(ctx context.Context, task *model.Task) *model.Result {
	if err := task.Validate(); err != nil {
		return uc.invalid(ctx, "Task details are invalid", err)
	}

	epoch := uc.store.currentEpoch()
	updated, err := uc.backend.UpdateTask(ctx, task)
	if err != nil {
		return uc.failed(ctx, "Failed to update task", goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, task.ID)))
	}

	if uc.store.commit(epoch, func(st *state) { st.upsertTask(updated) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Task updated")
	}
	return model.OK("Task updated")
}

func (uc *TaskUseCase) DeleteTask(ctx context.Context, taskID string) *model.Result {
	epoch := uc.store.currentEpoch()
	if err := uc.backend.DeleteTask(ctx, taskID); err != nil {
		return uc.failed(ctx, "Failed to delete task", goerr.Wrap(err, "failed to delete task", goerr.V(TaskIDKey, taskID)))
	}

	if uc.store.commit(epoch, func(st *state) { st.removeTask(taskID) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Task deleted")
	}
	return model.OK("Task deleted")
}

// CompleteTask marks the task completed by the session user. The backend
// stamps completion and its copy replaces the local one.
func (uc *TaskUseCase) CompleteTask(ctx context.Context, taskID string) *model.Result {
	session, epoch := uc.store.session()
	if session == nil {
		return uc.invalid(ctx, "You must be logged in to complete tasks",
			goerr.Wrap(ErrNoSession, "complete task without session", goerr.V(TaskIDKey, taskID)))
	}

	completed, err := uc.backend.CompleteTask(ctx, taskID, session.UserID)
	if err != nil {
		return uc.failed(ctx, "Failed to complete task", goerr.Wrap(err, "failed to complete task", goerr.V(TaskIDKey, taskID)))
	}

	if uc.store.commit(epoch, func(st *state) { st.upsertTask(completed) }) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Task completed")
	}
	return model.OK("Task completed")
}

// RescheduleTask moves a task to a new date and optional start time. When the
// backend answers with a successor under a new id, the original is kept as a
// rescheduled record and the successor becomes the live occurrence.
func (uc *TaskUseCase) RescheduleTask(ctx context.Context, taskID, newDate, newStartTime string) *model.Result {
	if err := model.ValidateDate(newDate); err != nil {
		return uc.invalid(ctx, "Invalid date", err)
	}
	if err := model.ValidateClock(newStartTime); err != nil {
		return uc.invalid(ctx, "Invalid start time", err)
	}

	session, epoch := uc.store.session()
	req := model.RescheduleRequest{NewDate: newDate, NewStartTime: newStartTime}
	if session != nil {
		req.RescheduledBy = session.UserID
	}

	resched, err := uc.backend.RescheduleTask(ctx, taskID, req)
	if err != nil {
		return uc.failed(ctx, "Failed to reschedule task", goerr.Wrap(err, "failed to reschedule task", goerr.V(TaskIDKey, taskID)))
	}

	var newTaskID string
	if resched.NewTask != nil && resched.NewTask.ID != taskID {
		newTaskID = resched.NewTask.ID
	}

	moved := resched.Task
	if moved == nil && newTaskID == "" {
		moved = resched.NewTask
	}
	if newTaskID == "" && moved == nil {
		return uc.failed(ctx, "Failed to reschedule task", goerr.Wrap(interfaces.ErrMalformedResponse,
			"reschedule returned neither the moved task nor a successor", goerr.V(TaskIDKey, taskID)))
	}

	if uc.store.commit(epoch, func(st *state) {
		if newTaskID == "" {
			st.upsertTask(moved)
			return
		}

		original := resched.Task
		if original == nil {
			if i := st.taskIndex(taskID); i >= 0 {
				original = st.tasks[i]
			}
		}
		if original != nil {
			historical := original.Clone()
			historical.MarkRescheduled()
			st.upsertTask(historical)
		}
		st.upsertTask(resched.NewTask)
	}) {
		uc.toaster.Notice(ctx, types.ToastLevelSuccess, "Task rescheduled")
	}

	res := model.OK("Task rescheduled")
	res.ID = taskID
	res.NewTaskID = newTaskID
	return res
}

func (uc *TaskUseCase) invalid(ctx context.Context, msg string, err error) *model.Result {
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	res := model.Invalid(msg)
	res.Err = err
	return res
}

func (uc *TaskUseCase) failed(ctx context.Context, msg string, err error) *model.Result {
	errutil.Handle(ctx, err, "task operation failed")
	uc.toaster.Notice(ctx, types.ToastLevelError, msg)
	return model.Failed(msg, err)
}
