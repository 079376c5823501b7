package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestTaskAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("computes reminders from offsets", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")

		res := env.uc.Task.AddTask(ctx, usecase.TaskInput{
			Title: "Call client",
			Type:  types.TaskTypeCall,
			Date:  "2025-03-10",
			Reminders: []model.ReminderOffset{
				{Value: "30", Unit: types.ReminderUnitMinutes},
				{Value: "2", Unit: types.ReminderUnitHours},
				{Value: "1", Unit: types.ReminderUnitDays},
				{Value: "abc", Unit: types.ReminderUnitHours},
			},
		})

		gt.Bool(t, res.Success).True()
		task := env.uc.Store.Task(res.ID)
		gt.Value(t, task).NotNil()
		gt.Value(t, task.Status).Equal(types.TaskStatusPending)
		gt.Value(t, task.CreatedBy).Equal("agent-1")
		gt.Array(t, task.Reminders).Length(4)

		want := []time.Time{
			time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC),
			time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		}
		for i, r := range task.Reminders {
			gt.Bool(t, r.ReminderTime.Equal(want[i])).True()
			gt.Value(t, r.Channel).Equal(types.ReminderChannelInApp)
			gt.Bool(t, r.IsSent).False()
		}
	})

	t.Run("invalid input makes no request", func(t *testing.T) {
		env := newTestEnv(t, nil)

		res := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "", Type: types.TaskTypeCall, Date: "2025-03-10"})

		gt.Value(t, res.Kind).Equal(types.ResultKindValidation)
		gt.Value(t, env.backend.called("CreateTask")).Equal(0)
	})

	t.Run("failure leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.backend.createTask = func(context.Context, *model.Task) (*model.Task, error) {
			return nil, errors.New("boom")
		}

		res := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})

		gt.Value(t, res.Kind).Equal(types.ResultKindFailure)
		gt.Array(t, env.uc.Store.Tasks()).Length(0)
		gt.Value(t, env.notices()).Equal([]string{"Failed to create task"})
	})
}

func TestTaskUpdate(t *testing.T) {
	ctx := context.Background()

	addCall := func(t *testing.T, env *testEnv) *model.Task {
		t.Helper()
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})
		gt.Bool(t, added.Success).True()
		return env.uc.Store.Task(added.ID)
	}

	t.Run("stores the backend copy", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		task := addCall(t, env)

		task.Title = "Call about DSAR"
		task.StartTime = "15:00"
		res := env.uc.Task.UpdateTask(ctx, task)

		gt.Bool(t, res.Success).True()
		stored := env.uc.Store.Task(task.ID)
		gt.Value(t, stored.Title).Equal("Call about DSAR")
		gt.Value(t, stored.StartTime).Equal("15:00")
		gt.Value(t, env.backend.called("UpdateTask")).Equal(1)
		gt.Array(t, env.uc.Store.Tasks()).Length(1)
	})

	t.Run("failure leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		task := addCall(t, env)
		env.backend.updateTask = func(context.Context, *model.Task) (*model.Task, error) {
			return nil, errors.New("unavailable")
		}

		edited := task.Clone()
		edited.Title = "Renamed"
		res := env.uc.Task.UpdateTask(ctx, edited)

		gt.Value(t, res.Kind).Equal(types.ResultKindFailure)
		gt.Value(t, env.uc.Store.Task(task.ID).Title).Equal("Call")
		notices := env.notices()
		gt.Value(t, notices[len(notices)-1]).Equal("Failed to update task")
	})

	t.Run("invalid task makes no request", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		task := addCall(t, env)

		task.Date = "10/03/2025"
		res := env.uc.Task.UpdateTask(ctx, task)

		gt.Value(t, res.Kind).Equal(types.ResultKindValidation)
		gt.Value(t, env.backend.called("UpdateTask")).Equal(0)
		gt.Value(t, env.uc.Store.Task(task.ID).Date).Equal("2025-03-10")
	})
}

func TestTaskComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("requires session", func(t *testing.T) {
		env := newTestEnv(t, nil)
		res := env.uc.Task.CompleteTask(ctx, "1")
		gt.Value(t, res.Kind).Equal(types.ResultKindValidation)
		gt.Error(t, res.Err).Is(usecase.ErrNoSession)
	})

	t.Run("stores the backend copy", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})
		gt.Bool(t, added.Success).True()

		res := env.uc.Task.CompleteTask(ctx, added.ID)

		gt.Bool(t, res.Success).True()
		task := env.uc.Store.Task(added.ID)
		gt.Value(t, task.Status).Equal(types.TaskStatusCompleted)
		gt.Value(t, task.CompletedBy).Equal("agent-1")
		gt.Value(t, task.CompletedAt).NotNil()
		gt.Bool(t, task.CompletedAt.Equal(baseTime)).True()
	})
}

func TestTaskReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("one-off task moves in place", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{
			Title:     "Meet client",
			Type:      types.TaskTypeMeeting,
			Date:      "2025-03-10",
			StartTime: "10:00",
			EndTime:   "11:00",
			Reminders: []model.ReminderOffset{{Value: "1", Unit: types.ReminderUnitHours}},
		})

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-12", "14:00")

		gt.Bool(t, res.Success).True()
		gt.Value(t, res.NewTaskID).Equal("")
		tasks := env.uc.Store.Tasks()
		gt.Array(t, tasks).Length(1)
		gt.Value(t, tasks[0].Date).Equal("2025-03-12")
		gt.Value(t, tasks[0].StartTime).Equal("14:00")
		gt.Value(t, tasks[0].EndTime).Equal("15:00")
		gt.Bool(t, tasks[0].Reminders[0].ReminderTime.Equal(time.Date(2025, 3, 12, 13, 0, 0, 0, time.UTC))).True()
	})

	t.Run("recurring task gets a successor", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{
			Title:             "Weekly review",
			Type:              types.TaskTypeMeeting,
			Date:              "2025-03-10",
			IsRecurring:       true,
			RecurrencePattern: types.RecurrenceWeekly,
		})

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-11", "")

		gt.Bool(t, res.Success).True()
		gt.Value(t, res.NewTaskID).NotEqual("")
		gt.Value(t, res.NewTaskID).NotEqual(added.ID)

		original := env.uc.Store.Task(added.ID)
		gt.Value(t, original.Status).Equal(types.TaskStatusRescheduled)
		gt.Value(t, original.Date).Equal("2025-03-10")

		successor := env.uc.Store.Task(res.NewTaskID)
		gt.Value(t, successor.Status).Equal(types.TaskStatusPending)
		gt.Value(t, successor.Date).Equal("2025-03-11")
		gt.Value(t, successor.ParentTaskID).Equal(added.ID)

		live := 0
		for _, task := range env.uc.Store.Tasks() {
			if task.Status.IsOpen() {
				live++
			}
		}
		gt.Value(t, live).Equal(1)
	})

	t.Run("original is historical even if the backend leaves it open", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})

		env.backend.rescheduleTask = func(_ context.Context, id string, req model.RescheduleRequest) (*model.Reschedule, error) {
			original := env.uc.Store.Task(id)
			successor := original.Clone()
			successor.ID = "successor"
			successor.Date = req.NewDate
			return &model.Reschedule{Task: original, NewTask: successor}, nil
		}

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-20", "")

		gt.Value(t, res.NewTaskID).Equal("successor")
		gt.Value(t, env.uc.Store.Task(added.ID).Status).Equal(types.TaskStatusRescheduled)
		gt.Value(t, env.uc.Store.Task("successor").Status).Equal(types.TaskStatusPending)
	})

	t.Run("same id successor moves in place", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})

		env.backend.rescheduleTask = func(_ context.Context, id string, req model.RescheduleRequest) (*model.Reschedule, error) {
			moved := env.uc.Store.Task(id)
			moved.Date = req.NewDate
			return &model.Reschedule{Task: moved, NewTask: moved}, nil
		}

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-20", "")

		gt.Value(t, res.NewTaskID).Equal("")
		tasks := env.uc.Store.Tasks()
		gt.Array(t, tasks).Length(1)
		gt.Value(t, tasks[0].Status).Equal(types.TaskStatusPending)
		gt.Value(t, tasks[0].Date).Equal("2025-03-20")
	})

	t.Run("failure leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})
		env.backend.rescheduleTask = func(context.Context, string, model.RescheduleRequest) (*model.Reschedule, error) {
			return nil, errors.New("unavailable")
		}

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-20", "")

		gt.Value(t, res.Kind).Equal(types.ResultKindFailure)
		gt.Value(t, env.uc.Store.Task(added.ID).Date).Equal("2025-03-10")
	})

	t.Run("empty response is a failure", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.login(t, "agent-1")
		added := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Call", Type: types.TaskTypeCall, Date: "2025-03-10"})
		env.backend.rescheduleTask = func(context.Context, string, model.RescheduleRequest) (*model.Reschedule, error) {
			return &model.Reschedule{}, nil
		}

		res := env.uc.Task.RescheduleTask(ctx, added.ID, "2025-03-20", "")

		gt.Value(t, res.Kind).Equal(types.ResultKindFailure)
		gt.Error(t, res.Err).Is(interfaces.ErrMalformedResponse)
		gt.Value(t, env.uc.Store.Task(added.ID).Date).Equal("2025-03-10")
		notices := env.notices()
		gt.Value(t, notices[len(notices)-1]).Equal("Failed to reschedule task")
	})

	t.Run("invalid date is rejected locally", func(t *testing.T) {
		env := newTestEnv(t, nil)
		res := env.uc.Task.RescheduleTask(ctx, "1", "20-03-2025", "")
		gt.Value(t, res.Kind).Equal(types.ResultKindValidation)
		gt.Value(t, env.backend.called("RescheduleTask")).Equal(0)
	})
}

func TestTaskFetchAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.login(t, "agent-1")
	for _, date := range []string{"2025-03-01", "2025-03-15", "2025-04-01"} {
		res := env.uc.Task.AddTask(ctx, usecase.TaskInput{Title: "Task " + date, Type: types.TaskTypeDeadline, Date: date})
		gt.Bool(t, res.Success).True()
	}

	gt.NoError(t, env.uc.Task.Fetch(ctx, model.TaskFilter{StartDate: "2025-03-01", EndDate: "2025-03-31"})).Required()
	tasks := env.uc.Store.Tasks()
	gt.Array(t, tasks).Length(2)

	res := env.uc.Task.DeleteTask(ctx, tasks[0].ID)
	gt.Bool(t, res.Success).True()
	gt.Array(t, env.uc.Store.Tasks()).Length(1)
}
