package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestToasterLifecycle(t *testing.T) {
	testCases := []struct {
		name     string
		raise    func(env *testEnv) string
		lifetime time.Duration
		exit     time.Duration
	}{
		{
			name: "notice",
			raise: func(env *testEnv) string {
				return env.uc.Toaster.Notice(context.Background(), types.ToastLevelSuccess, "Saved")
			},
			lifetime: 3 * time.Second,
			exit:     400 * time.Millisecond,
		},
		{
			name: "alert",
			raise: func(env *testEnv) string {
				return env.uc.Toaster.Alert(context.Background(), &model.Notification{
					ID:      "n1",
					Type:    types.NotificationTypeActionError,
					Title:   "Action failed",
					Message: "Email could not be sent",
				})
			},
			lifetime: 10 * time.Second,
			exit:     500 * time.Millisecond,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			id := tc.raise(env)

			toasts := env.uc.Store.Toasts()
			gt.Array(t, toasts).Length(1)
			gt.Value(t, toasts[0].ID).Equal(id)
			gt.Bool(t, toasts[0].Exiting).False()
			gt.Value(t, env.timers.durations()).Equal([]time.Duration{tc.lifetime})

			gt.Value(t, env.timers.fire(tc.lifetime)).Equal(1)
			toasts = env.uc.Store.Toasts()
			gt.Array(t, toasts).Length(1)
			gt.Bool(t, toasts[0].Exiting).True()
			gt.Value(t, env.timers.durations()).Equal([]time.Duration{tc.exit})

			gt.Value(t, env.timers.fire(tc.exit)).Equal(1)
			gt.Array(t, env.uc.Store.Toasts()).Length(0)
		})
	}
}

func TestToasterDismiss(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.uc.Toaster.Notice(context.Background(), types.ToastLevelError, "Failed")

	env.uc.Notification.DismissToast(id)
	gt.Bool(t, env.uc.Store.Toasts()[0].Exiting).True()

	// a second dismiss and the lifetime timer do not restart the exit phase
	env.uc.Notification.DismissToast(id)
	env.timers.fire(3 * time.Second)
	gt.Value(t, env.timers.durations()).Equal([]time.Duration{400 * time.Millisecond})

	env.timers.fire(400 * time.Millisecond)
	gt.Array(t, env.uc.Store.Toasts()).Length(0)

	env.uc.Notification.DismissToast("unknown")
	gt.Array(t, env.timers.durations()).Length(0)
}

func TestToasterCustomTimings(t *testing.T) {
	timings := model.ToastTimings{
		NoticeLifetime: time.Second,
		NoticeExit:     10 * time.Millisecond,
		AlertLifetime:  2 * time.Second,
		AlertExit:      20 * time.Millisecond,
	}
	env := newTestEnv(t, []usecase.Option{usecase.WithToastTimings(timings)})

	env.uc.Toaster.Notice(context.Background(), types.ToastLevelInfo, "hi")
	gt.Value(t, env.timers.durations()).Equal([]time.Duration{time.Second})
	env.timers.fire(time.Second)
	gt.Value(t, env.timers.durations()).Equal([]time.Duration{10 * time.Millisecond})
}

func TestToasterDeliversToSinks(t *testing.T) {
	env := newTestEnv(t, nil)
	env.uc.Toaster.Notice(context.Background(), types.ToastLevelInfo, "one")
	env.uc.Toaster.Alert(context.Background(), &model.Notification{ID: "n9", Title: "two"})

	delivered := env.sink.delivered()
	gt.Array(t, delivered).Length(2)
	gt.Value(t, delivered[0].Kind).Equal(types.ToastKindNotice)
	gt.Value(t, delivered[1].Kind).Equal(types.ToastKindAlert)
	gt.Value(t, delivered[1].NotificationID).Equal("n9")
	gt.Value(t, delivered[0].CreatedAt).Equal(baseTime)
}
