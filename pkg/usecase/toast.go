package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// AfterFunc schedules f to run once after d
type AfterFunc func(d time.Duration, f func())

func defaultAfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Toaster raises transient toasts. Notices report the outcome of a user
// action; alerts are promoted notifications. Removal is two phase: a toast is
// first marked Exiting, then dropped once its exit phase elapses.
type Toaster struct {
	store     *Store
	sinks     []interfaces.ToastSink
	timings   model.ToastTimings
	afterFunc AfterFunc
	clock     func() time.Time
}

func newToaster(store *Store, sinks []interfaces.ToastSink, timings model.ToastTimings, afterFunc AfterFunc, clock func() time.Time) *Toaster {
	return &Toaster{
		store:     store,
		sinks:     sinks,
		timings:   timings,
		afterFunc: afterFunc,
		clock:     clock,
	}
}

// Notice raises a feedback toast and returns its id
func (t *Toaster) Notice(ctx context.Context, level types.ToastLevel, msg string) string {
	return t.raise(ctx, &model.Toast{
		Kind:    types.ToastKindNotice,
		Level:   level,
		Message: msg,
	})
}

// Alert promotes a notification to an alert toast and returns its id
func (t *Toaster) Alert(ctx context.Context, n *model.Notification) string {
	return t.raise(ctx, &model.Toast{
		Kind:           types.ToastKindAlert,
		Level:          types.ToastLevelError,
		Title:          n.Title,
		Message:        n.Message,
		NotificationID: n.ID,
	})
}

func (t *Toaster) raise(ctx context.Context, toast *model.Toast) string {
	toast.ID = uuid.NewString()
	toast.CreatedAt = t.clock()

	t.store.update(func(st *state) {
		st.toasts = append(st.toasts, toast.Clone())
	})

	for _, sink := range t.sinks {
		sink.Deliver(ctx, toast.Clone())
	}

	id := toast.ID
	t.afterFunc(t.timings.Lifetime(toast.Kind), func() { t.Dismiss(id) })
	return id
}

// Dismiss starts the exit phase of a toast. Unknown or already exiting
// toasts are ignored.
func (t *Toaster) Dismiss(id string) {
	var (
		kind   types.ToastKind
		marked bool
	)
	t.store.update(func(st *state) {
		for _, toast := range st.toasts {
			if toast.ID != id || toast.Exiting {
				continue
			}
			toast.Exiting = true
			kind = toast.Kind
			marked = true
			return
		}
	})
	if !marked {
		return
	}

	t.afterFunc(t.timings.Exit(kind), func() { t.remove(id) })
}

func (t *Toaster) remove(id string) {
	t.store.update(func(st *state) {
		st.toasts = filterOut(st.toasts, func(toast *model.Toast) bool {
			return toast.ID == id
		})
	})
}
