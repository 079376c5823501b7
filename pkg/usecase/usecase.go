package usecase

import (
	"context"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type UseCases struct {
	backend         interfaces.Backend
	clock           func() time.Time
	afterFunc       AfterFunc
	loc             *time.Location
	stalenessWindow time.Duration
	toastTimings    model.ToastTimings
	sinks           []interfaces.ToastSink
	firstLoadWindow time.Duration
	firstLoadCap    int

	Store        *Store
	Toaster      *Toaster
	Session      *SessionUseCase
	ClaimCache   *ClaimCache
	Claim        *ClaimUseCase
	Notification *NotificationUseCase
	Task         *TaskUseCase
	Contact      *ContactUseCase
	Note         *NoteUseCase
	ActionLog    *ActionLogUseCase
	Ticket       *TicketUseCase
}

type Option func(*UseCases)

func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// WithAfterFunc replaces time.AfterFunc for toast expiry
func WithAfterFunc(f AfterFunc) Option {
	return func(uc *UseCases) {
		uc.afterFunc = f
	}
}

// WithLocation sets the time zone task dates and times are read in
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.loc = loc
	}
}

func WithStalenessWindow(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.stalenessWindow = d
	}
}

func WithToastTimings(t model.ToastTimings) Option {
	return func(uc *UseCases) {
		uc.toastTimings = t
	}
}

// WithToastSink registers a sink that receives every raised toast
func WithToastSink(sink interfaces.ToastSink) Option {
	return func(uc *UseCases) {
		uc.sinks = append(uc.sinks, sink)
	}
}

// WithFirstLoad sets how far back and how many alerts the first notification
// fetch of a session may show
func WithFirstLoad(window time.Duration, limit int) Option {
	return func(uc *UseCases) {
		uc.firstLoadWindow = window
		uc.firstLoadCap = limit
	}
}

func New(backend interfaces.Backend, opts ...Option) *UseCases {
	uc := &UseCases{
		backend:         backend,
		clock:           time.Now,
		afterFunc:       defaultAfterFunc,
		loc:             time.Local,
		stalenessWindow: DefaultStalenessWindow,
		toastTimings:    model.DefaultToastTimings(),
		firstLoadWindow: DefaultFirstLoadWindow,
		firstLoadCap:    DefaultFirstLoadCap,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Store = newStore()
	uc.Toaster = newToaster(uc.Store, uc.sinks, uc.toastTimings, uc.afterFunc, uc.clock)
	uc.Session = newSessionUseCase(uc.Store, uc.clock)
	uc.ClaimCache = newClaimCache(backend, uc.Store, uc.clock, uc.stalenessWindow)
	uc.Claim = newClaimUseCase(backend, uc.Store, uc.ClaimCache, uc.Toaster, uc.clock)
	uc.Notification = newNotificationUseCase(backend, uc.Store, uc.ClaimCache, uc.Toaster, uc.clock, uc.firstLoadWindow, uc.firstLoadCap)
	uc.Task = newTaskUseCase(backend, uc.Store, uc.Toaster, uc.loc)
	uc.Contact = newContactUseCase(backend, uc.Store, uc.Toaster, uc.clock)
	uc.Note = newNoteUseCase(backend, uc.Store, uc.Toaster, uc.clock)
	uc.ActionLog = newActionLogUseCase(backend, uc.Store)
	uc.Ticket = newTicketUseCase(backend, uc.Store, uc.Toaster, uc.Notification.Fetch)

	return uc
}

// CheckReminders asks the backend to dispatch due reminders and returns how
// many were sent
func (uc *UseCases) CheckReminders(ctx context.Context) (int, error) {
	sent, err := uc.backend.CheckReminders(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to check reminders")
	}
	return sent, nil
}
