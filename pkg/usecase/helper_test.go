package usecase_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/repository/memory"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/m-mizutani/gt"
)

// fakeBackend serves every call from the reference backend over a memory
// repository unless a hook replaces it
type fakeBackend struct {
	*backend.Service

	mu    sync.Mutex
	calls map[string]int

	listClaims        func(ctx context.Context) ([]*model.Claim, error)
	updateClaimStatus func(ctx context.Context, id string, status types.ClaimStatus) error
	bulkUpdate        func(ctx context.Context, ids []string, status types.ClaimStatus) (int, error)
	updateClaim       func(ctx context.Context, id string, details model.ClaimDetails) (*model.Claim, error)
	listNotifications func(ctx context.Context, userID string) ([]*model.Notification, error)
	countUnread       func(ctx context.Context, userID string) (int, error)
	listContacts      func(ctx context.Context, q model.ContactQuery) (*model.ContactPage, error)
	deleteContact     func(ctx context.Context, id string) error
	rescheduleTask    func(ctx context.Context, id string, req model.RescheduleRequest) (*model.Reschedule, error)
	createTask        func(ctx context.Context, task *model.Task) (*model.Task, error)
	updateTask        func(ctx context.Context, task *model.Task) (*model.Task, error)
	resolveTicket     func(ctx context.Context, id, by, byName string) (*model.Ticket, error)
}

func (f *fakeBackend) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeBackend) ListClaims(ctx context.Context) ([]*model.Claim, error) {
	f.count("ListClaims")
	if f.listClaims != nil {
		return f.listClaims(ctx)
	}
	return f.Service.ListClaims(ctx)
}

func (f *fakeBackend) UpdateClaimStatus(ctx context.Context, id string, status types.ClaimStatus) error {
	f.count("UpdateClaimStatus")
	if f.updateClaimStatus != nil {
		return f.updateClaimStatus(ctx, id, status)
	}
	return f.Service.UpdateClaimStatus(ctx, id, status)
}

func (f *fakeBackend) BulkUpdateClaimStatus(ctx context.Context, ids []string, status types.ClaimStatus) (int, error) {
	f.count("BulkUpdateClaimStatus")
	if f.bulkUpdate != nil {
		return f.bulkUpdate(ctx, ids, status)
	}
	return f.Service.BulkUpdateClaimStatus(ctx, ids, status)
}

func (f *fakeBackend) UpdateClaim(ctx context.Context, id string, details model.ClaimDetails) (*model.Claim, error) {
	f.count("UpdateClaim")
	if f.updateClaim != nil {
		return f.updateClaim(ctx, id, details)
	}
	return f.Service.UpdateClaim(ctx, id, details)
}

func (f *fakeBackend) ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	f.count("ListNotifications")
	if f.listNotifications != nil {
		return f.listNotifications(ctx, userID)
	}
	return f.Service.ListNotifications(ctx, userID)
}

func (f *fakeBackend) CountUnread(ctx context.Context, userID string) (int, error) {
	f.count("CountUnread")
	if f.countUnread != nil {
		return f.countUnread(ctx, userID)
	}
	return f.Service.CountUnread(ctx, userID)
}

func (f *fakeBackend) ListContacts(ctx context.Context, q model.ContactQuery) (*model.ContactPage, error) {
	f.count("ListContacts")
	if f.listContacts != nil {
		return f.listContacts(ctx, q)
	}
	return f.Service.ListContacts(ctx, q)
}

func (f *fakeBackend) DeleteContact(ctx context.Context, id string) error {
	f.count("DeleteContact")
	if f.deleteContact != nil {
		return f.deleteContact(ctx, id)
	}
	return f.Service.DeleteContact(ctx, id)
}

func (f *fakeBackend) RescheduleTask(ctx context.Context, id string, req model.RescheduleRequest) (*model.Reschedule, error) {
	f.count("RescheduleTask")
	if f.rescheduleTask != nil {
		return f.rescheduleTask(ctx, id, req)
	}
	return f.Service.RescheduleTask(ctx, id, req)
}

func (f *fakeBackend) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	f.count("CreateTask")
	if f.createTask != nil {
		return f.createTask(ctx, task)
	}
	return f.Service.CreateTask(ctx, task)
}

func (f *fakeBackend) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	f.count("UpdateTask")
	if f.updateTask != nil {
		return f.updateTask(ctx, task)
	}
	return f.Service.UpdateTask(ctx, task)
}

func (f *fakeBackend) ResolveTicket(ctx context.Context, id, by, byName string) (*model.Ticket, error) {
	f.count("ResolveTicket")
	if f.resolveTicket != nil {
		return f.resolveTicket(ctx, id, by, byName)
	}
	return f.Service.ResolveTicket(ctx, id, by, byName)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type pendingTimer struct {
	d time.Duration
	f func()
}

// fakeTimers collects scheduled callbacks so tests decide when they fire
type fakeTimers struct {
	mu      sync.Mutex
	pending []pendingTimer
}

func (t *fakeTimers) AfterFunc(d time.Duration, f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, pendingTimer{d: d, f: f})
}

// fire runs every pending callback scheduled with duration d
func (t *fakeTimers) fire(d time.Duration) int {
	t.mu.Lock()
	var due []func()
	kept := t.pending[:0]
	for _, p := range t.pending {
		if p.d == d {
			due = append(due, p.f)
		} else {
			kept = append(kept, p)
		}
	}
	t.pending = kept
	t.mu.Unlock()

	for _, f := range due {
		f()
	}
	return len(due)
}

func (t *fakeTimers) durations() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]time.Duration, len(t.pending))
	for i, p := range t.pending {
		out[i] = p.d
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type recordingSink struct {
	mu     sync.Mutex
	toasts []*model.Toast
}

func (s *recordingSink) Deliver(_ context.Context, toast *model.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, toast)
}

func (s *recordingSink) delivered() []*model.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Toast(nil), s.toasts...)
}

type testEnv struct {
	repo    *memory.Memory
	backend *fakeBackend
	uc      *usecase.UseCases
	clock   *fakeClock
	timers  *fakeTimers
	sink    *recordingSink
}

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, ucOpts []usecase.Option, backendOpts ...backend.Option) *testEnv {
	t.Helper()

	clock := &fakeClock{now: baseTime}
	repo := memory.New()
	svc := backend.New(repo, append([]backend.Option{backend.WithClock(clock.Now)}, backendOpts...)...)
	fb := &fakeBackend{Service: svc, calls: make(map[string]int)}
	timers := &fakeTimers{}
	sink := &recordingSink{}

	opts := []usecase.Option{
		usecase.WithClock(clock.Now),
		usecase.WithAfterFunc(timers.AfterFunc),
		usecase.WithLocation(time.UTC),
		usecase.WithToastSink(sink),
	}
	uc := usecase.New(fb, append(opts, ucOpts...)...)

	return &testEnv{
		repo:    repo,
		backend: fb,
		uc:      uc,
		clock:   clock,
		timers:  timers,
		sink:    sink,
	}
}

func (e *testEnv) login(t *testing.T, userID string) {
	t.Helper()
	_, err := e.uc.Session.Login(context.Background(), userID, "Agent "+userID)
	gt.NoError(t, err).Required()
}

func (e *testEnv) seedContact(t *testing.T, name string) *model.Contact {
	t.Helper()
	c, err := e.backend.Service.CreateContact(context.Background(), &model.Contact{FullName: name})
	gt.NoError(t, err).Required()
	return c
}

func (e *testEnv) seedClaim(t *testing.T, contactID, lender string, status types.ClaimStatus) *model.Claim {
	t.Helper()
	creation, err := e.backend.Service.CreateClaim(context.Background(), contactID, &model.Claim{
		Lender:     lender,
		Status:     status,
		ClaimValue: 1000,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, creation.Claim).NotNil()
	return creation.Claim
}

func (e *testEnv) seedNotification(t *testing.T, n *model.Notification) *model.Notification {
	t.Helper()
	created, err := e.backend.Service.CreateNotification(context.Background(), n)
	gt.NoError(t, err).Required()
	return created
}

// notices returns the messages of notice toasts currently in the store
func (e *testEnv) notices() []string {
	var msgs []string
	for _, toast := range e.uc.Store.Toasts() {
		if toast.Kind == types.ToastKindNotice {
			msgs = append(msgs, toast.Message)
		}
	}
	return msgs
}

func (e *testEnv) alerts() []*model.Toast {
	var alerts []*model.Toast
	for _, toast := range e.uc.Store.Toasts() {
		if toast.Kind == types.ToastKindAlert {
			alerts = append(alerts, toast)
		}
	}
	return alerts
}
