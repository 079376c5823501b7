package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// state is the canonical client side copy of every entity. It is only
// touched inside Store's critical sections.
type state struct {
	session *model.Session

	contacts      []*model.Contact
	contactFilter model.ContactFilter
	pagination    model.Pagination
	contactsEpoch uint64
	loadSeq       uint64

	claims          []*model.Claim
	claimsFetchedAt time.Time
	claimsGen       uint64

	tasks   []*model.Task
	notes   []*model.Note
	tickets []*model.Ticket

	notifications       []*model.Notification
	unreadCount         int
	seen                map[string]struct{}
	notificationsSeeded bool

	actionLogs []*model.ActionLogEntry
	activities []*model.Activity
	toasts     []*model.Toast
}

func newState() state {
	return state{
		pagination: model.DefaultPagination(),
		seen:       make(map[string]struct{}),
	}
}

// Store holds the client state. Every mutation runs inside one short critical
// section and no network call is made while the lock is held. The epoch
// changes on logout so that responses issued under an earlier session can be
// recognised and dropped.
type Store struct {
	mu    sync.RWMutex
	st    state
	epoch uint64
}

func newStore() *Store {
	return &Store{st: newState()}
}

// begin runs fn against the state and returns the epoch it ran under
func (s *Store) begin(fn func(st *state)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
	return s.epoch
}

// commit runs fn only if the store is still at epoch
func (s *Store) commit(epoch uint64, fn func(st *state)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	fn(&s.st)
	return true
}

func (s *Store) update(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.st)
}

func (s *Store) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// session returns a copy of the logged in session and the current epoch
func (s *Store) session() (*model.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.st.session == nil {
		return nil, s.epoch
	}
	copied := *s.st.session
	return &copied, s.epoch
}

// reset drops every collection and moves to a new epoch
func (s *Store) reset(session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.st = newState()
	s.st.session = session
}

// Session returns the logged in user or nil
func (s *Store) Session() *model.Session {
	sess, _ := s.session()
	return sess
}

func (s *Store) Claims() []*model.Claim {
	var out []*model.Claim
	s.read(func(st *state) { out = cloneAll(st.claims, (*model.Claim).Clone) })
	return out
}

// Claim returns the claim with id or nil
func (s *Store) Claim(id string) *model.Claim {
	var out *model.Claim
	s.read(func(st *state) {
		if c := st.findClaim(id); c != nil {
			out = c.Clone()
		}
	})
	return out
}

// ClaimsFetchedAt returns the time of the last successful full claims fetch
func (s *Store) ClaimsFetchedAt() time.Time {
	var t time.Time
	s.read(func(st *state) { t = st.claimsFetchedAt })
	return t
}

func (s *Store) Contacts() []*model.Contact {
	var out []*model.Contact
	s.read(func(st *state) { out = cloneAll(st.contacts, (*model.Contact).Clone) })
	return out
}

// Contact returns the contact with id or nil
func (s *Store) Contact(id string) *model.Contact {
	var out *model.Contact
	s.read(func(st *state) {
		if c := st.findContact(id); c != nil {
			out = c.Clone()
		}
	})
	return out
}

func (s *Store) Pagination() model.Pagination {
	var p model.Pagination
	s.read(func(st *state) { p = st.pagination })
	return p
}

func (s *Store) Tasks() []*model.Task {
	var out []*model.Task
	s.read(func(st *state) { out = cloneAll(st.tasks, (*model.Task).Clone) })
	return out
}

// Task returns the task with id or nil
func (s *Store) Task(id string) *model.Task {
	var out *model.Task
	s.read(func(st *state) {
		if i := st.taskIndex(id); i >= 0 {
			out = st.tasks[i].Clone()
		}
	})
	return out
}

// Notes returns the notes of one contact
func (s *Store) Notes(contactID string) []*model.Note {
	var out []*model.Note
	s.read(func(st *state) {
		for _, n := range st.notes {
			if n.ContactID == contactID {
				out = append(out, n.Clone())
			}
		}
	})
	return out
}

// Tickets returns the support tickets visible to the session user
func (s *Store) Tickets() []*model.Ticket {
	var out []*model.Ticket
	s.read(func(st *state) { out = cloneAll(st.tickets, (*model.Ticket).Clone) })
	return out
}

func (s *Store) Notifications() []*model.Notification {
	var out []*model.Notification
	s.read(func(st *state) { out = cloneAll(st.notifications, (*model.Notification).Clone) })
	return out
}

func (s *Store) UnreadCount() int {
	var n int
	s.read(func(st *state) { n = st.unreadCount })
	return n
}

// Seen reports whether the notification id is in the session's seen set
func (s *Store) Seen(id string) bool {
	var ok bool
	s.read(func(st *state) { _, ok = st.seen[id] })
	return ok
}

func (s *Store) ActionLogs() []*model.ActionLogEntry {
	var out []*model.ActionLogEntry
	s.read(func(st *state) { out = cloneAll(st.actionLogs, (*model.ActionLogEntry).Clone) })
	return out
}

func (s *Store) Activities() []*model.Activity {
	var out []*model.Activity
	s.read(func(st *state) {
		out = make([]*model.Activity, len(st.activities))
		for i, a := range st.activities {
			copied := *a
			out[i] = &copied
		}
	})
	return out
}

func (s *Store) Toasts() []*model.Toast {
	var out []*model.Toast
	s.read(func(st *state) { out = cloneAll(st.toasts, (*model.Toast).Clone) })
	return out
}

func cloneAll[T any](items []*T, clone func(*T) *T) []*T {
	out := make([]*T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func (st *state) findClaim(id string) *model.Claim {
	for _, c := range st.claims {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (st *state) findContact(id string) *model.Contact {
	for _, c := range st.contacts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (st *state) taskIndex(id string) int {
	for i, t := range st.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// claimSnapshot is what a claim looked like before an optimistic transition
type claimSnapshot struct {
	status      types.ClaimStatus
	daysInStage int
	lender      string
	contactID   string
}

// transitionClaims is the only writer of Claim.Status besides the full
// replace. It moves every listed claim that exists locally to status, resets
// its stage age and returns what each looked like before.
func transitionClaims(st *state, ids []string, status types.ClaimStatus) map[string]claimSnapshot {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	previous := make(map[string]claimSnapshot)
	touched := make(map[string]struct{})
	for _, c := range st.claims {
		if _, ok := want[c.ID]; !ok {
			continue
		}
		if _, done := previous[c.ID]; done {
			continue
		}
		previous[c.ID] = claimSnapshot{
			status:      c.Status,
			daysInStage: c.DaysInStage,
			lender:      c.Lender,
			contactID:   c.ContactID,
		}
		c.Status = status
		c.DaysInStage = 0
		touched[c.ContactID] = struct{}{}
	}

	st.mirrorContacts(touched, false)
	return previous
}

// revertClaims restores claims from previous, but only those still showing
// the optimistic status. A claim overwritten meanwhile by a full fetch is left
// alone.
func revertClaims(st *state, previous map[string]claimSnapshot, optimistic types.ClaimStatus) {
	touched := make(map[string]struct{})
	for _, c := range st.claims {
		snap, ok := previous[c.ID]
		if !ok || c.Status != optimistic {
			continue
		}
		c.Status = snap.status
		c.DaysInStage = snap.daysInStage
		touched[c.ContactID] = struct{}{}
	}
	st.mirrorContacts(touched, false)
}

// invalidateClaims clears the freshness timestamp and moves the claims
// generation so that a full fetch already in flight is dropped when it lands
func (st *state) invalidateClaims() {
	st.claimsFetchedAt = time.Time{}
	st.claimsGen++
}

func (st *state) replaceClaims(claims []*model.Claim, fetchedAt time.Time) {
	st.claims = cloneAll(claims, (*model.Claim).Clone)
	st.claimsFetchedAt = fetchedAt

	touched := make(map[string]struct{}, len(st.contacts))
	for _, c := range st.contacts {
		touched[c.ID] = struct{}{}
	}
	st.mirrorContacts(touched, false)
}

// mirrorContacts copies each touched contact's primary claim onto it. With
// clearEmpty a contact without local claims has its mirror cleared.
func (st *state) mirrorContacts(contactIDs map[string]struct{}, clearEmpty bool) {
	if len(contactIDs) == 0 {
		return
	}
	byContact := make(map[string][]*model.Claim)
	for _, c := range st.claims {
		if _, ok := contactIDs[c.ContactID]; ok {
			byContact[c.ContactID] = append(byContact[c.ContactID], c)
		}
	}
	for _, contact := range st.contacts {
		if _, ok := contactIDs[contact.ID]; !ok {
			continue
		}
		primary := model.PrimaryClaim(byContact[contact.ID])
		if primary == nil && !clearEmpty {
			continue
		}
		contact.MirrorPrimary(primary)
	}
}

func (st *state) appendActivity(now time.Time, contactID, claimID, title, description string) {
	st.activities = append(st.activities, &model.Activity{
		ID:          uuid.NewString(),
		ContactID:   contactID,
		ClaimID:     claimID,
		Title:       title,
		Description: description,
		Date:        now,
	})
}

func (st *state) upsertTask(t *model.Task) {
	if i := st.taskIndex(t.ID); i >= 0 {
		st.tasks[i] = t.Clone()
		return
	}
	st.tasks = append(st.tasks, t.Clone())
}

// upsertTicket keeps tickets newest first
func (st *state) upsertTicket(t *model.Ticket) {
	for i, existing := range st.tickets {
		if existing.ID == t.ID {
			st.tickets[i] = t.Clone()
			return
		}
	}
	st.tickets = append([]*model.Ticket{t.Clone()}, st.tickets...)
}

func (st *state) removeTask(id string) {
	if i := st.taskIndex(id); i >= 0 {
		st.tasks = append(st.tasks[:i], st.tasks[i+1:]...)
	}
}

func (st *state) removeContacts(ids map[string]struct{}) {
	st.contacts = filterOut(st.contacts, func(c *model.Contact) bool { _, ok := ids[c.ID]; return ok })
	st.claims = filterOut(st.claims, func(c *model.Claim) bool { _, ok := ids[c.ContactID]; return ok })
	st.notes = filterOut(st.notes, func(n *model.Note) bool { _, ok := ids[n.ContactID]; return ok })
}

func filterOut[T any](items []*T, drop func(*T) bool) []*T {
	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(items); i++ {
		items[i] = nil
	}
	return kept
}
