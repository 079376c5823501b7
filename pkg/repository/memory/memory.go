package memory

import (
	"sort"
	"strconv"
	"sync"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
)

// ErrNotFound is returned for unknown IDs
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is a process local Repository for development and tests
type Memory struct {
	contact      *contactRepository
	claim        *claimRepository
	task         *taskRepository
	notification *notificationRepository
	actionLog    *actionLogRepository
	note         *noteRepository
	ticket       *ticketRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		contact:      newContactRepository(),
		claim:        newClaimRepository(),
		task:         newTaskRepository(),
		notification: newNotificationRepository(),
		actionLog:    newActionLogRepository(),
		note:         newNoteRepository(),
		ticket:       newTicketRepository(),
	}
}

func (m *Memory) Contact() interfaces.ContactRepository {
	return m.contact
}

func (m *Memory) Claim() interfaces.ClaimRepository {
	return m.claim
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) ActionLog() interfaces.ActionLogRepository {
	return m.actionLog
}

func (m *Memory) Note() interfaces.NoteRepository {
	return m.note
}

func (m *Memory) Ticket() interfaces.TicketRepository {
	return m.ticket
}

// Close is a no-op for the memory repository
func (m *Memory) Close() error {
	return nil
}

// sequence hands out decimal IDs starting at 1
type sequence struct {
	mu   sync.Mutex
	next int64
}

func (s *sequence) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return strconv.FormatInt(s.next, 10)
}

// sortNewestFirst orders items by created time descending, newest ID first on ties
func sortNewestFirst[T any](items []T, key func(T) (createdAt int64, id string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti > tj
		}
		return model.LessID(idj, idi)
	})
}
