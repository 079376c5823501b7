package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
)

type actionLogRepository struct {
	mu      sync.RWMutex
	entries []*model.ActionLogEntry
	seq     sequence
}

func newActionLogRepository() *actionLogRepository {
	return &actionLogRepository{}
}

func (r *actionLogRepository) Append(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := entry.Clone()
	created.ID = r.seq.nextID()
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	r.entries = append(r.entries, created)
	return created.Clone(), nil
}

func (r *actionLogRepository) ListByClient(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error) {
	return r.filter(func(e *model.ActionLogEntry) bool { return e.ClientID == clientID }), nil
}

func (r *actionLogRepository) List(ctx context.Context) ([]*model.ActionLogEntry, error) {
	return r.filter(func(*model.ActionLogEntry) bool { return true }), nil
}

func (r *actionLogRepository) filter(match func(*model.ActionLogEntry) bool) []*model.ActionLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.ActionLogEntry, 0)
	for _, e := range r.entries {
		if match(e) {
			result = append(result, e.Clone())
		}
	}
	sortNewestFirst(result, func(e *model.ActionLogEntry) (int64, string) {
		return e.Timestamp.UnixNano(), e.ID
	})
	return result
}
