package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*model.Notification
	seq           sequence
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[string]*model.Notification),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := n.Clone()
	created.ID = r.seq.nextID()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.notifications[created.ID] = created
	return created.Clone(), nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return n.Clone(), nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			result = append(result, n.Clone())
		}
	}
	sortNewestFirst(result, func(n *model.Notification) (int64, string) {
		return n.CreatedAt.UnixNano(), n.ID
	})
	return result, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notifications[n.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", n.ID))
	}

	updated := n.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.notifications[updated.ID] = updated
	return updated.Clone(), nil
}
