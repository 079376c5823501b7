package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type notificationRepository struct {
	collection
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	created := n.Clone()
	created.ID = id
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("id", id))
	}
	return created, nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*model.Notification, error) {
	return get[model.Notification](ctx, &r.collection, id, "notification")
}

// ListByUser needs the (UserID ASC, CreatedAt DESC) composite index
func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	iter := r.ref().
		Where("UserID", "==", userID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)

	items, err := collect[model.Notification](iter, "notifications")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("user_id", userID))
	}
	return items, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if err := r.exists(ctx, n.ID, "notification"); err != nil {
		return nil, err
	}

	updated := n.Clone()
	if _, err := r.doc(n.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update notification", goerr.V("id", n.ID))
	}
	return updated, nil
}
