package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type actionLogRepository struct {
	collection
}

func (r *actionLogRepository) Append(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	created := entry.Clone()
	created.ID = id
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to append action log", goerr.V("id", id))
	}
	return created, nil
}

// ListByClient needs the (ClientID ASC, Timestamp DESC) composite index
func (r *actionLogRepository) ListByClient(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error) {
	iter := r.ref().
		Where("ClientID", "==", clientID).
		OrderBy("Timestamp", firestore.Desc).
		Documents(ctx)

	entries, err := collect[model.ActionLogEntry](iter, "action logs")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list action logs", goerr.V("client_id", clientID))
	}
	return entries, nil
}

func (r *actionLogRepository) List(ctx context.Context) ([]*model.ActionLogEntry, error) {
	iter := r.ref().OrderBy("Timestamp", firestore.Desc).Documents(ctx)
	return collect[model.ActionLogEntry](iter, "action logs")
}
