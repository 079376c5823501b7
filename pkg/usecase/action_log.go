package usecase

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ActionLogUseCase reads the backend audit trail. Entries are never changed
// on the client.
type ActionLogUseCase struct {
	backend interfaces.ActionLogAPI
	store   *Store
}

func newActionLogUseCase(backend interfaces.ActionLogAPI, store *Store) *ActionLogUseCase {
	return &ActionLogUseCase{
		backend: backend,
		store:   store,
	}
}

// Fetch replaces the entries of one client, leaving other clients' entries
func (uc *ActionLogUseCase) Fetch(ctx context.Context, clientID string) error {
	epoch := uc.store.currentEpoch()
	entries, err := uc.backend.ListActionLogs(ctx, clientID)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch action logs", goerr.V("client_id", clientID))
	}

	uc.store.commit(epoch, func(st *state) {
		st.actionLogs = filterOut(st.actionLogs, func(e *model.ActionLogEntry) bool { return e.ClientID == clientID })
		for _, e := range entries {
			if e.ClientID == clientID {
				st.actionLogs = append(st.actionLogs, e.Clone())
			}
		}
	})
	return nil
}

// FetchAll replaces every entry with the backend's full trail
func (uc *ActionLogUseCase) FetchAll(ctx context.Context) error {
	epoch := uc.store.currentEpoch()
	entries, err := uc.backend.ListAllActionLogs(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch all action logs")
	}

	uc.store.commit(epoch, func(st *state) {
		st.actionLogs = cloneAll(entries, (*model.ActionLogEntry).Clone)
	})
	return nil
}
