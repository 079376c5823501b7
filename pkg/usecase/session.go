package usecase

import (
	"context"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// SessionUseCase starts and ends the client session. Both directions drop all
// client state, so responses to requests issued before are discarded.
type SessionUseCase struct {
	store *Store
	clock func() time.Time
}

func newSessionUseCase(store *Store, clock func() time.Time) *SessionUseCase {
	return &SessionUseCase{
		store: store,
		clock: clock,
	}
}

// Login starts a session for userID, ending any previous one
func (uc *SessionUseCase) Login(ctx context.Context, userID, userName string) (*model.Session, error) {
	if userID == "" {
		return nil, goerr.New("user ID is required")
	}

	session := &model.Session{
		UserID:     userID,
		UserName:   userName,
		LoggedInAt: uc.clock(),
	}
	uc.store.reset(session)

	logging.From(ctx).Info("Session started", "user_id", userID)
	copied := *session
	return &copied, nil
}

// Logout clears every collection, the seen set, the claims timestamp and the
// toasts
func (uc *SessionUseCase) Logout(ctx context.Context) {
	prev := uc.store.Session()
	uc.store.reset(nil)
	if prev != nil {
		logging.From(ctx).Info("Session ended", "user_id", prev.UserID)
	}
}

// Current returns the logged in session or nil
func (uc *SessionUseCase) Current() *model.Session {
	return uc.store.Session()
}
