package usecase_test

import (
	"context"
	"testing"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSessionLoginLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := env.uc.Session.Login(ctx, "", "nobody")
	gt.Value(t, err).NotNil()
	gt.Value(t, env.uc.Session.Current()).Nil()

	env.login(t, "agent-1")
	gt.Value(t, env.uc.Session.Current().UserID).Equal("agent-1")
	gt.Bool(t, env.uc.Session.Current().LoggedInAt.Equal(baseTime)).True()

	jane := env.seedContact(t, "Jane Doe")
	env.seedClaim(t, jane.ID, "Ford Credit", types.ClaimStatusNewLead)
	env.seedNotification(t, actionError("agent-1", baseTime, "x"))
	loadClaims(t, env)
	gt.NoError(t, env.uc.Notification.Fetch(ctx)).Required()
	gt.Array(t, env.alerts()).Length(1)

	env.uc.Session.Logout(ctx)

	gt.Value(t, env.uc.Session.Current()).Nil()
	gt.Array(t, env.uc.Store.Claims()).Length(0)
	gt.Array(t, env.uc.Store.Contacts()).Length(0)
	gt.Array(t, env.uc.Store.Notifications()).Length(0)
	gt.Array(t, env.uc.Store.Toasts()).Length(0)
	gt.Value(t, env.uc.Store.UnreadCount()).Equal(0)
	gt.Bool(t, env.uc.Store.ClaimsFetchedAt().IsZero()).True()
	gt.Value(t, env.uc.Store.Pagination()).Equal(model.DefaultPagination())

	// the seen set starts over, so the next session gets a first load again
	env.login(t, "agent-1")
	gt.NoError(t, env.uc.Notification.Fetch(ctx)).Required()
	gt.Array(t, env.alerts()).Length(1)
}

func TestSessionLogoutDropsInFlightPage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.login(t, "agent-1")
	seedContacts(t, env, 3)

	env.backend.listContacts = func(ctx context.Context, q model.ContactQuery) (*model.ContactPage, error) {
		env.uc.Session.Logout(ctx)
		return env.backend.Service.ListContacts(ctx, q)
	}

	gt.NoError(t, env.uc.Contact.FetchPage(ctx, 1, 10, model.ContactFilter{})).Required()
	gt.Array(t, env.uc.Store.Contacts()).Length(0)
}
