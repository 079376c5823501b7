package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultFirstLoadWindow bounds how old an alert may be to be shown on
	// the first fetch of a session
	DefaultFirstLoadWindow = 30 * time.Minute

	// DefaultFirstLoadCap is the most alerts shown on the first fetch
	DefaultFirstLoadCap = 5
)

// NotificationUseCase polls persistent notifications and promotes new
// action errors to alert toasts, each at most once per session.
type NotificationUseCase struct {
	backend         interfaces.NotificationAPI
	store           *Store
	cache           *ClaimCache
	toaster         *Toaster
	clock           func() time.Time
	firstLoadWindow time.Duration
	firstLoadCap    int
}

func newNotificationUseCase(backend interfaces.NotificationAPI, store *Store, cache *ClaimCache, toaster *Toaster, clock func() time.Time, window time.Duration, limit int) *NotificationUseCase {
	return &NotificationUseCase{
		backend:         backend,
		store:           store,
		cache:           cache,
		toaster:         toaster,
		clock:           clock,
		firstLoadWindow: window,
		firstLoadCap:    limit,
	}
}

// Fetch loads the notification list and unread count in parallel and applies
// each one that succeeded. Without a session it does nothing.
func (uc *NotificationUseCase) Fetch(ctx context.Context) error {
	session, epoch := uc.store.session()
	if session == nil {
		return nil
	}

	var (
		list     []*model.Notification
		count    int
		listErr  error
		countErr error
	)
	var eg errgroup.Group
	eg.Go(func() error {
		list, listErr = uc.backend.ListNotifications(ctx, session.UserID)
		return nil
	})
	eg.Go(func() error {
		count, countErr = uc.backend.CountUnread(ctx, session.UserID)
		return nil
	})
	_ = eg.Wait()

	now := uc.clock()
	var (
		promoted []*model.Notification
		arrived  bool
	)
	live := uc.store.commit(epoch, func(st *state) {
		if countErr == nil {
			st.unreadCount = count
		}
		if listErr != nil {
			return
		}

		st.notifications = cloneAll(list, (*model.Notification).Clone)
		if !st.notificationsSeeded {
			promoted = recentAlerts(list, now, uc.firstLoadWindow, uc.firstLoadCap)
			for _, n := range list {
				st.seen[n.ID] = struct{}{}
			}
			st.notificationsSeeded = true
			return
		}

		for _, n := range list {
			if _, ok := st.seen[n.ID]; ok || !n.IsUnreadAlert() {
				continue
			}
			st.seen[n.ID] = struct{}{}
			promoted = append(promoted, n.Clone())
		}
		sortOldestFirst(promoted)
		arrived = len(promoted) > 0
	})
	if !live {
		return nil
	}

	for _, n := range promoted {
		uc.toaster.Alert(ctx, n)
	}

	if arrived {
		uc.cache.Invalidate()
		if err := uc.cache.FetchAll(ctx); err != nil {
			errutil.Handle(ctx, err, "failed to refresh claims after new alert")
		}
	}

	var errs []error
	if listErr != nil {
		errs = append(errs, goerr.Wrap(listErr, "failed to list notifications", goerr.V(UserIDKey, session.UserID)))
	}
	if countErr != nil {
		errs = append(errs, goerr.Wrap(countErr, "failed to count unread notifications", goerr.V(UserIDKey, session.UserID)))
	}
	return errors.Join(errs...)
}

// recentAlerts picks the unread alerts created within window before now,
// keeps the newest limit of them and returns them oldest first
func recentAlerts(list []*model.Notification, now time.Time, window time.Duration, limit int) []*model.Notification {
	cutoff := now.Add(-window)
	var recent []*model.Notification
	for _, n := range list {
		if !n.IsUnreadAlert() || n.CreatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, n.Clone())
	}

	sortOldestFirst(recent)
	if limit >= 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}
	return recent
}

func sortOldestFirst(list []*model.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return model.LessID(list[i].ID, list[j].ID)
	})
}

// MarkRead marks one notification read. The unread count drops by one unless
// the local copy was already read.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, notificationID string) *model.Result {
	epoch := uc.store.currentEpoch()
	if err := uc.backend.MarkNotificationRead(ctx, notificationID); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to mark notification read",
			goerr.V("notification_id", notificationID)), "notification update failed")
		return model.Failed("Failed to mark notification read", err)
	}

	uc.store.commit(epoch, func(st *state) {
		wasUnread := true
		for _, n := range st.notifications {
			if n.ID == notificationID {
				wasUnread = !n.IsRead
				n.IsRead = true
				break
			}
		}
		if wasUnread && st.unreadCount > 0 {
			st.unreadCount--
		}
	})
	return model.OK("Notification marked read")
}

// MarkAllRead marks every notification of the session user read
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) *model.Result {
	session, epoch := uc.store.session()
	if session == nil {
		res := model.Invalid("You must be logged in")
		res.Err = goerr.Wrap(ErrNoSession, "mark all read without session")
		return res
	}

	if err := uc.backend.MarkAllNotificationsRead(ctx, session.UserID); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to mark all notifications read",
			goerr.V(UserIDKey, session.UserID)), "notification update failed")
		return model.Failed("Failed to mark notifications read", err)
	}

	uc.store.commit(epoch, func(st *state) {
		for _, n := range st.notifications {
			n.IsRead = true
		}
		st.unreadCount = 0
	})
	return model.OK("All notifications marked read")
}

// DismissToast starts the exit phase of a toast
func (uc *NotificationUseCase) DismissToast(id string) {
	uc.toaster.Dismiss(id)
}
