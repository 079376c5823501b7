package backend

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	list, err := s.repo.Notification().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("user_id", userID))
	}
	return list, nil
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	list, err := s.repo.Notification().ListByUser(ctx, userID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list notifications", goerr.V("user_id", userID))
	}

	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, notificationID string) error {
	n, err := s.repo.Notification().Get(ctx, notificationID)
	if err != nil {
		return goerr.Wrap(err, "failed to get notification", goerr.V("notification_id", notificationID))
	}
	if n.IsRead {
		return nil
	}

	n.IsRead = true
	if _, err := s.repo.Notification().Update(ctx, n); err != nil {
		return goerr.Wrap(err, "failed to update notification", goerr.V("notification_id", notificationID))
	}
	return nil
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	list, err := s.repo.Notification().ListByUser(ctx, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to list notifications", goerr.V("user_id", userID))
	}

	for _, n := range list {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if _, err := s.repo.Notification().Update(ctx, n); err != nil {
			return goerr.Wrap(err, "failed to update notification", goerr.V("notification_id", n.ID))
		}
	}
	return nil
}

// CreateNotification stores a notification raised outside the task flow,
// such as a failed automated action
func (s *Service) CreateNotification(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n.UserID == "" || !n.Type.IsValid() {
		return nil, goerr.Wrap(interfaces.ErrInvalidInput, "invalid notification",
			goerr.V("user_id", n.UserID), goerr.V("type", n.Type))
	}

	input := n.Clone()
	input.ID = ""
	if input.CreatedAt.IsZero() {
		input.CreatedAt = s.clock()
	}

	created, err := s.repo.Notification().Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("user_id", n.UserID))
	}
	return created, nil
}
