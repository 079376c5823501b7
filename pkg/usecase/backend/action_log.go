package backend

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Service) ListActionLogs(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error) {
	entries, err := s.repo.ActionLog().ListByClient(ctx, clientID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list action logs", goerr.V("client_id", clientID))
	}
	return entries, nil
}

func (s *Service) ListAllActionLogs(ctx context.Context) ([]*model.ActionLogEntry, error) {
	entries, err := s.repo.ActionLog().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list action logs")
	}
	return entries, nil
}
