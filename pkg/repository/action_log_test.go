package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runActionLogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("entries are listed per client newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		for i, e := range []*model.ActionLogEntry{
			{ClientID: "c1", ActionType: "contact_created", ActionCategory: types.ActionCategoryAccount},
			{ClientID: "c2", ActionType: "contact_created", ActionCategory: types.ActionCategoryAccount},
			{
				ClientID:       "c1",
				ActionType:     "status_changed",
				ActionCategory: types.ActionCategoryClaims,
				Metadata:       map[string]string{"from": "New Lead", "to": "LOA Sent"},
			},
		} {
			e.Timestamp = base.Add(time.Duration(i) * time.Second)
			created, err := repo.ActionLog().Append(ctx, e)
			gt.NoError(t, err).Required()
			gt.Value(t, created.ID).NotEqual("")
		}

		entries, err := repo.ActionLog().ListByClient(ctx, "c1")
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2).Required()
		gt.Value(t, entries[0].ActionType).Equal("status_changed")
		gt.Value(t, entries[0].Metadata["to"]).Equal("LOA Sent")

		all, err := repo.ActionLog().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3).Required()
		gt.Value(t, all[2].ClientID).Equal("c1")
		gt.Value(t, all[2].ActionType).Equal("contact_created")
	})

	t.Run("Append stamps a missing timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.ActionLog().Append(ctx, &model.ActionLogEntry{ClientID: "c1", ActionType: "note_added"})
		gt.NoError(t, err).Required()
		gt.Bool(t, created.Timestamp.IsZero()).False()
	})
}

func TestActionLogRepository(t *testing.T) {
	runAll(t, runActionLogRepositoryTest)
}
