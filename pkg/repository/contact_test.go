package repository_test

import (
	"context"
	"testing"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runContactRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Run("Create assigns sequential IDs and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Contact().Create(ctx, &model.Contact{
			FullName: "Jane Doe",
			Address:  model.Address{Line1: "1 High St", PostalCode: "M1 1AA"},
		})
		gt.NoError(t, err).Required()
		second, err := repo.Contact().Create(ctx, &model.Contact{FullName: "John Roe"})
		gt.NoError(t, err).Required()

		gt.Value(t, first.ID).Equal("1")
		gt.Value(t, second.ID).Equal("2")
		gt.Bool(t, first.CreatedAt.IsZero()).False()

		got, err := repo.Contact().Get(ctx, first.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.FullName).Equal("Jane Doe")
		gt.Value(t, got.Address.PostalCode).Equal("M1 1AA")
	})

	t.Run("List returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Contact().Create(ctx, &model.Contact{FullName: "Older"})
		gt.NoError(t, err).Required()
		_, err = repo.Contact().Create(ctx, &model.Contact{FullName: "Newer"})
		gt.NoError(t, err).Required()

		contacts, err := repo.Contact().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, contacts).Length(2)
		gt.Value(t, contacts[0].FullName).Equal("Newer")
	})

	t.Run("Update keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Contact().Create(ctx, &model.Contact{FullName: "Jane Doe"})
		gt.NoError(t, err).Required()

		edit := created.Clone()
		edit.Status = types.ClaimStatusLOASent
		edit.CreatedAt = created.CreatedAt.AddDate(-1, 0, 0)
		updated, err := repo.Contact().Update(ctx, edit)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.ClaimStatusLOASent)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("missing contact is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Contact().Get(ctx, "404")
		gt.Error(t, err).Is(interfaces.ErrNotFound)
		_, err = repo.Contact().Update(ctx, &model.Contact{ID: "404", FullName: "x"})
		gt.Error(t, err).Is(interfaces.ErrNotFound)
		gt.Error(t, repo.Contact().Delete(ctx, "404")).Is(interfaces.ErrNotFound)
	})

	t.Run("Delete removes the contact", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Contact().Create(ctx, &model.Contact{FullName: "Jane Doe"})
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Contact().Delete(ctx, created.ID)).Required()

		_, err = repo.Contact().Get(ctx, created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestContactRepository(t *testing.T) {
	runAll(t, runContactRepositoryTest)
}
