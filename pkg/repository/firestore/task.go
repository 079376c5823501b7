package firestore

import (
	"context"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	collection
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := task.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now
	for i := range created.Reminders {
		created.Reminders[i].TaskID = id
	}

	if _, err := r.doc(id).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", id))
	}
	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	return get[model.Task](ctx, &r.collection, id, "task")
}

// List narrows by date range in the query and applies the rest of the filter
// in process
func (r *taskRepository) List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	query := r.ref().Query
	if filter.StartDate != "" {
		query = query.Where("Date", ">=", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("Date", "<=", filter.EndDate)
	}

	all, err := collect[model.Task](query.Documents(ctx), "tasks")
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.Task, 0, len(all))
	for _, t := range all {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	model.SortTasks(tasks)
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	existing, err := r.Get(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	updated := task.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(task.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", task.ID))
	}
	return updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id, "task")
}
