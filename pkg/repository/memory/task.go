package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
	seq   sequence
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[string]*model.Task),
	}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := task.Clone()
	created.ID = r.seq.nextID()
	created.CreatedAt = now
	created.UpdatedAt = now
	for i := range created.Reminders {
		created.Reminders[i].TaskID = created.ID
	}

	r.tasks[created.ID] = created
	return created.Clone(), nil
}

func (r *taskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	return t.Clone(), nil
}

func (r *taskRepository) List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.Task, 0)
	for _, t := range r.tasks {
		if filter.Match(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	model.SortTasks(tasks)
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", task.ID))
	}

	updated := task.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.tasks[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	delete(r.tasks, id)
	return nil
}
