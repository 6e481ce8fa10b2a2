package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
)

// MemoryTaskRepo holds the whole task collection in process memory.
// Reads take the shared lock, mutations take the exclusive lock, so an
// update is applied atomically and concurrent creates never collide.
type MemoryTaskRepo struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*models.Task
	order []uuid.UUID
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		tasks: make(map[uuid.UUID]*models.Task),
	}
}

func (r *MemoryTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.New()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	r.tasks[task.ID] = &stored
	r.order = append(r.order, task.ID)

	return nil
}

// List returns the tasks in insertion order. Deleted ids stay out of the
// order slice, so the snapshot length always matches the map.
func (r *MemoryTaskRepo) List(_ context.Context) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0, len(r.order))
	for _, id := range r.order {
		tasks = append(tasks, *r.tasks[id])
	}
	return tasks, nil
}

func (r *MemoryTaskRepo) Get(_ context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	snapshot := *task
	return &snapshot, nil
}

func (r *MemoryTaskRepo) Update(_ context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}
	task.UpdatedAt = time.Now()

	snapshot := *task
	return &snapshot, nil
}

func (r *MemoryTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
