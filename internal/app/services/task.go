package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
	"github.com/kalpovskii/tasklist/internal/app/repositories"
)

const (
	taskTTL     = 60 * time.Second
	taskListTTL = 15 * time.Second
)

// ErrEmptyTitle is returned when a create or update would leave a task
// with a blank title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// EventSink receives task lifecycle notifications. Delivery is best effort:
// implementations must not fail the operation that triggered the event.
type EventSink interface {
	SendEvent(action string)
}

type noopSink struct{}

func (noopSink) SendEvent(string) {}

type TaskService struct {
	repo   repositories.TaskRepository
	cache  repositories.TaskCache
	events EventSink
}

func NewTaskService(repo repositories.TaskRepository, cache repositories.TaskCache, events EventSink) *TaskService {
	if cache == nil {
		cache = repositories.NoopTaskCache{}
	}
	if events == nil {
		events = noopSink{}
	}
	return &TaskService{
		repo:   repo,
		cache:  cache,
		events: events,
	}
}

func (s *TaskService) Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.SetTask(ctx, task, taskTTL)
	_ = s.cache.DeleteTaskList(ctx)

	s.events.SendEvent("task.created:" + task.ID.String())

	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	if tasks, err := s.cache.GetTaskList(ctx); err == nil && tasks != nil {
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTaskList(ctx, tasks, taskListTTL)

	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if task, err := s.cache.GetTask(ctx, id.String()); err == nil && task != nil {
		return task, nil
	}

	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetTask(ctx, task, taskTTL)

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	_ = s.cache.DeleteTask(ctx, id.String())
	_ = s.cache.DeleteTaskList(ctx)

	s.events.SendEvent("task.updated:" + id.String())

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteTask(ctx, id.String())
	_ = s.cache.DeleteTaskList(ctx)

	s.events.SendEvent("task.deleted:" + id.String())

	return nil
}
