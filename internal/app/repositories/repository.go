package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
)

// ErrTaskNotFound is returned by every repository when the id is absent.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
