package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
	_ "github.com/lib/pq"
)

type PostgresTaskRepo struct {
	db *sql.DB
}

func NewPostgresTaskRepo(dsn string) (*PostgresTaskRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, err
	}

	return &PostgresTaskRepo{db: db}, nil
}

func (r *PostgresTaskRepo) Create(ctx context.Context, task *models.Task) error {
	task.ID = uuid.New()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, description, completed, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		task.ID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *PostgresTaskRepo) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, description, completed, created_at, updated_at FROM tasks ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepo) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, completed, created_at, updated_at FROM tasks WHERE id = $1", id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTaskRepo) Update(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
	var t models.Task
	err := r.db.QueryRowContext(ctx, `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			completed = COALESCE($4, completed),
			updated_at = $5
		WHERE id = $1
		RETURNING id, title, description, completed, created_at, updated_at`,
		id, upd.Title, upd.Description, upd.Completed, time.Now()).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
