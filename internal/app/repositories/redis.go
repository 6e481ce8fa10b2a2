package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kalpovskii/tasklist/internal/app/models"
	"github.com/redis/go-redis/v9"
)

type TaskCache interface {
	GetTask(ctx context.Context, id string) (*models.Task, error)
	SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error

	GetTaskList(ctx context.Context) ([]models.Task, error)
	SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error

	DeleteTask(ctx context.Context, id string) error
	DeleteTaskList(ctx context.Context) error
}

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

func taskKey(id string) string {
	return "task:" + id
}

const taskListKey = "tasks:list"

func (r *RedisTaskCache) GetTask(ctx context.Context, id string) (*models.Task, error) {
	val, err := r.rdb.Get(ctx, taskKey(id)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal([]byte(val), &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *RedisTaskCache) SetTask(
	ctx context.Context,
	task *models.Task,
	ttl time.Duration,
) error {

	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, taskKey(task.ID.String()), data, ttl).Err()
}

func (r *RedisTaskCache) DeleteTask(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, taskKey(id)).Err()
}

func (r *RedisTaskCache) DeleteTaskList(ctx context.Context) error {
	return r.rdb.Del(ctx, taskListKey).Err()
}

func (r *RedisTaskCache) GetTaskList(ctx context.Context) ([]models.Task, error) {
	val, err := r.rdb.Get(ctx, taskListKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *RedisTaskCache) SetTaskList(
	ctx context.Context,
	tasks []models.Task,
	ttl time.Duration,
) error {

	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, taskListKey, data, ttl).Err()
}

// NoopTaskCache is used when no Redis URL is configured: every lookup is a
// miss and every write is dropped.
type NoopTaskCache struct{}

func (NoopTaskCache) GetTask(context.Context, string) (*models.Task, error) { return nil, nil }

func (NoopTaskCache) SetTask(context.Context, *models.Task, time.Duration) error { return nil }

func (NoopTaskCache) GetTaskList(context.Context) ([]models.Task, error) { return nil, nil }

func (NoopTaskCache) SetTaskList(context.Context, []models.Task, time.Duration) error { return nil }

func (NoopTaskCache) DeleteTask(context.Context, string) error { return nil }

func (NoopTaskCache) DeleteTaskList(context.Context) error { return nil }
