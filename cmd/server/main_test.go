package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
	"github.com/kalpovskii/tasklist/internal/app/repositories"
	"github.com/kalpovskii/tasklist/internal/app/services"
)

type taskServiceStub struct {
	createFn func(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	listFn   func(ctx context.Context) ([]models.Task, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*models.Task, error)
	updateFn func(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s *taskServiceStub) Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	return s.createFn(ctx, req)
}

func (s *taskServiceStub) List(ctx context.Context) ([]models.Task, error) {
	return s.listFn(ctx)
}

func (s *taskServiceStub) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.getFn(ctx, id)
}

func (s *taskServiceStub) Update(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
	return s.updateFn(ctx, id, upd)
}

func (s *taskServiceStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func setupTestRouter(stub *taskServiceStub) (*gin.Engine, func()) {
	gin.SetMode(gin.TestMode)

	prevService := taskService
	taskService = stub

	router := newRouter()

	cleanup := func() {
		taskService = prevService
	}

	return router, cleanup
}

func TestCreateTaskSuccess(t *testing.T) {
	taskID := uuid.New()
	stub := &taskServiceStub{
		createFn: func(_ context.Context, req models.CreateTaskRequest) (*models.Task, error) {
			if req.Title != "title" || req.Description != "description" {
				t.Fatalf("unexpected payload: %+v", req)
			}
			return &models.Task{ID: taskID, Title: req.Title, Description: req.Description}, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	body := `{"title":"title","description":"description"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var got models.Task
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if got.ID != taskID || got.Title != "title" || got.Description != "description" {
		t.Fatalf("unexpected task response: %+v", got)
	}
}

func TestCreateTaskBadJSON(t *testing.T) {
	stub := &taskServiceStub{
		createFn: func(_ context.Context, _ models.CreateTaskRequest) (*models.Task, error) {
			return nil, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader("{invalid"))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	stub := &taskServiceStub{
		createFn: func(_ context.Context, _ models.CreateTaskRequest) (*models.Task, error) {
			return nil, services.ErrEmptyTitle
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestListTasksSuccess(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	stub := &taskServiceStub{
		listFn: func(_ context.Context) ([]models.Task, error) {
			return []models.Task{
				{ID: id1, Title: "t1"},
				{ID: id2, Title: "t2", Completed: true},
			}, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var got []models.Task
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(got) != 2 || got[0].ID != id1 || got[1].ID != id2 {
		t.Fatalf("unexpected list response: %+v", got)
	}
}

func TestListTasksEmpty(t *testing.T) {
	stub := &taskServiceStub{
		listFn: func(_ context.Context) ([]models.Task, error) {
			return nil, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	if body := strings.TrimSpace(resp.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestGetTaskSuccess(t *testing.T) {
	taskID := uuid.New()
	stub := &taskServiceStub{
		getFn: func(_ context.Context, id uuid.UUID) (*models.Task, error) {
			if id != taskID {
				t.Fatalf("unexpected id: %s", id)
			}
			return &models.Task{ID: id, Title: "found"}, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var got models.Task
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if got.ID != taskID || got.Title != "found" {
		t.Fatalf("unexpected task response: %+v", got)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	stub := &taskServiceStub{
		getFn: func(_ context.Context, _ uuid.UUID) (*models.Task, error) {
			return nil, repositories.ErrTaskNotFound
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetTaskInvalidID(t *testing.T) {
	stub := &taskServiceStub{
		getFn: func(_ context.Context, _ uuid.UUID) (*models.Task, error) {
			t.Fatal("service must not be called for an invalid id")
			return nil, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestUpdateTaskSuccess(t *testing.T) {
	taskID := uuid.New()
	stub := &taskServiceStub{
		updateFn: func(_ context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error) {
			if id != taskID {
				t.Fatalf("unexpected id: %s", id)
			}
			if upd.Completed == nil || !*upd.Completed {
				t.Fatalf("unexpected update payload: %+v", upd)
			}
			if upd.Title != nil {
				t.Fatalf("title must stay nil for a partial update: %+v", upd)
			}
			return &models.Task{ID: id, Title: "kept", Completed: true}, nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	body := `{"completed":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var got models.Task
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if !got.Completed || got.Title != "kept" {
		t.Fatalf("unexpected task response: %+v", got)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	stub := &taskServiceStub{
		updateFn: func(_ context.Context, _ uuid.UUID, _ models.UpdateTaskRequest) (*models.Task, error) {
			return nil, repositories.ErrTaskNotFound
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+uuid.NewString(), strings.NewReader(`{"completed":true}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDeleteTaskSuccess(t *testing.T) {
	taskID := uuid.New()
	stub := &taskServiceStub{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != taskID {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	if resp.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", resp.Body.String())
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	stub := &taskServiceStub{
		deleteFn: func(_ context.Context, _ uuid.UUID) error {
			return repositories.ErrTaskNotFound
		},
	}

	router, cleanup := setupTestRouter(stub)
	defer cleanup()

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
