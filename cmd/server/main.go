package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kalpovskii/tasklist/internal/app/models"
	"github.com/kalpovskii/tasklist/internal/app/repositories"
	"github.com/kalpovskii/tasklist/internal/app/services"
	"github.com/kalpovskii/tasklist/internal/kafka"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type taskAPI interface {
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var taskService taskAPI

func initConfig() {
	viper.SetEnvPrefix("TASKLIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("API_PORT", "3000")
}

func main() {
	initConfig()

	port := viper.GetString("API_PORT")

	var repo repositories.TaskRepository
	if dsn := viper.GetString("POSTGRES_DSN"); dsn != "" {
		pgRepo, err := repositories.NewPostgresTaskRepo(dsn)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		repo = pgRepo
		log.Println("Using postgres task store")
	} else {
		repo = repositories.NewMemoryTaskRepo()
		log.Println("Using in-memory task store")
	}

	var cache repositories.TaskCache
	if redisURL := viper.GetString("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid redis url: %v", err)
		}
		cache = repositories.NewRedisTaskCache(redis.NewClient(opts))
		log.Println("Redis cache enabled")
	}

	var events services.EventSink
	broker := viper.GetString("KAFKA_BROKER")
	topic := viper.GetString("KAFKA_TOPIC")
	if broker != "" && topic != "" {
		producer := kafka.NewProducer(broker, topic)
		defer producer.Close()
		events = producer
		log.Printf("Kafka events enabled (topic %s)", topic)
	}

	taskService = services.NewTaskService(repo, cache, events)

	r := newRouter()

	if staticDir := viper.GetString("STATIC_DIR"); staticDir != "" {
		// Frontend bundle at /, API routes keep priority.
		r.NoRoute(staticHandler(staticDir))
	}

	log.Printf("Server running on http://localhost:%s", port)
	log.Fatal(r.Run(":" + port))
}

func newRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors())

	r.GET("/api/tasks", listTasks)
	r.POST("/api/tasks", createTask)
	r.GET("/api/tasks/:id", getTask)
	r.PUT("/api/tasks/:id", updateTask)
	r.DELETE("/api/tasks/:id", deleteTask)

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func staticHandler(dir string) gin.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		fs.ServeHTTP(c.Writer, c.Request)
	}
}

func listTasks(c *gin.Context) {
	tasks, err := taskService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func createTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := taskService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func getTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	task, err := taskService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func updateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	var upd models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := taskService.Update(c.Request.Context(), id, upd)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func deleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := taskService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyTitle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
