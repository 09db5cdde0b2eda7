package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wakidurrahman/todo-list/internal/app/config"
	"github.com/wakidurrahman/todo-list/internal/app/models"
	"github.com/wakidurrahman/todo-list/internal/app/repositories"
	"github.com/wakidurrahman/todo-list/internal/app/services"
	"github.com/wakidurrahman/todo-list/internal/app/validation"
	"github.com/wakidurrahman/todo-list/internal/kafka"
)

// todoService is the slice of TodoService the handlers need; tests
// substitute a stub.
type todoService interface {
	GetTodos(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	AddTodo(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	UpdateTodo(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTodo(ctx context.Context, id string) (bool, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var blob repositories.BlobStore
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		blob = repositories.NewRedisBlobStore(rdb, cfg.StorageKey)
	default:
		blob = repositories.NewFileBlobStore(cfg.StoragePath)
	}

	var local *repositories.LocalTaskRepo
	if cfg.SeedDemo {
		local = repositories.NewSeededLocalTaskRepo(blob)
	} else {
		local = repositories.NewLocalTaskRepo(blob)
	}

	remote := repositories.NewRemoteTaskRepo(cfg.APIBaseURL, cfg.UseRemote, &http.Client{
		Timeout: 15 * time.Second,
	})

	service := services.NewTodoService(local, remote, cfg.UseRemote)
	if cfg.KafkaBroker != "" && cfg.KafkaTopic != "" {
		producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()
		service.WithEvents(producer)
	}

	r := setupRouter(service)
	log.Printf("todo API listening on :%s (remote mode: %v)", cfg.APIPort, cfg.UseRemote)
	log.Fatal(r.Run(":" + cfg.APIPort))
}

func setupRouter(service todoService) *gin.Engine {
	r := gin.Default()

	r.GET("/todos", func(c *gin.Context) {
		filter := models.TaskFilter{
			Status: c.DefaultQuery("status", "all"),
			Search: c.Query("q"),
			SortBy: c.Query("sortBy"),
			Order:  c.DefaultQuery("order", "asc"),
		}
		tasks, err := service.GetTodos(c.Request.Context(), filter)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	})

	r.POST("/todos", func(c *gin.Context) {
		var req struct {
			Title       string          `json:"title"`
			Description string          `json:"description"`
			DueDate     *time.Time      `json:"due_date"`
			Priority    models.Priority `json:"priority"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		errs := validation.Validate(validation.Fields{Title: req.Title, Description: req.Description})
		if !req.Priority.Valid() {
			errs["priority"] = "Priority must be one of low, medium, high"
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		task, err := service.AddTodo(c.Request.Context(), models.TaskFields{
			Title:       validation.Sanitize(req.Title),
			Description: validation.Sanitize(req.Description),
			DueDate:     req.DueDate,
			Priority:    req.Priority,
		})
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, task)
	})

	r.PATCH("/todos/:id", func(c *gin.Context) {
		var patch models.TaskPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if patch.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty update"})
			return
		}
		if errs := validatePatch(&patch); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		task, err := service.UpdateTodo(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if task == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusOK, task)
	})

	r.DELETE("/todos/:id", func(c *gin.Context) {
		deleted, err := service.DeleteTodo(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	return r
}

// validatePatch sanitizes and validates only the fields the patch
// carries, rewriting title and description to their sanitized form.
func validatePatch(patch *models.TaskPatch) validation.Errors {
	errs := validation.Errors{}

	if patch.Title != nil {
		if msg := validation.ValidateTitle(*patch.Title); msg != "" {
			errs["title"] = msg
		} else {
			sanitized := validation.Sanitize(*patch.Title)
			patch.Title = &sanitized
		}
	}
	if patch.Description != nil {
		if msg := validation.ValidateDescription(*patch.Description); msg != "" {
			errs["description"] = msg
		} else {
			sanitized := validation.Sanitize(*patch.Description)
			patch.Description = &sanitized
		}
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		errs["priority"] = "Priority must be one of low, medium, high"
	}

	return errs
}

func writeStorageError(c *gin.Context, err error) {
	var unavailable *repositories.StorageUnavailableError
	var remoteErr *repositories.RemoteRequestError

	switch {
	case errors.As(err, &unavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": remoteErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
