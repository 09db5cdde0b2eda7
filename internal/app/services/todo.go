package services

import (
	"context"
	"log"

	"github.com/wakidurrahman/todo-list/internal/app/models"
	"github.com/wakidurrahman/todo-list/internal/app/repositories"
)

// EventProducer receives a notification for every successful mutation.
type EventProducer interface {
	SendEvent(action, taskID string)
}

// TodoService is the single seam callers depend on. It dispatches to
// the remote client or the local store based on the useRemote flag set
// at construction, and owns the fallback policy: reads fall back to
// local when the remote fails, writes never do — a failed remote write
// surfaces as a RemoteRequestError for the caller to report.
//
// The two backing stores are never merged; whichever the flag selects
// is authoritative for the call.
type TodoService struct {
	local     repositories.TaskRepository
	remote    repositories.TaskRepository
	useRemote bool
	events    EventProducer // optional
}

func NewTodoService(local, remote repositories.TaskRepository, useRemote bool) *TodoService {
	return &TodoService{
		local:     local,
		remote:    remote,
		useRemote: useRemote,
	}
}

// WithEvents attaches a mutation event producer.
func (s *TodoService) WithEvents(events EventProducer) *TodoService {
	s.events = events
	return s
}

func (s *TodoService) repo() repositories.TaskRepository {
	if s.useRemote {
		return s.remote
	}
	return s.local
}

func (s *TodoService) emit(action, taskID string) {
	if s.events != nil {
		s.events.SendEvent(action, taskID)
	}
}

// GetTodos returns the collection, filtered and sorted. In remote mode
// a failed remote read silently falls back to the local store; the
// caller only sees StorageUnavailableError when both paths fail.
func (s *TodoService) GetTodos(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.repo().LoadAll(ctx)
	if err != nil && s.useRemote {
		log.Println("remote list failed, falling back to local store:", err)
		remoteErr := err
		tasks, err = s.local.LoadAll(ctx)
		if err != nil {
			return nil, &repositories.StorageUnavailableError{RemoteErr: remoteErr, LocalErr: err}
		}
	}
	if err != nil {
		return nil, err
	}
	return models.ApplyFilter(tasks, filter), nil
}

// AddTodo creates a task in the active store and returns it with its
// assigned id and timestamps.
func (s *TodoService) AddTodo(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	task, err := s.repo().Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.emit("created", task.ID)
	return task, nil
}

// UpdateTodo merges the patch onto the task. Returns (nil, nil) when
// the id does not exist in the active store.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.repo().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	s.emit("updated", task.ID)
	return task, nil
}

// DeleteTodo removes the task permanently. Returns (false, nil) when
// the id does not exist in the active store.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo().Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.emit("deleted", id)
	}
	return deleted, nil
}
