package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wakidurrahman/todo-list/internal/app/models"
)

// TaskRepository is the contract both backing stores implement.
// Update returns (nil, nil) and Delete returns (false, nil) when the
// id does not exist; not-found is a value, not an error.
type TaskRepository interface {
	LoadAll(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// LocalTaskRepo persists the whole collection as one JSON blob through a
// BlobStore. Every operation is a full read-modify-write; there is no
// locking, so overlapping calls from concurrent goroutines can lose
// writes. Callers are expected to issue operations sequentially.
type LocalTaskRepo struct {
	store BlobStore
	seed  []models.Task // written back on first empty read; nil disables seeding
}

func NewLocalTaskRepo(store BlobStore) *LocalTaskRepo {
	return &LocalTaskRepo{store: store}
}

// NewSeededLocalTaskRepo returns a repo that writes DemoTasks back on the
// first read that finds no blob. The seed is a demo convenience, gated
// here rather than implicit in every store.
func NewSeededLocalTaskRepo(store BlobStore) *LocalTaskRepo {
	return &LocalTaskRepo{store: store, seed: DemoTasks()}
}

// DemoTasks returns the built-in demonstration collection.
func DemoTasks() []models.Task {
	now := time.Now().UTC()
	return []models.Task{
		{
			ID:          "demo-1",
			Title:       "Try out the todo list",
			Description: "Add, complete and delete a few tasks to see how it works.",
			Priority:    models.PriorityLow,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "demo-2",
			Title:       "Plan the week",
			Description: "Write down the three most important things for this week.",
			Priority:    models.PriorityMedium,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "demo-3",
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread and something for the weekend.",
			Completed:   true,
			Priority:    models.PriorityHigh,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// LoadAll reads and decodes the blob. A missing key yields the seed
// collection (persisted immediately) when seeding is enabled, otherwise
// an empty collection. A store failure or an undecodable blob is a
// StorageReadError; stale or corrupt data is never returned silently.
func (r *LocalTaskRepo) LoadAll(ctx context.Context) ([]models.Task, error) {
	data, ok, err := r.store.Get(ctx)
	if err != nil {
		return nil, &StorageReadError{Err: err}
	}
	if !ok {
		if r.seed == nil {
			return []models.Task{}, nil
		}
		tasks := r.seed
		if err := r.SaveAll(ctx, tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &StorageReadError{Err: err}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// SaveAll encodes and writes the whole collection, replacing the
// previous blob in a single key write.
func (r *LocalTaskRepo) SaveAll(ctx context.Context, tasks []models.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return &StorageWriteError{Err: err}
	}
	if err := r.store.Set(ctx, data); err != nil {
		return &StorageWriteError{Err: err}
	}
	return nil
}

func (r *LocalTaskRepo) Create(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	tasks, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Priority:    fields.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks = append(tasks, task)
	if err := r.SaveAll(ctx, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *LocalTaskRepo) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	tasks, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		patch.Apply(&tasks[i])
		tasks[i].UpdatedAt = time.Now().UTC()
		if err := r.SaveAll(ctx, tasks); err != nil {
			return nil, err
		}
		task := tasks[i]
		return &task, nil
	}
	return nil, nil // not found
}

// Delete removes the task by id. When the id is absent nothing is
// written and false is returned.
func (r *LocalTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	tasks, err := r.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	kept := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := r.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
