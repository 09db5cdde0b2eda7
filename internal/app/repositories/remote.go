package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wakidurrahman/todo-list/internal/app/models"
)

// The demo endpoint's schema requires every todo to carry an owner id.
const remoteOwnerID = 1

// PlaceholderDescription fills in for remote items, which have no
// description field of their own.
const PlaceholderDescription = "No description provided by the remote service."

// remoteTodo is the wire shape of the demo endpoint's todo resource.
// It does not match Task: ids are numeric and there is no description
// and no timestamps.
type remoteTodo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

func (rt remoteTodo) toTask(now time.Time) models.Task {
	return models.Task{
		ID:          strconv.Itoa(rt.ID),
		Title:       rt.Title,
		Description: PlaceholderDescription,
		Completed:   rt.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RemoteTaskRepo talks to a REST collection resource. No retries, no
// backoff; timeout behavior is whatever the injected http.Client does.
type RemoteTaskRepo struct {
	baseURL string
	httpc   *http.Client
	enabled bool
}

// NewRemoteTaskRepo builds a client for baseURL. When enabled is false
// every call fails fast with RemoteDisabledError instead of touching
// the network. A nil httpc falls back to http.DefaultClient.
func NewRemoteTaskRepo(baseURL string, enabled bool, httpc *http.Client) *RemoteTaskRepo {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &RemoteTaskRepo{baseURL: baseURL, httpc: httpc, enabled: enabled}
}

func (r *RemoteTaskRepo) do(ctx context.Context, op, method, url string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &RemoteRequestError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &RemoteRequestError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, &RemoteRequestError{Op: op, Err: err}
	}
	return resp, nil
}

func (r *RemoteTaskRepo) LoadAll(ctx context.Context) ([]models.Task, error) {
	if !r.enabled {
		return nil, &RemoteDisabledError{Op: "list"}
	}

	resp, err := r.do(ctx, "list", http.MethodGet, r.baseURL+"/todos", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRequestError{Op: "list", StatusCode: resp.StatusCode}
	}

	var remotes []remoteTodo
	if err := json.NewDecoder(resp.Body).Decode(&remotes); err != nil {
		return nil, &RemoteRequestError{Op: "list", Err: fmt.Errorf("decode response: %w", err)}
	}

	now := time.Now().UTC()
	tasks := make([]models.Task, 0, len(remotes))
	for _, rt := range remotes {
		tasks = append(tasks, rt.toTask(now))
	}
	return tasks, nil
}

func (r *RemoteTaskRepo) Create(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	if !r.enabled {
		return nil, &RemoteDisabledError{Op: "create"}
	}

	payload := map[string]any{
		"title":       fields.Title,
		"description": fields.Description,
		"completed":   false,
		"userId":      remoteOwnerID,
	}
	resp, err := r.do(ctx, "create", http.MethodPost, r.baseURL+"/todos", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRequestError{Op: "create", StatusCode: resp.StatusCode}
	}

	var created remoteTodo
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, &RemoteRequestError{Op: "create", Err: fmt.Errorf("decode response: %w", err)}
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          strconv.Itoa(created.ID),
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Priority:    fields.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return &task, nil
}

func (r *RemoteTaskRepo) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if !r.enabled {
		return nil, &RemoteDisabledError{Op: "update"}
	}

	resp, err := r.do(ctx, "update", http.MethodPatch, r.baseURL+"/todos/"+id, patch)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // not found
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteRequestError{Op: "update", StatusCode: resp.StatusCode}
	}

	var updated remoteTodo
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, &RemoteRequestError{Op: "update", Err: fmt.Errorf("decode response: %w", err)}
	}

	task := updated.toTask(time.Now().UTC())
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	return &task, nil
}

func (r *RemoteTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !r.enabled {
		return false, &RemoteDisabledError{Op: "delete"}
	}

	resp, err := r.do(ctx, "delete", http.MethodDelete, r.baseURL+"/todos/"+id, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &RemoteRequestError{Op: "delete", StatusCode: resp.StatusCode}
	}
	return true, nil
}
