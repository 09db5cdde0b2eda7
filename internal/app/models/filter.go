package models

import (
	"sort"
	"strings"
)

// TaskFilter narrows and orders a task listing. Zero values mean
// "no filtering": every task, in stored order.
type TaskFilter struct {
	Status string // "all" (or empty), "active", "completed"
	Search string // case-insensitive substring over title and description
	SortBy string // created_at, updated_at, due_date, title, priority
	Order  string // "asc" or "desc"
}

var allowedSort = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"title":      true,
	"priority":   true,
}

var priorityRank = map[Priority]int{
	"":             0,
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// ApplyFilter returns the tasks matching the filter, sorted as requested.
// The input slice is not modified.
func ApplyFilter(tasks []Task, f TaskFilter) []Task {
	out := make([]Task, 0, len(tasks))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, t := range tasks {
		switch f.Status {
		case "active":
			if t.Completed {
				continue
			}
		case "completed":
			if !t.Completed {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}

	if !allowedSort[f.SortBy] {
		return out
	}

	desc := f.Order == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		a, b := out[i], out[j]
		switch f.SortBy {
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "due_date":
			// Tasks without a due date sort last.
			if a.DueDate == nil || b.DueDate == nil {
				return b.DueDate == nil && a.DueDate != nil
			}
			return a.DueDate.Before(*b.DueDate)
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "priority":
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		return false
	})

	return out
}
