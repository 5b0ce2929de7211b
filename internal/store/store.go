// Package store provides the task persistence layer. Tasks are always
// scoped by the owning user id: a task that exists but belongs to a
// different user is indistinguishable from one that does not exist.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Status filters for listing tasks.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusAll       = "all"
)

// Priority levels for a task.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Limits on user-supplied task fields.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 1000
)

// ErrNotFound is returned when a task does not exist or is owned by a
// different user. Callers must not be able to tell the two cases apart.
var ErrNotFound = errors.New("task not found")

// ErrInvalidTask is returned when task fields fail basic validation.
var ErrInvalidTask = errors.New("invalid task")

// Task represents a single todo item owned by a user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateOptions carries the optional fields accepted on task creation.
type CreateOptions struct {
	Priority string
	DueDate  string
}

// Filter narrows a List call. Status defaults to pending when empty.
type Filter struct {
	Status string
	Limit  int
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Title     *string
	Completed *bool
}

// TaskStore is the contract the tool executor drives. Implementations must
// serialize read-modify-write cycles against a single task id.
type TaskStore interface {
	Create(ctx context.Context, userID, title, description string, opts CreateOptions) (Task, error)
	List(ctx context.Context, userID string, f Filter) ([]Task, error)
	Get(ctx context.Context, userID string, id int64) (Task, error)
	Update(ctx context.Context, userID string, id int64, patch Patch) (Task, error)
	Delete(ctx context.Context, userID string, id int64) error
}

// validateFields checks title and description constraints shared by all
// TaskStore implementations.
func validateFields(title, description string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidTask, MaxTitleLen)
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidTask, MaxDescriptionLen)
	}
	return nil
}
