package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/normanking/taskmind/internal/store"
)

// Executor validates tool arguments and runs them against the task store.
// Validation failures and store errors are both folded into the Result; an
// Execute call never returns a Go error to the caller.
type Executor struct {
	store  store.TaskStore
	logger zerolog.Logger
}

// NewExecutor creates an Executor bound to a task store.
func NewExecutor(s store.TaskStore, logger zerolog.Logger) *Executor {
	return &Executor{store: s, logger: logger.With().Str("component", "executor").Logger()}
}

// Execute validates args for the named tool and, when valid, dispatches to
// the store. A task that is absent or owned by another user produces the
// same "Task not found" result; callers cannot probe for other users'
// tasks.
func (e *Executor) Execute(ctx context.Context, name Name, args Args) Result {
	if errs := Validate(name, args); len(errs) > 0 {
		return errorResult("Validation failed: %s", strings.Join(errs, "; "))
	}

	result := e.dispatch(ctx, name, args)
	if !result.Succeeded() {
		e.logger.Warn().Str("tool", name.String()).Str("error", result.Message).Msg("tool execution failed")
	}
	return result
}

func (e *Executor) dispatch(ctx context.Context, name Name, args Args) Result {
	userID := stringArg(args, "user_id")

	switch name {
	case AddTask:
		opts := store.CreateOptions{
			Priority: stringArg(args, "priority"),
			DueDate:  stringArg(args, "due_date"),
		}
		task, err := e.store.Create(ctx, userID, stringArg(args, "description"), "", opts)
		if err != nil {
			return e.storeError(name, err)
		}
		return successResult(task, "Task '%s' created successfully", task.Title)

	case ListTasks:
		f := store.Filter{Status: stringArg(args, "status")}
		if l, ok := args["limit"]; ok {
			f.Limit, _ = intValue(l)
		}
		tasks, err := e.store.List(ctx, userID, f)
		if err != nil {
			return e.storeError(name, err)
		}
		if tasks == nil {
			tasks = []store.Task{}
		}
		return successResult(tasks, "Retrieved %d tasks", len(tasks))

	case CompleteTask:
		id, _ := taskIDValue(args)
		done := true
		task, err := e.store.Update(ctx, userID, id, store.Patch{Completed: &done})
		if err != nil {
			return e.storeError(name, err)
		}
		return successResult(task, "Task '%s' marked as completed", task.Title)

	case DeleteTask:
		id, _ := taskIDValue(args)
		if err := e.store.Delete(ctx, userID, id); err != nil {
			return e.storeError(name, err)
		}
		return successResult(map[string]any{"success": true, "deleted_id": id},
			"Task %d deleted successfully", id)

	case UpdateTask:
		id, _ := taskIDValue(args)
		var patch store.Patch
		if desc, ok := args["description"]; ok {
			title := strings.TrimSpace(fmt.Sprint(desc))
			patch.Title = &title
		}
		if status, ok := args["status"]; ok {
			completed := status == "completed"
			patch.Completed = &completed
		}
		task, err := e.store.Update(ctx, userID, id, patch)
		if err != nil {
			return e.storeError(name, err)
		}
		return successResult(task, "Task '%s' updated successfully", task.Title)
	}

	return errorResult("Unknown tool: %s", name)
}

// storeError maps store failures onto result messages. Absence and
// ownership mismatch are identical by design; anything else is reported
// generically so store internals never leak into chat.
func (e *Executor) storeError(name Name, err error) Result {
	if errors.Is(err, store.ErrNotFound) {
		return errorResult("Task not found")
	}
	if !errors.Is(err, store.ErrInvalidTask) {
		e.logger.Error().Err(err).Str("tool", name.String()).Msg("store error")
	}
	return errorResult("Failed to execute tool %s: %v", name, err)
}
