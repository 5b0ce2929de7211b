// Package tools defines the tool contracts exposed to the planner and the
// executor that validates and runs them against the task store.
package tools

import "fmt"

// Name identifies a planner-visible tool.
type Name string

const (
	AddTask      Name = "add_task"
	ListTasks    Name = "list_tasks"
	CompleteTask Name = "complete_task"
	DeleteTask   Name = "delete_task"
	UpdateTask   Name = "update_task"
)

// String returns the tool's wire name.
func (n Name) String() string { return string(n) }

// IsValid reports whether the name is a known tool.
func (n Name) IsValid() bool {
	switch n {
	case AddTask, ListTasks, CompleteTask, DeleteTask, UpdateTask:
		return true
	}
	return false
}

// Args is the argument mapping for one tool invocation. Values come from
// the planner (strings, ints) or the transport layer (JSON-decoded).
type Args map[string]any

// Status of a tool result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the normalized outcome of one tool execution. It is ephemeral:
// the orchestrator folds it into the assistant's reply and drops it.
type Result struct {
	Status  Status `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Succeeded reports whether the execution completed without error.
func (r Result) Succeeded() bool { return r.Status == StatusSuccess }

func successResult(data any, format string, args ...any) Result {
	return Result{Status: StatusSuccess, Data: data, Message: fmt.Sprintf(format, args...)}
}

func errorResult(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}
