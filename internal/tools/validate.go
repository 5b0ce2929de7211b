package tools

import (
	"fmt"
	"strconv"
)

// Validate checks args against the named tool's contract and returns every
// violation found. Validation never touches the store; an empty slice means
// the call may proceed.
func Validate(name Name, args Args) []string {
	var errs []string

	switch name {
	case AddTask:
		if stringArg(args, "description") == "" {
			errs = append(errs, "Description is required for add_task")
		}
		if stringArg(args, "user_id") == "" {
			errs = append(errs, "User ID is required for add_task")
		}
		if p, ok := args["priority"]; ok && !validPriority(p) {
			errs = append(errs, "Priority must be one of: low, medium, high")
		}

	case ListTasks:
		if stringArg(args, "user_id") == "" {
			errs = append(errs, "User ID is required for list_tasks")
		}
		if s, ok := args["status"]; ok && !oneOf(s, "pending", "completed", "all") {
			errs = append(errs, "Status must be one of: pending, completed, all")
		}
		if l, ok := args["limit"]; ok {
			if n, numeric := intValue(l); !numeric || n <= 0 {
				errs = append(errs, "Limit must be a positive integer")
			}
		}

	case CompleteTask, DeleteTask:
		errs = append(errs, requireIdentity(args, name)...)

	case UpdateTask:
		errs = append(errs, requireIdentity(args, name)...)
		_, hasDescription := args["description"]
		_, hasStatus := args["status"]
		if !hasDescription && !hasStatus {
			errs = append(errs, "At least one field to update (description or status) is required for update_task")
		}
		if s, ok := args["status"]; ok && !oneOf(s, "pending", "completed") {
			errs = append(errs, "Status must be one of: pending, completed")
		}

	default:
		errs = append(errs, fmt.Sprintf("Unknown tool: %s", name))
	}

	return errs
}

// requireIdentity checks the task_id/user_id pair shared by the mutating
// tools that target an existing task.
func requireIdentity(args Args, name Name) []string {
	var errs []string
	if v, ok := args["task_id"]; !ok || v == nil || v == "" {
		errs = append(errs, fmt.Sprintf("Task ID is required for %s", name))
	} else if _, err := taskIDValue(args); err != nil {
		errs = append(errs, "Task ID must be a positive integer")
	}
	if stringArg(args, "user_id") == "" {
		errs = append(errs, fmt.Sprintf("User ID is required for %s", name))
	}
	return errs
}

// stringArg reads a string argument; missing, nil, or non-string values
// read as empty.
func stringArg(args Args, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// intValue coerces an argument to int. JSON decoding hands numbers over as
// float64, the planner as int; both are accepted when integral.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// taskIDValue parses the task_id argument, which arrives as a digit string
// from the planner or a number from the transport layer.
func taskIDValue(args Args) (int64, error) {
	switch v := args["task_id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid task id %q", v)
		}
		return id, nil
	case int:
		if v <= 0 {
			return 0, fmt.Errorf("invalid task id %d", v)
		}
		return int64(v), nil
	case int64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid task id %d", v)
		}
		return v, nil
	case float64:
		if v <= 0 || v != float64(int64(v)) {
			return 0, fmt.Errorf("invalid task id %v", v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("missing task id")
}

func validPriority(v any) bool {
	return oneOf(v, "low", "medium", "high")
}

func oneOf(v any, allowed ...string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
