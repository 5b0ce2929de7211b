package orchestrator

import (
	"fmt"
	"strings"

	"github.com/normanking/taskmind/internal/planner"
	"github.com/normanking/taskmind/internal/store"
	"github.com/normanking/taskmind/internal/tools"
)

// summarize folds tool results into the assistant's reply. The priority
// order is fixed: a single success gets a tool-specific confirmation before
// any generic counting kicks in, so exact phrasings stay stable for
// callers that match on them.
func summarize(steps []planner.Step, results []tools.Result) string {
	if len(results) == 0 {
		return "I processed your request, but there were no actions to take."
	}

	successes := 0
	for _, r := range results {
		if r.Succeeded() {
			successes++
		}
	}

	switch {
	case successes == len(results) && len(results) == 1:
		return confirmStep(steps[0].Tool, results[0])

	case successes == len(results):
		return fmt.Sprintf("I've completed %d actions successfully.", successes)

	case successes == 0:
		var errs []string
		for _, r := range results {
			errs = append(errs, r.Message)
		}
		return "I'm sorry, but I couldn't complete your request. Errors: " + strings.Join(errs, ", ")

	default:
		return fmt.Sprintf("I've completed %d out of %d actions. Some operations encountered issues.", successes, len(results))
	}
}

// confirmStep phrases a single successful tool call.
func confirmStep(tool tools.Name, result tools.Result) string {
	switch tool {
	case tools.AddTask:
		return fmt.Sprintf("I've created the task: '%s'", taskTitle(result))
	case tools.CompleteTask:
		return fmt.Sprintf("I've marked the task as completed: '%s'", taskTitle(result))
	case tools.DeleteTask:
		return "I've deleted the task successfully."
	case tools.UpdateTask:
		return fmt.Sprintf("I've updated the task: '%s'", taskTitle(result))
	case tools.ListTasks:
		return listReply(result)
	}
	return result.Message
}

func taskTitle(result tools.Result) string {
	if task, ok := result.Data.(store.Task); ok {
		return task.Title
	}
	return "Unknown"
}

func listReply(result tools.Result) string {
	tasks, ok := result.Data.([]store.Task)
	if !ok || len(tasks) == 0 {
		return "You don't have any tasks."
	}
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, "Here are your tasks:")
	for _, t := range tasks {
		lines = append(lines, "- "+t.Title)
	}
	return strings.Join(lines, "\n")
}
