package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normanking/taskmind/internal/tools"
)

func TestPlanMultiStep(t *testing.T) {
	plan := New().Plan("add buy milk and then list tasks")

	require.False(t, plan.Ambiguous())
	require.Len(t, plan.Steps, 2)

	assert.Equal(t, tools.AddTask, plan.Steps[0].Tool)
	assert.Equal(t, "buy milk", plan.Steps[0].Args["description"])
	assert.Equal(t, "medium", plan.Steps[0].Args["priority"])

	assert.Equal(t, tools.ListTasks, plan.Steps[1].Tool)
	assert.Empty(t, plan.Steps[1].Args)
}

func TestPlanAmbiguousWithoutID(t *testing.T) {
	tests := []struct {
		request string
		prompt  string
	}{
		{"complete the task", "Which specific task would you like to mark as complete?"},
		{"delete the old task", "Which specific task would you like to delete?"},
		{"update my task", "Which specific task would you like to update?"},
	}

	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			plan := New().Plan(tt.request)
			assert.True(t, plan.Ambiguous())
			assert.Equal(t, tt.prompt, plan.Clarification)
			assert.Empty(t, plan.Steps)
		})
	}
}

// A missing identifier anywhere aborts the whole plan, including steps
// already extracted.
func TestPlanAmbiguityShortCircuits(t *testing.T) {
	plan := New().Plan("add buy milk and complete the task")
	assert.True(t, plan.Ambiguous())
	assert.Empty(t, plan.Steps)
}

func TestPlanWithTaskID(t *testing.T) {
	tests := []struct {
		request string
		tool    tools.Name
	}{
		{"complete task 3", tools.CompleteTask},
		{"mark task 3 as finished", tools.CompleteTask},
		{"delete task 3", tools.DeleteTask},
		{"remove id 3", tools.DeleteTask},
	}
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			plan := New().Plan(tt.request)
			require.False(t, plan.Ambiguous())
			require.Len(t, plan.Steps, 1)
			assert.Equal(t, tt.tool, plan.Steps[0].Tool)
			assert.Equal(t, "3", plan.Steps[0].Args["task_id"])
		})
	}
}

func TestPlanUpdate(t *testing.T) {
	plan := New().Plan("update task 7 to pending")
	require.Len(t, plan.Steps, 1)
	step := plan.Steps[0]
	assert.Equal(t, tools.UpdateTask, step.Tool)
	assert.Equal(t, "7", step.Args["task_id"])
	assert.Equal(t, "pending", step.Args["status"])
}

func TestPlanListStatusFilters(t *testing.T) {
	tests := []struct {
		request string
		status  any
	}{
		{"list completed tasks", "completed"},
		{"show pending items", "pending"},
		{"show incomplete items", "pending"},
		{"list all my things", "all"},
		{"list my things", nil},
	}
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			plan := New().Plan(tt.request)
			require.Len(t, plan.Steps, 1)
			require.Equal(t, tools.ListTasks, plan.Steps[0].Tool)
			if tt.status == nil {
				assert.NotContains(t, plan.Steps[0].Args, "status")
			} else {
				assert.Equal(t, tt.status, plan.Steps[0].Args["status"])
			}
		})
	}
}

func TestPlanListLimit(t *testing.T) {
	plan := New().Plan("show 5 tasks")
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, tools.ListTasks, plan.Steps[0].Tool)
	assert.Equal(t, 5, plan.Steps[0].Args["limit"])
}

func TestPlanPriority(t *testing.T) {
	tests := []struct {
		request  string
		priority string
	}{
		{"add file taxes asap", "high"},
		{"add call the bank, it's urgent", "high"},
		{"add water plants, not urgent", "low"},
		{"add medium priority task clean desk", "medium"},
		{"add buy milk", "medium"},
	}
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			plan := New().Plan(tt.request)
			require.Len(t, plan.Steps, 1)
			require.Equal(t, tools.AddTask, plan.Steps[0].Tool)
			assert.Equal(t, tt.priority, plan.Steps[0].Args["priority"])
		})
	}
}

// Sub-requests with no recognizable verb produce no step and no error.
func TestPlanDropsUnrecognized(t *testing.T) {
	plan := New().Plan("add buy milk and frobnicate the widget")
	require.False(t, plan.Ambiguous())
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, tools.AddTask, plan.Steps[0].Tool)

	plan = New().Plan("frobnicate the widget")
	require.False(t, plan.Ambiguous())
	assert.Empty(t, plan.Steps)
}

// "add a task" without content is boilerplate, not a task description.
func TestPlanRejectsBoilerplateDescription(t *testing.T) {
	plan := New().Plan("add a task")
	require.False(t, plan.Ambiguous())
	assert.Empty(t, plan.Steps)
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		sub  string
		want string
		ok   bool
	}{
		{"add buy milk", "buy milk", true},
		{"create to water the plants", "water the plants", true},
		{"add buy milk with a coupon", "buy milk", true},
		{"add the task", "", false},
		{"add task", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.sub, func(t *testing.T) {
			got, ok := extractDescription(tt.sub)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
