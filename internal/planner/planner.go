// Package planner decomposes a task-management request into an ordered
// sequence of tool invocations. A request that needs an identifier the user
// did not supply produces a clarification plan instead of a guess; the
// planner never operates on "all tasks" implicitly.
package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/normanking/taskmind/internal/tools"
)

// Step is one tool invocation with its extracted arguments.
type Step struct {
	Tool tools.Name `json:"tool"`
	Args tools.Args `json:"args"`
}

// Plan is the planner's result: either a ready sequence of steps or a
// clarification request. The two are mutually exclusive.
type Plan struct {
	Steps         []Step
	Clarification string
}

// Ambiguous reports whether the plan needs clarification before anything
// can execute.
func (p Plan) Ambiguous() bool { return p.Clarification != "" }

// Ready builds a plan from steps.
func Ready(steps ...Step) Plan { return Plan{Steps: steps} }

// NeedsClarification builds a plan that asks the user a question. Such a
// plan always carries zero steps.
func NeedsClarification(prompt string) Plan { return Plan{Clarification: prompt} }

// Sub-requests are split on conjunction boundaries so one message can carry
// several operations ("add buy milk and then list tasks").
var conjunctionRe = regexp.MustCompile(`\s+(?:and|then|after|followed by|next)\s+`)

// Verb families, checked in order within each sub-request.
var (
	createWords   = compileWords("add", "create", "make", "new")
	listWords     = compileWords("list", "show", "what", "display", "view")
	completeWords = compileWords("complete", "finish", "done", "mark")
	deleteWords   = compileWords("delete", "remove", "erase")
	updateWords   = compileWords("update", "change", "modify", "edit")
)

func compileWords(words ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`\b` + w + `\b`)
	}
	return res
}

func matchesAny(s string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Planner holds no state; it exists so the orchestrator takes an injected
// collaborator rather than calling package-level functions.
type Planner struct{}

// New creates a Planner.
func New() *Planner { return &Planner{} }

// Plan converts a natural-language request into an ordered tool sequence.
// Unrecognized sub-requests are dropped silently; a complete/delete/update
// without a numeric task id aborts the whole plan with a clarifying
// question. The asymmetry is intentional: a missing identifier risks
// mutating the wrong task, an unparseable fragment risks nothing.
func (p *Planner) Plan(request string) Plan {
	var steps []Step

	for _, sub := range conjunctionRe.Split(request, -1) {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		lower := strings.ToLower(sub)

		switch {
		case matchesAny(lower, createWords):
			if step, ok := planCreate(sub, lower); ok {
				steps = append(steps, step)
			}

		case matchesAny(lower, listWords):
			steps = append(steps, planList(lower))

		case matchesAny(lower, completeWords):
			id, ok := extractTaskID(sub)
			if !ok {
				return NeedsClarification("Which specific task would you like to mark as complete?")
			}
			steps = append(steps, Step{
				Tool: tools.CompleteTask,
				Args: tools.Args{"task_id": id},
			})

		case matchesAny(lower, deleteWords):
			id, ok := extractTaskID(sub)
			if !ok {
				return NeedsClarification("Which specific task would you like to delete?")
			}
			steps = append(steps, Step{
				Tool: tools.DeleteTask,
				Args: tools.Args{"task_id": id},
			})

		case matchesAny(lower, updateWords):
			id, ok := extractTaskID(sub)
			if !ok {
				return NeedsClarification("Which specific task would you like to update?")
			}
			step := Step{Tool: tools.UpdateTask, Args: tools.Args{"task_id": id}}
			if desc, ok := extractDescription(sub); ok {
				step.Args["description"] = desc
			}
			if status, ok := extractStatus(lower); ok {
				step.Args["status"] = status
			}
			steps = append(steps, step)
		}
	}

	return Ready(steps...)
}

func planCreate(sub, lower string) (Step, bool) {
	desc, ok := extractDescription(sub)
	if !ok {
		return Step{}, false
	}
	priority := extractPriority(lower)
	if priority == "" {
		priority = "medium"
	}
	return Step{
		Tool: tools.AddTask,
		Args: tools.Args{"description": desc, "priority": priority},
	}, true
}

func planList(lower string) Step {
	args := tools.Args{}
	if status, ok := extractListStatus(lower); ok {
		args["status"] = status
	}
	if limit, ok := extractLimit(lower); ok {
		args["limit"] = limit
	}
	return Step{Tool: tools.ListTasks, Args: args}
}

// String renders a step for logs.
func (s Step) String() string {
	return fmt.Sprintf("%s%v", s.Tool, map[string]any(s.Args))
}
