package planner

import (
	"regexp"
	"strconv"
	"strings"
)

// Description extraction tries a verb+noise pattern first, then a plain
// verb pattern, stopping at modifier conjunctions ("with", "by", "due").
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:add|create|make|new)\s+(?:task|to|for)?\s*(.+?)(?:\s+(?:and|with|using|by|before|due)\b|$)`),
	regexp.MustCompile(`(?i)(?:add|create|make|new)\s+(.+?)(?:\s+(?:and|with|using|by|before|due)\b|$)`),
}

// Extractions that merely name the task noun carry no real content.
var boilerplate = map[string]struct{}{
	"task":     {},
	"a task":   {},
	"the task": {},
	"an task":  {},
}

// extractDescription pulls the free-text task content out of a create-style
// sub-request. Boilerplate-only extractions are rejected.
func extractDescription(sub string) (string, bool) {
	for _, p := range descriptionPatterns {
		m := p.FindStringSubmatch(sub)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[1])
		if desc == "" {
			continue
		}
		if _, isBoilerplate := boilerplate[strings.ToLower(desc)]; isBoilerplate {
			continue
		}
		return desc, true
	}
	return "", false
}

var taskIDRe = regexp.MustCompile(`(?i)(?:task|id)\s*(\d+)`)

// extractTaskID finds a numeric task identifier ("task 3", "id 12"). The id
// is kept as a string; the executor owns numeric validation.
func extractTaskID(sub string) (string, bool) {
	m := taskIDRe.FindStringSubmatch(sub)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var (
	completedRe = regexp.MustCompile(`\b(?:completed?|done|finished)\b`)
	pendingRe   = regexp.MustCompile(`\b(?:pending|incomplete)\b|\bnot done\b`)
	allRe       = regexp.MustCompile(`\ball\b`)
)

// extractStatus derives the target status for an update sub-request. The
// pending family is checked by word boundary so "incomplete" never reads as
// "complete".
func extractStatus(lower string) (string, bool) {
	switch {
	case pendingRe.MatchString(lower):
		return "pending", true
	case completedRe.MatchString(lower):
		return "completed", true
	}
	return "", false
}

// extractListStatus derives the status filter for a list sub-request.
// Unlike updates, listing also understands an explicit "all".
func extractListStatus(lower string) (string, bool) {
	switch {
	case pendingRe.MatchString(lower):
		return "pending", true
	case completedRe.MatchString(lower):
		return "completed", true
	case allRe.MatchString(lower):
		return "all", true
	}
	return "", false
}

// extractPriority maps urgency keywords to a priority level. "not urgent"
// is carved out before the bare "urgent" check.
func extractPriority(lower string) string {
	notUrgent := strings.Contains(lower, "not urgent")
	switch {
	case strings.Contains(lower, "high priority"),
		strings.Contains(lower, "asap"),
		strings.Contains(lower, "urgent") && !notUrgent:
		return "high"
	case strings.Contains(lower, "low priority"), notUrgent:
		return "low"
	case strings.Contains(lower, "medium priority"):
		return "medium"
	}
	return ""
}

var limitRe = regexp.MustCompile(`(?i)\b(?:limit|show|display|up to|at most)\s+(\d+)\s+(?:tasks|items|results)\b`)

// extractLimit finds an explicit result cap ("show 5 tasks").
func extractLimit(lower string) (int, bool) {
	m := limitRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
