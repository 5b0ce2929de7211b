// Package router classifies inbound chat messages by intent and answers
// simple chitchat directly. Classification is deliberately rule-based: an
// ordered list of regex patterns evaluated top to bottom, first match wins.
// No scoring, no model, fully deterministic.
package router

import (
	"regexp"
	"strings"
)

// Intent is the classification of a user message.
type Intent string

const (
	// IntentTaskMgmt indicates the message asks for a task operation.
	IntentTaskMgmt Intent = "TASK_MGMT"
	// IntentChitchat indicates small talk handled without planning.
	IntentChitchat Intent = "CHITCHAT"
	// IntentQuery indicates a question that is not clearly task-related.
	IntentQuery Intent = "QUERY"
)

// String returns the string representation of an Intent.
func (i Intent) String() string { return string(i) }

// Task patterns are checked before chitchat patterns: a message matching
// both ("add a task, thanks") is still a task request.
var taskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(add|create|make|new)\b.*\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(list|show|what|display)\b.*\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(complete|finish|done|mark)\b.*\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(delete|remove|erase)\b.*\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(update|change|modify|edit)\b.*\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(task|todo|to-do)\b`),
	regexp.MustCompile(`\b(buy|get|do|go|call|email|write|read|watch|listen)\b`),
}

var chitchatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(hi|hello|hey|good morning|good evening|good afternoon)\b`),
	regexp.MustCompile(`\b(how are you|how do you do|what's up|what's new)\b`),
	regexp.MustCompile(`\b(who are you|what are you|tell me about yourself)\b`),
	regexp.MustCompile(`\b(thanks|thank you|appreciate|grateful)\b`),
	regexp.MustCompile(`\b(ok|okay|sure|sounds good|got it)\b`),
}

var interrogatives = []string{"what", "how", "when", "where", "why", "who"}

// Classify maps a raw message to an intent. The fallback is IntentTaskMgmt:
// unmatched content is assumed to be an actionable request.
func Classify(message string) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, p := range taskPatterns {
		if p.MatchString(lower) {
			return IntentTaskMgmt
		}
	}
	for _, p := range chitchatPatterns {
		if p.MatchString(lower) {
			return IntentChitchat
		}
	}

	if strings.HasSuffix(strings.TrimSpace(message), "?") {
		return IntentQuery
	}
	for _, word := range interrogatives {
		if strings.Contains(lower, word) {
			return IntentQuery
		}
	}

	return IntentTaskMgmt
}
