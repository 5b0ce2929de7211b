package router

import "strings"

var (
	greetingWords = []string{"hi", "hello", "hey", "good morning", "good evening", "good afternoon"}
	howAreYou     = []string{"how are you", "how do you do", "what's up", "what's new"}
	whoAreYou     = []string{"who are you", "what are you", "tell me about yourself"}
	thanksWords   = []string{"thanks", "thank you", "appreciate", "grateful"}
)

// ChitchatReply returns a canned response for small talk. Answers keep the
// assistant's persona pointed at task management.
func ChitchatReply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	switch {
	case containsAny(lower, greetingWords):
		return "Hello! I'm your AI assistant for managing todos. You can ask me to add tasks, list your tasks, mark tasks as complete, and more."
	case containsAny(lower, howAreYou):
		return "I'm doing well, thank you for asking! I'm here to help you manage your tasks and todos. What would you like to do today?"
	case containsAny(lower, whoAreYou):
		return "I'm an AI assistant designed to help you manage your tasks and todos. I can create, list, update, and manage your tasks based on your requests."
	case containsAny(lower, thanksWords):
		return "You're welcome! Is there anything else I can help you with?"
	default:
		return "I'm here to help you manage your tasks. You can ask me to add a task, list your tasks, mark tasks as complete, or delete tasks."
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
