// Package memory persists conversations and their message transcripts.
// Messages are append-only; within a conversation they are totally ordered
// by creation time, with the insertion id breaking ties.
package memory

import (
	"context"
	"errors"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotFound is returned when a conversation does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("conversation not found")

// Conversation groups the messages of one chat session for a user.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn side within a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is the conversation memory contract used by the orchestrator.
type Store interface {
	// CreateConversation starts a new empty conversation for the user.
	CreateConversation(ctx context.Context, userID string) (Conversation, error)

	// LatestConversation returns the user's most recently updated
	// conversation, or ErrNotFound if the user has none.
	LatestConversation(ctx context.Context, userID string) (Conversation, error)

	// History returns the messages of a conversation in creation order.
	// With an empty conversationID it resolves the user's most recent
	// conversation; a user with no conversations gets an empty history,
	// not an error.
	History(ctx context.Context, userID, conversationID string) ([]Message, error)

	// Append adds a message to a conversation after verifying the
	// conversation belongs to the user, and bumps the conversation's
	// updated_at. Cross-user appends fail with ErrNotFound.
	Append(ctx context.Context, userID, conversationID, role, content string) (Message, error)
}
