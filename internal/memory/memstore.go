package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory conversation memory used by tests.
type MemStore struct {
	mu            sync.RWMutex
	nextMessageID int64
	conversations map[string]Conversation
	messages      map[string][]Message
}

// NewMemStore creates an empty in-memory conversation store.
func NewMemStore() *MemStore {
	return &MemStore{
		nextMessageID: 1,
		conversations: make(map[string]Conversation),
		messages:      make(map[string][]Message),
	}
}

// CreateConversation starts a new empty conversation for the user.
func (s *MemStore) CreateConversation(ctx context.Context, userID string) (Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv := Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations[conv.ID] = conv
	return conv, nil
}

// LatestConversation returns the user's most recently updated conversation.
func (s *MemStore) LatestConversation(ctx context.Context, userID string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest Conversation
	found := false
	for _, conv := range s.conversations {
		if conv.UserID != userID {
			continue
		}
		if !found || conv.UpdatedAt.After(latest.UpdatedAt) {
			latest = conv
			found = true
		}
	}
	if !found {
		return Conversation{}, ErrNotFound
	}
	return latest, nil
}

// History returns the conversation's messages in creation order.
func (s *MemStore) History(ctx context.Context, userID, conversationID string) ([]Message, error) {
	if conversationID == "" {
		conv, err := s.LatestConversation(ctx, userID)
		if err == ErrNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return nil, nil
	}
	// Messages are appended in order, so the slice is already sorted by
	// creation time with insertion order breaking ties.
	msgs := make([]Message, len(s.messages[conversationID]))
	copy(msgs, s.messages[conversationID])
	return msgs, nil
}

// Append adds a message after verifying conversation ownership.
func (s *MemStore) Append(ctx context.Context, userID, conversationID, role, content string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return Message{}, ErrNotFound
	}

	now := time.Now().UTC()
	m := Message{
		ID:             s.nextMessageID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      now,
	}
	s.nextMessageID++
	s.messages[conversationID] = append(s.messages[conversationID], m)

	conv.UpdatedAt = now
	s.conversations[conversationID] = conv
	return m, nil
}
