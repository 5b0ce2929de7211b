package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory TaskStore used by tests and the REPL's ephemeral
// mode. It honors the same ownership and ordering semantics as SQLStore.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]Task
}

// NewMemStore creates an empty in-memory task store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, tasks: make(map[int64]Task)}
}

// Create inserts a new pending task for the user.
func (s *MemStore) Create(ctx context.Context, userID, title, description string, opts CreateOptions) (Task, error) {
	if err := validateFields(title, description); err != nil {
		return Task{}, err
	}
	priority := opts.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t := Task{
		ID:          s.nextID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     opts.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[t.ID] = t
	return t, nil
}

// List returns the user's tasks filtered by status, oldest first.
func (s *MemStore) List(ctx context.Context, userID string, f Filter) ([]Task, error) {
	status := f.Status
	if status == "" {
		status = StatusPending
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		switch status {
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		case StatusPending:
			if t.Completed {
				continue
			}
		}
		tasks = append(tasks, t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	if f.Limit > 0 && len(tasks) > f.Limit {
		tasks = tasks[:f.Limit]
	}
	return tasks, nil
}

// Get fetches a single task owned by the user.
func (s *MemStore) Get(ctx context.Context, userID string, id int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return Task{}, ErrNotFound
	}
	return t, nil
}

// Update applies a partial update to a task owned by the user.
func (s *MemStore) Update(ctx context.Context, userID string, id int64, patch Patch) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return Task{}, ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if err := validateFields(t.Title, t.Description); err != nil {
		return Task{}, err
	}
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return t, nil
}

// Delete removes a task owned by the user.
func (s *MemStore) Delete(ctx context.Context, userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
