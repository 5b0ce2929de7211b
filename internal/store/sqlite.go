package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLStore is the sqlite-backed TaskStore. The autoincrement integer primary
// key doubles as the task id users reference in chat ("complete task 3").
type SQLStore struct {
	db *sql.DB
}

const taskSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	priority    TEXT NOT NULL DEFAULT 'medium',
	due_date    TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
`

// NewSQLStore creates a SQLStore and ensures the schema exists.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(taskSchema); err != nil {
		return nil, fmt.Errorf("failed to init task schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Create inserts a new pending task for the user.
func (s *SQLStore) Create(ctx context.Context, userID, title, description string, opts CreateOptions) (Task, error) {
	if err := validateFields(title, description); err != nil {
		return Task{}, err
	}
	priority := opts.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, description, completed, priority, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, ?, ?, ?)`,
		userID, title, description, priority, opts.DueDate, now, now,
	)
	if err != nil {
		return Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("failed to read task id: %w", err)
	}

	return Task{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		DueDate:     opts.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// List returns the user's tasks filtered by status, oldest first. The status
// filter defaults to pending, matching the tool contract.
func (s *SQLStore) List(ctx context.Context, userID string, f Filter) ([]Task, error) {
	status := f.Status
	if status == "" {
		status = StatusPending
	}

	query := `SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		FROM tasks WHERE user_id = ?`
	args := []any{userID}

	switch status {
	case StatusAll:
	case StatusCompleted:
		query += " AND completed = 1"
	case StatusPending:
		query += " AND completed = 0"
	default:
		return nil, fmt.Errorf("unknown status filter %q", status)
	}

	query += " ORDER BY created_at ASC, id ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get fetches a single task owned by the user.
func (s *SQLStore) Get(ctx context.Context, userID string, id int64) (Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

// Update applies a partial update to a task owned by the user.
func (s *SQLStore) Update(ctx context.Context, userID string, id int64, patch Patch) (Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		 FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET title = ?, completed = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		t.Title, boolToInt(t.Completed), t.UpdatedAt, id, userID,
	); err != nil {
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

// Delete removes a task owned by the user.
func (s *SQLStore) Delete(ctx context.Context, userID string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var t Task
	var completed int
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &completed,
		&t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}
	t.Completed = completed != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
