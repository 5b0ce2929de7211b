package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openTestDB opens a throwaway sqlite database for one test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// stores returns both TaskStore implementations so every test body runs
// against each one.
func stores(t *testing.T) map[string]TaskStore {
	t.Helper()
	sqlStore, err := NewSQLStore(openTestDB(t))
	require.NoError(t, err)
	return map[string]TaskStore{
		"sqlite": sqlStore,
		"memory": NewMemStore(),
	}
}

func TestCreateAndGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.Create(ctx, "alice", "Buy milk", "2% if they have it", CreateOptions{})
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "alice", created.UserID)
			assert.Equal(t, "Buy milk", created.Title)
			assert.False(t, created.Completed)
			assert.Equal(t, PriorityMedium, created.Priority)

			got, err := s.Get(ctx, "alice", created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Title, got.Title)
			assert.Equal(t, created.Description, got.Description)
		})
	}
}

func TestCreateValidation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Create(ctx, "alice", "", "", CreateOptions{})
			assert.ErrorIs(t, err, ErrInvalidTask)

			_, err = s.Create(ctx, "alice", strings.Repeat("x", MaxTitleLen+1), "", CreateOptions{})
			assert.ErrorIs(t, err, ErrInvalidTask)

			_, err = s.Create(ctx, "alice", "ok", strings.Repeat("x", MaxDescriptionLen+1), CreateOptions{})
			assert.ErrorIs(t, err, ErrInvalidTask)
		})
	}
}

func TestListFilters(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := s.Create(ctx, "alice", "first", "", CreateOptions{})
			require.NoError(t, err)
			second, err := s.Create(ctx, "alice", "second", "", CreateOptions{})
			require.NoError(t, err)
			_, err = s.Create(ctx, "bob", "not alices", "", CreateOptions{})
			require.NoError(t, err)

			done := true
			_, err = s.Update(ctx, "alice", second.ID, Patch{Completed: &done})
			require.NoError(t, err)

			pending, err := s.List(ctx, "alice", Filter{})
			require.NoError(t, err)
			require.Len(t, pending, 1)
			assert.Equal(t, first.ID, pending[0].ID)

			completed, err := s.List(ctx, "alice", Filter{Status: StatusCompleted})
			require.NoError(t, err)
			require.Len(t, completed, 1)
			assert.Equal(t, second.ID, completed[0].ID)

			all, err := s.List(ctx, "alice", Filter{Status: StatusAll})
			require.NoError(t, err)
			assert.Len(t, all, 2)

			limited, err := s.List(ctx, "alice", Filter{Status: StatusAll, Limit: 1})
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, first.ID, limited[0].ID)
		})
	}
}

func TestListIsIdempotent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, title := range []string{"a", "b", "c"} {
				_, err := s.Create(ctx, "alice", title, "", CreateOptions{})
				require.NoError(t, err)
			}

			one, err := s.List(ctx, "alice", Filter{Status: StatusAll})
			require.NoError(t, err)
			two, err := s.List(ctx, "alice", Filter{Status: StatusAll})
			require.NoError(t, err)
			assert.Equal(t, one, two)
		})
	}
}

func TestCrossUserIsolation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			task, err := s.Create(ctx, "alice", "secret", "", CreateOptions{})
			require.NoError(t, err)

			// Bob sees the same error whether the task is missing or
			// belongs to someone else.
			_, err = s.Get(ctx, "bob", task.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = s.Get(ctx, "bob", task.ID+999)
			assert.ErrorIs(t, err, ErrNotFound)

			done := true
			_, err = s.Update(ctx, "bob", task.ID, Patch{Completed: &done})
			assert.ErrorIs(t, err, ErrNotFound)

			err = s.Delete(ctx, "bob", task.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// Alice is unaffected.
			got, err := s.Get(ctx, "alice", task.ID)
			require.NoError(t, err)
			assert.False(t, got.Completed)
		})
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			task, err := s.Create(ctx, "alice", "old title", "keep me", CreateOptions{})
			require.NoError(t, err)

			newTitle := "new title"
			updated, err := s.Update(ctx, "alice", task.ID, Patch{Title: &newTitle})
			require.NoError(t, err)
			assert.Equal(t, "new title", updated.Title)
			assert.Equal(t, "keep me", updated.Description)
			assert.False(t, updated.Completed)

			done := true
			updated, err = s.Update(ctx, "alice", task.ID, Patch{Completed: &done})
			require.NoError(t, err)
			assert.True(t, updated.Completed)
			assert.Equal(t, "new title", updated.Title)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			task, err := s.Create(ctx, "alice", "doomed", "", CreateOptions{})
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, "alice", task.ID))
			_, err = s.Get(ctx, "alice", task.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			err = s.Delete(ctx, "alice", task.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
