package memory

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	sqlStore, err := NewSQLStore(db)
	require.NoError(t, err)
	return map[string]Store{
		"sqlite": sqlStore,
		"memory": NewMemStore(),
	}
}

func TestAppendFetchRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			conv, err := s.CreateConversation(ctx, "alice")
			require.NoError(t, err)
			require.NotEmpty(t, conv.ID)

			turns := []struct{ role, content string }{
				{RoleUser, "add buy milk"},
				{RoleAssistant, "I've created the task: 'buy milk'"},
				{RoleUser, "thanks"},
			}
			for _, turn := range turns {
				_, err := s.Append(ctx, "alice", conv.ID, turn.role, turn.content)
				require.NoError(t, err)
			}

			history, err := s.History(ctx, "alice", conv.ID)
			require.NoError(t, err)
			require.Len(t, history, len(turns))
			for i, turn := range turns {
				assert.Equal(t, turn.role, history[i].Role)
				assert.Equal(t, turn.content, history[i].Content)
			}
		})
	}
}

func TestHistoryResolvesLatestConversation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			older, err := s.CreateConversation(ctx, "alice")
			require.NoError(t, err)
			newer, err := s.CreateConversation(ctx, "alice")
			require.NoError(t, err)

			_, err = s.Append(ctx, "alice", older.ID, RoleUser, "old thread")
			require.NoError(t, err)
			// Appending to the newer conversation last makes it the most
			// recently updated one.
			_, err = s.Append(ctx, "alice", newer.ID, RoleUser, "new thread")
			require.NoError(t, err)

			history, err := s.History(ctx, "alice", "")
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, "new thread", history[0].Content)
		})
	}
}

func TestHistoryNoConversations(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			history, err := s.History(context.Background(), "nobody", "")
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestCrossUserAppendRejected(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			conv, err := s.CreateConversation(ctx, "alice")
			require.NoError(t, err)

			_, err = s.Append(ctx, "bob", conv.ID, RoleUser, "intruder")
			assert.ErrorIs(t, err, ErrNotFound)

			history, err := s.History(ctx, "alice", conv.ID)
			require.NoError(t, err)
			assert.Empty(t, history, "rejected append must not write")
		})
	}
}

func TestAppendToMissingConversation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Append(context.Background(), "alice", "no-such-conversation", RoleUser, "hello")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLatestConversation(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.LatestConversation(ctx, "alice")
			assert.ErrorIs(t, err, ErrNotFound)

			conv, err := s.CreateConversation(ctx, "alice")
			require.NoError(t, err)

			latest, err := s.LatestConversation(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, conv.ID, latest.ID)
		})
	}
}
