package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStore_GetCurrent_Empty(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetCurrent(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Upsert_Creates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	conv, err := store.Upsert(ctx, "agent-42", "")
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "agent-42", conv.AgentID)
	assert.Empty(t, conv.ConversationID)
	assert.False(t, conv.Established())

	retrieved, err := store.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, retrieved.ID)
	assert.Equal(t, "agent-42", retrieved.AgentID)
}

func TestStore_Upsert_AssignsConversationID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "agent-42", "")
	require.NoError(t, err)

	conv, err := store.Upsert(ctx, "agent-42", "conv-9")
	require.NoError(t, err)
	assert.Equal(t, "conv-9", conv.ConversationID)
	assert.True(t, conv.Established())

	retrieved, err := store.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "conv-9", retrieved.ConversationID)
}

func TestStore_Upsert_EmptyDoesNotClobber(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "agent-42", "conv-9")
	require.NoError(t, err)

	// A later turn without an upstream-assigned id must keep conv-9.
	conv, err := store.Upsert(ctx, "agent-43", "")
	require.NoError(t, err)
	assert.Equal(t, "agent-43", conv.AgentID, "agent id is always refreshed")
	assert.Equal(t, "conv-9", conv.ConversationID, "stored conversation id must survive")
}

func TestStore_Upsert_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Upsert(ctx, "agent-42", "conv-9")
	require.NoError(t, err)

	second, err := store.Upsert(ctx, "agent-42", "conv-9")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "upsert must not create a second row")
	assert.Equal(t, first.AgentID, second.AgentID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}

func TestStore_Upsert_SingleRow(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Upsert(ctx, "agent-1", "conv-1")
	require.NoError(t, err)

	second, err := store.Upsert(ctx, "agent-2", "conv-2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM conversation").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_Clear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "agent-42", "conv-9")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	_, err = store.GetCurrent(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Clear_Empty(t *testing.T) {
	store := setupTestStore(t)

	// Clearing with no record present is not an error.
	assert.NoError(t, store.Clear(context.Background()))
}
