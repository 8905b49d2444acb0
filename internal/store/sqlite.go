// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides single-row conversation persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conversation (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			conversation_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// GetCurrent reads the single conversation record, if any.
func (s *SQLiteStore) GetCurrent(ctx context.Context) (*Conversation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, agent_id, conversation_id, created_at, updated_at
		FROM conversation
		LIMIT 1
	`)

	var conv Conversation
	err := row.Scan(&conv.ID, &conv.AgentID, &conv.ConversationID, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading conversation: %v", ErrStorage, err)
	}

	return &conv, nil
}

// Upsert creates or updates the conversation record. The stored
// conversation_id is only overwritten when the new value is non-empty.
func (s *SQLiteStore) Upsert(ctx context.Context, agentID, conversationID string) (*Conversation, error) {
	now := time.Now().UTC()

	existing, err := s.GetCurrent(ctx)
	if errors.Is(err, ErrNotFound) {
		conv := &Conversation{
			ID:             uuid.New().String(),
			AgentID:        agentID,
			ConversationID: conversationID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO conversation (id, agent_id, conversation_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, conv.ID, conv.AgentID, conv.ConversationID, conv.CreatedAt, conv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: inserting conversation: %v", ErrStorage, err)
		}

		s.logger.Debug("conversation created", "agent_id", agentID)
		return conv, nil
	}
	if err != nil {
		return nil, err
	}

	existing.AgentID = agentID
	if conversationID != "" {
		existing.ConversationID = conversationID
	}
	existing.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversation
		SET agent_id = ?, conversation_id = ?, updated_at = ?
		WHERE id = ?
	`, existing.AgentID, existing.ConversationID, existing.UpdatedAt, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: updating conversation: %v", ErrStorage, err)
	}

	s.logger.Debug("conversation updated",
		"agent_id", existing.AgentID,
		"conversation_id", existing.ConversationID)
	return existing, nil
}

// Clear deletes the conversation record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM conversation"); err != nil {
		return fmt.Errorf("%w: clearing conversation: %v", ErrStorage, err)
	}
	s.logger.Debug("conversation cleared")
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
