// ABOUTME: Store interface and data types for dawn-gateway persistence
// ABOUTME: Defines the Conversation struct and the single-row conversation store contract

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no conversation record exists
var ErrNotFound = errors.New("not found")

// ErrStorage wraps persistence-layer failures so callers can map them to
// an error response without inspecting driver errors.
var ErrStorage = errors.New("storage error")

// Conversation links the active call to an upstream agent conversation.
// ConversationID is empty until the upstream platform assigns one; an
// empty value means "no conversation established yet".
type Conversation struct {
	ID             string
	AgentID        string
	ConversationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Established reports whether the upstream platform has assigned a
// conversation identifier.
func (c *Conversation) Established() bool {
	return c.ConversationID != ""
}

// Store persists the single active conversation record.
//
// The store models exactly one live call at a time: GetCurrent reads the
// record, Upsert creates or updates it, Clear deletes it when the call
// ends. Concurrent calls racing on the row is an explicit non-goal; one
// active call is an operating precondition, not an enforced invariant.
type Store interface {
	// GetCurrent returns the active conversation, or ErrNotFound.
	GetCurrent(ctx context.Context) (*Conversation, error)

	// Upsert creates the record if absent, otherwise updates it.
	// AgentID is always refreshed; ConversationID is overwritten only
	// when conversationID is non-empty, so an unassigned turn never
	// clobbers an established upstream conversation.
	Upsert(ctx context.Context, agentID, conversationID string) (*Conversation, error)

	// Clear deletes the record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store
	Close() error
}
