// Package store provides persistent storage for the gateway using SQLite.
//
// # Data Model
//
// The store holds exactly one logical row: the Conversation linking the
// active phone call to its upstream agent conversation. The record is
// created on the first chat turn of a call, updated in place as the
// upstream platform assigns a conversation identifier, and deleted when
// the call-ended signal arrives.
//
// # Operating Constraint
//
// One active call at a time. Overlapping calls would race on the single
// row with no isolation; the gateway does not lock because the telephony
// platform in front of it dispatches one call per deployment.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode:
//
//	PRAGMA journal_mode=WAL;
//
// # Error Handling
//
//   - ErrNotFound: no conversation record exists
//   - ErrStorage: wraps any persistence-layer failure
//
// All methods accept context.Context for cancellation support.
package store
