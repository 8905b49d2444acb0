// Package relevance is the client for the Relevance AI agent platform.
//
// # Protocol
//
// Relevance runs agent turns as asynchronous jobs. A turn is two calls:
//
//  1. POST /agents/trigger starts a job and returns the conversation id
//     plus a (studio_id, job_id) pair.
//  2. GET /studios/{studio_id}/async_poll/{job_id} is polled until the
//     job reports type "complete" and its update list contains a
//     "chain-success" entry carrying the final answer.
//
// Both calls authenticate with an Authorization header of the form
// "<project_id>:<api_key>".
//
// # Conversation Continuity
//
// Trigger omits the conversation_id field entirely when no conversation
// has been established; the platform then starts a fresh one and returns
// its id. Passing an empty conversation id to Trigger is how callers
// request a new conversation — there is no sentinel value on the wire.
//
// # Error Taxonomy
//
//   - *UpstreamError: transport failure, non-2xx status, or a body that
//     does not parse. Terminal; the client never retries transport
//     failures, including mid-poll.
//   - *ProtocolError: a 2xx trigger response missing conversation_id or
//     job_info identifiers.
//   - ErrPollTimeout: the poll budget was exhausted without a
//     chain-success update.
package relevance
