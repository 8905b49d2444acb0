// Package webhook is the HTTP boundary of dawn-gateway.
//
// # Endpoints
//
//   - POST /chat/completions — one conversational turn: validate the
//     chat-completion request, persist conversation state, trigger the
//     Relevance agent, poll the job to completion, and stream the
//     answer back as SSE chunks.
//   - POST /vapi/server-messages — telephony lifecycle messages:
//     assistant provisioning, call-ended cleanup, reports.
//   - GET /health — liveness probe.
//
// # Execution Model
//
// Each chat turn runs synchronously on its request goroutine; the poll
// loop blocks that goroutine for up to the configured attempt budget.
// There are no background workers and no queues. Cancellation follows
// the request context.
//
// # Error Mapping
//
// Validation failures are 400, storage failures 500, upstream and
// protocol failures 502, poll exhaustion 504. All failures are logged
// with agent and job identifiers; none crash the process.
package webhook
