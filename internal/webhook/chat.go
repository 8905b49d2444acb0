// ABOUTME: Chat-completion pipeline: validate, persist conversation, trigger, poll, stream
// ABOUTME: Runs synchronously on the request context for the full turn

package webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2389/dawn-gateway/internal/relevance"
	"github.com/2389/dawn-gateway/internal/stream"
	"github.com/2389/dawn-gateway/internal/vapi"
)

// handleChatCompletions handles POST /chat/completions.
//
// One call is one conversational turn: the caller's latest message is
// forwarded to the Relevance agent named by the request's model field,
// the resulting job is polled to completion, and the answer is streamed
// back as chat-completion SSE chunks.
func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req vapi.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	agentID := req.Model
	if agentID == "" {
		s.sendJSONError(w, http.StatusBadRequest, "missing model")
		return
	}

	// Validate before touching storage or the upstream platform.
	userMessage, ok := req.LastUserMessage()
	if !ok {
		s.sendJSONError(w, http.StatusBadRequest, "no user message found")
		return
	}

	ctx := r.Context()

	// Create or refresh the conversation record. Passing an empty
	// conversation id keeps whatever upstream id is already stored.
	conv, err := s.store.Upsert(ctx, agentID, "")
	if err != nil {
		s.logger.Error("conversation upsert failed", "agent_id", agentID, "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "database error")
		return
	}

	trigger, err := s.agent.Trigger(ctx, agentID, userMessage, conv.ConversationID)
	if err != nil {
		s.sendPipelineError(w, err, agentID, "")
		return
	}

	// Persist the upstream-assigned conversation id so the next turn
	// continues the same conversation. A failure here degrades
	// continuity but the current turn can still answer.
	if _, err := s.store.Upsert(ctx, agentID, trigger.ConversationID); err != nil {
		s.logger.Error("failed to persist conversation id",
			"agent_id", agentID,
			"conversation_id", trigger.ConversationID,
			"error", err)
	}

	answer, err := s.agent.PollUntilDone(ctx, trigger.JobInfo.StudioID, trigger.JobInfo.JobID)
	if err != nil {
		s.sendPipelineError(w, err, agentID, trigger.JobInfo.JobID)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if err := stream.New(answer).WriteTo(w); err != nil {
		// Headers are gone; all we can do is log.
		s.logger.Error("streaming response failed", "agent_id", agentID, "error", err)
		return
	}

	s.logger.Info("chat turn completed",
		"agent_id", agentID,
		"conversation_id", trigger.ConversationID,
		"job_id", trigger.JobInfo.JobID)
}

// sendPipelineError maps trigger/poll failures onto HTTP statuses:
// poll timeout 504, upstream and protocol failures 502.
func (s *Server) sendPipelineError(w http.ResponseWriter, err error, agentID, jobID string) {
	s.logger.Error("chat pipeline failed",
		"agent_id", agentID,
		"job_id", jobID,
		"error", err)

	var upstreamErr *relevance.UpstreamError
	var protocolErr *relevance.ProtocolError
	switch {
	case errors.Is(err, relevance.ErrPollTimeout):
		s.sendJSONError(w, http.StatusGatewayTimeout, "timed out waiting for agent response")
	case errors.As(err, &protocolErr):
		s.sendJSONError(w, http.StatusBadGateway, "invalid response from agent platform")
	case errors.As(err, &upstreamErr):
		s.sendJSONError(w, http.StatusBadGateway, "agent platform request failed")
	default:
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
