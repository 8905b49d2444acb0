// ABOUTME: Server-message dispatcher: provisioning, call lifecycle, unknown-type policy
// ABOUTME: Branches on message.type from the telephony platform

package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2389/dawn-gateway/internal/config"
	"github.com/2389/dawn-gateway/internal/vapi"
)

// handleServerMessages handles POST /vapi/server-messages.
//
// assistant-request returns the transient assistant provisioning
// payload. A status-update with status "ended" clears the conversation
// record so the next call starts fresh. end-of-call-report is
// acknowledged without action. Anything else follows the configured
// unknown-message policy.
func (s *Server) handleServerMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var msg vapi.ServerMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msgType := msg.Message.Type
	s.logger.Debug("server message received", "type", msgType)

	switch msgType {
	case vapi.TypeAssistantRequest:
		s.sendJSON(w, http.StatusOK, vapi.NewAssistantResponse(s.config.Assistant))

	case vapi.TypeStatusUpdate:
		if msg.Message.Status != vapi.StatusEnded {
			s.sendJSON(w, http.StatusOK, map[string]string{"message": "status-update processed"})
			return
		}
		if err := s.store.Clear(r.Context()); err != nil {
			s.logger.Error("failed to clear conversation", "error", err)
			s.sendJSONError(w, http.StatusInternalServerError, "database error")
			return
		}
		s.logger.Info("call ended, conversation cleared")
		s.sendJSON(w, http.StatusOK, map[string]string{"message": "call ended, conversation cleared"})

	case vapi.TypeEndOfCallReport:
		// Recognized but nothing to do; always acknowledged regardless
		// of the unknown-message policy.
		s.sendJSON(w, http.StatusOK, map[string]string{"message": "end-of-call-report processed"})

	default:
		if s.config.Webhook.UnknownMessagePolicy == config.UnknownMessageAck {
			s.sendJSON(w, http.StatusOK, map[string]string{
				"message": fmt.Sprintf("%s request processed", msgType),
			})
			return
		}
		s.sendJSONError(w, http.StatusBadRequest, fmt.Sprintf("unrecognized message type %q", msgType))
	}
}
