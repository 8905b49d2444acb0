// ABOUTME: Inbound message types from the telephony platform
// ABOUTME: Server-message envelope plus the chat-completion request shape

package vapi

// Server-message types the telephony platform delivers to the webhook.
const (
	TypeAssistantRequest = "assistant-request"
	TypeStatusUpdate     = "status-update"
	TypeEndOfCallReport  = "end-of-call-report"
)

// StatusEnded is the status-update value signaling the call has ended.
const StatusEnded = "ended"

// ServerMessage is the envelope of a server-message webhook call.
type ServerMessage struct {
	Message MessagePayload `json:"message"`
}

// MessagePayload carries the message type and, for status updates, the
// call status.
type MessagePayload struct {
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
}

// ChatMessage is one entry of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the chat-completion-shaped request the
// platform sends for custom-llm models. Model carries the Relevance
// agent id.
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// LastUserMessage returns the content of the most recent message with
// role "user", or false when the transcript contains none.
func (r *ChatCompletionRequest) LastUserMessage() (string, bool) {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content, true
		}
	}
	return "", false
}
