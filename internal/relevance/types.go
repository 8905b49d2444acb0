// ABOUTME: Wire types for the Relevance trigger and poll endpoints
// ABOUTME: Request/response shapes stay internal; TriggerResponse is the exported result

package relevance

// Job status values reported by the poll endpoint. Any other value is
// treated as "not finished yet".
const (
	statusComplete = "complete"
)

// Update kinds within a job status. Only chain-success carries the answer.
const (
	updateChainSuccess = "chain-success"
)

// JobInfo identifies the asynchronous job created by a trigger call.
type JobInfo struct {
	StudioID string `json:"studio_id"`
	JobID    string `json:"job_id"`
}

// TriggerResponse is the validated result of a trigger call.
type TriggerResponse struct {
	ConversationID string
	JobInfo        JobInfo
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type triggerRequest struct {
	Message chatMessage `json:"message"`
	AgentID string      `json:"agent_id"`
	// Omitted entirely when empty so the platform starts a fresh conversation.
	ConversationID string `json:"conversation_id,omitempty"`
}

// triggerResponseWire uses pointers to distinguish absent fields from
// empty ones; both are protocol violations but absence is the common case.
type triggerResponseWire struct {
	ConversationID *string  `json:"conversation_id"`
	JobInfo        *JobInfo `json:"job_info"`
}

type jobStatus struct {
	Type    string      `json:"type"`
	Updates []jobUpdate `json:"updates"`
}

type jobUpdate struct {
	Type   string       `json:"type"`
	Output updateOutput `json:"output"`
}

// The answer is nested two levels deep: update.output.output.answer.
type updateOutput struct {
	Output answerPayload `json:"output"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}
