// ABOUTME: HTTP client for triggering Relevance agent jobs
// ABOUTME: Builds authenticated trigger requests and validates the response shape

package relevance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Config holds the settings needed to talk to the Relevance platform.
type Config struct {
	// BaseURL is the fully expanded API root, without a trailing slash.
	BaseURL   string
	ProjectID string
	APIKey    string

	// RequestTimeout bounds each individual HTTP call. It is independent
	// of the overall poll budget.
	RequestTimeout time.Duration

	MaxPollAttempts int
	PollDelay       time.Duration
}

// Client issues trigger and poll calls against the Relevance platform.
type Client struct {
	baseURL         string
	authorization   string
	httpClient      *http.Client
	maxPollAttempts int
	pollDelay       time.Duration
	logger          *slog.Logger
}

// NewClient creates a Relevance client from the given config.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:         cfg.BaseURL,
		authorization:   fmt.Sprintf("%s:%s", cfg.ProjectID, cfg.APIKey),
		httpClient:      &http.Client{Timeout: cfg.RequestTimeout},
		maxPollAttempts: cfg.MaxPollAttempts,
		pollDelay:       cfg.PollDelay,
		logger:          logger.With("component", "relevance"),
	}
}

// Trigger starts an agent job for the given user message. conversationID
// is included in the payload only when non-empty; omitting it tells the
// platform to begin a new conversation. The trigger call is made at most
// once — failures surface to the caller without retry.
func (c *Client) Trigger(ctx context.Context, agentID, userMessage, conversationID string) (*TriggerResponse, error) {
	payload := triggerRequest{
		Message: chatMessage{
			Role:    "user",
			Content: userMessage,
		},
		AgentID:        agentID,
		ConversationID: conversationID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding trigger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agents/trigger", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authorization)

	c.logger.Debug("triggering agent",
		"agent_id", agentID,
		"has_conversation", conversationID != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "trigger", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: "trigger", Status: resp.StatusCode}
	}

	var wire triggerResponseWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &UpstreamError{Op: "trigger", Err: fmt.Errorf("decoding response: %w", err)}
	}

	if wire.ConversationID == nil {
		return nil, &ProtocolError{Reason: "trigger response missing conversation_id"}
	}
	if wire.JobInfo == nil {
		return nil, &ProtocolError{Reason: "trigger response missing job_info"}
	}
	if wire.JobInfo.StudioID == "" || wire.JobInfo.JobID == "" {
		return nil, &ProtocolError{Reason: "job_info missing studio_id or job_id"}
	}

	c.logger.Debug("agent triggered",
		"agent_id", agentID,
		"conversation_id", *wire.ConversationID,
		"studio_id", wire.JobInfo.StudioID,
		"job_id", wire.JobInfo.JobID)

	return &TriggerResponse{
		ConversationID: *wire.ConversationID,
		JobInfo:        *wire.JobInfo,
	}, nil
}
