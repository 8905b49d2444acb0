// ABOUTME: Transient assistant provisioning payload for assistant-request messages
// ABOUTME: Static configuration returned to the telephony platform, with config overrides

package vapi

import "github.com/2389/dawn-gateway/internal/config"

// Defaults for the provisioning payload when the config leaves a field unset.
const (
	defaultSystemPrompt = "Answer the callers questions as succintly as possible. Yes or no answers are completely acceptable when appropriate."
	defaultFirstMessage = "Hey. Hi. Howdy."
	defaultVoiceID      = "andrew"
	defaultMaxTokens    = 250
)

// AssistantResponse is the top-level payload returned for an
// assistant-request server message.
type AssistantResponse struct {
	Assistant Assistant `json:"assistant"`
}

// Assistant describes a transient assistant: how to transcribe the
// caller, which model endpoint to call, and how to speak the reply.
type Assistant struct {
	Transcriber        Transcriber        `json:"transcriber"`
	Model              Model              `json:"model"`
	Voice              Voice              `json:"voice"`
	FirstMessageMode   string             `json:"firstMessageMode"`
	HIPAAEnabled       bool               `json:"hipaaEnabled"`
	RecordingEnabled   bool               `json:"recordingEnabled"`
	FirstMessage       string             `json:"firstMessage"`
	VoicemailDetection VoicemailDetection `json:"voicemailDetection"`
}

// Transcriber selects the speech-to-text provider.
type Transcriber struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// Model points the platform at this gateway as a custom LLM. Model holds
// the Relevance agent id, which comes back to us as the "model" field of
// each chat-completion request.
type Model struct {
	Messages  []SystemMessage `json:"messages"`
	Provider  string          `json:"provider"`
	Model     string          `json:"model"`
	URL       string          `json:"url"`
	MaxTokens int             `json:"maxTokens"`
}

// SystemMessage seeds the model conversation.
type SystemMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Voice selects the text-to-speech provider.
type Voice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
	Speed    int    `json:"speed"`
}

// VoicemailDetection selects the voicemail detection provider.
type VoicemailDetection struct {
	Provider string `json:"provider"`
}

// NewAssistantResponse builds the provisioning payload, filling defaults
// for any field the config leaves empty.
func NewAssistantResponse(cfg config.AssistantConfig) AssistantResponse {
	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	firstMessage := cfg.FirstMessage
	if firstMessage == "" {
		firstMessage = defaultFirstMessage
	}
	voiceID := cfg.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	return AssistantResponse{
		Assistant: Assistant{
			Transcriber: Transcriber{
				Provider: "deepgram",
				Model:    "nova-2",
				Language: "en",
			},
			Model: Model{
				Messages: []SystemMessage{
					{Role: "system", Content: systemPrompt},
				},
				Provider:  "custom-llm",
				Model:     cfg.ModelID,
				URL:       cfg.ServerURL,
				MaxTokens: maxTokens,
			},
			Voice: Voice{
				Provider: "azure",
				VoiceID:  voiceID,
				Speed:    1,
			},
			FirstMessageMode:   "assistant-speaks-first",
			HIPAAEnabled:       false,
			RecordingEnabled:   true,
			FirstMessage:       firstMessage,
			VoicemailDetection: VoicemailDetection{Provider: "twilio"},
		},
	}
}
