// ABOUTME: Synthetic chat-completion token stream over server-sent events
// ABOUTME: Splits an answer into whitespace tokens and frames each as an SSE data event

package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// done is the end-of-stream sentinel event.
const done = "data: [DONE]\n\n"

// Delta is the incremental content payload of one chunk.
type Delta struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// Choice wraps a delta in the chat-completion streaming shape.
type Choice struct {
	Delta Delta `json:"delta"`
}

// Chunk is one chat-completion streaming event.
type Chunk struct {
	Choices []Choice `json:"choices"`
}

// Stream yields a finite sequence of framed SSE events for one answer:
// one event per whitespace-delimited token, then the [DONE] sentinel.
// It is single-consumption and never reorders or buffers beyond the
// current token.
type Stream struct {
	tokens []string
	pos    int
	closed bool
}

// New creates a stream over the given answer text.
func New(answer string) *Stream {
	return &Stream{tokens: strings.Fields(answer)}
}

// Next returns the next framed event. The second return value is false
// once the stream is exhausted, one event after the sentinel.
func (s *Stream) Next() (string, bool) {
	if s.pos < len(s.tokens) {
		token := s.tokens[s.pos]
		s.pos++
		return frameToken(token), true
	}
	if !s.closed {
		s.closed = true
		return done, true
	}
	return "", false
}

// frameToken wraps one token in a chat-completion chunk and frames it as
// an SSE data line. A single trailing space is appended so concatenated
// deltas reproduce the answer with separators.
func frameToken(token string) string {
	chunk := Chunk{
		Choices: []Choice{
			{Delta: Delta{Content: token + " ", Role: "assistant"}},
		},
	}

	// Marshaling a struct of strings cannot fail.
	data, _ := json.Marshal(chunk)
	return fmt.Sprintf("data: %s\n\n", data)
}

// WriteTo drives the stream into an HTTP response, flushing after every
// event when the writer supports it.
func (s *Stream) WriteTo(w http.ResponseWriter) error {
	flusher, _ := w.(http.Flusher)

	for {
		event, ok := s.Next()
		if !ok {
			return nil
		}
		if _, err := fmt.Fprint(w, event); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
