package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain consumes the stream to exhaustion.
func drain(s *Stream) []string {
	var events []string
	for {
		event, ok := s.Next()
		if !ok {
			return events
		}
		events = append(events, event)
	}
}

// decodeDelta extracts the delta content from a framed data event.
func decodeDelta(t *testing.T, event string) Delta {
	t.Helper()
	payload := strings.TrimSuffix(strings.TrimPrefix(event, "data: "), "\n\n")
	var chunk Chunk
	require.NoError(t, json.Unmarshal([]byte(payload), &chunk))
	require.Len(t, chunk.Choices, 1)
	return chunk.Choices[0].Delta
}

func TestStream_EventCount(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		events int
	}{
		{"two words", "Hi friend", 3},
		{"one word", "Yes", 2},
		{"empty", "", 1},
		{"extra whitespace", "  spaced   out  ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := drain(New(tt.answer))
			assert.Len(t, events, tt.events)
			assert.Equal(t, "data: [DONE]\n\n", events[len(events)-1])
		})
	}
}

func TestStream_ReassemblesAnswer(t *testing.T) {
	answer := "The quick brown fox jumps"
	events := drain(New(answer))

	var sb strings.Builder
	for _, event := range events[:len(events)-1] {
		delta := decodeDelta(t, event)
		assert.Equal(t, "assistant", delta.Role)
		assert.True(t, strings.HasSuffix(delta.Content, " "), "each token carries a trailing space")
		sb.WriteString(delta.Content)
	}

	assert.Equal(t, answer+" ", sb.String())
}

func TestStream_TokenOrder(t *testing.T) {
	events := drain(New("one two three"))

	want := []string{"one ", "two ", "three "}
	for i, event := range events[:3] {
		assert.Equal(t, want[i], decodeDelta(t, event).Content)
	}
}

func TestStream_SingleConsumption(t *testing.T) {
	s := New("hello")
	drain(s)

	_, ok := s.Next()
	assert.False(t, ok, "a drained stream stays exhausted")
}

func TestStream_WriteTo(t *testing.T) {
	rec := httptest.NewRecorder()

	err := New("Hi friend").WriteTo(rec)
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `"content":"Hi "`)
	assert.Contains(t, body, `"content":"friend "`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
	assert.True(t, rec.Flushed)
}
