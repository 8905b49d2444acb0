package relevance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client pointed at the given test server with a
// short poll budget so failure tests stay fast.
func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		ProjectID:       "proj-1",
		APIKey:          "key-1",
		RequestTimeout:  5 * time.Second,
		MaxPollAttempts: 3,
		PollDelay:       time.Millisecond,
	}, nil)
}

func TestClient_Trigger_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/agents/trigger", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"conversation_id": "conv-9",
			"job_info":        map[string]string{"studio_id": "s1", "job_id": "j1"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Trigger(context.Background(), "agent-42", "Hello there", "conv-8")
	require.NoError(t, err)

	assert.Equal(t, "conv-9", resp.ConversationID)
	assert.Equal(t, "s1", resp.JobInfo.StudioID)
	assert.Equal(t, "j1", resp.JobInfo.JobID)

	assert.Equal(t, "proj-1:key-1", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "agent-42", gotBody["agent_id"])
	assert.Equal(t, "conv-8", gotBody["conversation_id"])
	msg := gotBody["message"].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Hello there", msg["content"])
}

func TestClient_Trigger_OmitsEmptyConversationID(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"conversation_id": "conv-new",
			"job_info":        map[string]string{"studio_id": "s1", "job_id": "j1"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Trigger(context.Background(), "agent-42", "hi", "")
	require.NoError(t, err)

	_, present := gotBody["conversation_id"]
	assert.False(t, present, "conversation_id must be omitted, not sent empty")
}

func TestClient_Trigger_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Trigger(context.Background(), "agent-42", "hi", "")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
	assert.Equal(t, "trigger", ue.Op)
}

func TestClient_Trigger_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := newTestClient(srv.URL)
	_, err := client.Trigger(context.Background(), "agent-42", "hi", "")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Zero(t, ue.Status)
}

func TestClient_Trigger_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Trigger(context.Background(), "agent-42", "hi", "")

	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
}

func TestClient_Trigger_ProtocolViolations(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing conversation_id", map[string]any{
			"job_info": map[string]string{"studio_id": "s1", "job_id": "j1"},
		}},
		{"missing job_info", map[string]any{
			"conversation_id": "conv-9",
		}},
		{"empty studio_id", map[string]any{
			"conversation_id": "conv-9",
			"job_info":        map[string]string{"studio_id": "", "job_id": "j1"},
		}},
		{"empty job_id", map[string]any{
			"conversation_id": "conv-9",
			"job_info":        map[string]string{"studio_id": "s1", "job_id": ""},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.Trigger(context.Background(), "agent-42", "hi", "")

			var pe *ProtocolError
			require.ErrorAs(t, err, &pe, "want ProtocolError, got %v", err)
		})
	}
}
