// ABOUTME: HTTP server and routing for the telephony webhook surface
// ABOUTME: Owns the store and Relevance client, maps pipeline errors to JSON responses

package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/dawn-gateway/internal/config"
	"github.com/2389/dawn-gateway/internal/relevance"
	"github.com/2389/dawn-gateway/internal/store"
)

// AgentClient is what the dispatcher needs from the Relevance layer.
type AgentClient interface {
	Trigger(ctx context.Context, agentID, userMessage, conversationID string) (*relevance.TriggerResponse, error)
	PollUntilDone(ctx context.Context, studioID, jobID string) (string, error)
}

// Server dispatches inbound telephony webhooks: chat completions run the
// trigger/poll/stream pipeline, server messages handle provisioning and
// call lifecycle.
type Server struct {
	config     *config.Config
	store      store.Store
	agent      AgentClient
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a webhook server wired to the given store and agent client.
func New(cfg *config.Config, st store.Store, agent AgentClient, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		store:  st,
		agent:  agent,
		logger: logger.With("component", "webhook"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/vapi/server-messages", s.handleServerMessages)

	// No WriteTimeout: a chat turn legitimately holds the response open
	// for the whole poll budget.
	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the routed handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves HTTP until ctx is canceled, then drains with a bounded
// shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	// Fresh context: the original one is already canceled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down webhook server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// sendJSON writes a JSON response with the given status.
func (s *Server) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
