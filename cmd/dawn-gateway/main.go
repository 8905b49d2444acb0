// ABOUTME: Entry point for the dawn-gateway webhook server
// ABOUTME: Bridges telephony webhooks to Relevance AI agents

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"

	"github.com/2389/dawn-gateway/internal/config"
	"github.com/2389/dawn-gateway/internal/relevance"
	"github.com/2389/dawn-gateway/internal/store"
	"github.com/2389/dawn-gateway/internal/webhook"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
     _                                        _
  __| | __ ___      ___ __         __ _  __ _| |_ _____      ____ _ _   _
 / _' |/ _' \ \ /\ / / '_ \ _____ / _' |/ _' | __/ _ \ \ /\ / / _' | | | |
| (_| | (_| |\ V  V /| | | |_____| (_| | (_| | ||  __/\ V  V / (_| | |_| |
 \__,_|\__,_| \_/\_/ |_| |_|      \__, |\__,_|\__\___| \_/\_/ \__,_|\__, |
                                  |___/                             |___/
`

const starterConfig = `server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./conversations.db"

relevance:
  region: "${RELEVANCE_REGION}"
  base_url: "https://api-{region}.stack.tryrelevance.com/latest"
  project_id: "${RELEVANCE_PROJECT_ID}"
  api_key: "${RELEVANCE_API_KEY}"
  max_poll_attempts: 120
  poll_delay: "1s"
  request_timeout: "30s"

webhook:
  unknown_message_policy: "reject"

assistant:
  server_url: ""
  model_id: ""
  first_message: "Hey. Hi. Howdy."

logging:
  level: "info"
  format: "text"
`

// getConfigPath returns the path to the gateway config file.
// Priority: DAWN_CONFIG env var > XDG_CONFIG_HOME/dawn/gateway.yaml > ~/.config/dawn/gateway.yaml
func getConfigPath() string {
	if envPath := os.Getenv("DAWN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "gateway.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "dawn", "gateway.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dawn-gateway <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the webhook server")
		fmt.Println("  init     Create a starter config file")
		fmt.Println("  health   Check gateway health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, cleanup := setupLogger(cfg.Logging)
	defer cleanup()
	slog.SetDefault(logger)

	// Startup info
	green := color.New(color.FgGreen)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Relevance: ")
	cyan.Print(cfg.Relevance.Endpoint())
	fmt.Println()
	fmt.Println()

	logger.Info("starting dawn-gateway",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	client := relevance.NewClient(relevance.Config{
		BaseURL:         cfg.Relevance.Endpoint(),
		ProjectID:       cfg.Relevance.ProjectID,
		APIKey:          cfg.Relevance.APIKey,
		RequestTimeout:  cfg.Relevance.RequestTimeout,
		MaxPollAttempts: cfg.Relevance.MaxPollAttempts,
		PollDelay:       cfg.Relevance.PollDelay,
	}, logger)

	srv := webhook.New(cfg, st, client, logger)
	return srv.Run(ctx)
}

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Set RELEVANCE_REGION, RELEVANCE_PROJECT_ID and RELEVANCE_API_KEY, then run: dawn-gateway serve")
	return nil
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// setupLogger builds the process logger: colorized text or JSON on
// stdout, with an optional JSON fanout to a log file.
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, func()) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	cleanup := func() {}
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file, using stdout only", "error", err, "file", cfg.File)
		} else {
			handler = slogmulti.Fanout(handler, slog.NewJSONHandler(file, opts))
			cleanup = func() { file.Close() }
		}
	}

	return slog.New(handler), cleanup
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
