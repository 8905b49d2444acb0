// Package config handles configuration loading for dawn-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	relevance:
//	  api_key: "${RELEVANCE_API_KEY}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	relevance:
//	  poll_delay: "1s"
//	  request_timeout: "30s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8000"
//
// Database:
//
//	database:
//	  path: "/var/lib/dawn/conversations.db"
//
// Relevance AI platform (all four identity fields are required; the
// gateway refuses to start without them):
//
//	relevance:
//	  region: "f1db6c"
//	  base_url: "https://api-{region}.stack.tryrelevance.com/latest"
//	  project_id: "${RELEVANCE_PROJECT_ID}"
//	  api_key: "${RELEVANCE_API_KEY}"
//	  max_poll_attempts: 120
//	  poll_delay: "1s"
//	  request_timeout: "30s"
//
// Webhook dispatcher:
//
//	webhook:
//	  unknown_message_policy: "reject"  # reject (400) or ack (200)
//
// Assistant provisioning payload overrides:
//
//	assistant:
//	  server_url: "https://gateway.example.com/"
//	  model_id: "a6fdacc8-cc99-4334-88a8-5d0d85e4be52"
//	  first_message: "Hey. Hi. Howdy."
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//	  file: ""        # optional JSON log file (fanout)
package config
