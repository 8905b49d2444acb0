// Package vapi defines the wire types exchanged with the telephony
// voice-assistant platform: the server-message webhook envelope, the
// chat-completion request shape used by its custom-llm provider, and the
// transient assistant provisioning payload.
package vapi
