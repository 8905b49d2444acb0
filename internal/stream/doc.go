// Package stream re-emits a completed answer as an incremental
// chat-completion token stream.
//
// The upstream platform returns whole answers, but the telephony side
// consumes streaming chat-completion responses. This package bridges the
// two: the final answer is split on whitespace and each token is framed
// as one server-sent event in the chat-completion delta shape, followed
// by the "[DONE]" sentinel.
package stream
