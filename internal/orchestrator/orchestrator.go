// Package orchestrator drives the single-flight request/response cycle
// between a conversation and the hosted model. At most one request is in
// flight per conversation; submissions while pending are silently
// dropped rather than queued. There is no retry, no backoff, and no
// orchestrator-level timeout: a hung call keeps the state pending until
// the transport gives up.
package orchestrator

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gemterm/internal/conversation"
)

// FailureText is the fixed user-facing message appended when a request
// fails. The underlying error is logged, never shown.
const FailureText = "Sorry, something went wrong. Please try again."

// State of the request cycle.
type State int

const (
	StateIdle State = iota
	StatePending
)

// String returns the lowercase state label.
func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// Responder is the chat-variant adapter contract: one turn in, one
// textual reply out.
type Responder interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Outcome is the terminal result of an in-flight request.
type Outcome struct {
	Text string
	Err  error
}

// Thunk performs the adapter call for an accepted submission. The TUI
// event loop runs it off the render path and feeds the outcome back via
// Resolve.
type Thunk func(ctx context.Context) Outcome

// Orchestrator owns the chat request state machine.
type Orchestrator struct {
	mu        sync.Mutex
	state     State
	log       *conversation.Log
	responder Responder
	logger    *zap.Logger
}

// New creates an orchestrator over the given log and adapter. A nil
// logger is replaced with a no-op logger.
func New(log *conversation.Log, responder Responder, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{log: log, responder: responder, logger: logger}
}

// State reports the current request state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit starts a request cycle for text. It returns started=false —
// appending nothing — when the trimmed text is empty, a request is
// already pending, or no adapter session is established. On acceptance
// the user message is appended synchronously and the returned thunk
// performs the adapter call.
func (o *Orchestrator) Submit(text string) (Thunk, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle || o.responder == nil {
		return nil, false
	}
	o.state = StatePending
	o.log.AppendNew(trimmed, conversation.SenderUser)

	responder := o.responder
	return func(ctx context.Context) Outcome {
		reply, err := responder.SendMessage(ctx, trimmed)
		return Outcome{Text: reply, Err: err}
	}, true
}

// Resolve completes the pending cycle: on success the reply is appended
// as a bot message, on failure the fixed failure text is. Either way the
// state returns to idle and the appended message is returned.
func (o *Orchestrator) Resolve(out Outcome) conversation.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle
	if out.Err != nil {
		o.logger.Warn("chat request failed", zap.Error(out.Err))
		return o.log.AppendNew(FailureText, conversation.SenderBot)
	}
	return o.log.AppendNew(out.Text, conversation.SenderBot)
}

// Log exposes the conversation backing this orchestrator.
func (o *Orchestrator) Log() *conversation.Log {
	return o.log
}
