// Package controller implements the request lifecycle of a single
// conversation: compose, send, pending, success or error, retry.
package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lawsarthi/sarthi/internal/sarthi"
	"github.com/lawsarthi/sarthi/internal/sarthi/client"
)

// Status is the request-lifecycle state of the active conversation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusError   Status = "error"
)

// Controller owns the active conversation's message log and its request
// status. It mutates the session object handed to it directly; the directory
// entry and the controller share the same log, there is no copy.
//
// At most one backend call is outstanding at a time: Send while pending is
// rejected, which also guarantees responses apply in call order.
type Controller struct {
	mu     sync.Mutex
	client client.AnswerClient

	session         *sarthi.ConversationSession
	status          Status
	lastUserContent string

	// epoch tags each in-flight call with the conversation it was issued
	// against. Reset and Attach bump it, so a completion for a conversation
	// that is no longer attached is dropped instead of applied.
	epoch uint64

	updates chan struct{}
}

// New creates a controller with an empty ephemeral conversation attached.
func New(c client.AnswerClient) *Controller {
	return &Controller{
		client:  c,
		session: sarthi.NewConversationSession(),
		status:  StatusIdle,
		updates: make(chan struct{}, 1),
	}
}

// Status returns the current request status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Session returns the attached conversation session.
func (c *Controller) Session() *sarthi.ConversationSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Messages returns a snapshot of the attached conversation's message log.
func (c *Controller) Messages() []sarthi.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]sarthi.Message, len(c.session.Messages))
	copy(msgs, c.session.Messages)
	return msgs
}

// Updates signals after each completed backend call. The channel is buffered
// and coalescing; callers that need to wait for a pending request should
// receive from it and then re-check Status.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Send appends a user message and starts the backend call. Blank text is
// rejected with ErrEmptyInput and an outstanding call with ErrBusy; neither
// changes any state. The user message is never rolled back on failure.
func (c *Controller) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return sarthi.ErrEmptyInput
	}

	c.mu.Lock()
	if c.status == StatusPending {
		c.mu.Unlock()
		return sarthi.ErrBusy
	}
	c.session.Append(sarthi.RoleUser, trimmed)
	c.lastUserContent = trimmed
	c.status = StatusPending
	epoch := c.epoch
	c.mu.Unlock()

	go c.ask(ctx, epoch, trimmed)
	return nil
}

// RetryLast resubmits the most recent failed question. Only the backend call
// is re-run; the user message from the failed turn stays in place and no
// duplicate is appended. Returns ErrNothingToRetry unless the controller is
// in the error state with a cached question.
func (c *Controller) RetryLast(ctx context.Context) error {
	c.mu.Lock()
	if c.status != StatusError || c.lastUserContent == "" {
		c.mu.Unlock()
		return sarthi.ErrNothingToRetry
	}
	c.status = StatusPending
	question := c.lastUserContent
	epoch := c.epoch
	c.mu.Unlock()

	go c.ask(ctx, epoch, question)
	return nil
}

// Reset detaches the current conversation and attaches a fresh empty one.
// Used for "new chat". A still-pending call for the old conversation will be
// dropped when it completes.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = sarthi.NewConversationSession()
	c.status = StatusIdle
	c.lastUserContent = ""
	c.epoch++
}

// Attach hands a session's message log to the controller, replacing the
// current one, and resets the status to idle. The hand-off is atomic: log
// swap, status reset, and epoch bump happen under one lock.
func (c *Controller) Attach(session *sarthi.ConversationSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
	c.status = StatusIdle
	c.lastUserContent = ""
	c.epoch++
}

func (c *Controller) ask(ctx context.Context, epoch uint64, question string) {
	answer, err := c.client.Ask(ctx, question)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		log.Debug().Msg("dropping backend result for a conversation that is no longer attached")
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("backend request failed")
		c.status = StatusError
	} else {
		c.session.Append(sarthi.RoleAssistant, answer)
		c.status = StatusIdle
	}
	c.mu.Unlock()

	c.signal()
}

func (c *Controller) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
