package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawsarthi/sarthi/internal/sarthi"
)

// stubClient is a controllable AnswerClient. When block is set, Ask waits
// for it before resolving, which lets tests observe the pending state.
type stubClient struct {
	mu     sync.Mutex
	calls  []string
	answer string
	err    error
	block  chan struct{}
}

func (s *stubClient) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, question)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer, s.err
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubClient) resolve(answer string, err error) {
	s.mu.Lock()
	s.answer = answer
	s.err = err
	s.mu.Unlock()
}

func waitForUpdate(t *testing.T, c *Controller) {
	t.Helper()
	select {
	case <-c.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the backend call to resolve")
	}
}

func TestSendAppendsUserMessageAndGoesPending(t *testing.T) {
	client := &stubClient{block: make(chan struct{})}
	c := New(client)

	err := c.Send(context.Background(), "  How do I register property?  ")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, c.Status())
	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, "How do I register property?", messages[0].Content)

	client.resolve("answer", nil)
	close(client.block)
	waitForUpdate(t, c)
}

func TestSendBlankInputIsNoOp(t *testing.T) {
	client := &stubClient{}
	c := New(client)

	for _, text := range []string{"", "   ", "\n\t"} {
		err := c.Send(context.Background(), text)
		assert.ErrorIs(t, err, sarthi.ErrEmptyInput)
	}

	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, c.Messages())
	assert.Zero(t, client.callCount())
}

func TestSendWhilePendingIsRejected(t *testing.T) {
	client := &stubClient{block: make(chan struct{})}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "first question"))
	err := c.Send(context.Background(), "second question")
	assert.ErrorIs(t, err, sarthi.ErrBusy)

	assert.Len(t, c.Messages(), 1)
	assert.Equal(t, 1, client.callCount())

	client.resolve("answer", nil)
	close(client.block)
	waitForUpdate(t, c)
}

func TestSendSuccessAppendsAssistantMessage(t *testing.T) {
	client := &stubClient{answer: "Property registration requires a sale deed..."}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "How do I register property?"))
	waitForUpdate(t, c)

	assert.Equal(t, StatusIdle, c.Status())
	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, sarthi.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Property registration requires a sale deed...", messages[1].Content)
}

func TestSendFailureSetsErrorAndKeepsUserMessage(t *testing.T) {
	client := &stubClient{err: assert.AnError}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "What are my rights as a tenant?"))
	waitForUpdate(t, c)

	assert.Equal(t, StatusError, c.Status())
	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, "What are my rights as a tenant?", messages[0].Content)
	assert.Equal(t, "What are my rights as a tenant?", c.lastUserContent)
}

func TestRetryLastDoesNotDuplicateUserMessage(t *testing.T) {
	client := &stubClient{err: assert.AnError}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "How to file a consumer complaint?"))
	waitForUpdate(t, c)
	require.Equal(t, StatusError, c.Status())

	client.resolve("File a complaint with the district forum...", nil)
	require.NoError(t, c.RetryLast(context.Background()))
	waitForUpdate(t, c)

	assert.Equal(t, StatusIdle, c.Status())
	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, sarthi.RoleAssistant, messages[1].Role)

	// Both calls carried the same question.
	require.Equal(t, 2, client.callCount())
	assert.Equal(t, client.calls[0], client.calls[1])
}

func TestRetryLastOutsideErrorStateIsNoOp(t *testing.T) {
	client := &stubClient{answer: "answer"}
	c := New(client)

	err := c.RetryLast(context.Background())
	assert.ErrorIs(t, err, sarthi.ErrNothingToRetry)

	require.NoError(t, c.Send(context.Background(), "question"))
	waitForUpdate(t, c)
	require.Equal(t, StatusIdle, c.Status())

	err = c.RetryLast(context.Background())
	assert.ErrorIs(t, err, sarthi.ErrNothingToRetry)
	assert.Equal(t, 1, client.callCount())
}

func TestResetClearsConversation(t *testing.T) {
	client := &stubClient{answer: "answer"}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "question"))
	waitForUpdate(t, c)
	require.NotEmpty(t, c.Messages())

	old := c.Session()
	c.Reset()

	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, c.Messages())
	assert.Empty(t, c.lastUserContent)
	assert.NotEqual(t, old.ID, c.Session().ID)
}

func TestAttachSwapsLogAndResetsStatus(t *testing.T) {
	client := &stubClient{err: assert.AnError}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "question"))
	waitForUpdate(t, c)
	require.Equal(t, StatusError, c.Status())

	other := sarthi.NewConversationSession()
	other.Append(sarthi.RoleUser, "older question")
	c.Attach(other)

	assert.Equal(t, StatusIdle, c.Status())
	assert.Same(t, other, c.Session())
	require.Len(t, c.Messages(), 1)
	assert.Equal(t, "older question", c.Messages()[0].Content)
}

func TestStaleResultIsDroppedAfterHandOff(t *testing.T) {
	client := &stubClient{block: make(chan struct{})}
	c := New(client)

	require.NoError(t, c.Send(context.Background(), "question for the first chat"))
	first := c.Session()

	// Switch conversations while the request is still in flight.
	second := sarthi.NewConversationSession()
	c.Attach(second)

	client.resolve("late answer", nil)
	close(client.block)

	// The late result must not land in either conversation.
	assert.Never(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(second.Messages) > 0 || len(first.Messages) != 1
	}, 200*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, StatusIdle, c.Status())
}
