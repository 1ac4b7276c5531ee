package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawsarthi/sarthi/internal/sarthi"
	"github.com/lawsarthi/sarthi/internal/sarthi/controller"
	"github.com/lawsarthi/sarthi/internal/sarthi/notify"
)

type fakeClient struct {
	mu     sync.Mutex
	answer string
	err    error
}

func (f *fakeClient) Ask(ctx context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answer, f.err
}

func (f *fakeClient) resolve(answer string, err error) {
	f.mu.Lock()
	f.answer = answer
	f.err = err
	f.mu.Unlock()
}

func waitForUpdate(t *testing.T, a *App) {
	t.Helper()
	select {
	case <-a.Controller().Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the backend call to resolve")
	}
}

func TestSendMaterializesNewChatAndCompletesTurn(t *testing.T) {
	client := &fakeClient{answer: "Property registration requires a sale deed..."}
	a := New(client, notify.Discard)

	require.Empty(t, a.Directory().ActiveID())
	require.NoError(t, a.Send(context.Background(), "How do I register property?"))

	// The ephemeral chat is in the directory before the answer arrives.
	assert.Equal(t, 1, a.Directory().Len())
	activeID := a.Directory().ActiveID()
	require.NotEmpty(t, activeID)

	session, err := a.Directory().Get(activeID)
	require.NoError(t, err)
	assert.Equal(t, "How do I register property?", session.Title)
	assert.Same(t, a.Controller().Session(), session)

	waitForUpdate(t, a)

	assert.Equal(t, controller.StatusIdle, a.Controller().Status())
	messages := a.Controller().Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, sarthi.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Property registration requires a sale deed...", messages[1].Content)
}

func TestSendEmptyDoesNotMaterialize(t *testing.T) {
	a := New(&fakeClient{}, notify.Discard)

	err := a.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, sarthi.ErrEmptyInput)
	assert.Zero(t, a.Directory().Len())
}

func TestFailedTurnStaysInDirectoryAndRetries(t *testing.T) {
	client := &fakeClient{err: assert.AnError}
	a := New(client, notify.Discard)

	require.NoError(t, a.Send(context.Background(), "What are my rights as a tenant?"))
	waitForUpdate(t, a)

	require.Equal(t, controller.StatusError, a.Controller().Status())
	assert.Equal(t, 1, a.Directory().Len())

	client.resolve("As a tenant you are entitled to...", nil)
	require.NoError(t, a.Retry(context.Background()))
	waitForUpdate(t, a)

	assert.Equal(t, controller.StatusIdle, a.Controller().Status())
	messages := a.Controller().Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, sarthi.RoleUser, messages[0].Role)
	assert.Equal(t, sarthi.RoleAssistant, messages[1].Role)
}

func TestOpenChatHandsLogToController(t *testing.T) {
	client := &fakeClient{answer: "answer"}
	a := New(client, notify.Discard)

	require.NoError(t, a.Send(context.Background(), "first chat question"))
	waitForUpdate(t, a)
	firstID := a.Directory().ActiveID()

	a.NewChat()
	require.Empty(t, a.Directory().ActiveID())
	require.Empty(t, a.Controller().Messages())

	require.NoError(t, a.OpenChat(firstID))
	assert.Equal(t, firstID, a.Directory().ActiveID())
	assert.Len(t, a.Controller().Messages(), 2)
	assert.Equal(t, controller.StatusIdle, a.Controller().Status())

	err := a.OpenChat("unknown-id")
	assert.ErrorIs(t, err, sarthi.ErrNotFound)
}

func TestDeleteActiveChatResetsController(t *testing.T) {
	client := &fakeClient{answer: "answer"}
	a := New(client, notify.Discard)

	require.NoError(t, a.Send(context.Background(), "question"))
	waitForUpdate(t, a)
	activeID := a.Directory().ActiveID()

	require.NoError(t, a.Delete(activeID))

	assert.Empty(t, a.Directory().ActiveID())
	assert.Zero(t, a.Directory().Len())
	assert.Equal(t, controller.StatusIdle, a.Controller().Status())
	assert.Empty(t, a.Controller().Messages())
}

func TestPinArchiveRename(t *testing.T) {
	client := &fakeClient{answer: "answer"}
	a := New(client, notify.Discard)

	require.NoError(t, a.Send(context.Background(), "question"))
	waitForUpdate(t, a)
	id := a.Directory().ActiveID()

	require.NoError(t, a.Pin(id, true))
	require.NoError(t, a.Archive(id, true))
	require.NoError(t, a.Rename(id, "Tenant Rights"))

	session, err := a.Directory().Get(id)
	require.NoError(t, err)
	assert.True(t, session.Pinned)
	assert.True(t, session.Archived)
	assert.Equal(t, "Tenant Rights", session.Title)

	assert.ErrorIs(t, a.Pin("nope", true), sarthi.ErrNotFound)
	assert.ErrorIs(t, a.Archive("nope", true), sarthi.ErrNotFound)
	assert.ErrorIs(t, a.Delete("nope"), sarthi.ErrNotFound)
}

func TestCurrentTitle(t *testing.T) {
	client := &fakeClient{answer: "answer"}
	a := New(client, notify.Discard)

	assert.Equal(t, "New Chat", a.CurrentTitle())

	require.NoError(t, a.Send(context.Background(), "How to file a consumer complaint?"))
	waitForUpdate(t, a)
	assert.Equal(t, "How to file a consumer complaint?", a.CurrentTitle())

	a.NewChat()
	assert.Equal(t, "New Chat", a.CurrentTitle())
}
