// Package app composes the chat directory and the conversation controller
// and wires the hand-off between them.
package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lawsarthi/sarthi/internal/sarthi"
	"github.com/lawsarthi/sarthi/internal/sarthi/client"
	"github.com/lawsarthi/sarthi/internal/sarthi/controller"
	"github.com/lawsarthi/sarthi/internal/sarthi/directory"
	"github.com/lawsarthi/sarthi/internal/sarthi/notify"
)

// App is the session orchestrator. All conversation and directory state is
// owned here, behind controlled mutation methods; there are no shared
// mutable globals.
type App struct {
	dir      *directory.Directory
	ctrl     *controller.Controller
	notifier notify.Notifier
}

// New creates an orchestrator with an empty directory and a detached new
// chat attached to the controller.
func New(answerClient client.AnswerClient, notifier notify.Notifier) *App {
	return &App{
		dir:      directory.New(),
		ctrl:     controller.New(answerClient),
		notifier: notifier,
	}
}

// Directory exposes the chat directory.
func (a *App) Directory() *directory.Directory {
	return a.dir
}

// Controller exposes the conversation controller.
func (a *App) Controller() *controller.Controller {
	return a.ctrl
}

// NewChat detaches the controller from any directory entry and starts an
// ephemeral conversation. The conversation is materialized into the
// directory on its first send.
func (a *App) NewChat() {
	a.ctrl.Reset()
	a.dir.ClearActive()
	a.notifier.Success("Started new chat")
}

// OpenChat makes the named session active and hands its message log to the
// controller in a single hand-off.
func (a *App) OpenChat(id string) error {
	session, err := a.dir.Select(id)
	if err != nil {
		return err
	}
	a.ctrl.Attach(session)
	log.Debug().Str("session", session.GetShortID()).Msg("opened chat")
	return nil
}

// Send dispatches a question on the active conversation. An ephemeral new
// chat is materialized into the directory first, titled from the question;
// it stays in the directory even if the request then fails, because the user
// turn is never rolled back.
func (a *App) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return sarthi.ErrEmptyInput
	}

	if a.dir.ActiveID() == "" {
		session := a.ctrl.Session()
		session.Title = sarthi.TitleFromQuestion(trimmed)
		if err := a.dir.Insert(session); err != nil {
			return err
		}
		log.Debug().Str("session", session.GetShortID()).Str("title", session.Title).Msg("materialized new chat")
	}

	return a.ctrl.Send(ctx, trimmed)
}

// Retry resubmits the most recent failed question.
func (a *App) Retry(ctx context.Context) error {
	return a.ctrl.RetryLast(ctx)
}

// Pin pins or unpins a session.
func (a *App) Pin(id string, pinned bool) error {
	if err := a.dir.SetPinned(id, pinned); err != nil {
		return err
	}
	if pinned {
		a.notifier.Success("Chat pinned")
	} else {
		a.notifier.Success("Chat unpinned")
	}
	return nil
}

// Archive archives or unarchives a session.
func (a *App) Archive(id string, archived bool) error {
	if err := a.dir.SetArchived(id, archived); err != nil {
		return err
	}
	if archived {
		a.notifier.Success("Chat archived")
	} else {
		a.notifier.Success("Chat unarchived")
	}
	return nil
}

// Rename sets a session's title.
func (a *App) Rename(id string, title string) error {
	if err := a.dir.Rename(id, title); err != nil {
		return err
	}
	a.notifier.Success("Chat renamed")
	return nil
}

// Delete removes a session. Deleting the active session clears the selection
// and resets the controller to a fresh new chat.
func (a *App) Delete(id string) error {
	wasActive, err := a.dir.Remove(id)
	if err != nil {
		return err
	}
	if wasActive {
		a.ctrl.Reset()
	}
	a.notifier.Success("Chat deleted")
	return nil
}

// Share surfaces the share affordance. Link generation is a UI concern; the
// terminal client only acknowledges it.
func (a *App) Share() {
	a.notifier.Success("Share link copied")
}

// CurrentTitle returns the label for the active conversation: the session
// title when one is selected, "New Conversation" once an unsaved chat has
// messages, and "New Chat" otherwise.
func (a *App) CurrentTitle() string {
	if id := a.dir.ActiveID(); id != "" {
		if session, err := a.dir.Get(id); err == nil {
			return session.Title
		}
	}
	if len(a.ctrl.Messages()) > 0 {
		return "New Conversation"
	}
	return "New Chat"
}
