package sarthi

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is the placeholder title for a session that has not been
// named yet.
const DefaultTitle = "New Chat"

// ConversationSession represents one conversation thread: an ordered message
// log plus the directory metadata (title, pinned, archived).
type ConversationSession struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Pinned       bool      `json:"pinned"`
	Archived     bool      `json:"archived"`
	LastActivity time.Time `json:"last_activity"` // Updated on every append
	Messages     []Message `json:"messages"`
}

// NewConversationSession creates an empty session with a default title.
func NewConversationSession() *ConversationSession {
	return &ConversationSession{
		ID:           uuid.New().String(),
		Title:        DefaultTitle,
		LastActivity: time.Now(),
		Messages:     []Message{},
	}
}

// Append adds a new message to the session log and returns it.
// Messages are only ever appended; the log is never reordered or edited.
func (s *ConversationSession) Append(role Role, content string) Message {
	msg := NewMessage(role, content)
	s.Messages = append(s.Messages, msg)
	s.LastActivity = time.Now()
	return msg
}

// MessageCount returns the number of messages in the session.
func (s *ConversationSession) MessageCount() int {
	return len(s.Messages)
}

// GetShortID returns the shortened session ID (first 8 characters).
func (s *ConversationSession) GetShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// DisplayTitle returns the title, falling back to the short ID when the
// session still carries the default placeholder.
func (s *ConversationSession) DisplayTitle() string {
	if s.Title != "" && s.Title != DefaultTitle {
		return s.Title
	}
	return s.GetShortID()
}

// DisplayActivity returns the humanized last-activity marker shown next to
// the session in listings.
func (s *ConversationSession) DisplayActivity() string {
	return RelativeDay(s.LastActivity, time.Now())
}
