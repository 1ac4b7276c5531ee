// Package sarthi provides the core data types shared by the conversation
// controller and the chat directory.
package sarthi

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // Display-formatted creation time, set once
}

// NewMessage creates a message with a fresh ID and the current clock time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format("3:04 PM"),
	}
}

// RelativeDay renders a timestamp as the sidebar-style activity marker
// ("Today", "Yesterday", "N days ago").
func RelativeDay(t time.Time, now time.Time) string {
	days := daysBetween(t, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func daysBetween(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	start := time.Date(ty, tm, td, 0, 0, 0, 0, t.Location())
	end := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	return int(end.Sub(start).Hours() / 24)
}

// TitleFromQuestion derives a session title from the first question of a
// conversation. Long questions are truncated on a rune boundary.
func TitleFromQuestion(question string) string {
	const maxTitleLen = 48

	title := strings.TrimSpace(question)
	if title == "" {
		return "New Conversation"
	}

	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return strings.TrimSpace(string(runes[:maxTitleLen])) + "..."
}
