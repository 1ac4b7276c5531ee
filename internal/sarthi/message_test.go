package sarthi

import (
	"testing"
	"time"
)

func TestTitleFromQuestion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "short question",
			input: "What are my rights as a tenant?",
			want:  "What are my rights as a tenant?",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  How to file a consumer complaint?  ",
			want:  "How to file a consumer complaint?",
		},
		{
			name:  "long question truncated",
			input: "Explain the entire process of registering agricultural land in a rural district including stamp duty",
			want:  "Explain the entire process of registering agricu...",
		},
		{
			name:  "blank falls back to placeholder",
			input: "   ",
			want:  "New Conversation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleFromQuestion(tt.input)
			if got != tt.want {
				t.Errorf("TitleFromQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "same day",
			t:    time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			want: "Today",
		},
		{
			name: "previous calendar day",
			t:    time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC),
			want: "Yesterday",
		},
		{
			name: "two days ago",
			t:    time.Date(2025, 6, 13, 1, 0, 0, 0, time.UTC),
			want: "2 days ago",
		},
		{
			name: "a week ago",
			t:    time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC),
			want: "7 days ago",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeDay(tt.t, now)
			if got != tt.want {
				t.Errorf("RelativeDay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionAppendKeepsOrderAndUpdatesActivity(t *testing.T) {
	s := NewConversationSession()
	before := s.LastActivity

	first := s.Append(RoleUser, "first")
	second := s.Append(RoleAssistant, "second")

	if s.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", s.MessageCount())
	}
	if s.Messages[0].ID != first.ID || s.Messages[1].ID != second.ID {
		t.Error("messages are not in append order")
	}
	if first.ID == second.ID {
		t.Error("message ids must be unique")
	}
	if s.LastActivity.Before(before) {
		t.Error("LastActivity was not updated on append")
	}
}

func TestDisplayTitle(t *testing.T) {
	s := NewConversationSession()
	if got := s.DisplayTitle(); got != s.GetShortID() {
		t.Errorf("DisplayTitle() with default title = %q, want short id %q", got, s.GetShortID())
	}

	s.Title = "Property Registration Query"
	if got := s.DisplayTitle(); got != "Property Registration Query" {
		t.Errorf("DisplayTitle() = %q, want the title", got)
	}
}
