// Package prompt loads reusable question templates from TOML files.
package prompt

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Prompt represents the structure of a TOML question template file
type Prompt struct {
	Description string `toml:"description,omitempty"`
	Question    string `toml:"question"`
}

// LoadPrompt loads a template file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %v", err)
	}
	if prompt.Question == "" {
		return nil, fmt.Errorf("prompt file '%s' has no question template", filePath)
	}
	return &prompt, nil
}

// starter questions shown on an empty new chat, from the welcome screen.
var suggestions = []string{
	"What are my rights as a tenant?",
	"How to file a consumer complaint?",
	"Explain RTI Act in simple terms",
	"What is the process for property registration?",
}

// Suggestions returns the starter questions for a new conversation.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}
