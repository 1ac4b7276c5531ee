/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawsarthi/sarthi/internal/sarthi/client"
	"github.com/lawsarthi/sarthi/internal/sarthi/config"
	promptpkg "github.com/lawsarthi/sarthi/internal/sarthi/prompt"
)

var (
	promptName string
	argFlags   []string
	useEditor  bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the legal assistant a single question",
	Long: `Ask the Lawsarthi backend a single question and print the answer.
This command performs a one-time exchange with the backend.

For multi-turn conversations with chat management, use 'sarthi start' instead.

If no question is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the question.

A question template can be applied with --prompt. Template files are TOML:
question = "Question text with optional {{input}} placeholder"
description = "optional description"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Get question from arguments, editor, or stdin
		var question string
		if useEditor {
			question, err = getQuestionFromEditor()
			if err != nil {
				return fmt.Errorf("getting question from editor: %w", err)
			}
		} else if len(args) > 0 {
			question = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			question = strings.TrimSpace(string(input))
		}

		if strings.TrimSpace(question) == "" {
			return fmt.Errorf("question is empty")
		}

		// Apply question template if specified
		formatted, err := promptpkg.FormatQuestion(question, promptName, cfg.PromptDirs, argFlags)
		if err != nil {
			return fmt.Errorf("formatting question: %w", err)
		}

		answerClient := client.New(cfg.BaseURL, cfg.RequestTimeout())
		answer, err := answerClient.Ask(cmd.Context(), formatted)
		if err != nil {
			return fmt.Errorf("asking backend: %w", err)
		}

		fmt.Println(answer)
		return nil
	},
}

// getQuestionFromEditor opens the default editor and returns the edited question
func getQuestionFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "sarthi-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	// Open the editor
	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %v", err)
	}

	// Read the edited content
	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %v", err)
	}

	return strings.TrimSpace(string(content)), nil
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&promptName, "prompt", "p", "", "Name of the question template (without .toml extension)")
	askCmd.Flags().StringArrayVar(&argFlags, "arg", []string{}, "Key-value pairs for the question template (format: key:value)")
	askCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose the question")
}
