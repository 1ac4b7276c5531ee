/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawsarthi/sarthi/internal/sarthi"
	"github.com/lawsarthi/sarthi/internal/sarthi/app"
	"github.com/lawsarthi/sarthi/internal/sarthi/client"
	"github.com/lawsarthi/sarthi/internal/sarthi/config"
	"github.com/lawsarthi/sarthi/internal/sarthi/controller"
	"github.com/lawsarthi/sarthi/internal/sarthi/notify"
	promptpkg "github.com/lawsarthi/sarthi/internal/sarthi/prompt"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the Lawsarthi legal assistant.

Multiple chats can be managed within one run: create new chats, switch
between them, pin, archive, rename, search, and delete them. Chats live for
the duration of the process.

Type '/help' inside the session for the list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		answerClient := client.New(cfg.BaseURL, cfg.RequestTimeout())
		a := app.New(answerClient, notify.NewStderrNotifier())

		if err := runInteractiveMode(cmd, a, cfg); err != nil {
			return fmt.Errorf("interactive mode: %w", err)
		}
		return nil
	},
}

// runInteractiveMode drives the conversation loop.
func runInteractiveMode(cmd *cobra.Command, a *app.App, cfg *config.Config) error {
	fmt.Fprintln(os.Stderr, "\n=== Welcome to Lawsarthi ===")
	fmt.Fprintln(os.Stderr, "Your trusted AI legal assistant for Indian law")
	fmt.Fprintf(os.Stderr, "Signed in as: %s\n", cfg.UserEmail)
	fmt.Fprintln(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit")
	fmt.Fprintln(os.Stderr, "============================")
	printSuggestions()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(os.Stderr, "[%s] You> ", a.CurrentTitle())

		if !scanner.Scan() {
			// EOF (Ctrl+D) or error
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleSlashCommand(input, a) {
				continue
			}
			break
		}

		submit(a, func() error { return a.Send(cmd.Context(), input) })
	}

	return nil
}

// submit runs a send or retry and waits for the pending request to resolve.
func submit(a *app.App, dispatch func() error) {
	ctrl := a.Controller()

	if err := dispatch(); err != nil {
		switch err {
		case sarthi.ErrEmptyInput:
			// Silently rejected; nothing was appended.
		case sarthi.ErrBusy:
			fmt.Fprintln(os.Stderr, "A request is still pending, please wait.")
		case sarthi.ErrNothingToRetry:
			fmt.Fprintln(os.Stderr, "There is no failed question to retry.")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	// Start spinner
	done := make(chan bool)
	go showSpinner(done)

	<-ctrl.Updates()

	// Stop spinner
	done <- true
	close(done)

	if ctrl.Status() == controller.StatusError {
		fmt.Fprintln(os.Stderr, "Sorry, I couldn't find an answer.")
		fmt.Fprintln(os.Stderr, "This might be due to a network issue or the question may need to be rephrased.")
		fmt.Fprintln(os.Stderr, "Use '/retry' to try again.")
		return
	}

	messages := ctrl.Messages()
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if last.Role == sarthi.RoleAssistant {
			fmt.Printf("\nLawsarthi> %s\n\n", last.Content)
		}
	}
}

// showSpinner displays a spinner animation while waiting for response
func showSpinner(done chan bool) {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	for {
		select {
		case <-done:
			// Clear the spinner line
			fmt.Fprint(os.Stderr, "\r\033[K")
			return
		default:
			fmt.Fprintf(os.Stderr, "\r%s Waiting for answer...", spinners[i])
			i = (i + 1) % len(spinners)
			time.Sleep(80 * time.Millisecond)
		}
	}
}

// handleSlashCommand processes slash commands in interactive mode.
// Returns true to continue the loop, false to exit.
func handleSlashCommand(input string, a *app.App) bool {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "/help", "/h":
		printHelp()
	case "/new", "/n":
		a.NewChat()
		printSuggestions()
	case "/chats", "/list", "/l":
		query := strings.Join(args, " ")
		printChats(a, query)
	case "/open", "/o":
		withSession(a, args, func(id string) error { return a.OpenChat(id) })
	case "/pin":
		withSession(a, args, func(id string) error { return a.Pin(id, true) })
	case "/unpin":
		withSession(a, args, func(id string) error { return a.Pin(id, false) })
	case "/archive":
		withSession(a, args, func(id string) error { return a.Archive(id, true) })
	case "/unarchive":
		withSession(a, args, func(id string) error { return a.Archive(id, false) })
	case "/rename":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: /rename <id> <new title>")
			return true
		}
		title := strings.Join(args[1:], " ")
		withSession(a, args[:1], func(id string) error { return a.Rename(id, title) })
	case "/delete", "/d":
		withSession(a, args, func(id string) error { return a.Delete(id) })
	case "/retry", "/r":
		retryApp(a)
	case "/copy":
		copyLastAnswer(a)
	case "/share":
		a.Share()
	case "/voice":
		transcribeVoice()
	case "/exit", "/quit", "/q":
		fmt.Fprintln(os.Stderr, "Goodbye!")
		return false
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s (try /help)\n", command)
	}
	return true
}

func retryApp(a *app.App) {
	submit(a, func() error { return a.Retry(context.Background()) })
}

// withSession resolves a session id prefix and applies the operation.
func withSession(a *app.App, args []string, fn func(id string) error) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: expects a session id (prefix is enough)")
		return
	}
	id, err := resolveSessionID(a, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if err := fn(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// resolveSessionID matches a full id or a unique id prefix.
func resolveSessionID(a *app.App, prefix string) (string, error) {
	var matches []*sarthi.ConversationSession
	for _, session := range allSessions(a) {
		if session.ID == prefix {
			return session.ID, nil
		}
		if strings.HasPrefix(session.ID, prefix) {
			matches = append(matches, session)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", sarthi.ErrNotFound, prefix)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("ambiguous session id %q, use a longer prefix", prefix)
	}
}

func allSessions(a *app.App) []*sarthi.ConversationSession {
	buckets := a.Directory().Filter("")
	var all []*sarthi.ConversationSession
	all = append(all, buckets.Pinned...)
	all = append(all, buckets.Regular...)
	all = append(all, buckets.Archived...)
	return all
}

// printChats lists the directory partitioned like the sidebar.
func printChats(a *app.App, query string) {
	buckets := a.Directory().Filter(query)

	if len(buckets.Pinned)+len(buckets.Regular)+len(buckets.Archived) == 0 {
		fmt.Fprintln(os.Stderr, "No chats found")
		return
	}

	w := tabwriter.NewWriter(os.Stderr, 0, 0, 2, ' ', 0)
	activeID := a.Directory().ActiveID()

	printBucket := func(label string, sessions []*sarthi.ConversationSession) {
		if len(sessions) == 0 {
			return
		}
		fmt.Fprintf(w, "%s\t\t\t\n", label)
		for _, session := range sessions {
			marker := " "
			if session.ID == activeID {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%d messages\n",
				marker,
				session.GetShortID(),
				session.Title,
				session.DisplayActivity(),
				session.MessageCount(),
			)
		}
	}

	printBucket("PINNED", buckets.Pinned)
	printBucket("RECENT", buckets.Regular)
	printBucket("ARCHIVED", buckets.Archived)
	w.Flush()
}

func copyLastAnswer(a *app.App) {
	messages := a.Controller().Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == sarthi.RoleAssistant {
			clipboard, err := notify.SystemClipboard()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if err := clipboard.Copy(messages[i].Content); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			fmt.Fprintln(os.Stderr, "✓ Copied to clipboard")
			return
		}
	}
	fmt.Fprintln(os.Stderr, "No answer to copy yet.")
}

func transcribeVoice() {
	var transcriber notify.Transcriber = notify.UnsupportedTranscriber{}
	text, err := transcriber.Transcribe(context.Background())
	if err != nil {
		// Advisory only; voice failures are not core errors.
		fmt.Fprintf(os.Stderr, "Voice input unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Transcribed: %s\n", text)
}

func printSuggestions() {
	fmt.Fprintln(os.Stderr, "\nYou can ask things like:")
	for _, suggestion := range promptpkg.Suggestions() {
		fmt.Fprintf(os.Stderr, "  - %s\n", suggestion)
	}
	fmt.Fprintln(os.Stderr)
}

func printHelp() {
	fmt.Fprintln(os.Stderr, "\nAvailable commands:")
	fmt.Fprintln(os.Stderr, "  /help, /h          - Show this help message")
	fmt.Fprintln(os.Stderr, "  /new, /n           - Start a new chat")
	fmt.Fprintln(os.Stderr, "  /chats [query]     - List chats, optionally filtered by title")
	fmt.Fprintln(os.Stderr, "  /open <id>         - Switch to a chat")
	fmt.Fprintln(os.Stderr, "  /pin <id>          - Pin a chat")
	fmt.Fprintln(os.Stderr, "  /unpin <id>        - Unpin a chat")
	fmt.Fprintln(os.Stderr, "  /archive <id>      - Archive a chat")
	fmt.Fprintln(os.Stderr, "  /unarchive <id>    - Unarchive a chat")
	fmt.Fprintln(os.Stderr, "  /rename <id> <t>   - Rename a chat")
	fmt.Fprintln(os.Stderr, "  /delete, /d <id>   - Delete a chat")
	fmt.Fprintln(os.Stderr, "  /retry, /r         - Retry the last failed question")
	fmt.Fprintln(os.Stderr, "  /copy              - Copy the last answer to the clipboard")
	fmt.Fprintln(os.Stderr, "  /share             - Share the current chat")
	fmt.Fprintln(os.Stderr, "  /voice             - Dictate a question (where supported)")
	fmt.Fprintln(os.Stderr, "  /exit, /quit       - Exit")
	fmt.Fprintln(os.Stderr, "  Ctrl+D             - Exit")
	fmt.Fprintln(os.Stderr)
}

func init() {
	rootCmd.AddCommand(startCmd)
}
