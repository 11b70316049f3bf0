// Package demo contains the guided tutorial walkthroughs: completions,
// chat, tool calling, connection checks and the API log viewer. Each
// walkthrough prints what it sends and what comes back, and every API
// call lands in the request log for later inspection.
package demo

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriTutor/internal/apilog"
	"github.com/Rorical/RoriTutor/internal/chat"
	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/Rorical/RoriTutor/internal/llm"
	"github.com/Rorical/RoriTutor/internal/tools"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	subheaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	toolCallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	toolResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	usageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Session wires one backend client, the builtin tool registry and the
// request log together for the tutorial walkthroughs.
type Session struct {
	cfg      *config.Config
	client   *llm.Client
	registry *tools.Registry
	orch     *chat.Orchestrator
	logger   *apilog.Logger
	in       *bufio.Reader
}

func NewSession(cfg *config.Config) (*Session, error) {
	logPath, err := config.LogFilePath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate log file: %w", err)
	}
	logger, err := apilog.New(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open request log: %w", err)
	}

	client, err := llm.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry()
	if err := tools.RegisterBuiltinTools(registry); err != nil {
		return nil, err
	}

	orch := chat.NewOrchestrator(client, registry)
	orch.SetObserver(printTurnProgress)

	return &Session{
		cfg:      cfg,
		client:   client,
		registry: registry,
		orch:     orch,
		logger:   logger,
		in:       bufio.NewReader(os.Stdin),
	}, nil
}

// printTurnProgress shows each message the tool-calling loop appends,
// so the intermediate round trips are visible while a turn runs.
func printTurnProgress(msg openai.ChatCompletionMessage) {
	switch msg.Role {
	case openai.ChatMessageRoleAssistant:
		for _, call := range msg.ToolCalls {
			fmt.Println(toolCallStyle.Render(
				fmt.Sprintf("  [tool call] %s(%s)", call.Function.Name, call.Function.Arguments)))
		}
	case openai.ChatMessageRoleTool:
		fmt.Println(toolResultStyle.Render("  [tool result] " + firstLine(msg.Content)))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func printDivider(title string, width int) {
	if title == "" {
		fmt.Println(strings.Repeat("=", width))
		return
	}
	padded := " " + title + " "
	side := (width - len(padded)) / 2
	if side < 0 {
		side = 0
	}
	line := strings.Repeat("=", side) + padded + strings.Repeat("=", width-side-len(padded))
	fmt.Println(headerStyle.Render(line))
}

func printSection(title string) {
	fmt.Println()
	fmt.Println(subheaderStyle.Render(title))
	fmt.Println(subheaderStyle.Render(strings.Repeat("-", len(title))))
}

func printError(err error) {
	fmt.Println(errorStyle.Render("Error: " + err.Error()))
	if hint := llm.Guidance(err); hint != "" {
		fmt.Println(errorStyle.Render("Hint: " + hint))
	}
}

func printUsage(usage openai.Usage) {
	fmt.Println(usageStyle.Render(fmt.Sprintf(
		"Token usage: prompt=%d completion=%d total=%d",
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)))
}

// readLine prompts and returns one trimmed line of input.
func (s *Session) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// askYesNo keeps asking until it gets a y/n answer.
func (s *Session) askYesNo(prompt string) bool {
	for {
		switch strings.ToLower(s.readLine(prompt + " (y/n): ")) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Println("Please enter 'y' or 'n'")
		}
	}
}
