package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rorical/RoriTutor/internal/apilog"
	"github.com/Rorical/RoriTutor/internal/chat"
	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/Rorical/RoriTutor/internal/eventbus"
	"github.com/Rorical/RoriTutor/internal/llm"
	"github.com/Rorical/RoriTutor/internal/models"
	"github.com/Rorical/RoriTutor/internal/tools"
	"github.com/sashabaranov/go-openai"
)

const assistantSystemPrompt = "You are RoriTutor, a friendly assistant. " +
	"You have tools available for weather, math, random numbers, knowledge " +
	"search and the current time; use them when they help, and answer " +
	"directly when they do not."

type ChatService struct {
	client        *llm.Client
	config        *config.Config
	state         *ChatState
	eventBus      *eventbus.EventBus
	toolRegistry  *tools.Registry
	orchestrator  *chat.Orchestrator
	ctx           context.Context
	cancel        context.CancelFunc
	lastSentCount int // Track how many messages we've sent to UI
}

// NewChatService creates a ChatService regardless of config validity.
// This ensures we always have a service to manage state.
func NewChatService(cfg *config.Config, eb *eventbus.EventBus) (*ChatService, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Initialize tool registry and register builtin tools
	toolRegistry := tools.NewRegistry()
	if err := tools.RegisterBuiltinTools(toolRegistry); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to register builtin tools: %w", err)
	}

	service := &ChatService{
		config:        cfg,
		state:         NewChatState(assistantSystemPrompt),
		eventBus:      eb,
		toolRegistry:  toolRegistry,
		ctx:           ctx,
		cancel:        cancel,
		lastSentCount: 0,
	}

	// Only wire the backend up when the config can actually reach one
	if cfg.IsValid() {
		logPath, err := config.LogFilePath()
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to locate log file: %w", err)
		}
		logger, err := apilog.New(logPath)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to open request log: %w", err)
		}
		client, err := llm.NewClient(cfg, logger)
		if err != nil {
			cancel()
			return nil, err
		}
		service.client = client
		service.orchestrator = chat.NewOrchestrator(client, toolRegistry)
		// Push every appended message so tool calls show up as they happen
		service.orchestrator.SetObserver(func(openai.ChatCompletionMessage) {
			service.pushStateToUI()
		})
	}

	service.addWelcomeMessages(cfg)

	return service, nil
}

// Start runs the core logic in a goroutine
func (cs *ChatService) Start() {
	// Send initial state to UI immediately
	cs.pushStateToUI()
	go cs.eventLoop()
}

func (cs *ChatService) Stop() {
	cs.cancel()
}

func (cs *ChatService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		cs.processMessage(e.Message)
	}
}

func (cs *ChatService) processMessage(userMessage string) {
	// Atomic update: Set processing and add user message
	cs.state.StartProcessingWithUserMessage(userMessage)
	cs.pushStateToUI()

	if cs.orchestrator == nil {
		cs.state.FinishProcessingWithError(fmt.Errorf("model integration not available"))
		cs.pushStateToUI()
		return
	}

	_, err := cs.orchestrator.RunTurn(cs.ctx, cs.state.Conversation(), chat.DefaultGenerationParams())
	switch {
	case errors.Is(err, chat.ErrIterationLimit):
		// The transcript already holds whatever the model produced;
		// tell the user why it stopped there.
		cs.state.AddProgramMessage("Stopped: " + err.Error())
		cs.state.FinishProcessing()
	case err != nil:
		cs.state.FinishProcessingWithError(err)
	default:
		cs.state.FinishProcessing()
	}
	cs.pushStateToUI()
}

func (cs *ChatService) pushStateToUI() {
	allMessages := cs.state.GetMessages()
	isProcessing := cs.state.IsProcessing()
	lastError := cs.state.GetLastError()

	// Only send new messages to reduce resource usage
	newMessages := allMessages[cs.lastSentCount:]
	cs.lastSentCount = len(allMessages)

	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     newMessages, // Only new messages
		IsProcessing: isProcessing,
		Error:        lastError,
	}); err != nil {
		fmt.Printf("Error sending state to UI: %v\n", err)
	}
}

func (cs *ChatService) IsReady() bool {
	return cs.config.IsValid() && cs.state.IsConversationReady()
}

// GetInitialMessages returns the initial messages for printing to terminal
func (cs *ChatService) GetInitialMessages() []models.Message {
	return cs.state.GetMessages()
}

func (cs *ChatService) addWelcomeMessages(cfg *config.Config) {
	// Welcome header
	cs.state.AddProgramMessage("-- RORITUTOR --")

	// Profile information with status
	if cfg.IsValid() {
		cs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [OK]", cfg.ActiveProfile))
	} else {
		cs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile))
	}
	// Instructions
	if cfg.IsValid() {
		cs.state.AddProgramMessage("Ready to chat! Type your message and press Enter")
		cs.state.AddProgramMessage(fmt.Sprintf("Tools available: %d", cs.toolRegistry.Len()))
	} else {
		cs.state.AddProgramMessage("Configure your profile to start chatting:")
		cs.state.AddProgramMessage("• Run: roritutor profile add <name>")
		cs.state.AddProgramMessage("• Or edit: ~/.roritutor/config.json")
	}

	cs.state.AddProgramMessage("Controls: Ctrl+C or 'q' to exit")
	cs.state.AddProgramMessage("")
}
