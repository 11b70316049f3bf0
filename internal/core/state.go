package core

import (
	"sync"

	"github.com/Rorical/RoriTutor/internal/chat"
	"github.com/Rorical/RoriTutor/internal/models"
	"github.com/sashabaranov/go-openai"
)

// programEntry anchors a program message to the transcript position
// it was added at, so GetMessages can keep chronological order.
type programEntry struct {
	message models.Message
	after   int // transcript length when the message was added
}

// ChatState manages the conversation state for event-driven architecture
type ChatState struct {
	mu                sync.RWMutex
	conversation      *chat.Conversation // Single source of truth for the transcript
	programMessages   []programEntry     // Program messages (welcome, status, etc.)
	isProcessing      bool
	lastError         error
	conversationReady bool
}

func NewChatState(systemPrompt string) *ChatState {
	conv := chat.NewConversation()
	if systemPrompt != "" {
		conv = chat.NewConversationWithSystem(systemPrompt)
	}
	return &ChatState{
		conversation:      conv,
		programMessages:   make([]programEntry, 0),
		isProcessing:      false,
		lastError:         nil,
		conversationReady: true,
	}
}

// Conversation exposes the transcript for the orchestrator. Only the
// core goroutine may mutate it; everyone else goes through GetMessages.
func (cs *ChatState) Conversation() *chat.Conversation {
	return cs.conversation
}

func (cs *ChatState) GetMessages() []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var result []models.Message

	// Interleave program messages with the transcript in the order
	// everything was added. A program message anchored at transcript
	// length n comes before the n-th transcript message, so a notice
	// added after a turn ends up after that turn's messages — the
	// incremental push to the UI depends on this list only ever
	// growing at the tail.
	history := cs.conversation.Messages()
	pi := 0
	for i, msg := range history {
		for pi < len(cs.programMessages) && cs.programMessages[pi].after <= i {
			result = append(result, cs.programMessages[pi].message)
			pi++
		}
		result = appendTranscriptMessage(result, history, msg)
	}
	for pi < len(cs.programMessages) {
		result = append(result, cs.programMessages[pi].message)
		pi++
	}

	return result
}

func appendTranscriptMessage(result []models.Message, history []openai.ChatCompletionMessage, msg openai.ChatCompletionMessage) []models.Message {
	switch msg.Role {
	case openai.ChatMessageRoleUser:
		result = append(result, models.Message{
			Content: msg.Content,
			Type:    models.User,
		})
	case openai.ChatMessageRoleAssistant:
		if msg.Content != "" {
			result = append(result, models.Message{
				Content: msg.Content,
				Type:    models.Assistant,
			})
		}
		for _, toolCall := range msg.ToolCalls {
			result = append(result, models.Message{
				Content:    toolCall.Function.Arguments,
				Type:       models.ToolCall,
				ToolCallID: toolCall.ID,
				ToolName:   toolCall.Function.Name,
				ToolArgs:   toolCall.Function.Arguments,
			})
		}
	case openai.ChatMessageRoleTool:
		result = append(result, models.Message{
			Content:    msg.Content,
			Type:       models.ToolResult,
			ToolCallID: msg.ToolCallID,
			ToolName:   toolNameForCall(history, msg.ToolCallID),
		})
	}

	return result
}

// toolNameForCall finds the tool name for a given tool call ID
func toolNameForCall(history []openai.ChatCompletionMessage, toolCallID string) string {
	for _, msg := range history {
		if msg.Role == openai.ChatMessageRoleAssistant {
			for _, toolCall := range msg.ToolCalls {
				if toolCall.ID == toolCallID {
					return toolCall.Function.Name
				}
			}
		}
	}
	return "unknown"
}

func (cs *ChatState) IsProcessing() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.isProcessing
}

func (cs *ChatState) GetLastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastError
}

func (cs *ChatState) IsConversationReady() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.conversationReady
}

// AddProgramMessage adds a program message (system notifications)
func (cs *ChatState) AddProgramMessage(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.programMessages = append(cs.programMessages, programEntry{
		message: models.Message{
			Content: content,
			Type:    models.Program,
		},
		after: cs.conversation.Len(),
	})
}

// Atomic operations for event ordering
func (cs *ChatState) StartProcessingWithUserMessage(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	// Atomic: set processing and add user message
	cs.isProcessing = true
	cs.lastError = nil
	cs.conversation.AddUserMessage(content)
}

func (cs *ChatState) FinishProcessingWithError(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = false
	cs.lastError = err
}

func (cs *ChatState) FinishProcessing() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = false
	cs.lastError = nil
}
