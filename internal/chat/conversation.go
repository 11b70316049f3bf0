// Package chat holds the conversation transcript and the tool-calling
// loop that drives a turn against the model.
package chat

import (
	"github.com/sashabaranov/go-openai"
)

// Conversation is the ordered transcript exchanged with the model.
// It only ever grows during a turn; Reset is the single way to shrink
// it. A Conversation is not safe for concurrent use — one session,
// one goroutine.
type Conversation struct {
	systemPrompt string
	messages     []openai.ChatCompletionMessage
}

// NewConversation creates an empty transcript.
func NewConversation() *Conversation {
	return &Conversation{}
}

// NewConversationWithSystem creates a transcript seeded with a system
// message.
func NewConversationWithSystem(prompt string) *Conversation {
	c := &Conversation{systemPrompt: prompt}
	c.messages = append(c.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt,
	})
	return c
}

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(msg openai.ChatCompletionMessage) {
	c.messages = append(c.messages, msg)
}

// AddUserMessage appends a user message with the given content.
func (c *Conversation) AddUserMessage(content string) {
	c.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
}

// Messages returns a copy of the transcript, so callers cannot
// mutate history behind the Conversation's back.
func (c *Conversation) Messages() []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, if any.
func (c *Conversation) Last() (openai.ChatCompletionMessage, bool) {
	if len(c.messages) == 0 {
		return openai.ChatCompletionMessage{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Reset discards the history. A transcript that was seeded with a
// system message keeps it.
func (c *Conversation) Reset() {
	c.messages = nil
	if c.systemPrompt != "" {
		c.messages = append(c.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.systemPrompt,
		})
	}
}
