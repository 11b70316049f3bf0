package demo

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriTutor/internal/chat"
)

// invoke sends a transcript without any tool definitions and returns
// the assistant's reply.
func (s *Session) invoke(ctx context.Context, conv *chat.Conversation, params chat.GenerationParams) (*chat.TurnResult, error) {
	result, err := s.client.Invoke(ctx, conv.Messages(), nil, params)
	if err != nil {
		return nil, err
	}
	conv.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: result.Content,
	})
	return result, nil
}

// BasicChat demonstrates a single-turn chat completion.
func (s *Session) BasicChat(ctx context.Context) {
	printDivider("BASIC CHAT COMPLETION EXAMPLE", 60)

	printSection("1. Single-turn conversation")
	question := "What are the benefits of learning Go?"
	fmt.Printf("User: %s\n", question)

	conv := chat.NewConversation()
	conv.AddUserMessage(question)

	result, err := s.invoke(ctx, conv, chat.GenerationParams{MaxTokens: 150, Temperature: 0.7})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Assistant: %s\n", result.Content)
	printUsage(result.Usage)
}

// SystemMessages shows how the system prompt steers the assistant.
func (s *Session) SystemMessages(ctx context.Context) {
	printSection("2. Using system messages")

	systemPrompts := []string{
		"You are a helpful programming tutor who explains concepts clearly.",
		"You are a pirate who speaks in pirate language.",
		"You are a formal academic professor.",
	}
	question := "What is machine learning?"

	for i, systemPrompt := range systemPrompts {
		fmt.Printf("\n2.%d System: %s\n", i+1, systemPrompt)
		fmt.Printf("User: %s\n", question)

		conv := chat.NewConversationWithSystem(systemPrompt)
		conv.AddUserMessage(question)

		result, err := s.invoke(ctx, conv, chat.GenerationParams{MaxTokens: 100, Temperature: 0.8})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("Assistant: %s\n", result.Content)
	}
}

// MultiTurnChat runs a scripted multi-turn conversation, feeding the
// growing transcript back on every request.
func (s *Session) MultiTurnChat(ctx context.Context) {
	printSection("3. Multi-turn conversation")

	conv := chat.NewConversationWithSystem("You are a helpful coding assistant.")
	turns := []string{
		"I want to learn web development. Where should I start?",
		"I'm interested in backend development. What languages do you recommend?",
		"Tell me more about Go for web development.",
		"What frameworks should I learn?",
	}

	for i, userInput := range turns {
		fmt.Printf("\nTurn %d:\nUser: %s\n", i+1, userInput)
		conv.AddUserMessage(userInput)

		result, err := s.invoke(ctx, conv, chat.GenerationParams{MaxTokens: 120, Temperature: 0.7})
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("Assistant: %s\n", result.Content)
	}
}

// DifferentRoles seeds the transcript with a prewritten assistant
// message to show how roles shape what comes next.
func (s *Session) DifferentRoles(ctx context.Context) {
	printSection("4. Different message roles")

	conv := chat.NewConversationWithSystem("You are a creative writing assistant.")
	conv.AddUserMessage("I want to write a story about space exploration.")
	conv.Append(openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		Content: "That's exciting! Space exploration offers rich possibilities for storytelling. " +
			"What type of story interests you - hard science fiction with realistic technology, " +
			"or something more fantastical?",
	})
	conv.AddUserMessage("I prefer realistic science fiction.")

	fmt.Println("Conversation with pre-defined assistant message:")
	for _, msg := range conv.Messages() {
		fmt.Printf("%s: %s\n", msg.Role, msg.Content)
	}

	result, err := s.invoke(ctx, conv, chat.GenerationParams{MaxTokens: 150, Temperature: 0.8})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Assistant: %s\n", result.Content)
}

// InteractiveChat is a free-form chat session. 'clear' resets the
// history, keeping the system message.
func (s *Session) InteractiveChat(ctx context.Context) {
	printSection("5. Interactive chat session")
	fmt.Println("Start chatting! (type 'quit' to exit, 'clear' to reset)")

	systemPrompt := s.readLine("\nEnter system message (optional): ")
	if systemPrompt == "" {
		systemPrompt = "You are a helpful assistant."
	}
	conv := chat.NewConversationWithSystem(systemPrompt)

	for {
		userInput := s.readLine("\nYou: ")
		if userInput == "" {
			continue
		}
		if isQuit(userInput) {
			return
		}
		if userInput == "clear" {
			conv.Reset()
			fmt.Println("Conversation history cleared!")
			continue
		}

		conv.AddUserMessage(userInput)
		result, err := s.invoke(ctx, conv, chat.GenerationParams{MaxTokens: 200, Temperature: 0.7})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("Assistant: %s\n", result.Content)
		printUsage(result.Usage)
	}
}
