package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rorical/RoriTutor/internal/chat"
)

// runToolTurn pushes one user message through the tool-calling loop
// and prints the outcome, including the iteration-limit case.
func (s *Session) runToolTurn(ctx context.Context, conv *chat.Conversation, userInput string) {
	conv.AddUserMessage(userInput)

	reply, err := s.orch.RunTurn(ctx, conv, chat.GenerationParams{MaxTokens: 500, Temperature: 0.7})
	switch {
	case errors.Is(err, chat.ErrIterationLimit):
		fmt.Printf("Reached the tool call iteration limit. Last output: %s\n", reply)
	case err != nil:
		printError(err)
	default:
		fmt.Printf("Final response: %s\n", reply)
	}
}

// WeatherFunction asks a question the model can only answer by calling
// the weather tool.
func (s *Session) WeatherFunction(ctx context.Context) {
	printDivider("FUNCTION CALLING EXAMPLE", 60)

	printSection("1. Weather inquiry")
	conv := chat.NewConversation()
	s.runToolTurn(ctx, conv, "What's the weather like in San Francisco?")
}

// MathFunction routes an arithmetic question through the calculator.
func (s *Session) MathFunction(ctx context.Context) {
	printSection("2. Math calculation")
	conv := chat.NewConversation()
	s.runToolTurn(ctx, conv, "What's the square root of 144 plus 5 times 3?")
}

// MultipleFunctions needs two tools chained across iterations: first a
// random number, then its square root.
func (s *Session) MultipleFunctions(ctx context.Context) {
	printSection("3. Multiple function calls")
	conv := chat.NewConversation()
	s.runToolTurn(ctx, conv, "Generate a random number between 1 and 10, then calculate its square root.")
}

// KnowledgeSearch exercises the mock knowledge base tool.
func (s *Session) KnowledgeSearch(ctx context.Context) {
	printSection("4. Knowledge base search")
	conv := chat.NewConversation()
	s.runToolTurn(ctx, conv, "Tell me about Go programming and then search for information about machine learning.")
}

// RestrictedCatalog advertises only the knowledge search tool, leaving
// the rest of the registry invisible to the model for this turn.
func (s *Session) RestrictedCatalog(ctx context.Context) {
	printSection("5. Restricting the advertised tools")
	fmt.Println("Only search_knowledge_base is offered for this request; the")
	fmt.Println("other registered tools stay hidden from the model.")

	s.orch.SetCatalog(s.registry.SpecsFor("search_knowledge_base"))
	defer s.orch.SetCatalog(nil)

	conv := chat.NewConversation()
	s.runToolTurn(ctx, conv, "I need some information")
}

// InteractiveFunctionCalling is a free-form session with the full tool
// registry available.
func (s *Session) InteractiveFunctionCalling(ctx context.Context) {
	printSection("6. Interactive function calling")
	fmt.Println("Chat with an assistant that can call tools! (type 'quit' to exit)")
	fmt.Printf("Available tools: %v\n", s.registry.Names())

	conv := chat.NewConversationWithSystem(
		"You are a helpful assistant with access to several tools. " +
			"Use them when appropriate to help the user.")

	for {
		userInput := s.readLine("\nYou: ")
		if userInput == "" {
			continue
		}
		if isQuit(userInput) {
			return
		}

		fmt.Println("\nProcessing your request...")
		s.runToolTurn(ctx, conv, userInput)
	}
}
