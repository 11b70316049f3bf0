package demo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Rorical/RoriTutor/internal/llm"
)

// BasicCompletion walks through the legacy completions endpoint:
// a simple prompt, then the effect of temperature and max tokens.
func (s *Session) BasicCompletion(ctx context.Context) {
	printDivider("BASIC TEXT COMPLETION EXAMPLE", 60)

	printSection("1. Simple text completion")
	prompt := "Write a creative tagline for a coffee shop:"
	fmt.Printf("Prompt: %s\n", prompt)

	result, err := s.client.Complete(ctx, prompt, llm.CompletionParams{
		MaxTokens:   50,
		Temperature: 0.8,
	})
	if err != nil {
		printError(err)
	} else {
		fmt.Printf("Completion: %s\n", result.Text)
		printUsage(result.Usage)
	}

	printSection("2. Exploring different temperatures")
	basePrompt := "The future of artificial intelligence is"
	for _, temp := range []float32{0.1, 1.5} {
		fmt.Printf("\nPrompt: %s\nWith temperature=%.1f:\n", basePrompt, temp)
		result, err := s.client.Complete(ctx, basePrompt, llm.CompletionParams{
			MaxTokens:   30,
			Temperature: temp,
		})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("Result: %s\n", result.Text)
	}

	printSection("3. Different max token limits")
	storyPrompt := "Once upon a time in a magical forest,"
	for _, maxTokens := range []int{10, 25, 50} {
		fmt.Printf("\nWith max tokens=%d:\n", maxTokens)
		result, err := s.client.Complete(ctx, storyPrompt, llm.CompletionParams{
			MaxTokens:   maxTokens,
			Temperature: 0.7,
		})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("Result: %s (finish reason: %s)\n", result.Text, result.FinishReason)
	}
}

// StopSequences shows how stop sequences cut a completion short.
func (s *Session) StopSequences(ctx context.Context) {
	printSection("4. Using stop sequences")

	prompt := "List three benefits of exercise:\n1."
	result, err := s.client.Complete(ctx, prompt, llm.CompletionParams{
		MaxTokens:   100,
		Temperature: 0.7,
		Stop:        []string{"\n4.", "\n\n"},
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Prompt: %s\nResult: %s\n", prompt, result.Text)
}

// InteractiveCompletion lets the user send their own prompts with
// custom generation parameters.
func (s *Session) InteractiveCompletion(ctx context.Context) {
	printSection("5. Interactive completion")
	fmt.Println("Enter your own prompts (type 'quit' to exit)")

	for {
		prompt := s.readLine("\nEnter prompt: ")
		if prompt == "" {
			continue
		}
		if isQuit(prompt) {
			return
		}

		maxTokens := 50
		if raw := s.readLine("Max tokens (default 50): "); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				maxTokens = n
			} else {
				fmt.Println("Using default value...")
			}
		}
		temperature := float32(0.7)
		if raw := s.readLine("Temperature 0.0-2.0 (default 0.7): "); raw != "" {
			if f, err := strconv.ParseFloat(raw, 32); err == nil && f >= 0 && f <= 2 {
				temperature = float32(f)
			} else {
				fmt.Println("Using default value...")
			}
		}

		result, err := s.client.Complete(ctx, prompt, llm.CompletionParams{
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("\nCompletion: %s\n", result.Text)
		printUsage(result.Usage)
	}
}
