package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

const (
	menuCompletion = "Basic Text Completion - Legacy completions API"
	menuChat       = "Chat Completion - Modern chat API with conversation history"
	menuFunctions  = "Function Calling - Tool calling with the chat API"
	menuConnection = "Test Connection - Verify your API setup"
	menuViewLogs   = "View API Logs - Display recent API request logs"
	menuClearLogs  = "Clear API Logs - Clear the API request log file"
	menuExit       = "Exit"
)

// Menu runs the interactive tutorial loop until the user exits.
func (s *Session) Menu(ctx context.Context) error {
	printDivider("RORITUTOR", 70)
	fmt.Println()
	fmt.Println("Welcome to the RoriTutor tutorial application!")
	fmt.Println()
	fmt.Println("This application demonstrates how to use a chat completion API from")
	fmt.Printf("basic to advanced features. All API requests are logged to\n%s\n", s.logger.Path())
	fmt.Println("so you can see the raw calls.")

	items := []string{
		menuCompletion,
		menuChat,
		menuFunctions,
		menuConnection,
		menuViewLogs,
		menuClearLogs,
		menuExit,
	}

	for {
		fmt.Println()
		prompt := promptui.Select{
			Label: "Select an example to run",
			Items: items,
			Size:  len(items),
		}
		_, choice, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return fmt.Errorf("selection failed: %w", err)
		}

		switch choice {
		case menuCompletion:
			s.BasicCompletion(ctx)
			s.StopSequences(ctx)
			if s.askYesNo("\nWould you like to try interactive completion?") {
				s.InteractiveCompletion(ctx)
			}
		case menuChat:
			s.BasicChat(ctx)
			s.SystemMessages(ctx)
			s.MultiTurnChat(ctx)
			s.DifferentRoles(ctx)
			if s.askYesNo("\nWould you like to try interactive chat?") {
				s.InteractiveChat(ctx)
			}
		case menuFunctions:
			s.WeatherFunction(ctx)
			s.MathFunction(ctx)
			s.MultipleFunctions(ctx)
			s.KnowledgeSearch(ctx)
			s.RestrictedCatalog(ctx)
			if s.askYesNo("\nWould you like to try interactive function calling?") {
				s.InteractiveFunctionCalling(ctx)
			}
		case menuConnection:
			s.TestConnection(ctx)
		case menuViewLogs:
			s.ViewLogs()
		case menuClearLogs:
			s.ClearLogs()
		case menuExit:
			fmt.Println("\nThank you for using RoriTutor!")
			fmt.Printf("Don't forget to check %s to see the raw API calls.\n", s.logger.Path())
			return nil
		}
	}
}
