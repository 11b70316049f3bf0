package demo

import (
	"context"
	"fmt"
)

// maxLogTail bounds how much of the request log the viewer prints.
const maxLogTail = 2000

// TestConnection makes a minimal round trip to verify the configured
// endpoint, key and model actually work together.
func (s *Session) TestConnection(ctx context.Context) {
	printSection("Testing API Connection")

	if err := s.client.TestConnection(ctx); err != nil {
		fmt.Println("Connection failed.")
		printError(err)
		fmt.Println("\nMake sure you have:")
		fmt.Println("1. Configured a profile with 'roritutor profile add <name>'")
		fmt.Println("2. Set a valid API key (or exported OPENAI_API_KEY)")
		fmt.Println("3. Pointed base_url at a reachable endpoint if not using the default")
		return
	}

	fmt.Println("Connection successful!")
	fmt.Printf("Endpoint: %s\n", s.client.BaseURL())
	fmt.Printf("Model: %s\n", s.client.Model())
}

// ViewLogs prints the tail of the API request log.
func (s *Session) ViewLogs() {
	printSection("Recent API Request Logs")

	content, err := s.logger.Tail(maxLogTail)
	if err != nil {
		fmt.Printf("Error reading log file: %v\n", err)
		return
	}
	if content == "" {
		fmt.Println("No logs found. Run some examples first to generate logs.")
		return
	}
	fmt.Println(content)
}

// ClearLogs truncates the API request log.
func (s *Session) ClearLogs() {
	printSection("Clearing API Logs")

	if err := s.logger.Clear(); err != nil {
		fmt.Printf("Error clearing logs: %v\n", err)
		return
	}
	fmt.Printf("Log file cleared: %s\n", s.logger.Path())
}
