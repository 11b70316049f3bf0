package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriTutor/internal/app"
	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/Rorical/RoriTutor/internal/demo"
)

var rootCmd = &cobra.Command{
	Use:   "roritutor",
	Short: "An interactive chat API tutorial",
	Long: `RoriTutor is an interactive tutorial application that demonstrates
chat completion APIs from basic usage to tool calling, with every API
request logged for inspection.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: run the tutorial menu
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		session, err := demo.NewSession(cfg)
		if err != nil {
			log.Fatalf("Failed to start tutorial: %v", err)
		}

		if err := session.Menu(context.Background()); err != nil {
			log.Fatalf("Tutorial error: %v", err)
		}
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat application",
	Long:  `Start the full-screen chat application with tool calling enabled.`,
	Run: func(cmd *cobra.Command, args []string) {
		application, err := app.NewApplication()
		if err != nil {
			log.Fatalf("Failed to create application: %v", err)
		}
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(profileCmd)
}
