package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/Rorical/RoriTutor/internal/demo"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the tutorial",
	Long:  `Switch to the specified profile and immediately start the tutorial menu.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		// Load config
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Check if profile exists
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		// Switch to the profile
		cfg.ActiveProfile = profileName

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		// Reload so the new active profile takes effect
		cfg, err = config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to reload config: %v", err)
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

func init() {
	rootCmd.AddCommand(useCmd)
}
