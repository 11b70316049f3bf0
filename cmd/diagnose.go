package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriTutor/internal/config"
	"github.com/Rorical/RoriTutor/internal/llm"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose connection and configuration problems",
	Long: `Run a series of checks against the current configuration: environment
variables, profile contents, endpoint format and a live API round trip.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDiagnostics()
	},
}

func runDiagnostics() {
	fmt.Println("RoriTutor Connection Diagnostics")
	fmt.Println(strings.Repeat("=", 60))

	checks := []struct {
		name string
		fn   func() bool
	}{
		{"Environment Variables", checkEnvironment},
		{"Configuration Profile", checkProfile},
		{"Endpoint Format", checkEndpointFormat},
		{"Live API Call", checkLiveCall},
	}

	passed := 0
	for _, check := range checks {
		fmt.Printf("\nRunning: %s\n", check.name)
		if check.fn() {
			fmt.Printf("[OK] %s\n", check.name)
			passed++
		} else {
			fmt.Printf("[FAIL] %s\n", check.name)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	if passed == len(checks) {
		fmt.Println("All checks passed. Your configuration should work.")
	} else {
		fmt.Printf("%d/%d checks passed. Fix the failed checks above and re-run.\n", passed, len(checks))
	}
}

func checkEnvironment() bool {
	for _, name := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "RORITUTOR_MODEL"} {
		value := os.Getenv(name)
		switch {
		case value == "":
			fmt.Printf("  %s: not set (profile value will be used)\n", name)
		case strings.Contains(name, "KEY"):
			fmt.Printf("  %s: %s\n", name, maskKey(value))
		default:
			fmt.Printf("  %s: %s\n", name, value)
		}
	}
	// Environment overrides are optional, this check is informational
	return true
}

func checkProfile() bool {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("  Failed to load config: %v\n", err)
		return false
	}

	fmt.Printf("  Active profile: %s\n", cfg.ActiveProfile)
	fmt.Printf("  Chat model: %s\n", cfg.GetModel())
	fmt.Printf("  Completion model: %s\n", cfg.GetCompletionModel())
	if key := cfg.GetAPIKey(); key != "" {
		fmt.Printf("  API key: %s\n", maskKey(key))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  %v\n", err)
		return false
	}
	return true
}

func checkEndpointFormat() bool {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("  Failed to load config: %v\n", err)
		return false
	}

	endpoint := cfg.GetBaseURL()
	if endpoint == "" {
		fmt.Println("  No base URL configured, the default API endpoint will be used")
		return true
	}

	fmt.Printf("  Endpoint: %s\n", endpoint)
	ok := true
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		fmt.Println("  Endpoint should start with http:// or https://")
		ok = false
	}
	if !strings.HasPrefix(endpoint, "https://") && !strings.Contains(endpoint, "localhost") &&
		!strings.Contains(endpoint, "127.0.0.1") {
		fmt.Println("  Warning: non-local endpoints should use https://")
	}
	if ok {
		fmt.Println("  Endpoint format looks correct")
	}
	return ok
}

func checkLiveCall() bool {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("  Failed to load config: %v\n", err)
		return false
	}

	client, err := llm.NewClient(cfg, nil)
	if err != nil {
		fmt.Printf("  %v\n", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("  Making a minimal test request...")
	if err := client.TestConnection(ctx); err != nil {
		fmt.Printf("  Request failed: %v\n", err)
		if hint := llm.Guidance(err); hint != "" {
			fmt.Printf("  Hint: %s\n", hint)
		}
		return false
	}

	fmt.Println("  Request succeeded")
	fmt.Printf("  Endpoint: %s\n", client.BaseURL())
	fmt.Printf("  Model: %s\n", client.Model())
	return true
}

// maskKey keeps only the last four characters visible.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "***"
	}
	return "***" + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}
