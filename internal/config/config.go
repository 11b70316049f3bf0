package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied to newly created profiles and used as fallbacks
// when a field is left empty.
const (
	DefaultModel           = "gpt-4o-mini"
	DefaultCompletionModel = "gpt-3.5-turbo-instruct"
)

type Profile struct {
	APIKey string `json:"api_key"`
	// BaseURL points the SDK at an OpenAI-compatible endpoint
	// (Azure, a local server, a proxy). Empty means the default API.
	BaseURL         string `json:"base_url,omitempty"`
	Model           string `json:"model"`
	CompletionModel string `json:"completion_model,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	config.applyEnvOverrides()

	return config, nil
}

// applyEnvOverrides lets environment variables win over the profile
// file, so the tutorial can run without editing config.json.
func (c *Config) applyEnvOverrides() {
	if c.currentProfile == nil {
		return
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.currentProfile.APIKey = key
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		c.currentProfile.BaseURL = base
	}
	if model := os.Getenv("RORITUTOR_MODEL"); model != "" {
		c.currentProfile.Model = model
	}
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

// Validate reports the reason a session cannot start. This is the
// pre-flight check: nothing should attempt an API call while it
// returns an error.
func (c *Config) Validate() error {
	if c.currentProfile == nil {
		return fmt.Errorf("no active profile; run 'roritutor profile add <name>' first")
	}
	if c.currentProfile.APIKey == "" {
		return fmt.Errorf("profile %q has no API key; set it with 'roritutor profile edit %s' or export OPENAI_API_KEY",
			c.ActiveProfile, c.ActiveProfile)
	}
	return nil
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetCompletionModel() string {
	if c.currentProfile == nil || c.currentProfile.CompletionModel == "" {
		return DefaultCompletionModel
	}
	return c.currentProfile.CompletionModel
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// LogFilePath returns the location of the API request log, kept next
// to the config file so everything lives under one directory.
func LogFilePath() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "logs", "api_requests.txt"), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORITUTOR_HOME if set, otherwise use user's home directory
	if tutorHome := os.Getenv("RORITUTOR_HOME"); tutorHome != "" {
		configDir = tutorHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".roritutor", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				APIKey:          "",
				BaseURL:         "",
				Model:           DefaultModel,
				CompletionModel: DefaultCompletionModel,
			},
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	// The file holds API keys, keep it private
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, fall back to any available one
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
