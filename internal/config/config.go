package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment-variable prefix for all hangarctl settings,
// e.g. HANGARCTL_COMMUNITY_DIR, HANGARCTL_DISCORD_WEBHOOK_URL
const Prefix = "hangarctl"

// Config holds all hangarctl configuration. Values come from the environment
// (optionally seeded from a .env file); unset directories fall back to XDG
// conventions.
type Config struct {
	// CommunityDir is the folder scanned for installed add-on packages
	CommunityDir string `envconfig:"COMMUNITY_DIR"`
	// DataDir holds the persisted catalog snapshot
	DataDir string `envconfig:"DATA_DIR"`

	Discord DiscordConfig
	Slack   SlackConfig
}

// DiscordConfig configures the webhook-style publishing platform
type DiscordConfig struct {
	WebhookURL string `envconfig:"DISCORD_WEBHOOK_URL"`
	Username   string `envconfig:"DISCORD_USERNAME"`
}

// SlackConfig configures the chat-endpoint-style publishing platform
type SlackConfig struct {
	WebhookURL string `envconfig:"SLACK_WEBHOOK_URL"`
	Channel    string `envconfig:"SLACK_CHANNEL"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; missing is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdgDataHome(), "hangarctl")
	}
	if cfg.CommunityDir == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.CommunityDir = filepath.Join(homeDir, "Games", "flight-sim", "Community")
	}

	return &cfg, nil
}

// CatalogPath is the location of the persisted catalog snapshot
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "catalog.json")
}

func xdgDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share")
}
