// Package config defines application configuration on top of the core sections.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "tutorbot/core/config"
	"tutorbot/core/database"
)

// BotConfig holds application specific bot settings.
type BotConfig struct {
	// AdminIDs lists Telegram user ids allowed into the admin menu.
	AdminIDs []int64 `yaml:"admin_ids" envconfig:"BOT_ADMIN_IDS"`
}

// SessionConfig selects the dialogue session store.
type BotSessionConfig struct {
	// Backend is "memory" or "bigcache".
	Backend string `yaml:"backend" envconfig:"SESSION_BACKEND"`
	// TTLMinutes is the idle lifetime of a dialogue session; 0 -> 120.
	TTLMinutes int `yaml:"ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
}

// Config aggregates core and application settings.
type Config struct {
	Telegram  coreconfig.TelegramConfig  `yaml:"telegram"`
	Webhook   coreconfig.WebhookConfig   `yaml:"webhook"`
	Logging   coreconfig.LoggingConfig   `yaml:"logging"`
	RateLimit coreconfig.RateLimitConfig `yaml:"rate_limit"`
	Database  database.Config            `yaml:"database"`
	Bot       BotConfig                  `yaml:"bot"`
	Session   BotSessionConfig           `yaml:"session"`
}

// Load reads YAML config then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}
	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalize(cfg *Config) error {
	core := cfg.Core()
	if err := coreconfig.Normalize(core); err != nil {
		return err
	}
	cfg.Telegram = core.Telegram
	cfg.Webhook = core.Webhook
	cfg.Logging = core.Logging
	cfg.RateLimit = core.RateLimit

	if len(cfg.Bot.AdminIDs) == 0 {
		return fmt.Errorf("config: bot.admin_ids must not be empty")
	}
	switch cfg.Session.Backend {
	case "", "memory", "bigcache":
	default:
		return fmt.Errorf("config: unknown session.backend %q", cfg.Session.Backend)
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 120
	}
	return nil
}

// Core projects the shared sections into a core config value.
func (c *Config) Core() *coreconfig.Config {
	return &coreconfig.Config{
		Telegram:  c.Telegram,
		Webhook:   c.Webhook,
		Logging:   c.Logging,
		RateLimit: c.RateLimit,
	}
}
