package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/titanous/json5"
)

// Config is the root configuration for the bot.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	AI       AIConfig       `json:"ai,omitempty"`
	Bot      BotConfig      `json:"bot,omitempty"`
	Health   HealthConfig   `json:"health,omitempty"`
}

// TelegramConfig configures the Telegram channel.
// Token comes from config.json or the TELEGRAM_TOKEN env var (env wins).
type TelegramConfig struct {
	Token string `json:"token,omitempty"`
}

// AIConfig configures the OpenAI-compatible fallback provider.
// An empty APIKey disables the AI fallback for the process lifetime.
type AIConfig struct {
	APIKey      string  `json:"-"` // from env OPENAI_API_KEY only
	APIBase     string  `json:"api_base,omitempty"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// Enabled reports whether the AI fallback feature is configured.
func (a AIConfig) Enabled() bool { return a.APIKey != "" }

// BotConfig holds file paths and dispatch tuning.
type BotConfig struct {
	ResponsesPath   string `json:"responses_path,omitempty"`
	ProfilePath     string `json:"profile_path,omitempty"`
	UpdatesPath     string `json:"updates_path,omitempty"`
	CooldownSeconds int    `json:"cooldown_seconds,omitempty"`
}

// Cooldown returns the implicit AI fallback cooldown window.
func (b BotConfig) Cooldown() time.Duration {
	return time.Duration(b.CooldownSeconds) * time.Second
}

// HealthConfig configures the liveness HTTP endpoint.
type HealthConfig struct {
	Enabled *bool  `json:"enabled,omitempty"` // nil = enabled
	Host    string `json:"host,omitempty"`
	Port    int    `json:"port,omitempty"`
}

// IsEnabled reports whether the liveness endpoint should be served.
func (h HealthConfig) IsEnabled() bool { return h.Enabled == nil || *h.Enabled }

// Addr returns the listen address for the liveness endpoint.
func (h HealthConfig) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.5,
			MaxTokens:   450,
		},
		Bot: BotConfig{
			ResponsesPath:   "responses.json",
			ProfilePath:     "project_profile.json",
			UpdatesPath:     "data/updates.json",
			CooldownSeconds: 8,
		},
		Health: HealthConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error; defaults plus env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("TELEGRAM_TOKEN", &c.Telegram.Token)
	envStr("OPENAI_API_KEY", &c.AI.APIKey)
	envStr("OPENAI_API_BASE", &c.AI.APIBase)
	envStr("DOLPHBOT_MODEL", &c.AI.Model)
	envStr("DOLPHBOT_RESPONSES", &c.Bot.ResponsesPath)
	envStr("DOLPHBOT_PROFILE", &c.Bot.ProfilePath)
	envStr("DOLPHBOT_UPDATES", &c.Bot.UpdatesPath)

	// Hosting providers inject PORT for the liveness endpoint.
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Health.Port = port
		}
	}
}

// Validate checks the mandatory settings. A missing Telegram token is the
// only fatal configuration error.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token missing (set TELEGRAM_TOKEN or telegram.token in config)")
	}
	return nil
}
