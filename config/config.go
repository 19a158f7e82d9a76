package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider  string // gemini, anthropic, openai
	GeminiKey    string
	AnthropicKey string
	OpenAIKey    string
	LLMModel     string
	LLMTimeout   time.Duration
	DiscordToken string
	DatabasePath string
	Timezone     string
}

func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if no .env

	cfg := &Config{
		LLMProvider:  envOr("LLM_PROVIDER", "gemini"),
		GeminiKey:    envOr("GEMINI_API_KEY", os.Getenv("GOOGLE_AI_API_KEY")),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		LLMModel:     os.Getenv("LLM_MODEL"),
		LLMTimeout:   time.Duration(envInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		DiscordToken: os.Getenv("DISCORD_BOT_TOKEN"),
		DatabasePath: envOr("DATABASE_PATH", "./orion.db"),
		Timezone:     envOr("TIMEZONE", "America/Sao_Paulo"),
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LLMProvider, validation.Required, validation.In("gemini", "anthropic", "openai")),
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.Timezone, validation.Required, validation.By(validTimezone)),
		validation.Field(&c.LLMTimeout, validation.Min(time.Second)),
	)
}

func validTimezone(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q", name)
	}
	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicKey
	case "openai":
		return c.OpenAIKey
	default:
		return c.GeminiKey
	}
}

// Location resolves the configured timezone. Validation already checked it.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Timezone)
	return loc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
