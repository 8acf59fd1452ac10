package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Secrets are the provider credentials. They live in the environment (or a
// .env file), never in the settings file.
type Secrets struct {
	TavilyAPIKey string
	HunterAPIKey string
	OpenAIAPIKey string
	SMTPPassword string
}

// LoadSecrets reads a .env file when present, then the process environment.
// A missing .env is not an error.
func LoadSecrets() Secrets {
	_ = godotenv.Load()
	return Secrets{
		TavilyAPIKey: strings.TrimSpace(os.Getenv("TAVILY_API_KEY")),
		HunterAPIKey: strings.TrimSpace(os.Getenv("HUNTER_API_KEY")),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}
}

// IsPlaceholder reports whether a key is unset or still carries the
// "your_..._here" template value from a sample .env.
func IsPlaceholder(key string) bool {
	key = strings.TrimSpace(key)
	return key == "" || (strings.HasPrefix(key, "your_") && strings.HasSuffix(key, "_here"))
}

// RequireKey is the fatal configuration check run before any network call.
func RequireKey(name, value string) error {
	if IsPlaceholder(value) {
		return fmt.Errorf("%s is not set or is still a placeholder; set it in the environment or .env", name)
	}
	return nil
}
