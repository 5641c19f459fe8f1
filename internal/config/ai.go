package config

import "os"

// AIConfig holds configuration for the generative-text API.
// The credential is read once at startup and never re-read per call.
type AIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:    os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:   getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:     getEnvOrDefault("OPENROUTER_MODEL", "qwen/qwen2.5-vl-72b-instruct:free"),
		TimeoutMS: 90000, // generation calls are slow; per-request ceiling
	}
}

// IsEnabled returns true if the AI API is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// CompletionsEndpoint returns the chat-completions URL.
func (c *AIConfig) CompletionsEndpoint() string {
	return c.BaseURL + "/chat/completions"
}
