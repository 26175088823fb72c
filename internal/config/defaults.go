package config

import (
	"time"

	"github.com/inkroomhq/inkroom/internal/providers"
)

// DefaultConfig returns the baseline configuration. Gemini is the
// default provider, matching the hosted model the product ships
// against; OpenAI is available but disabled until a key is configured.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		LLM: providers.RegistryConfig{
			Default: "gemini",
			Providers: map[string]providers.ProviderConfig{
				"gemini": {
					Type:    "gemini",
					Model:   "gemini-3-flash-preview",
					APIKey:  "${GEMINI_API_KEY}",
					Enabled: true,
				},
				"openai": {
					Type:    "openai",
					Model:   "gpt-4.1-mini",
					APIKey:  "${OPENAI_API_KEY}",
					Enabled: false,
				},
			},
		},
		Editor: EditorConfig{
			AutosaveDebounce: 2 * time.Second,
			CallLogCapacity:  200,
		},
	}
}
