package providers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ProviderConfig describes one configured LLM provider.
type ProviderConfig struct {
	Type    string `mapstructure:"type" yaml:"type"` // "gemini", "openai", "mock"
	Model   string `mapstructure:"model" yaml:"model"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	// RequestsPerMinute throttles calls client-side (0 = unlimited).
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute,omitempty"`
}

// RegistryConfig is the provider section of the application config.
type RegistryConfig struct {
	Default   string                    `mapstructure:"default" yaml:"default"`
	Providers map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`
}

// Registry holds LLM clients by name. It supports config-driven
// instantiation, hot reload, and thread-safe access.
type Registry struct {
	mu          sync.RWMutex
	clients     map[string]LLMClient
	defaultName string
	logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]LLMClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the registry logger.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a client by name.
func (r *Registry) Register(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// Get returns a client by name.
func (r *Registry) Get(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// Default returns the configured default client, or any registered
// client when no default is set.
func (r *Registry) Default() (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName != "" {
		if client, ok := r.clients[r.defaultName]; ok {
			return client, nil
		}
		return nil, fmt.Errorf("default LLM client not registered: %s", r.defaultName)
	}
	for _, client := range r.clients {
		return client, nil
	}
	return nil, fmt.Errorf("no LLM clients registered")
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// Reload rebuilds the registry from config. Clients that fail to build
// are skipped with a log line; existing entries for disabled providers
// are dropped.
func (r *Registry) Reload(ctx context.Context, cfg RegistryConfig) {
	clients := make(map[string]LLMClient, len(cfg.Providers))

	for name, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		client, err := buildClient(ctx, pc)
		if err != nil {
			r.logger.Warn("skipping LLM provider", "name", name, "error", err)
			continue
		}
		clients[name] = client
	}

	r.mu.Lock()
	r.clients = clients
	r.defaultName = cfg.Default
	r.mu.Unlock()

	r.logger.Info("LLM provider registry reloaded",
		"providers", len(clients), "default", cfg.Default)
}

func buildClient(ctx context.Context, pc ProviderConfig) (LLMClient, error) {
	switch pc.Type {
	case "gemini":
		if pc.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api_key")
		}
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:            pc.APIKey,
			Model:             pc.Model,
			RetryDelay:        time.Second,
			RequestsPerMinute: pc.RequestsPerMinute,
		})
	case "openai":
		if pc.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an api_key")
		}
		return NewOpenAIClient(OpenAIConfig{
			APIKey: pc.APIKey,
			Model:  pc.Model,
		}), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", pc.Type)
	}
}
