package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Server.Port)
	}
	if cfg.LLM.Default != "gemini" {
		t.Fatalf("default provider = %q", cfg.LLM.Default)
	}
	if _, ok := cfg.LLM.Providers["gemini"]; !ok {
		t.Fatal("gemini provider missing from defaults")
	}
	if cfg.Editor.AutosaveDebounce != 2*time.Second {
		t.Fatalf("autosave debounce = %v", cfg.Editor.AutosaveDebounce)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("INKROOM_TEST_KEY", "secret123")

	if got := ResolveEnvVars("${INKROOM_TEST_KEY}"); got != "secret123" {
		t.Fatalf("ResolveEnvVars() = %q", got)
	}
	if got := ResolveEnvVars("plain-value"); got != "plain-value" {
		t.Fatalf("ResolveEnvVars(plain) = %q", got)
	}
	if got := ResolveEnvVars(""); got != "" {
		t.Fatalf("ResolveEnvVars(empty) = %q", got)
	}
	// Unset variables resolve to empty, not the literal reference.
	if got := ResolveEnvVars("${INKROOM_DEFINITELY_UNSET}"); got != "" {
		t.Fatalf("ResolveEnvVars(unset) = %q", got)
	}
}

func TestToRegistryConfigResolvesKeys(t *testing.T) {
	t.Setenv("INKROOM_TEST_API_KEY", "k-123")

	cfg := DefaultConfig()
	p := cfg.LLM.Providers["gemini"]
	p.APIKey = "${INKROOM_TEST_API_KEY}"
	cfg.LLM.Providers["gemini"] = p

	rc := cfg.ToRegistryConfig()
	if rc.Providers["gemini"].APIKey != "k-123" {
		t.Fatalf("api key = %q", rc.Providers["gemini"].APIKey)
	}
	if rc.Default != "gemini" {
		t.Fatalf("default = %q", rc.Default)
	}
}

func TestWriteDefault(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"server:", "llm:", "api_key:", "${GEMINI_API_KEY}"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("config missing %q:\n%s", want, data)
		}
	}
}
