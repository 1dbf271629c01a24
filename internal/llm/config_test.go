package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
		"INTERVIEWER_LLM_PROVIDER", "INTERVIEWER_LLM_TIMEOUT",
		"INTERVIEWER_ANTHROPIC_API_KEY", "INTERVIEWER_ANTHROPIC_MODEL", "INTERVIEWER_ANTHROPIC_BASE_URL",
		"INTERVIEWER_OPENAI_API_KEY", "INTERVIEWER_OPENAI_MODEL", "INTERVIEWER_OPENAI_BASE_URL",
		"INTERVIEWER_GEMINI_API_KEY", "INTERVIEWER_GEMINI_MODEL", "INTERVIEWER_GEMINI_BASE_URL",
		"INTERVIEWER_OPENROUTER_API_KEY", "INTERVIEWER_OPENROUTER_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)

	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)

	// Anthropic wins when several keys are present.
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)
}

func TestApplyEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("INTERVIEWER_LLM_PROVIDER", "openai")
	t.Setenv("INTERVIEWER_OPENAI_API_KEY", "sk-x")
	t.Setenv("INTERVIEWER_OPENAI_MODEL", "gpt-5-mini")
	t.Setenv("INTERVIEWER_GEMINI_BASE_URL", "http://localhost:9999")
	t.Setenv("INTERVIEWER_LLM_TIMEOUT", "45s")

	cfg := ApplyEnv(DefaultConfig())
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-x", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-5-mini", cfg.OpenAI.Model)
	assert.Equal(t, "http://localhost:9999", cfg.Gemini.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)

	t.Setenv("INTERVIEWER_LLM_TIMEOUT", "soon")
	assert.Equal(t, DefaultConfig().Timeout, ApplyEnv(DefaultConfig()).Timeout)
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	cfg.SetModel("gemini-pro")
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)

	cfg.SetModel("")
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
}
