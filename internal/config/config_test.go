package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load consults and points the config and
// state directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
		"INTERVIEWER_LLM_PROVIDER", "INTERVIEWER_ANTHROPIC_API_KEY", "INTERVIEWER_OPENAI_API_KEY",
		"INTERVIEWER_ANTHROPIC_MODEL", "INTERVIEWER_LLM_TIMEOUT",
		"INTERVIEWER_MAX_QUESTIONS", "INTERVIEWER_GROUND_QUESTIONS", "INTERVIEWER_VERBOSE",
		"INTERVIEWER_EMBEDDING_PROVIDER", "INTERVIEWER_EMBEDDING_MODEL",
		"INTERVIEWER_CATALOGUE", "INTERVIEWER_SESSIONS_DIR", "INTERVIEWER_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.LLMConfigured())
	assert.Equal(t, 10, cfg.Interview.MaxQuestions)
	assert.Equal(t, "local", cfg.Embedding.Provider)
	assert.Equal(t, 3, cfg.Knowledge.Overfetch)
	assert.Equal(t, "sessions", cfg.Paths.SessionsDir)
	assert.Equal(t, filepath.Join(dir, "state", "interviewer", "interviewer.log"), cfg.Paths.LogFile)
	assert.Empty(t, cfg.File)
}

func TestLoad_DiscoversProviderFromStandardKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.LLMConfigured())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "interviewer", "config.toml")
	writeFile(t, path, `
verbose = true

[llm]
provider = "anthropic"
api_key = "file-key"
model = "claude-sonnet"
timeout = "45s"

[interview]
max_questions = 5
stop_words = ["quit"]
ground_questions = true

[embedding]
provider = "openai"
cache_ttl = "1h"

[paths]
sessions_dir = "logs"
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "file-key", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5, cfg.Interview.MaxQuestions)
	assert.Equal(t, []string{"quit"}, cfg.Interview.StopWords)
	assert.True(t, cfg.Interview.GroundQuestions)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, time.Hour, cfg.Embedding.CacheTTL)
	assert.Equal(t, "logs", cfg.Paths.SessionsDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, 3, cfg.Knowledge.Overfetch)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[interview]\nmax_questions = 5\n")
	t.Setenv("INTERVIEWER_MAX_QUESTIONS", "7")
	t.Setenv("INTERVIEWER_GROUND_QUESTIONS", "true")
	t.Setenv("INTERVIEWER_SESSIONS_DIR", "/tmp/out")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Interview.MaxQuestions)
	assert.True(t, cfg.Interview.GroundQuestions)
	assert.Equal(t, "/tmp/out", cfg.Paths.SessionsDir)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "INTERVIEWER_MAX_QUESTIONS=4\n")
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("INTERVIEWER_MAX_QUESTIONS"))
	t.Cleanup(func() { os.Unsetenv("INTERVIEWER_MAX_QUESTIONS") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Interview.MaxQuestions)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, "[interview\nmax_questions = ")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, "[llm]\ntimeout = \"soon\"\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "llm.timeout")
	})

	t.Run("bad max questions", func(t *testing.T) {
		isolate(t)
		t.Setenv("INTERVIEWER_MAX_QUESTIONS", "zero")
		_, err := Load("")
		assert.ErrorContains(t, err, "INTERVIEWER_MAX_QUESTIONS")
	})
}

func TestFillEmbeddingKey(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Embedding.Provider = "openai"
	cfg.LLM.OpenAI.APIKey = "from-llm"

	fillEmbeddingKey(&cfg)
	assert.Equal(t, "from-llm", cfg.Embedding.APIKey)

	cfg.Embedding.APIKey = "own"
	fillEmbeddingKey(&cfg)
	assert.Equal(t, "own", cfg.Embedding.APIKey)
}
