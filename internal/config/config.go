// Package config assembles runtime configuration from built-in defaults,
// an optional TOML file and INTERVIEWER_* environment variables, in that
// order of precedence (lowest first). A .env file in the working directory
// is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/abhisek/interviewer/internal/embedding"
	"github.com/abhisek/interviewer/internal/knowledge"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/session"
)

// Config is the resolved application configuration.
type Config struct {
	LLM       llm.Config
	Embedding embedding.Config
	Interview session.Config
	Knowledge Knowledge
	Paths     Paths
	Verbose   bool

	// File is the TOML file that was applied, if any.
	File string
}

// Knowledge configures the knowledge store.
type Knowledge struct {
	// CataloguePath is a TOML catalogue replacing the built-in one.
	CataloguePath string
	Overfetch     int
}

// Paths locates files written by the application.
type Paths struct {
	DB          string // empty means store.DefaultDBPath
	SessionsDir string
	LogFile     string
}

// LLMConfigured reports whether a provider is selected.
func (c *Config) LLMConfigured() bool {
	return c.LLM.Provider != ""
}

// Default returns the built-in configuration. The LLM provider is taken
// from the first standard API key variable that is set, and is empty when
// none is.
func Default() Config {
	llmCfg, ok := llm.DiscoverConfig()
	if !ok {
		llmCfg = llm.DefaultConfig()
		llmCfg.Provider = ""
	}
	return Config{
		LLM:       llmCfg,
		Embedding: embedding.DefaultConfig(),
		Interview: session.DefaultConfig(),
		Knowledge: Knowledge{Overfetch: knowledge.DefaultOverfetch},
		Paths: Paths{
			SessionsDir: "sessions",
			LogFile:     defaultLogFile(),
		},
	}
}

// Load resolves configuration. An explicit path must exist; with an empty
// path the default config file is used when present.
func Load(path string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyTOML(&cfg, data); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
			cfg.File = path
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	fillEmbeddingKey(&cfg)
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/interviewer/config.toml, or "" when
// no config directory can be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "interviewer", "config.toml")
}

func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "interviewer", "interviewer.log")
}

// fileConfig mirrors the TOML layout. Pointers distinguish absent keys.
type fileConfig struct {
	Verbose *bool `toml:"verbose"`
	LLM     struct {
		Provider *string `toml:"provider"`
		Model    *string `toml:"model"`
		APIKey   *string `toml:"api_key"`
		BaseURL  *string `toml:"base_url"`
		Timeout  *string `toml:"timeout"`
		Retries  *int    `toml:"max_attempts"`
	} `toml:"llm"`
	Embedding struct {
		Provider          *string  `toml:"provider"`
		Model             *string  `toml:"model"`
		APIKey            *string  `toml:"api_key"`
		BaseURL           *string  `toml:"base_url"`
		Dimensions        *int     `toml:"dimensions"`
		Concurrency       *int     `toml:"concurrency"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		CacheTTL          *string  `toml:"cache_ttl"`
	} `toml:"embedding"`
	Interview struct {
		MaxQuestions    *int     `toml:"max_questions"`
		StopWords       []string `toml:"stop_words"`
		GroundQuestions *bool    `toml:"ground_questions"`
		ContextItems    *int     `toml:"context_items"`
	} `toml:"interview"`
	Knowledge struct {
		Catalogue *string `toml:"catalogue"`
		Overfetch *int    `toml:"overfetch"`
	} `toml:"knowledge"`
	Paths struct {
		DB          *string `toml:"db"`
		SessionsDir *string `toml:"sessions_dir"`
		LogFile     *string `toml:"log_file"`
	} `toml:"paths"`
}

func applyTOML(cfg *Config, data []byte) error {
	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return err
	}

	setBool(&cfg.Verbose, f.Verbose)

	if f.LLM.Provider != nil {
		cfg.LLM.Provider = *f.LLM.Provider
	}
	if f.LLM.Model != nil {
		cfg.LLM.SetModel(*f.LLM.Model)
	}
	if f.LLM.APIKey != nil {
		setProviderKey(&cfg.LLM, *f.LLM.APIKey)
	}
	if f.LLM.BaseURL != nil {
		setProviderBaseURL(&cfg.LLM, *f.LLM.BaseURL)
	}
	if err := setDuration(&cfg.LLM.Timeout, f.LLM.Timeout, "llm.timeout"); err != nil {
		return err
	}
	setInt(&cfg.LLM.Retry.MaxAttempts, f.LLM.Retries)

	setString(&cfg.Embedding.Provider, f.Embedding.Provider)
	setString(&cfg.Embedding.Model, f.Embedding.Model)
	setString(&cfg.Embedding.APIKey, f.Embedding.APIKey)
	setString(&cfg.Embedding.BaseURL, f.Embedding.BaseURL)
	setInt(&cfg.Embedding.Dimensions, f.Embedding.Dimensions)
	setInt(&cfg.Embedding.Concurrency, f.Embedding.Concurrency)
	if f.Embedding.RequestsPerSecond != nil {
		cfg.Embedding.RequestsPerSecond = *f.Embedding.RequestsPerSecond
	}
	if err := setDuration(&cfg.Embedding.CacheTTL, f.Embedding.CacheTTL, "embedding.cache_ttl"); err != nil {
		return err
	}

	setInt(&cfg.Interview.MaxQuestions, f.Interview.MaxQuestions)
	if f.Interview.StopWords != nil {
		cfg.Interview.StopWords = f.Interview.StopWords
	}
	setBool(&cfg.Interview.GroundQuestions, f.Interview.GroundQuestions)
	setInt(&cfg.Interview.ContextItems, f.Interview.ContextItems)

	setString(&cfg.Knowledge.CataloguePath, f.Knowledge.Catalogue)
	setInt(&cfg.Knowledge.Overfetch, f.Knowledge.Overfetch)

	setString(&cfg.Paths.DB, f.Paths.DB)
	setString(&cfg.Paths.SessionsDir, f.Paths.SessionsDir)
	setString(&cfg.Paths.LogFile, f.Paths.LogFile)
	return nil
}

// applyEnv applies INTERVIEWER_* overrides on top of the file.
func applyEnv(cfg *Config) error {
	cfg.LLM = llm.ApplyEnv(cfg.LLM)

	if v := os.Getenv("INTERVIEWER_EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("INTERVIEWER_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("INTERVIEWER_CATALOGUE"); v != "" {
		cfg.Knowledge.CataloguePath = v
	}
	if v := os.Getenv("INTERVIEWER_SESSIONS_DIR"); v != "" {
		cfg.Paths.SessionsDir = v
	}
	if v := os.Getenv("INTERVIEWER_LOG_FILE"); v != "" {
		cfg.Paths.LogFile = v
	}
	if v := os.Getenv("INTERVIEWER_MAX_QUESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("INTERVIEWER_MAX_QUESTIONS: invalid value %q", v)
		}
		cfg.Interview.MaxQuestions = n
	}
	if v := os.Getenv("INTERVIEWER_GROUND_QUESTIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("INTERVIEWER_GROUND_QUESTIONS: %w", err)
		}
		cfg.Interview.GroundQuestions = b
	}
	if v := os.Getenv("INTERVIEWER_VERBOSE"); v != "" {
		b, _ := strconv.ParseBool(v)
		cfg.Verbose = b
	}
	return nil
}

// fillEmbeddingKey reuses the LLM credentials for a remote embedder with
// no key of its own.
func fillEmbeddingKey(cfg *Config) {
	if cfg.Embedding.APIKey != "" {
		return
	}
	switch strings.ToLower(cfg.Embedding.Provider) {
	case "openai":
		cfg.Embedding.APIKey = firstNonEmpty(cfg.LLM.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY"))
	case "gemini":
		cfg.Embedding.APIKey = firstNonEmpty(cfg.LLM.Gemini.APIKey, os.Getenv("GEMINI_API_KEY"))
	}
}

func setProviderKey(c *llm.Config, key string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "gemini":
		c.Gemini.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
}

func setProviderBaseURL(c *llm.Config, url string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.BaseURL = url
	case "openai":
		c.OpenAI.BaseURL = url
	case "gemini":
		c.Gemini.BaseURL = url
	case "openrouter":
		c.OpenRouter.BaseURL = url
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
