package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// offline points every path at a temp dir and clears provider keys so
// commands run on built-in fallbacks.
func offline(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
		"INTERVIEWER_LLM_PROVIDER", "INTERVIEWER_EMBEDDING_PROVIDER", "INTERVIEWER_CATALOGUE",
		"INTERVIEWER_MAX_QUESTIONS", "INTERVIEWER_SESSIONS_DIR", "INTERVIEWER_LOG_FILE", "INTERVIEWER_DB",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "interviewer (devel)\n", run(t, "", "version"))
}

func TestPlainInterviewIsSavedAndListed(t *testing.T) {
	dir := offline(t)
	db := filepath.Join(dir, "test.db")

	out := run(t,
		"I would add a composite index and confirm the plan with EXPLAIN ANALYZE.\nстоп\n",
		"interview", "--plain", "--name", "Ann", "--role", "Backend Developer", "--db", db)
	assert.Contains(t, out, "Interviewer: ")
	assert.Contains(t, out, "Saved to ")
	assert.DirExists(t, filepath.Join(dir, "sessions"))

	list := run(t, "", "sessions", "list", "--db", db)
	assert.Contains(t, list, "Ann")
	assert.Contains(t, list, "Backend Developer")
}

func TestKnowledgeList(t *testing.T) {
	offline(t)

	out := run(t, "", "knowledge", "list", "--category", "devops")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	for _, line := range lines[2:] {
		assert.True(t, strings.HasPrefix(line, "devops"), line)
	}
}

func TestSessionsViewUnknown(t *testing.T) {
	dir := offline(t)
	rootCmd.SetArgs([]string{"sessions", "view", "nope", "--db", filepath.Join(dir, "x.db")})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "session nope not found")
}

func TestTruncateAndFormatCost(t *testing.T) {
	assert.Equal(t, "Разра", truncate("Разработчик", 5))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
