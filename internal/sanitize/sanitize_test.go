package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain question",
			raw:  "How does a hash map handle collisions?",
			want: "How does a hash map handle collisions?",
		},
		{
			name: "explanation after question",
			raw:  "How would you design a rate limiter for an API?\n\nExplanation: this checks system design skills.",
			want: "How would you design a rate limiter for an API?",
		},
		{
			name: "inline stop phrase",
			raw:  "What is a database index? Почему это важно: индексы ускоряют поиск.",
			want: "What is a database index?",
		},
		{
			name: "quotes and emphasis",
			raw:  `**"Explain the difference between a process and a thread."**`,
			want: "Explain the difference between a process and a thread.",
		},
		{
			name: "numbering and label",
			raw:  "2) Question: What does the CAP theorem state?",
			want: "What does the CAP theorem state?",
		},
		{
			name: "markup lines skipped",
			raw:  "---\n### \n   What is the purpose of a load balancer?\n💡 Hint: think about traffic.",
			want: "What is the purpose of a load balancer?",
		},
		{
			name: "short first line is skipped",
			raw:  "Okay.\nWhich isolation levels does PostgreSQL support?",
			want: "Which isolation levels does PostgreSQL support?",
		},
		{
			name: "collapse whitespace",
			raw:  "What   is\tdependency    injection?",
			want: "What is dependency injection?",
		},
		{
			name: "russian question",
			raw:  "«Как работает сборщик мусора в Go?»\nНапример, расскажите про write barrier.",
			want: "Как работает сборщик мусора в Go?",
		},
		{
			name: "short fallback",
			raw:  "Task: warm-up\nDescribe how TLS handshakes establish a session key.",
			want: "Describe how TLS handshakes establish a session key.",
		},
		{
			name: "everything stripped falls back to raw",
			raw:  "Почему?",
			want: "Почему?",
		},
		{
			name: "contractions kept",
			raw:  "What's the difference between TCP and UDP?",
			want: "What's the difference between TCP and UDP?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Question(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n")
		})
	}
}

func TestQuestion_Idempotent(t *testing.T) {
	inputs := []string{
		"How does a hash map handle collisions?",
		"1. 2. - What is a mutex?\nExample: sync.Mutex",
		"**Question:** What is eventual consistency? 🤔 Think about replicas.",
		"Ok\n\n\nWhat happens when a goroutine blocks on a nil channel?",
		"Task: warm-up\nDescribe how TLS handshakes establish a session key.",
		"   «Что такое индекс?»   ",
		"Short?",
		"Если кратко: что такое REST?",
		"Why would you choose gRPC over REST // internal note",
		"Вопрос №3\nПочему горутины дешевле потоков ОС?",
		"Question 3\nFor example, how would you shard a users table?",
		"***\n---\n\n",
	}
	for _, raw := range inputs {
		once := Question(raw)
		require.NotEmpty(t, once, raw)
		assert.Equal(t, once, Question(once), "input %q", raw)
	}
}

func TestQuestion_StrippedLineFallback(t *testing.T) {
	// The chosen line starts with a stop phrase, so every rule leaves nothing.
	got := Question("Вопрос №3\nПочему горутины дешевле потоков ОС?")
	assert.Equal(t, "Почему горутины дешевле потоков ОС?", got)

	got = Question("Question 3\nFor example, how would you shard a users table?")
	assert.Equal(t, "For example, how would you shard a users table?", got)
}

func TestQuestion_NeverMultiline(t *testing.T) {
	raw := "***\n---\n\n"
	got := Question(raw)
	assert.NotContains(t, got, "\n")
	assert.NotEmpty(t, got)
}

func TestQuestion_Blank(t *testing.T) {
	assert.Equal(t, "", Question("  \n\t "))
}

func TestFirstContentLine(t *testing.T) {
	r := FirstContentLine{MinRunes: 10}
	assert.Equal(t, "a long enough line", r.Apply("short\n=====\na long enough line\nsecond long line", ""))
	assert.Equal(t, "tiny words", r.Apply("tiny\nwords", ""))
	assert.Equal(t, "Это строка на русском", r.Apply("***\nЭто строка на русском", ""))
}

func TestStripDecoration(t *testing.T) {
	r := StripDecoration{}
	assert.Equal(t, "bold and code", r.Apply("- **bold** and `code`", ""))
	assert.Equal(t, "Heading", r.Apply("## Heading", ""))
	assert.Equal(t, "Цитата", r.Apply("«Цитата»", ""))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace{}.Apply("  a \t b\n\nc ", ""))
}

func TestStopPhraseTruncate(t *testing.T) {
	r := StopPhraseTruncate{Phrases: []string{"Example:", "---"}}
	assert.Equal(t, "What is a closure?", r.Apply("What is a closure? Example: func literals --- more", ""))
	assert.Equal(t, "no stops here", r.Apply("no stops here", ""))
	assert.Equal(t, "", r.Apply("Example: first", ""))
}

func TestStripPrefix(t *testing.T) {
	r := StripPrefix{Labels: DefaultLabels}
	tests := map[string]string{
		"1. What is Go?":            "What is Go?",
		"12) What is Go?":           "What is Go?",
		"3. 4. What is Go?":         "What is Go?",
		"Question: What is Go?":     "What is Go?",
		"вопрос: Что такое Go?":     "Что такое Go?",
		"1. - Q: What is Go?":       "What is Go?",
		"2024 was a good year?":     "2024 was a good year?",
		"3.14 is pi, what is tau?":  "14 is pi, what is tau?",
		"What is Go? 1. not prefix": "What is Go? 1. not prefix",
	}
	for in, want := range tests {
		assert.Equal(t, want, r.Apply(in, ""), in)
	}
}

func TestShortFallback(t *testing.T) {
	r := ShortFallback{MinRunes: 15, RawMinRunes: 30, LineMinRunes: 20}
	raw := "* a markup line that is long\nA real question about caching strategies?"
	assert.Equal(t, "A real question about caching strategies?", r.Apply("short", raw))

	// Raw too short to trigger the fallback.
	assert.Equal(t, "short", r.Apply("short", "short raw"))

	// Long enough text is left alone.
	long := "a sufficiently long question?"
	assert.Equal(t, long, r.Apply(long, strings.Repeat("x", 100)))
}

func TestRuleNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range DefaultRules() {
		require.NotEmpty(t, r.Name())
		require.False(t, seen[r.Name()], r.Name())
		seen[r.Name()] = true
	}
}
