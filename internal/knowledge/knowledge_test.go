package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/embedding"
)

// tableEmbedder returns fixed vectors per text.
type tableEmbedder struct {
	vecs map[string][]float32
}

func (e *tableEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := e.vecs[text]
	if !ok {
		return nil, errors.New("no vector for " + text)
	}
	return v, nil
}

func (e *tableEmbedder) ModelID() string { return "table" }

func TestClassify(t *testing.T) {
	tests := []struct {
		role string
		want Category
	}{
		{"Senior ML Engineer", CategoryML},
		{"QA Automation Tester", CategoryQA},
		{"Blockchain Architect", CategoryGeneral},
		{"Backend Developer", CategoryBackend},
		{"Java Developer", CategoryBackend},
		{"JavaScript Developer", CategoryFrontend},
		{"HTML Developer", CategoryGeneral},
		{"Data Scientist", CategoryML},
		{"DevOps Engineer", CategoryDevOps},
		{"SRE", CategoryDevOps},
		{"Бэкенд разработчик", CategoryBackend},
		{"Инженер по тестированию", CategoryQA},
		{"Docker Specialist", CategoryDevOps},
		{"AI Researcher", CategoryML},
		{"AI/ML Engineer", CategoryML},
		{"Big Data Developer", CategoryML},
		{"Database Administrator", CategoryGeneral},
		{"Retail Analyst", CategoryGeneral},
		{"Test Automation Lead", CategoryQA},
		{"Quality Lead", CategoryQA},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.role, CategoryGeneral))
		})
	}
}

func TestClassify_Fallback(t *testing.T) {
	assert.Equal(t, CategoryBackend, Classify("Blockchain Architect", CategoryBackend))
	assert.Equal(t, CategoryBackend, Classify("", CategoryBackend))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" DevOps ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDevOps, c)

	_, err = ParseCategory("blockchain")
	require.Error(t, err)
}

func TestDefaultCatalogue(t *testing.T) {
	items := DefaultCatalogue()
	require.Len(t, items, 36)

	perCategory := make(map[Category]int)
	for _, it := range items {
		_, err := ParseCategory(string(it.Category))
		require.NoError(t, err, it.Text)
		assert.NotEmpty(t, it.Topic)
		assert.NotEmpty(t, it.TargetRole)
		perCategory[it.Category]++
	}
	for _, c := range AllCategories {
		assert.Equal(t, 6, perCategory[c], "category %s", c)
	}

	items[0].Text = "changed"
	assert.NotEqual(t, "changed", DefaultCatalogue()[0].Text)
}

func TestParseCatalogue(t *testing.T) {
	data := []byte(`
[[item]]
text = "Goroutines are lightweight threads managed by the Go runtime."
category = "backend"
topic = "concurrency"
target_role = "Go Developer"

[[item]]
text = "Big O notation describes asymptotic complexity."
category = "General"
topic = "complexity"
`)
	items, err := ParseCatalogue(data)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, CategoryBackend, items[0].Category)
	assert.Equal(t, CategoryGeneral, items[1].Category)
	assert.Equal(t, AllRoles, items[1].TargetRole)
}

func TestParseCatalogue_Invalid(t *testing.T) {
	_, err := ParseCatalogue([]byte("[[item]]\ntext = \"x\"\ncategory = \"blockchain\"\n"))
	require.Error(t, err)

	_, err = ParseCatalogue([]byte("[[item]]\ncategory = \"qa\"\n"))
	require.Error(t, err)
}

func TestLoadCatalogueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[item]]\ntext = \"Docker basics\"\ncategory = \"devops\"\n"), 0o644))

	items, err := LoadCatalogueFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = LoadCatalogueFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func testCatalogue() ([]Item, *tableEmbedder) {
	items := []Item{
		{Text: "frontend near", Category: CategoryFrontend},
		{Text: "backend mid", Category: CategoryBackend},
		{Text: "frontend mid", Category: CategoryFrontend},
		{Text: "backend far", Category: CategoryBackend},
		{Text: "general far", Category: CategoryGeneral},
	}
	e := &tableEmbedder{vecs: map[string][]float32{
		"frontend near": {1, 0},
		"backend mid":   {2, 0},
		"frontend mid":  {3, 0},
		"backend far":   {4, 0},
		"general far":   {5, 0},
		"query":         {0, 0},
	}}
	return items, e
}

func TestStore_SearchUnfiltered(t *testing.T) {
	items, e := testCatalogue()
	s := NewStore(e)
	require.NoError(t, s.Load(context.Background(), items))
	assert.True(t, s.Loaded())

	got := s.Search(context.Background(), "query", "", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "frontend near", got[0].Text)
	assert.Equal(t, "backend mid", got[1].Text)
	assert.Equal(t, "frontend mid", got[2].Text)
}

func TestStore_SearchFiltersCategory(t *testing.T) {
	items, e := testCatalogue()
	s := NewStore(e, WithOverfetch(2))
	require.NoError(t, s.Load(context.Background(), items))

	got := s.Search(context.Background(), "query", CategoryBackend, 2)
	require.Len(t, got, 2)
	for _, it := range got {
		assert.Equal(t, CategoryBackend, it.Category)
	}
	assert.Equal(t, "backend mid", got[0].Text)
	assert.Equal(t, "backend far", got[1].Text)
}

func TestStore_SearchFilterMayReturnFewer(t *testing.T) {
	items, e := testCatalogue()
	s := NewStore(e, WithOverfetch(1))
	require.NoError(t, s.Load(context.Background(), items))

	got := s.Search(context.Background(), "query", CategoryGeneral, 2)
	assert.Empty(t, got)
}

func TestStore_SearchBeforeLoad(t *testing.T) {
	_, e := testCatalogue()
	s := NewStore(e)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Search(context.Background(), "query", "", 3))
	assert.Nil(t, s.Items())
}

func TestStore_LoadEmbeddingFailure(t *testing.T) {
	items, e := testCatalogue()
	delete(e.vecs, "backend far")
	s := NewStore(e)

	err := s.Load(context.Background(), items)
	require.ErrorIs(t, err, ErrEmbeddingFailure)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Search(context.Background(), "query", "", 3))
}

func TestStore_QueryEmbeddingFailure(t *testing.T) {
	items, e := testCatalogue()
	s := NewStore(e)
	require.NoError(t, s.Load(context.Background(), items))

	assert.Empty(t, s.Search(context.Background(), "unknown query", "", 3))
}

func TestStore_LoadDimensionMismatch(t *testing.T) {
	items, e := testCatalogue()
	e.vecs["general far"] = []float32{1, 2, 3}
	s := NewStore(e)

	require.ErrorIs(t, s.Load(context.Background(), items), ErrEmbeddingFailure)
}

func TestStore_DefaultCatalogueWithHashEmbedder(t *testing.T) {
	s := NewStore(embedding.NewHashEmbedder(256), WithBatchOptions(embedding.BatchOptions{Concurrency: 8}))
	require.NoError(t, s.Load(context.Background(), DefaultCatalogue()))
	assert.Len(t, s.Items(), 36)

	got := s.Search(context.Background(), "Kubernetes container orchestration: pods, services, deployments, namespaces", CategoryDevOps, 2)
	require.NotEmpty(t, got)
	assert.Equal(t, "orchestration", got[0].Topic)

	for _, it := range s.Search(context.Background(), "database transactions and indexes", CategoryBackend, 3) {
		assert.Equal(t, CategoryBackend, it.Category)
	}
}

func TestStore_PositionContext(t *testing.T) {
	s := NewStore(embedding.NewHashEmbedder(256))
	require.NoError(t, s.Load(context.Background(), DefaultCatalogue()))

	got := s.PositionContext("QA Engineer", 8)
	require.Len(t, got, 8)
	for _, it := range got[:6] {
		assert.Equal(t, CategoryQA, it.Category)
	}
	for _, it := range got[6:] {
		assert.Equal(t, CategoryGeneral, it.Category)
	}
}

func TestStore_PositionContextUnknownRole(t *testing.T) {
	s := NewStore(embedding.NewHashEmbedder(64))
	assert.Nil(t, s.PositionContext("Blockchain Architect", 3))

	require.NoError(t, s.Load(context.Background(), DefaultCatalogue()))
	got := s.PositionContext("Blockchain Architect", 10)
	require.Len(t, got, 6)
	for _, it := range got {
		assert.Equal(t, CategoryGeneral, it.Category)
	}
}
