package knowledge

import (
	"fmt"
	"strings"
)

// Category groups catalogue items and target roles.
type Category string

const (
	CategoryBackend  Category = "backend"
	CategoryFrontend Category = "frontend"
	CategoryQA       Category = "qa"
	CategoryDevOps   Category = "devops"
	CategoryML       Category = "ml"
	CategoryGeneral  Category = "general"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryBackend, CategoryFrontend, CategoryQA,
	CategoryDevOps, CategoryML, CategoryGeneral,
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// KeywordRule maps a set of lowercase keywords to a category.
type KeywordRule struct {
	Category Category
	Keywords []string
}

// RoleKeywords is the ordered table used to infer a category from a free
// text role label. The first rule with a keyword contained in the label
// wins, so more specific categories come first. "javascript" must be
// checked before "java", hence frontend precedes backend. Keywords with
// surrounding spaces match whole words only.
var RoleKeywords = []KeywordRule{
	{CategoryML, []string{
		"machine learning", " ml ", "mlops", "data scien", "data engineer",
		"data analyst", " data ", "deep learning", "computer vision", "nlp",
		" ai ", "машинн", "нейрон", "дата-сайент",
	}},
	{CategoryQA, []string{
		"qa", "quality", "tester", " test", "sdet", "тестиров",
	}},
	{CategoryDevOps, []string{
		"devops", "sre", "site reliability", "platform engineer", "infrastructure",
		"cloud engineer", "kubernetes", "docker", "инфраструктур",
	}},
	{CategoryFrontend, []string{
		"frontend", "front-end", "front end", "javascript", "typescript", "react",
		"vue", "angular", "ui developer", "фронтенд",
	}},
	{CategoryBackend, []string{
		"backend", "back-end", "back end", "server", "api", "java", "python",
		"golang", "go developer", "django", "spring", "node", "бэкенд",
	}},
}

// labelSeparators turn list punctuation into spaces so "AI/ML" exposes
// both words. Hyphens are kept for keywords such as "front-end".
var labelSeparators = strings.NewReplacer("/", " ", ",", " ", "(", " ", ")", " ", ";", " ", ".", " ")

// Classify infers a category from a role label. It returns fallback when
// no keyword matches. Matching is a case-insensitive substring test.
func Classify(label string, fallback Category) Category {
	l := " " + labelSeparators.Replace(strings.ToLower(label)) + " "
	for _, rule := range RoleKeywords {
		for _, kw := range rule.Keywords {
			if strings.Contains(l, kw) {
				return rule.Category
			}
		}
	}
	return fallback
}
