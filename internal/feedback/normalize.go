package feedback

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Field defaults applied when the model omits a value.
const (
	DefaultGrade          = GradeJunior
	DefaultRecommendation = RecommendHire
	DefaultConfidence     = 75
	DefaultRating         = RatingMedium
)

var (
	defaultConfirmed   = []string{"Basic knowledge"}
	defaultGaps        = []string{"Needs more practice"}
	defaultCorrections = []string{"Practice more on real projects"}
	defaultTopics      = []string{"Practice on real projects"}
	defaultLinks       = []string{"https://roadmap.sh/"}
)

// Normalize converts a decoded model reply into a Report. Values are read
// from the nested sections (verdict, hard_skills, soft_skills, roadmap)
// or, failing that, from the top level. Missing values take defaults,
// enums match case-insensitively, confidence is clamped to 0..100 and
// corrections are cut to the number of gaps. RoadmapResources and Source
// are left for the caller.
func Normalize(raw map[string]any) Report {
	r := Report{
		Grade:          matchEnum(lookup(raw, "verdict", "grade"), DefaultGrade, GradeJunior, GradeMiddle, GradeSenior),
		Recommendation: matchEnum(lookup(raw, "verdict", "recommendation"), DefaultRecommendation, RecommendHire, RecommendNoHire, RecommendStrongHire),
		Confidence:     confidence(lookup(raw, "verdict", "confidence_score", "confidence")),

		ConfirmedSkills: stringList(lookup(raw, "hard_skills", "confirmed_skills"), defaultConfirmed),
		KnowledgeGaps:   stringList(lookup(raw, "hard_skills", "knowledge_gaps"), defaultGaps),
		Corrections:     stringList(lookup(raw, "hard_skills", "corrections"), defaultCorrections),

		SoftSkills: SoftSkills{
			Clarity:    rating(lookup(raw, "soft_skills", "clarity")),
			Honesty:    rating(lookup(raw, "soft_skills", "honesty")),
			Engagement: rating(lookup(raw, "soft_skills", "engagement")),
		},

		RoadmapTopics: stringList(lookup(raw, "roadmap", "topics"), defaultTopics),
		RoadmapLinks:  stringList(lookup(raw, "roadmap", "resources", "links"), defaultLinks),
	}
	if len(r.Corrections) > len(r.KnowledgeGaps) {
		r.Corrections = r.Corrections[:len(r.KnowledgeGaps)]
	}
	return r
}

// lookup returns the first key present in raw[section], then in raw.
func lookup(raw map[string]any, section string, keys ...string) any {
	if sec, ok := raw[section].(map[string]any); ok {
		for _, k := range keys {
			if v, ok := sec[k]; ok {
				return v
			}
		}
	}
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v
		}
	}
	return nil
}

// enumKey folds case and drops separators so "no-hire" matches "No Hire".
func enumKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

func matchEnum[T ~string](v any, def T, allowed ...T) T {
	s, ok := v.(string)
	if !ok {
		return def
	}
	key := enumKey(s)
	for _, a := range allowed {
		if key == enumKey(string(a)) {
			return a
		}
	}
	return def
}

func rating(v any) Rating {
	return matchEnum(v, DefaultRating, RatingLow, RatingMedium, RatingHigh)
}

func confidence(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%")), 64)
		if err != nil {
			return DefaultConfidence
		}
		f = p
	default:
		return DefaultConfidence
	}
	if math.IsNaN(f) {
		return DefaultConfidence
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}

// stringList accepts a list or a single string. A missing value takes def;
// a present value keeps only its non-blank strings.
func stringList(v any, def []string) []string {
	switch x := v.(type) {
	case nil:
		return append([]string(nil), def...)
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return []string{s}
		}
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return append([]string(nil), def...)
	}
}
