package feedback

import (
	"unicode/utf8"

	"github.com/abhisek/interviewer/internal/knowledge"
)

// Average answer length thresholds, in runes, for the default grade.
const (
	SeniorAvgRunes = 200
	MiddleAvgRunes = 100
	gradedAnswers  = 3
)

// DefaultGradeFor grades by the average length of the first three answers.
// Fewer than three answers is always Junior.
func DefaultGradeFor(answers []string) Grade {
	if len(answers) < gradedAnswers {
		return GradeJunior
	}
	total := 0
	for _, a := range answers[:gradedAnswers] {
		total += utf8.RuneCountInString(a)
	}
	avg := float64(total) / gradedAnswers
	switch {
	case avg > SeniorAvgRunes:
		return GradeSenior
	case avg > MiddleAvgRunes:
		return GradeMiddle
	default:
		return GradeJunior
	}
}

// DefaultReport is the deterministic report used when the model is
// unreachable or its reply has no parseable JSON.
func DefaultReport(role string, answers []string) *Report {
	category := knowledge.Classify(role, knowledge.CategoryBackend)
	return &Report{
		Grade:           DefaultGradeFor(answers),
		Recommendation:  DefaultRecommendation,
		Confidence:      DefaultConfidence,
		ConfirmedSkills: []string{"Basic knowledge", "Understanding of core concepts"},
		KnowledgeGaps:   []string{"Needs hands-on experience", "Deeper knowledge of specific technologies"},
		Corrections: []string{
			"Practice more on real projects",
			"Study the advanced concepts of the chosen technology",
		},
		SoftSkills: SoftSkills{Clarity: RatingMedium, Honesty: RatingHigh, Engagement: RatingMedium},
		RoadmapTopics: []string{
			"Practice on real projects",
			"Modern technologies in " + string(category),
		},
		RoadmapLinks: []string{
			"https://roadmap.sh/",
			"https://github.com/practical-tutorials/project-based-learning",
		},
		RoadmapResources: []Resource{{
			Topic:       "General development",
			Recommended: "IT fundamentals",
			URL:         "https://learn.microsoft.com/",
			Description: "Microsoft Learn: courses across IT",
		}},
		Source: SourceDefault,
	}
}
