// Package feedback turns a finished interview into a structured hiring
// report. It never fails: missing or unparseable model output degrades to
// documented defaults.
package feedback

// Grade is the seniority verdict.
type Grade string

const (
	GradeJunior Grade = "Junior"
	GradeMiddle Grade = "Middle"
	GradeSenior Grade = "Senior"
)

// Recommendation is the hiring verdict.
type Recommendation string

const (
	RecommendHire       Recommendation = "Hire"
	RecommendNoHire     Recommendation = "No Hire"
	RecommendStrongHire Recommendation = "Strong Hire"
)

// Rating scores one soft skill.
type Rating string

const (
	RatingLow    Rating = "Low"
	RatingMedium Rating = "Medium"
	RatingHigh   Rating = "High"
)

// Report sources.
const (
	SourceLLM     = "llm"
	SourceDefault = "default"
)

// SoftSkills rates communication.
type SoftSkills struct {
	Clarity    Rating `json:"clarity"`
	Honesty    Rating `json:"honesty"`
	Engagement Rating `json:"engagement"`
}

// Resource is a learning pointer for one knowledge gap.
type Resource struct {
	Topic       string `json:"topic"`             // the gap it addresses
	Recommended string `json:"recommended_topic"` // the matched table topic
	URL         string `json:"resource"`
	Description string `json:"description"`
	// Reference is a snippet from the knowledge store, if any.
	Reference string `json:"reference,omitempty"`
}

// Report is the final interview assessment.
// Invariant: len(Corrections) <= len(KnowledgeGaps).
type Report struct {
	Grade            Grade          `json:"grade"`
	Recommendation   Recommendation `json:"recommendation"`
	Confidence       int            `json:"confidence_score"`
	ConfirmedSkills  []string       `json:"confirmed_skills"`
	KnowledgeGaps    []string       `json:"knowledge_gaps"`
	Corrections      []string       `json:"corrections"`
	SoftSkills       SoftSkills     `json:"soft_skills"`
	RoadmapTopics    []string       `json:"roadmap_topics"`
	RoadmapLinks     []string       `json:"roadmap_links"`
	RoadmapResources []Resource     `json:"roadmap_resources"`
	Source           string         `json:"source"`
}

// QAPair is one question with the candidate's answer to it.
type QAPair struct {
	Question string
	Answer   string
}
