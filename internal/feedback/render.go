package feedback

import (
	"fmt"
	"io"
	"strings"
)

const rule = "============================================================"

// Render writes the report as plain text in four sections.
func Render(w io.Writer, name, role string, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nFINAL INTERVIEW FEEDBACK\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Candidate: %s\nPosition:  %s\n%s\n", name, role, rule)

	b.WriteString("\nA. VERDICT\n")
	fmt.Fprintf(&b, "   Grade:                 %s\n", r.Grade)
	fmt.Fprintf(&b, "   Hiring recommendation: %s\n", r.Recommendation)
	fmt.Fprintf(&b, "   Confidence:            %d%%\n", r.Confidence)

	b.WriteString("\nB. HARD SKILLS\n")
	b.WriteString("   Confirmed skills:\n")
	for i, s := range r.ConfirmedSkills {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, s)
	}
	b.WriteString("   Knowledge gaps:\n")
	for i, g := range r.KnowledgeGaps {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, g)
		if i < len(r.Corrections) {
			fmt.Fprintf(&b, "         Correct answer: %s\n", r.Corrections[i])
		}
	}

	b.WriteString("\nC. SOFT SKILLS\n")
	fmt.Fprintf(&b, "   Clarity:    %s\n", r.SoftSkills.Clarity)
	fmt.Fprintf(&b, "   Honesty:    %s\n", r.SoftSkills.Honesty)
	fmt.Fprintf(&b, "   Engagement: %s\n", r.SoftSkills.Engagement)

	b.WriteString("\nD. ROADMAP\n")
	for i, t := range r.RoadmapTopics {
		fmt.Fprintf(&b, "   %d. %s\n", i+1, t)
		if i < len(r.RoadmapLinks) {
			fmt.Fprintf(&b, "      %s\n", r.RoadmapLinks[i])
		}
	}
	if len(r.RoadmapResources) > 0 {
		b.WriteString("\n   Resources:\n")
		for _, res := range r.RoadmapResources {
			fmt.Fprintf(&b, "   - %s (%s)\n", res.Topic, res.Recommended)
			fmt.Fprintf(&b, "     %s: %s\n", res.Description, res.URL)
			if res.Reference != "" {
				fmt.Fprintf(&b, "     Note: %s\n", res.Reference)
			}
		}
	}
	fmt.Fprintf(&b, "\n%s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}
