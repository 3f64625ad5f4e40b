package ai

import (
	"fmt"
	"strings"

	"github.com/vitaworks/vitae-backend/internal/model"
)

// Deterministic outputs used when the model is unconfigured, errors out, or
// returns something unparseable. Ported keyword tables keep the categories
// stable across runs.

var (
	fallbackTechnicalKeywords = []string{"python", "java", "sql", "javascript", "html", "css", "react", "node", "go", "docker"}
	fallbackSoftKeywords      = []string{"communication", "leadership", "teamwork", "problem solving", "management"}
)

func fallbackSummary(entities model.ParsedEntities) string {
	if len(entities.Skills) > 0 && len(entities.Experience) > 0 {
		topSkills := entities.Skills
		if len(topSkills) > 3 {
			topSkills = topSkills[:3]
		}
		return fmt.Sprintf(
			"Experienced professional with expertise in %s. Proven track record in %s with strong analytical and problem-solving abilities. Committed to delivering high-quality results and driving organizational success.",
			strings.Join(topSkills, ", "), entities.Experience[0].Role)
	}
	return "Dedicated professional with strong analytical and problem-solving skills. Committed to continuous learning and delivering excellent results in challenging environments."
}

func fallbackSkillMatrix(skills []string) model.SkillMatrix {
	matrix := model.SkillMatrix{
		Technical:          []string{},
		SoftSkills:         []string{},
		IndustrySpecific:   []string{},
		ToolsSoftware:      []string{},
		SuggestedAdditions: []string{"Problem Solving", "Critical Thinking", "Time Management"},
	}

	for _, skill := range skills {
		lower := strings.ToLower(skill)
		switch {
		case matchesAny(lower, fallbackTechnicalKeywords):
			matrix.Technical = append(matrix.Technical, skill)
		case matchesAny(lower, fallbackSoftKeywords):
			matrix.SoftSkills = append(matrix.SoftSkills, skill)
		default:
			matrix.IndustrySpecific = append(matrix.IndustrySpecific, skill)
		}
	}
	return matrix
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func fallbackExperience(experience []model.ExperienceEntry) []model.EnhancedExperience {
	enhanced := make([]model.EnhancedExperience, 0, len(experience))
	for _, exp := range experience {
		role := orDefault(exp.Role, "Professional")
		enhanced = append(enhanced, model.EnhancedExperience{
			Role:    role,
			Company: orDefault(exp.Company, "Organization"),
			Description: []string{
				fmt.Sprintf("Successfully performed %s responsibilities", role),
				"Collaborated with cross-functional teams to achieve organizational goals",
				"Contributed to process improvements and operational efficiency",
			},
		})
	}
	return enhanced
}

func fallbackSuggestions() []string {
	return []string{
		"• Add quantifiable achievements with specific numbers and percentages",
		"• Include relevant keywords for your target industry",
		"• Ensure consistent formatting throughout the document",
		"• Add a professional summary at the top",
		"• Include both technical and soft skills",
		"• Use action verbs to start bullet points",
		"• Consider adding relevant certifications or training",
	}
}

func fallbackATSReport() model.ATSReport {
	return model.ATSReport{
		KeywordsToAdd:           []string{"Leadership", "Project Management", "Data Analysis", "Communication"},
		FormattingImprovements:  []string{"Use standard fonts", "Avoid graphics", "Use simple bullet points"},
		OrganizationSuggestions: []string{"Add contact information at top", "Use clear section headers"},
		RedFlagsFound:           []string{"Check for spelling errors", "Ensure consistent formatting"},
		OverallScore:            75,
	}
}

func fallbackFullResume(enhancement *model.Enhancement) string {
	var sb strings.Builder

	sb.WriteString("PROFESSIONAL SUMMARY\n")
	sb.WriteString(orDefault(enhancement.Summary,
		"Experienced professional with strong skills and dedication to excellence."))
	sb.WriteString("\n\nCORE COMPETENCIES\n")
	sb.WriteString(strings.Join(append(enhancement.Skills.Technical, enhancement.Skills.SoftSkills...), ", "))
	sb.WriteString("\n\nPROFESSIONAL EXPERIENCE\n")

	for _, exp := range enhancement.Experience {
		fmt.Fprintf(&sb, "%s - %s\n", orDefault(exp.Role, "Role"), orDefault(exp.Company, "Company"))
		for _, bullet := range exp.Description {
			fmt.Fprintf(&sb, "• %s\n", bullet)
		}
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
