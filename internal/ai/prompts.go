package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vitaworks/vitae-backend/internal/model"
)

// Content passed to prompts is truncated to keep requests inside token limits.
const (
	summaryContentLimit    = 2000
	pipelineContentLimit   = 1500
	coverLetterResumeLimit = 1500
	jobDescriptionLimit    = 800
)

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back up to a rune boundary so the cut never produces invalid UTF-8.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func summaryPrompt(content string, entities model.ParsedEntities) string {
	return fmt.Sprintf(`You are a professional resume writer. Enhance the following resume content by creating a compelling professional summary.

Original Resume Content:
%s

Contact Info: email %q, phone %q
Skills: %s
Experience: %s

Create a professional summary that:
1. Highlights key strengths and achievements
2. Is 3-4 sentences long
3. Uses action verbs and quantifiable results
4. Is tailored to the person's experience level
5. Includes relevant keywords for ATS optimization

Return only the enhanced professional summary, no additional text.`,
		truncate(content, summaryContentLimit),
		entities.Contact.Email, entities.Contact.Phone,
		strings.Join(entities.Skills, ", "),
		formatExperience(entities.Experience))
}

func skillsPrompt(skills []string) string {
	skillsText := "No skills detected"
	if len(skills) > 0 {
		skillsText = strings.Join(skills, ", ")
	}

	return fmt.Sprintf(`You are a career advisor. Analyze these skills and enhance them:

Current Skills: %s

Please:
1. Add relevant missing skills that complement the existing ones
2. Categorize skills into: Technical, Soft Skills, Industry-Specific, Tools/Software
3. Suggest 3-5 additional skills that would be valuable
4. Ensure skills are ATS-friendly and use standard terminology

Return the response in this JSON format:
{
  "technical": [],
  "soft_skills": [],
  "industry_specific": [],
  "tools_software": [],
  "suggested_additions": []
}

Return only valid JSON, no additional text.`, skillsText)
}

func experiencePrompt(content string, experience []model.ExperienceEntry) string {
	return fmt.Sprintf(`You are a professional resume writer. Enhance these work experience entries:

Original Content: %s
Current Experience: %s

For each role, create enhanced descriptions that:
1. Use strong action verbs
2. Include quantifiable achievements where possible
3. Are 2-3 bullet points each
4. Show impact and results
5. Use ATS-friendly keywords

Return as JSON array with format:
[
  {
    "role": "job title",
    "company": "company name",
    "enhanced_description": ["bullet point 1", "bullet point 2", "bullet point 3"]
  }
]

Return only valid JSON, no additional text.`,
		truncate(content, pipelineContentLimit),
		formatExperience(experience))
}

func suggestionsPrompt(content string, entities model.ParsedEntities) string {
	return fmt.Sprintf(`You are a resume expert. Analyze this resume and suggest specific improvements:

Resume Content: %s
Detected Skills: %s
Detected Experience: %s

Provide 5-7 specific, actionable improvement suggestions that:
1. Address content gaps
2. Improve ATS compatibility
3. Enhance professional presentation
4. Strengthen impact statements
5. Improve keyword optimization

Format as a simple list, one suggestion per line starting with "•".
Return only the suggestions, no additional text.`,
		truncate(content, pipelineContentLimit),
		strings.Join(entities.Skills, ", "),
		formatExperience(entities.Experience))
}

func atsPrompt(content string) string {
	return fmt.Sprintf(`You are an ATS optimization expert. Analyze this resume for ATS compatibility:

Content: %s

Provide specific ATS optimization recommendations including:
1. Keywords that should be added
2. Formatting improvements
3. Section organization suggestions
4. Common ATS red flags to avoid

Return as JSON:
{
  "keywords_to_add": [],
  "formatting_improvements": [],
  "organization_suggestions": [],
  "red_flags_found": [],
  "overall_ats_score": 0
}

The overall_ats_score must be a number between 0 and 100.
Return only valid JSON, no additional text.`, truncate(content, pipelineContentLimit))
}

func fullResumePrompt(enhancement *model.Enhancement) string {
	return fmt.Sprintf(`Create a complete, professional resume using this enhanced data:

Enhanced Summary: %s
Enhanced Skills: %s
Enhanced Experience: %s

Format as a clean, professional resume with:
1. Professional Summary section
2. Core Competencies/Skills section
3. Professional Experience section
4. Use consistent formatting
5. ATS-friendly structure
6. Action verbs and quantified achievements

Return only the formatted resume content, no additional text.`,
		enhancement.Summary,
		strings.Join(append(enhancement.Skills.Technical, enhancement.Skills.SoftSkills...), ", "),
		formatEnhancedExperience(enhancement.Experience))
}

func formatExperience(experience []model.ExperienceEntry) string {
	if len(experience) == 0 {
		return "None detected"
	}
	parts := make([]string, 0, len(experience))
	for _, e := range experience {
		parts = append(parts, fmt.Sprintf("%s at %s", e.Role, e.Company))
	}
	return strings.Join(parts, "; ")
}

func formatEnhancedExperience(experience []model.EnhancedExperience) string {
	if len(experience) == 0 {
		return "None"
	}
	var sb strings.Builder
	for _, e := range experience {
		fmt.Fprintf(&sb, "%s - %s: %s\n", e.Role, e.Company, strings.Join(e.Description, "; "))
	}
	return sb.String()
}

// ─── Cover letter prompts ───────────────────────────────────────────────────

func professionalLetterPrompt(resumeContent string, prefs model.Preferences, jobDescription, companyName string) string {
	return fmt.Sprintf(`You are a professional career coach. Write a compelling cover letter using this information:

Resume Summary: %s
Desired Role: %s
Experience Level: %s
Company: %s
Job Description: %s
Work Arrangement: %s
Location: %s

Write a professional cover letter that:
1. Opens with a strong hook that mentions the specific role
2. Highlights relevant experience and achievements
3. Shows knowledge of the company (if company name provided)
4. Demonstrates value proposition
5. Includes a professional closing
6. Is 3-4 paragraphs, approximately 250-300 words
7. Uses professional tone throughout
8. Includes specific examples from the resume

Format as a complete cover letter with proper salutation and closing.
Return only the cover letter content, no additional text.`,
		truncate(resumeContent, coverLetterResumeLimit),
		orDefault(prefs.DesiredRole, "Professional Position"),
		orDefault(prefs.ExperienceLevel, "Mid-Level"),
		orDefault(companyName, "the organization"),
		orDefault(truncate(jobDescription, jobDescriptionLimit), "Not provided"),
		orDefault(prefs.WorkArrangement, "Any"),
		orDefault(prefs.Location, "Flexible"))
}

func creativeLetterPrompt(resumeContent string, prefs model.Preferences, companyName string) string {
	return fmt.Sprintf(`You are a creative writing expert. Write an engaging, creative cover letter using this information:

Resume Summary: %s
Desired Role: %s
Experience Level: %s
Company: %s

Write a creative cover letter that:
1. Opens with an engaging story or unique angle
2. Shows personality while maintaining professionalism
3. Uses creative language and metaphors
4. Demonstrates passion and enthusiasm
5. Still includes relevant qualifications
6. Has a memorable closing
7. Is 3-4 paragraphs, approximately 250-300 words
8. Balances creativity with professional requirements

Format as a complete cover letter.
Return only the cover letter content, no additional text.`,
		truncate(resumeContent, coverLetterResumeLimit),
		orDefault(prefs.DesiredRole, "Creative Position"),
		orDefault(prefs.ExperienceLevel, "Mid-Level"),
		orDefault(companyName, "the organization"))
}

func technicalLetterPrompt(resumeContent string, prefs model.Preferences, jobDescription, companyName string) string {
	return fmt.Sprintf(`You are a technical recruiter. Write a technical cover letter using this information:

Resume Summary: %s
Desired Role: %s
Experience Level: %s
Company: %s
Job Description: %s

Write a technical cover letter that:
1. Focuses on technical skills and achievements
2. Includes specific technologies and methodologies
3. Mentions relevant projects and outcomes
4. Shows problem-solving capabilities
5. Demonstrates technical depth
6. Uses industry-appropriate terminology
7. Is 3-4 paragraphs, approximately 250-300 words
8. Balances technical details with business impact

Format as a complete cover letter.
Return only the cover letter content, no additional text.`,
		truncate(resumeContent, coverLetterResumeLimit),
		orDefault(prefs.DesiredRole, "Technical Position"),
		orDefault(prefs.ExperienceLevel, "Mid-Level"),
		orDefault(companyName, "the organization"),
		orDefault(truncate(jobDescription, jobDescriptionLimit), "Not provided"))
}

func entryLevelLetterPrompt(resumeContent string, prefs model.Preferences, companyName string) string {
	return fmt.Sprintf(`You are a career counselor for new graduates. Write an entry-level cover letter using this information:

Resume Summary: %s
Desired Role: %s
Company: %s

Write an entry-level cover letter that:
1. Emphasizes potential and enthusiasm over extensive experience
2. Highlights relevant education, internships, and projects
3. Shows eagerness to learn and grow
4. Demonstrates relevant skills and knowledge
5. Expresses genuine interest in the company/role
6. Focuses on transferable skills
7. Is 3-4 paragraphs, approximately 250-300 words
8. Maintains confident yet humble tone

Format as a complete cover letter.
Return only the cover letter content, no additional text.`,
		truncate(resumeContent, coverLetterResumeLimit),
		orDefault(prefs.DesiredRole, "Entry Level Position"),
		orDefault(companyName, "the organization"))
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
