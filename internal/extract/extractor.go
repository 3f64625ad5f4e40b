// Package extract pulls structured entities out of raw resume text.
package extract

import (
	"regexp"
	"strings"

	"github.com/vitaworks/vitae-backend/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Tried in order; the first match wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\+?1[-\s]?)?\(?([0-9]{3})\)?[-\s]?([0-9]{3})[-\s]?([0-9]{4})`),
		regexp.MustCompile(`(\+?\d{1,3}[-\s]?)?\(?\d{3}\)?[-\s]?\d{3}[-\s]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`),
	}

	roleAlternatives = `Software Engineer|Data Scientist|Project Manager|Developer|Analyst|Manager|Director|Lead|Senior|Junior`

	// "Software Engineer at Acme Corp"
	roleAtCompanyPattern = regexp.MustCompile(`(?i)(` + roleAlternatives + `)\s+at\s+([A-Za-z0-9 &]+)`)
	// "Acme Corp – Software Engineer"
	companyDashRolePattern = regexp.MustCompile(`(?i)([A-Za-z0-9 &]+)\s*[-–]\s*(` + roleAlternatives + `)`)

	// Two to four capitalized words, e.g. "Jane Smith" or "Mary-Anne O'Neill".
	namePattern = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]*(?: [A-Z][a-zA-Z'.-]*){1,3}$`)
)

// skillKeywords is the allow-list of detectable skills.
var skillKeywords = []string{
	"Python", "Java", "JavaScript", "React", "Node.js", "SQL", "MongoDB",
	"Machine Learning", "Data Science", "AI", "TensorFlow", "PyTorch",
	"AWS", "Docker", "Kubernetes", "Git", "Linux", "HTML", "CSS", "Go",
	"Project Management", "Leadership", "Communication", "Problem Solving",
	"Teamwork", "Critical Thinking", "Time Management",
}

// educationKeywords flag degrees, institutions, and common fields of study.
var educationKeywords = []string{
	"Bachelor", "Master", "PhD", "University", "College", "Institute",
	"Computer Science", "Engineering", "Business", "Mathematics",
	"B.S.", "M.S.", "MBA", "B.A.", "M.A.",
}

// Entities extracts contact info, skills, experience, and education from
// resume text. Extraction is purely pattern-based and never fails; fields
// that cannot be found stay empty.
func Entities(text string) model.ParsedEntities {
	entities := model.ParsedEntities{
		Skills:     []string{},
		Experience: []model.ExperienceEntry{},
		Education:  []string{},
	}

	entities.Name = findName(text)

	if email := emailPattern.FindString(text); email != "" {
		entities.Contact.Email = email
	}
	entities.Contact.Phone = findPhone(text)

	lower := strings.ToLower(text)
	for _, skill := range skillKeywords {
		if strings.Contains(lower, strings.ToLower(skill)) {
			entities.Skills = append(entities.Skills, skill)
		}
	}

	entities.Experience = findExperience(text)

	for _, kw := range educationKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			entities.Education = append(entities.Education, kw)
		}
	}

	return entities
}

// findName guesses the candidate's name: resumes put it at the top, so scan
// the first few non-empty lines for a short capitalized phrase carrying no
// contact details.
func findName(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 5 {
			break
		}
		if strings.ContainsAny(line, "@0123456789,|:") {
			continue
		}
		// All-caps lines are section headings, not names.
		if line == strings.ToUpper(line) {
			continue
		}
		if namePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func findPhone(text string) string {
	for _, pattern := range phonePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			// Join capture groups, dropping parens kept outside them.
			return strings.TrimSpace(strings.Join(m[1:], ""))
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

func findExperience(text string) []model.ExperienceEntry {
	entries := []model.ExperienceEntry{}
	seen := make(map[string]bool)

	add := func(role, company string) {
		role = strings.TrimSpace(role)
		company = strings.TrimSpace(company)
		if role == "" || company == "" {
			return
		}
		key := strings.ToLower(role + "|" + company)
		if seen[key] {
			return
		}
		seen[key] = true
		entries = append(entries, model.ExperienceEntry{Role: role, Company: company})
	}

	for _, m := range roleAtCompanyPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	for _, m := range companyDashRolePattern.FindAllStringSubmatch(text, -1) {
		add(m[2], m[1])
	}

	return entries
}
