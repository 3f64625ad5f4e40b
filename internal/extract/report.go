package extract

import (
	"regexp"
	"strings"

	"github.com/vitaworks/vitae-backend/internal/model"
)

// sectionKeywords are the standard resume section headers counted toward the
// content quality score.
var sectionKeywords = []string{"experience", "education", "skills", "summary", "objective"}

var compactPhonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)

// ValidateEntities reports essential information missing from the extraction.
// The report never invalidates the upload; it only carries advice.
func ValidateEntities(entities model.ParsedEntities) model.ExtractionReport {
	report := model.ExtractionReport{
		Valid:       true,
		Warnings:    []string{},
		Suggestions: []string{},
	}

	if entities.Contact.Email == "" {
		report.Warnings = append(report.Warnings, "No email address found")
		report.Suggestions = append(report.Suggestions, "Consider adding your email address")
	}
	if entities.Contact.Phone == "" {
		report.Warnings = append(report.Warnings, "No phone number found")
		report.Suggestions = append(report.Suggestions, "Consider adding your phone number")
	}
	if len(entities.Skills) == 0 {
		report.Warnings = append(report.Warnings, "No skills detected")
		report.Suggestions = append(report.Suggestions, "Consider adding a skills section")
	}
	if len(entities.Experience) == 0 {
		report.Warnings = append(report.Warnings, "No work experience detected")
		report.Suggestions = append(report.Suggestions, "Consider adding work experience details")
	}

	return report
}

// ScoreContent rates extracted text 0-100: length, recognizable sections,
// visible contact details, and structure (bullets or enough lines) all add
// points.
func ScoreContent(content string) model.ContentQuality {
	quality := model.ContentQuality{
		Valid:       true,
		Issues:      []string{},
		Suggestions: []string{},
	}

	if strings.TrimSpace(content) == "" {
		quality.Valid = false
		quality.Issues = append(quality.Issues, "No content extracted from file")
		return quality
	}

	score := 0
	if len(content) > 100 {
		score += 20
	}

	lower := strings.ToLower(content)
	foundSections := 0
	for _, section := range sectionKeywords {
		if strings.Contains(lower, section) {
			foundSections++
		}
	}
	score += foundSections * 15

	hasEmail := emailPattern.MatchString(content)
	if hasEmail {
		score += 15
	}
	if compactPhonePattern.MatchString(content) {
		score += 10
	}

	if strings.Contains(content, "•") || strings.Contains(content, "*") ||
		strings.Count(content, "\n") > 5 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	quality.Score = score

	if score < 50 {
		quality.Suggestions = append(quality.Suggestions,
			"Content quality seems low - ensure the file is not corrupted")
	}
	if foundSections < 2 {
		quality.Suggestions = append(quality.Suggestions,
			"Consider using a more structured resume format")
	}
	if !hasEmail {
		quality.Suggestions = append(quality.Suggestions,
			"Make sure your contact email is clearly visible")
	}

	return quality
}
