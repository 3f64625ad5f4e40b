package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// CoverLetterStyle enumerates the generated letter variants.
type CoverLetterStyle string

const (
	StyleProfessional CoverLetterStyle = "professional"
	StyleCreative     CoverLetterStyle = "creative"
	StyleTechnical    CoverLetterStyle = "technical"
	StyleEntryLevel   CoverLetterStyle = "entry_level"
)

// AllCoverLetterStyles lists every style in generation order.
var AllCoverLetterStyles = []CoverLetterStyle{
	StyleProfessional,
	StyleCreative,
	StyleTechnical,
	StyleEntryLevel,
}

// Preferences captures the user questionnaire driving letter generation.
type Preferences struct {
	DesiredRole     string `json:"desired_role" binding:"required,min=2,max=120"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=Entry-Level Mid-Level Senior-Level Executive"`
	ExpectedSalary  string `json:"expected_salary" binding:"omitempty,max=60"`
	Location        string `json:"location" binding:"omitempty,max=120"`
	WorkArrangement string `json:"work_arrangement" binding:"omitempty,oneof=Remote Hybrid On-site Any"`
	StartDate       string `json:"start_date" binding:"omitempty,max=40"`
	Relocate        bool   `json:"relocate"`
}

// Warnings returns soft validation hints that never block generation.
func (p *Preferences) Warnings() []string {
	var warnings []string
	if salary := strings.TrimSpace(p.ExpectedSalary); salary != "" {
		if !strings.ContainsFunc(salary, unicode.IsDigit) {
			warnings = append(warnings, "Salary field should contain numeric values")
		}
	}
	return warnings
}

// GenerateCoverLetterRequest is the payload for cover letter generation.
type GenerateCoverLetterRequest struct {
	Preferences    Preferences `json:"preferences" binding:"required"`
	JobDescription string      `json:"job_description" binding:"omitempty,max=8000"`
	CompanyName    string      `json:"company_name" binding:"omitempty,max=200"`
}

// CoverLetterSet is the persisted result of one generation run.
type CoverLetterSet struct {
	ID       uuid.UUID                   `json:"id"`
	ResumeID uuid.UUID                   `json:"resume_id"`
	Letters  map[CoverLetterStyle]string `json:"letters"`
	// Fallback is true when the letters came from templates, not the model.
	Fallback  bool      `json:"fallback"`
	Warnings  []string  `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
