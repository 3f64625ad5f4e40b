package model

import (
	"time"

	"github.com/google/uuid"
)

// SkillMatrix is the categorized skill breakdown produced by the model.
type SkillMatrix struct {
	Technical          []string `json:"technical"`
	SoftSkills         []string `json:"soft_skills"`
	IndustrySpecific   []string `json:"industry_specific"`
	ToolsSoftware      []string `json:"tools_software"`
	SuggestedAdditions []string `json:"suggested_additions"`
}

// EnhancedExperience is a rewritten work experience entry with bullet points.
type EnhancedExperience struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Description []string `json:"enhanced_description"`
}

// ATSReport is the applicant-tracking-system compatibility analysis.
type ATSReport struct {
	KeywordsToAdd           []string `json:"keywords_to_add"`
	FormattingImprovements  []string `json:"formatting_improvements"`
	OrganizationSuggestions []string `json:"organization_suggestions"`
	RedFlagsFound           []string `json:"red_flags_found"`
	OverallScore            int      `json:"overall_ats_score"`
}

// Enhancement is the full AI enhancement result for a resume.
type Enhancement struct {
	ID          uuid.UUID            `json:"id"`
	ResumeID    uuid.UUID            `json:"resume_id"`
	Summary     string               `json:"enhanced_summary"`
	Skills      SkillMatrix          `json:"enhanced_skills"`
	Experience  []EnhancedExperience `json:"enhanced_experience"`
	Suggestions []string             `json:"suggested_improvements"`
	ATS         ATSReport            `json:"ats_optimizations"`
	FullContent string               `json:"enhanced_full_content"`
	ModelUsed   string               `json:"model_used"`
	// Fallback is true when any step was produced without the model
	// (unconfigured key, API error, or unparseable response).
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}
