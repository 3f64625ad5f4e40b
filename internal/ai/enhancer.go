package ai

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// EnhanceStages lists the pipeline steps in execution order. Progress
// callbacks receive these names.
var EnhanceStages = []string{"summary", "skills", "experience", "suggestions", "ats", "full_resume"}

// ProgressFunc is invoked after each completed pipeline stage.
type ProgressFunc func(stage string, done, total int)

// Enhancer runs the resume enhancement pipeline against the model, step by
// step, falling back per step so a single bad response never sinks the run.
type Enhancer struct {
	client *Client
	log    zerolog.Logger
}

// NewEnhancer creates an Enhancer on top of a (possibly unavailable) client.
func NewEnhancer(client *Client, log zerolog.Logger) *Enhancer {
	return &Enhancer{
		client: client,
		log:    log.With().Str("component", "enhancer").Logger(),
	}
}

// EnhanceResume produces the full enhancement for a resume. progress may be
// nil. The returned Enhancement always has every field populated; Fallback
// is set when any step was served from deterministic output.
func (e *Enhancer) EnhanceResume(ctx context.Context, resumeID uuid.UUID, content string, entities model.ParsedEntities, progress ProgressFunc) *model.Enhancement {
	total := len(EnhanceStages)
	report := func(stage string, done int) {
		if progress != nil {
			progress(stage, done, total)
		}
	}

	enhancement := &model.Enhancement{
		ID:        uuid.New(),
		ResumeID:  resumeID,
		ModelUsed: e.client.model,
		CreatedAt: time.Now().UTC(),
	}

	enhancement.Summary = e.enhanceSummary(ctx, content, entities, enhancement)
	report("summary", 1)

	enhancement.Skills = e.enhanceSkills(ctx, entities.Skills, enhancement)
	report("skills", 2)

	enhancement.Experience = e.enhanceExperience(ctx, content, entities.Experience, enhancement)
	report("experience", 3)

	enhancement.Suggestions = e.suggestImprovements(ctx, content, entities, enhancement)
	report("suggestions", 4)

	enhancement.ATS = e.optimizeForATS(ctx, content, enhancement)
	report("ats", 5)

	enhancement.FullContent = e.generateFullResume(ctx, content, enhancement)
	report("full_resume", 6)

	return enhancement
}

func (e *Enhancer) enhanceSummary(ctx context.Context, content string, entities model.ParsedEntities, enhancement *model.Enhancement) string {
	text, err := e.client.Generate(ctx, summaryPrompt(content, entities))
	if err != nil {
		e.logStepFailure("summary", err, enhancement)
		return fallbackSummary(entities)
	}
	return text
}

func (e *Enhancer) enhanceSkills(ctx context.Context, skills []string, enhancement *model.Enhancement) model.SkillMatrix {
	raw, err := e.client.Generate(ctx, skillsPrompt(skills))
	if err != nil {
		e.logStepFailure("skills", err, enhancement)
		return fallbackSkillMatrix(skills)
	}

	var matrix model.SkillMatrix
	if err := decodeModelJSON(raw, &matrix); err != nil {
		e.logStepFailure("skills", err, enhancement)
		return fallbackSkillMatrix(skills)
	}
	return matrix
}

func (e *Enhancer) enhanceExperience(ctx context.Context, content string, experience []model.ExperienceEntry, enhancement *model.Enhancement) []model.EnhancedExperience {
	if len(experience) == 0 {
		return []model.EnhancedExperience{}
	}

	raw, err := e.client.Generate(ctx, experiencePrompt(content, experience))
	if err != nil {
		e.logStepFailure("experience", err, enhancement)
		return fallbackExperience(experience)
	}

	var enhanced []model.EnhancedExperience
	if err := decodeModelJSON(raw, &enhanced); err != nil {
		e.logStepFailure("experience", err, enhancement)
		return fallbackExperience(experience)
	}
	return enhanced
}

func (e *Enhancer) suggestImprovements(ctx context.Context, content string, entities model.ParsedEntities, enhancement *model.Enhancement) []string {
	raw, err := e.client.Generate(ctx, suggestionsPrompt(content, entities))
	if err != nil {
		e.logStepFailure("suggestions", err, enhancement)
		return fallbackSuggestions()
	}

	var suggestions []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			suggestions = append(suggestions, trimmed)
		}
	}
	if len(suggestions) == 0 {
		return fallbackSuggestions()
	}
	return suggestions
}

func (e *Enhancer) optimizeForATS(ctx context.Context, content string, enhancement *model.Enhancement) model.ATSReport {
	raw, err := e.client.Generate(ctx, atsPrompt(content))
	if err != nil {
		e.logStepFailure("ats", err, enhancement)
		return fallbackATSReport()
	}

	var report model.ATSReport
	if err := decodeModelJSON(raw, &report); err != nil {
		e.logStepFailure("ats", err, enhancement)
		return fallbackATSReport()
	}
	if report.OverallScore < 0 {
		report.OverallScore = 0
	}
	if report.OverallScore > 100 {
		report.OverallScore = 100
	}
	return report
}

func (e *Enhancer) generateFullResume(ctx context.Context, content string, enhancement *model.Enhancement) string {
	text, err := e.client.Generate(ctx, fullResumePrompt(enhancement))
	if err != nil {
		e.logStepFailure("full_resume", err, enhancement)
		if fallback := fallbackFullResume(enhancement); fallback != "" {
			return fallback
		}
		return content // Last resort: hand back the original.
	}
	return text
}

func (e *Enhancer) logStepFailure(stage string, err error, enhancement *model.Enhancement) {
	enhancement.Fallback = true
	// Unconfigured client is the expected degraded mode, not an error.
	if err == ErrUnavailable {
		e.log.Debug().Str("stage", stage).Msg("model unavailable, using fallback")
		return
	}
	e.log.Warn().Err(err).Str("stage", stage).Msg("enhancement step failed, using fallback")
}
