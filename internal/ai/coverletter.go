package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// LetterGenerator produces the four cover letter styles for a resume.
type LetterGenerator struct {
	client *Client
	log    zerolog.Logger
}

// NewLetterGenerator creates a LetterGenerator.
func NewLetterGenerator(client *Client, log zerolog.Logger) *LetterGenerator {
	return &LetterGenerator{
		client: client,
		log:    log.With().Str("component", "letter_generator").Logger(),
	}
}

// Generate builds one letter per style. Each style falls back to its template
// independently; a single API failure never drops the whole set. progress may
// be nil.
func (g *LetterGenerator) Generate(ctx context.Context, resumeID uuid.UUID, resumeContent string, req model.GenerateCoverLetterRequest, progress ProgressFunc) *model.CoverLetterSet {
	set := &model.CoverLetterSet{
		ID:        uuid.New(),
		ResumeID:  resumeID,
		Letters:   make(map[model.CoverLetterStyle]string, len(model.AllCoverLetterStyles)),
		Warnings:  req.Preferences.Warnings(),
		CreatedAt: time.Now().UTC(),
	}

	total := len(model.AllCoverLetterStyles)
	for i, style := range model.AllCoverLetterStyles {
		set.Letters[style] = g.generateStyle(ctx, style, resumeContent, req, set)
		if progress != nil {
			progress(string(style), i+1, total)
		}
	}

	return set
}

func (g *LetterGenerator) generateStyle(ctx context.Context, style model.CoverLetterStyle, resumeContent string, req model.GenerateCoverLetterRequest, set *model.CoverLetterSet) string {
	var prompt string
	switch style {
	case model.StyleProfessional:
		prompt = professionalLetterPrompt(resumeContent, req.Preferences, req.JobDescription, req.CompanyName)
	case model.StyleCreative:
		prompt = creativeLetterPrompt(resumeContent, req.Preferences, req.CompanyName)
	case model.StyleTechnical:
		prompt = technicalLetterPrompt(resumeContent, req.Preferences, req.JobDescription, req.CompanyName)
	case model.StyleEntryLevel:
		prompt = entryLevelLetterPrompt(resumeContent, req.Preferences, req.CompanyName)
	}

	text, err := g.client.Generate(ctx, prompt)
	if err != nil {
		set.Fallback = true
		if err != ErrUnavailable {
			g.log.Warn().Err(err).Str("style", string(style)).Msg("letter generation failed, using fallback")
		}
		return fallbackLetter(style, req.Preferences, req.CompanyName)
	}
	return text
}

// ─── Fallback letters ───────────────────────────────────────────────────────

func fallbackLetter(style model.CoverLetterStyle, prefs model.Preferences, companyName string) string {
	switch style {
	case model.StyleCreative:
		return fallbackCreativeLetter(prefs, companyName)
	case model.StyleTechnical:
		return fallbackTechnicalLetter(prefs, companyName)
	case model.StyleEntryLevel:
		return fallbackEntryLevelLetter(prefs, companyName)
	default:
		return fallbackProfessionalLetter(prefs, companyName)
	}
}

func fallbackProfessionalLetter(prefs model.Preferences, companyName string) string {
	role := orDefault(prefs.DesiredRole, "this position")
	company := orDefault(companyName, "your organization")

	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %s position at %s. With my background in %s experience, I am confident that I would be a valuable addition to your team.

Throughout my career, I have developed strong analytical and problem-solving skills that align well with the requirements of this role. My experience has taught me the importance of attention to detail, effective communication, and collaborative teamwork. I am particularly drawn to %s because of its reputation for innovation and excellence in the industry.

I am excited about the opportunity to contribute to your team's success and would welcome the chance to discuss how my skills and enthusiasm can benefit %s. I am available for %s work arrangements and can start on %s.

Thank you for considering my application. I look forward to hearing from you soon.

Sincerely,
[Your Name]`,
		role, company,
		orDefault(prefs.ExperienceLevel, "professional"),
		company, company,
		orDefault(prefs.WorkArrangement, "any"),
		orDefault(prefs.StartDate, "the agreed upon date"))
}

func fallbackCreativeLetter(prefs model.Preferences, companyName string) string {
	role := orDefault(prefs.DesiredRole, "this exciting position")
	company := orDefault(companyName, "your innovative organization")

	return fmt.Sprintf(`Dear Creative Team,

Picture this: a passionate professional who doesn't just meet expectations but consistently exceeds them. That's the energy I bring to every project, and it's exactly what I'd love to contribute to the %s at %s.

My journey has been anything but conventional. Each experience has shaped my unique perspective and strengthened my ability to think outside the box. Whether working on complex projects or collaborating with diverse teams, I've learned that the best solutions often come from the most unexpected places. This creative problem-solving approach is what I'm most excited to bring to %s.

What truly excites me about this opportunity is the chance to blend my %s expertise with %s's innovative culture. I believe that great work happens when passion meets purpose, and I see tremendous potential for both in this role.

I'd love the opportunity to share more about how my unique perspective and enthusiasm can contribute to your team's continued success.

Best regards,
[Your Name]`,
		role, company, company,
		orDefault(prefs.ExperienceLevel, "growing"),
		company)
}

func fallbackTechnicalLetter(prefs model.Preferences, companyName string) string {
	role := orDefault(prefs.DesiredRole, "this technical position")
	company := orDefault(companyName, "your organization")

	return fmt.Sprintf(`Dear Technical Hiring Manager,

I am writing to apply for the %s at %s. As a %s professional with a strong technical background, I am excited about the opportunity to contribute to your development team.

My technical expertise spans multiple programming languages, frameworks, and methodologies. I have successfully delivered projects that required both front-end and back-end development, database optimization, and system architecture design. My approach to problem-solving involves thorough analysis, efficient coding practices, and comprehensive testing to ensure robust and scalable solutions.

What sets me apart is my ability to translate complex technical requirements into practical solutions while maintaining clean, well-documented code. I am committed to continuous learning and staying current with emerging technologies and industry best practices. I believe this aligns well with %s's commitment to technical excellence.

I would welcome the opportunity to discuss how my technical skills and passion for innovation can contribute to your team's success.

Best regards,
[Your Name]`,
		role, company,
		orDefault(prefs.ExperienceLevel, "experienced"),
		company)
}

func fallbackEntryLevelLetter(prefs model.Preferences, companyName string) string {
	role := orDefault(prefs.DesiredRole, "this entry-level position")
	company := orDefault(companyName, "your organization")

	return fmt.Sprintf(`Dear Hiring Manager,

I am excited to apply for the %s at %s. As a recent graduate with a passion for learning and growth, I am eager to begin my professional journey with an organization known for its commitment to excellence.

During my academic career and internship experiences, I have developed a strong foundation in relevant skills and demonstrated my ability to quickly adapt to new challenges. While I may be early in my career, I bring fresh perspectives, enthusiasm, and a strong work ethic. I am particularly drawn to %s because of its reputation for supporting professional development and fostering innovation.

I am confident that my educational background, combined with my eagerness to learn and contribute, makes me a strong candidate for this role. I am available for %s work arrangements and am excited about the possibility of joining your team.

Thank you for considering my application. I look forward to the opportunity to discuss how I can contribute to %s's continued success.

Sincerely,
[Your Name]`,
		role, company, company,
		orDefault(prefs.WorkArrangement, "any"),
		company)
}
