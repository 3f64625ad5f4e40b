package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// EnhancementRepository handles enhancement result data access.
type EnhancementRepository struct {
	pool *pgxpool.Pool
}

// NewEnhancementRepository creates a new EnhancementRepository.
func NewEnhancementRepository(pool *pgxpool.Pool) *EnhancementRepository {
	return &EnhancementRepository{pool: pool}
}

// Upsert stores an enhancement, replacing any previous run for the same
// resume. Re-enhancing always wins.
func (r *EnhancementRepository) Upsert(ctx context.Context, e *model.Enhancement) error {
	skills, err := json.Marshal(e.Skills)
	if err != nil {
		return err
	}
	experience, err := json.Marshal(e.Experience)
	if err != nil {
		return err
	}
	suggestions, err := json.Marshal(e.Suggestions)
	if err != nil {
		return err
	}
	ats, err := json.Marshal(e.ATS)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO enhancements (id, resume_id, summary, skills, experience, suggestions, ats, full_content, model_used, fallback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (resume_id) DO UPDATE SET
		   id = EXCLUDED.id,
		   summary = EXCLUDED.summary,
		   skills = EXCLUDED.skills,
		   experience = EXCLUDED.experience,
		   suggestions = EXCLUDED.suggestions,
		   ats = EXCLUDED.ats,
		   full_content = EXCLUDED.full_content,
		   model_used = EXCLUDED.model_used,
		   fallback = EXCLUDED.fallback,
		   created_at = EXCLUDED.created_at`,
		e.ID, e.ResumeID, e.Summary, skills, experience, suggestions, ats,
		e.FullContent, e.ModelUsed, e.Fallback, e.CreatedAt)
	return err
}

// GetByResumeID retrieves the enhancement for a resume.
func (r *EnhancementRepository) GetByResumeID(ctx context.Context, resumeID uuid.UUID) (*model.Enhancement, error) {
	e := &model.Enhancement{}
	var skills, experience, suggestions, ats []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, resume_id, summary, skills, experience, suggestions, ats, full_content, model_used, fallback, created_at
		 FROM enhancements WHERE resume_id = $1`, resumeID,
	).Scan(&e.ID, &e.ResumeID, &e.Summary, &skills, &experience, &suggestions, &ats,
		&e.FullContent, &e.ModelUsed, &e.Fallback, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &e.Skills); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &e.Experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(suggestions, &e.Suggestions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ats, &e.ATS); err != nil {
		return nil, err
	}
	return e, nil
}
