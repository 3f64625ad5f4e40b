package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// ResumeRepository handles resume data access.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

// NewResumeRepository creates a new ResumeRepository.
func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

// Create inserts a new resume with its extracted content and entities.
func (r *ResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	entities, err := json.Marshal(resume.Entities)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, file_name, file_ext, file_size, stored_path, content, quality_score, entities, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		resume.ID, resume.FileName, resume.FileExt, resume.FileSize, resume.StoredPath,
		resume.Content, resume.QualityScore, entities, resume.Status,
	).Scan(&resume.CreatedAt, &resume.UpdatedAt)
}

// GetByID retrieves a resume by ID.
func (r *ResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	resume := &model.Resume{}
	var entities []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, file_name, file_ext, file_size, stored_path, content, quality_score, entities, status, created_at, updated_at
		 FROM resumes WHERE id = $1`, id,
	).Scan(&resume.ID, &resume.FileName, &resume.FileExt, &resume.FileSize, &resume.StoredPath,
		&resume.Content, &resume.QualityScore, &entities, &resume.Status, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(entities, &resume.Entities); err != nil {
		return nil, err
	}
	return resume, nil
}

// List returns a page of resumes, newest first. Content is omitted to keep
// listings light.
func (r *ResumeRepository) List(ctx context.Context, limit, offset int) ([]model.Resume, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, file_ext, file_size, quality_score, entities, status, created_at, updated_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []model.Resume
	for rows.Next() {
		var resume model.Resume
		var entities []byte
		if err := rows.Scan(&resume.ID, &resume.FileName, &resume.FileExt, &resume.FileSize,
			&resume.QualityScore, &entities, &resume.Status, &resume.CreatedAt, &resume.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(entities, &resume.Entities); err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

// Count returns the total number of resumes.
func (r *ResumeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count)
	return count, err
}

// UpdateStatus transitions a resume's lifecycle state.
func (r *ResumeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ResumeStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE resumes SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

// ResetOrphanedEnhancing returns resumes stuck in ENHANCING with no live job
// to UPLOADED so they can be enhanced again. Run at startup, after orphaned
// RUNNING jobs have been failed.
func (r *ResumeRepository) ResetOrphanedEnhancing(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND NOT EXISTS (
			SELECT 1 FROM jobs
			WHERE jobs.resume_id = resumes.id AND jobs.status IN ($3, $4))`,
		model.ResumeStatusUploaded, model.ResumeStatusEnhancing,
		model.JobStatusQueued, model.JobStatusRunning)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a resume. Enhancements, cover letters and jobs cascade.
func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	return err
}
