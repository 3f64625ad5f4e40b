package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// CoverLetterRepository handles cover letter set data access.
type CoverLetterRepository struct {
	pool *pgxpool.Pool
}

// NewCoverLetterRepository creates a new CoverLetterRepository.
func NewCoverLetterRepository(pool *pgxpool.Pool) *CoverLetterRepository {
	return &CoverLetterRepository{pool: pool}
}

// Create inserts a generated cover letter set.
func (r *CoverLetterRepository) Create(ctx context.Context, set *model.CoverLetterSet) error {
	letters, err := json.Marshal(set.Letters)
	if err != nil {
		return err
	}
	warnings, err := json.Marshal(set.Warnings)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO cover_letter_sets (id, resume_id, letters, fallback, warnings, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		set.ID, set.ResumeID, letters, set.Fallback, warnings, set.CreatedAt)
	return err
}

// GetLatestByResumeID returns the most recent set generated for a resume.
func (r *CoverLetterRepository) GetLatestByResumeID(ctx context.Context, resumeID uuid.UUID) (*model.CoverLetterSet, error) {
	set := &model.CoverLetterSet{}
	var letters, warnings []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, resume_id, letters, fallback, warnings, created_at
		 FROM cover_letter_sets WHERE resume_id = $1
		 ORDER BY created_at DESC LIMIT 1`, resumeID,
	).Scan(&set.ID, &set.ResumeID, &letters, &set.Fallback, &warnings, &set.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(letters, &set.Letters); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(warnings, &set.Warnings); err != nil {
		return nil, err
	}
	return set, nil
}

// ListByResumeID returns every generation run for a resume, newest first.
func (r *CoverLetterRepository) ListByResumeID(ctx context.Context, resumeID uuid.UUID) ([]model.CoverLetterSet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, resume_id, letters, fallback, warnings, created_at
		 FROM cover_letter_sets WHERE resume_id = $1 ORDER BY created_at DESC`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []model.CoverLetterSet
	for rows.Next() {
		var set model.CoverLetterSet
		var letters, warnings []byte
		if err := rows.Scan(&set.ID, &set.ResumeID, &letters, &set.Fallback, &warnings, &set.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(letters, &set.Letters); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(warnings, &set.Warnings); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}
