package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// JobRepository handles background job data access.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// Create inserts a queued job.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, resume_id, type, status, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		job.ID, job.ResumeID, job.Type, job.Status, job.Payload,
	).Scan(&job.CreatedAt)
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job := &model.Job{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, resume_id, type, status, stage, error, payload, created_at, started_at, finished_at
		 FROM jobs WHERE id = $1`, id,
	).Scan(&job.ID, &job.ResumeID, &job.Type, &job.Status, &job.Stage, &job.Error,
		&job.Payload, &job.CreatedAt, &job.StartedAt, &job.FinishedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// MarkRunning transitions a job to RUNNING and records its start time.
func (r *JobRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $2, started_at = NOW() WHERE id = $1`,
		id, model.JobStatusRunning)
	return err
}

// UpdateStage records the pipeline step currently executing.
func (r *JobRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage string) error {
	_, err := r.pool.Exec(ctx, `UPDATE jobs SET stage = $2 WHERE id = $1`, id, stage)
	return err
}

// MarkCompleted transitions a job to COMPLETED.
func (r *JobRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $2, finished_at = NOW() WHERE id = $1`,
		id, model.JobStatusCompleted)
	return err
}

// MarkFailed transitions a job to FAILED with the failure reason.
func (r *JobRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $2, error = $3, finished_at = NOW() WHERE id = $1`,
		id, model.JobStatusFailed, reason)
	return err
}

// ListByResumeID returns all jobs for a resume, newest first.
func (r *JobRepository) ListByResumeID(ctx context.Context, resumeID uuid.UUID) ([]model.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, resume_id, type, status, stage, error, payload, created_at, started_at, finished_at
		 FROM jobs WHERE resume_id = $1 ORDER BY created_at DESC`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.ResumeID, &job.Type, &job.Status, &job.Stage,
			&job.Error, &job.Payload, &job.CreatedAt, &job.StartedAt, &job.FinishedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// CountByStatus returns job counts grouped by status, for the metrics feed.
func (r *JobRepository) CountByStatus(ctx context.Context) (map[model.JobStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.JobStatus]int)
	for rows.Next() {
		var status model.JobStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// HasActiveJob reports whether a QUEUED or RUNNING job of the given type
// exists for the resume.
func (r *JobRepository) HasActiveJob(ctx context.Context, resumeID uuid.UUID, jobType model.JobType) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM jobs
			WHERE resume_id = $1 AND type = $2 AND status IN ($3, $4))`,
		resumeID, jobType, model.JobStatusQueued, model.JobStatusRunning,
	).Scan(&exists)
	return exists, err
}

// FailOrphanedRunning marks every RUNNING job as FAILED. The workers run in
// this process and their popped queue payloads die with it, so a RUNNING row
// at startup can only be a leftover from a crash.
func (r *JobRepository) FailOrphanedRunning(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error = 'worker restarted before completion', finished_at = NOW()
		 WHERE status = $2`,
		model.JobStatusFailed, model.JobStatusRunning)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
