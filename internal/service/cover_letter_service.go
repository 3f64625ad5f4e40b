package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/repository"
)

// ErrNoCoverLetters means no generation run exists for the resume yet.
var ErrNoCoverLetters = errors.New("no cover letters generated")

// CoverLetterService enqueues cover letter jobs and serves generated sets.
type CoverLetterService struct {
	resumeRepo      *repository.ResumeRepository
	jobRepo         *repository.JobRepository
	coverLetterRepo *repository.CoverLetterRepository
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewCoverLetterService creates a new CoverLetterService.
func NewCoverLetterService(
	resumeRepo *repository.ResumeRepository,
	jobRepo *repository.JobRepository,
	coverLetterRepo *repository.CoverLetterRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *CoverLetterService {
	return &CoverLetterService{
		resumeRepo:      resumeRepo,
		jobRepo:         jobRepo,
		coverLetterRepo: coverLetterRepo,
		rdb:             rdb,
		log:             log.With().Str("component", "cover_letter_service").Logger(),
	}
}

// Enqueue creates a cover letter generation job for the resume. Generation
// uses the enhanced summary when one exists, falling back to the raw content.
func (s *CoverLetterService) Enqueue(ctx context.Context, resumeID uuid.UUID, req model.GenerateCoverLetterRequest) (*model.Job, error) {
	if _, err := s.resumeRepo.GetByID(ctx, resumeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}

	job := &model.Job{
		ID:       uuid.New(),
		ResumeID: resumeID,
		Type:     model.JobTypeCoverLetter,
		Status:   model.JobStatusQueued,
	}
	payload, err := json.Marshal(model.CoverLetterJobPayload{JobID: job.ID, ResumeID: resumeID, Request: req})
	if err != nil {
		return nil, err
	}
	job.Payload = payload

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.CoverLetterJobsQueue, payload).Err(); err != nil {
		// Nothing is on the queue; fail the row so it doesn't sit QUEUED forever.
		_ = s.jobRepo.MarkFailed(ctx, job.ID, "queue push failed")
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.log.Info().
		Str("job_id", job.ID.String()).
		Str("resume_id", resumeID.String()).
		Str("desired_role", req.Preferences.DesiredRole).
		Msg("cover letter job enqueued")
	return job, nil
}

// GetLatest returns the most recent cover letter set for a resume.
func (s *CoverLetterService) GetLatest(ctx context.Context, resumeID uuid.UUID) (*model.CoverLetterSet, error) {
	set, err := s.coverLetterRepo.GetLatestByResumeID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCoverLetters
		}
		return nil, err
	}
	return set, nil
}

// History returns every generation run for a resume, newest first.
func (s *CoverLetterService) History(ctx context.Context, resumeID uuid.UUID) ([]model.CoverLetterSet, error) {
	return s.coverLetterRepo.ListByResumeID(ctx, resumeID)
}
