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

// Sentinel errors for the enhancement flow.
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrNotEnhanced      = errors.New("resume has not been enhanced")
	ErrAlreadyEnhancing = errors.New("an enhancement job is already running for this resume")
)

// EnhancementService enqueues enhancement jobs and serves their results.
type EnhancementService struct {
	resumeRepo      *repository.ResumeRepository
	jobRepo         *repository.JobRepository
	enhancementRepo *repository.EnhancementRepository
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewEnhancementService creates a new EnhancementService.
func NewEnhancementService(
	resumeRepo *repository.ResumeRepository,
	jobRepo *repository.JobRepository,
	enhancementRepo *repository.EnhancementRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *EnhancementService {
	return &EnhancementService{
		resumeRepo:      resumeRepo,
		jobRepo:         jobRepo,
		enhancementRepo: enhancementRepo,
		rdb:             rdb,
		log:             log.With().Str("component", "enhancement_service").Logger(),
	}
}

// Enqueue creates an enhancement job for the resume and pushes it on the
// worker queue. The heavy model pipeline runs out of band.
func (s *EnhancementService) Enqueue(ctx context.Context, resumeID uuid.UUID) (*model.Job, error) {
	resume, err := s.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	if resume.Status == model.ResumeStatusEnhancing {
		active, err := s.jobRepo.HasActiveJob(ctx, resumeID, model.JobTypeEnhance)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, ErrAlreadyEnhancing
		}
		// ENHANCING with no live job means a crash or a half-finished
		// enqueue wedged the resume. Recover it instead of 409ing forever.
		s.log.Warn().
			Str("resume_id", resumeID.String()).
			Msg("recovering resume stuck in ENHANCING with no active job")
	}

	job := &model.Job{
		ID:       uuid.New(),
		ResumeID: resumeID,
		Type:     model.JobTypeEnhance,
		Status:   model.JobStatusQueued,
	}
	payload, err := json.Marshal(model.EnhanceJobPayload{JobID: job.ID, ResumeID: resumeID})
	if err != nil {
		return nil, err
	}
	job.Payload = payload

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	if err := s.resumeRepo.UpdateStatus(ctx, resumeID, model.ResumeStatusEnhancing); err != nil {
		return nil, fmt.Errorf("update resume status: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.EnhanceJobsQueue, payload).Err(); err != nil {
		// Nothing is on the queue, so undo the half-finished enqueue or
		// the resume stays ENHANCING with no worker ever picking it up.
		restore := resume.Status
		if restore == model.ResumeStatusEnhancing {
			restore = model.ResumeStatusUploaded
		}
		_ = s.jobRepo.MarkFailed(ctx, job.ID, "queue push failed")
		_ = s.resumeRepo.UpdateStatus(ctx, resumeID, restore)
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.log.Info().
		Str("job_id", job.ID.String()).
		Str("resume_id", resumeID.String()).
		Msg("enhancement job enqueued")
	return job, nil
}

// GetJob returns a job, preferring live progress from Redis over the
// persisted row when the job is still in flight.
func (s *EnhancementService) GetJob(ctx context.Context, jobID uuid.UUID) (*model.Job, *model.JobProgress, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, err
	}

	raw, err := s.rdb.Get(ctx, config.CacheKey.JobStatusKey(jobID.String())).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return job, nil, nil
		}
		return nil, nil, err
	}

	var progress model.JobProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID.String()).Msg("invalid live status payload")
		return job, nil, nil
	}
	return job, &progress, nil
}

// GetResult returns the stored enhancement for a resume.
func (s *EnhancementService) GetResult(ctx context.Context, resumeID uuid.UUID) (*model.Enhancement, error) {
	enhancement, err := s.enhancementRepo.GetByResumeID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotEnhanced
		}
		return nil, err
	}
	return enhancement, nil
}

// ListJobs returns all jobs for a resume.
func (s *EnhancementService) ListJobs(ctx context.Context, resumeID uuid.UUID) ([]model.Job, error) {
	return s.jobRepo.ListByResumeID(ctx, resumeID)
}
