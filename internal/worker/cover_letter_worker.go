package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/ai"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/repository"
)

const coverLetterPollTimeout = 1 * time.Second

// CoverLetterWorker consumes cover letter jobs off the Redis queue and runs
// the four-style generation for each one.
type CoverLetterWorker struct {
	resumeRepo      *repository.ResumeRepository
	jobRepo         *repository.JobRepository
	enhancementRepo *repository.EnhancementRepository
	coverLetterRepo *repository.CoverLetterRepository
	generator       *ai.LetterGenerator
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewCoverLetterWorker creates a CoverLetterWorker.
func NewCoverLetterWorker(
	resumeRepo *repository.ResumeRepository,
	jobRepo *repository.JobRepository,
	enhancementRepo *repository.EnhancementRepository,
	coverLetterRepo *repository.CoverLetterRepository,
	generator *ai.LetterGenerator,
	rdb *redis.Client,
	log zerolog.Logger,
) *CoverLetterWorker {
	return &CoverLetterWorker{
		resumeRepo:      resumeRepo,
		jobRepo:         jobRepo,
		enhancementRepo: enhancementRepo,
		coverLetterRepo: coverLetterRepo,
		generator:       generator,
		rdb:             rdb,
		log:             log.With().Str("component", "cover_letter_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *CoverLetterWorker) Start(ctx context.Context) {
	w.log.Info().Msg("CoverLetterWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, coverLetterPollTimeout, config.WorkerKey.CoverLetterJobsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.CoverLetterJobPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.process(context.Background(), p)
		}
	}
}

func (w *CoverLetterWorker) process(ctx context.Context, p model.CoverLetterJobPayload) {
	log := w.log.With().
		Str("job_id", p.JobID.String()).
		Str("resume_id", p.ResumeID.String()).
		Logger()

	if err := w.jobRepo.MarkRunning(ctx, p.JobID); err != nil {
		log.Error().Err(err).Msg("mark running failed")
		return
	}
	publishProgress(ctx, w.rdb, model.JobProgress{
		JobID:      p.JobID,
		Status:     model.JobStatusRunning,
		StepsTotal: len(model.AllCoverLetterStyles),
	})

	resume, err := w.resumeRepo.GetByID(ctx, p.ResumeID)
	if err != nil {
		w.fail(ctx, p.JobID, "resume no longer exists")
		return
	}

	// Prefer the enhanced resume as source material when one exists.
	content := resume.Content
	if enhancement, err := w.enhancementRepo.GetByResumeID(ctx, p.ResumeID); err == nil {
		if enhancement.FullContent != "" {
			content = enhancement.FullContent
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Warn().Err(err).Msg("load enhancement failed, using raw content")
	}

	started := time.Now()
	set := w.generator.Generate(ctx, resume.ID, content, p.Request,
		func(style string, done, total int) {
			_ = w.jobRepo.UpdateStage(ctx, p.JobID, style)
			publishProgress(ctx, w.rdb, model.JobProgress{
				JobID:      p.JobID,
				Status:     model.JobStatusRunning,
				Stage:      style,
				StepsDone:  done,
				StepsTotal: total,
			})
		})

	if err := w.coverLetterRepo.Create(ctx, set); err != nil {
		log.Error().Err(err).Msg("persist cover letters failed")
		w.fail(ctx, p.JobID, "failed to store cover letters")
		return
	}
	if err := w.jobRepo.MarkCompleted(ctx, p.JobID); err != nil {
		log.Error().Err(err).Msg("mark completed failed")
	}

	publishProgress(ctx, w.rdb, model.JobProgress{
		JobID:      p.JobID,
		Status:     model.JobStatusCompleted,
		StepsDone:  len(model.AllCoverLetterStyles),
		StepsTotal: len(model.AllCoverLetterStyles),
	})
	log.Info().
		Dur("elapsed", time.Since(started)).
		Bool("fallback", set.Fallback).
		Msg("cover letters completed")
}

func (w *CoverLetterWorker) fail(ctx context.Context, jobID uuid.UUID, reason string) {
	if err := w.jobRepo.MarkFailed(ctx, jobID, reason); err != nil {
		w.log.Error().Err(err).Str("job_id", jobID.String()).Msg("mark failed failed")
	}
	publishProgress(ctx, w.rdb, model.JobProgress{
		JobID:  jobID,
		Status: model.JobStatusFailed,
		Error:  reason,
	})
}
