package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/ai"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/repository"
)

const enhancePollTimeout = 1 * time.Second

// EnhanceWorker consumes enhancement jobs off the Redis queue and runs the
// model pipeline for each one, publishing per-stage progress.
type EnhanceWorker struct {
	resumeRepo      *repository.ResumeRepository
	jobRepo         *repository.JobRepository
	enhancementRepo *repository.EnhancementRepository
	enhancer        *ai.Enhancer
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewEnhanceWorker creates an EnhanceWorker.
func NewEnhanceWorker(
	resumeRepo *repository.ResumeRepository,
	jobRepo *repository.JobRepository,
	enhancementRepo *repository.EnhancementRepository,
	enhancer *ai.Enhancer,
	rdb *redis.Client,
	log zerolog.Logger,
) *EnhanceWorker {
	return &EnhanceWorker{
		resumeRepo:      resumeRepo,
		jobRepo:         jobRepo,
		enhancementRepo: enhancementRepo,
		enhancer:        enhancer,
		rdb:             rdb,
		log:             log.With().Str("component", "enhance_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled. A job in flight during
// shutdown is finished with a background context so it never half-commits.
func (w *EnhanceWorker) Start(ctx context.Context) {
	w.log.Info().Msg("EnhanceWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, enhancePollTimeout, config.WorkerKey.EnhanceJobsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.EnhanceJobPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.process(context.Background(), p)
		}
	}
}

func (w *EnhanceWorker) process(ctx context.Context, p model.EnhanceJobPayload) {
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
		StepsTotal: len(ai.EnhanceStages),
	})

	resume, err := w.resumeRepo.GetByID(ctx, p.ResumeID)
	if err != nil {
		w.fail(ctx, p, "resume no longer exists")
		return
	}

	started := time.Now()
	enhancement := w.enhancer.EnhanceResume(ctx, resume.ID, resume.Content, resume.Entities,
		func(stage string, done, total int) {
			_ = w.jobRepo.UpdateStage(ctx, p.JobID, stage)
			publishProgress(ctx, w.rdb, model.JobProgress{
				JobID:      p.JobID,
				Status:     model.JobStatusRunning,
				Stage:      stage,
				StepsDone:  done,
				StepsTotal: total,
			})
		})

	if err := w.enhancementRepo.Upsert(ctx, enhancement); err != nil {
		log.Error().Err(err).Msg("persist enhancement failed")
		w.fail(ctx, p, "failed to store enhancement result")
		return
	}
	if err := w.resumeRepo.UpdateStatus(ctx, p.ResumeID, model.ResumeStatusEnhanced); err != nil {
		log.Error().Err(err).Msg("update resume status failed")
	}
	if err := w.jobRepo.MarkCompleted(ctx, p.JobID); err != nil {
		log.Error().Err(err).Msg("mark completed failed")
	}

	publishProgress(ctx, w.rdb, model.JobProgress{
		JobID:      p.JobID,
		Status:     model.JobStatusCompleted,
		StepsDone:  len(ai.EnhanceStages),
		StepsTotal: len(ai.EnhanceStages),
	})
	log.Info().
		Dur("elapsed", time.Since(started)).
		Bool("fallback", enhancement.Fallback).
		Msg("enhancement completed")
}

func (w *EnhanceWorker) fail(ctx context.Context, p model.EnhanceJobPayload, reason string) {
	if err := w.jobRepo.MarkFailed(ctx, p.JobID, reason); err != nil {
		w.log.Error().Err(err).Str("job_id", p.JobID.String()).Msg("mark failed failed")
	}
	// Leave the resume usable for another attempt.
	_ = w.resumeRepo.UpdateStatus(ctx, p.ResumeID, model.ResumeStatusUploaded)
	publishProgress(ctx, w.rdb, model.JobProgress{
		JobID:  p.JobID,
		Status: model.JobStatusFailed,
		Error:  reason,
	})
}
