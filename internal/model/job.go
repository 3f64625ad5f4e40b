package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobType distinguishes the background job queues.
type JobType string

const (
	JobTypeEnhance     JobType = "ENHANCE"
	JobTypeCoverLetter JobType = "COVER_LETTER"
)

// JobStatus enumerates the lifecycle states of a background job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "QUEUED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Job tracks one asynchronous enhancement or cover letter run.
type Job struct {
	ID       uuid.UUID `json:"id"`
	ResumeID uuid.UUID `json:"resume_id"`
	Type     JobType   `json:"type"`
	Status   JobStatus `json:"status"`
	// Stage is the pipeline step currently running (e.g. "skills").
	Stage      string          `json:"stage,omitempty"`
	Error      string          `json:"error,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

// EnhanceJobPayload is the queue message for enhancement jobs.
type EnhanceJobPayload struct {
	JobID    uuid.UUID `json:"job_id"`
	ResumeID uuid.UUID `json:"resume_id"`
}

// CoverLetterJobPayload is the queue message for cover letter jobs.
type CoverLetterJobPayload struct {
	JobID    uuid.UUID                  `json:"job_id"`
	ResumeID uuid.UUID                  `json:"resume_id"`
	Request  GenerateCoverLetterRequest `json:"request"`
}

// JobProgress is published on Redis PubSub and forwarded over WebSocket.
type JobProgress struct {
	JobID  uuid.UUID `json:"job_id"`
	Status JobStatus `json:"status"`
	Stage  string    `json:"stage"`
	// StepsDone/StepsTotal give coarse completion for progress bars.
	StepsDone  int    `json:"steps_done"`
	StepsTotal int    `json:"steps_total"`
	Error      string `json:"error,omitempty"`
}
