package websocket

import "github.com/vitaworks/vitae-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionSubscribe   Action = "subscribe"
	ActionUnsubscribe Action = "unsubscribe"
	ActionPing        Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// SubscribeRequest subscribes the client to a job's progress stream.
type SubscribeRequest struct {
	Action Action `json:"action"`
	JobID  string `json:"job_id"`
}

// UnsubscribeRequest stops a job's progress stream.
type UnsubscribeRequest struct {
	Action Action `json:"action"`
	JobID  string `json:"job_id"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventSubscribed Event = "subscribed"
	EventProgress   Event = "progress"
	EventPong       Event = "pong"
)

type SubscribedResponse struct {
	Event Event  `json:"event"`
	JobID string `json:"job_id"`
}

// ProgressResponse forwards a job progress snapshot to the client.
type ProgressResponse struct {
	Event    Event             `json:"event"`
	Progress model.JobProgress `json:"progress"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
