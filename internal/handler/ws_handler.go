package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
	ws "github.com/vitaworks/vitae-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams job progress over WebSocket, fed by Redis PubSub.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// JobProgressStream godoc
// WS /ws/v1/jobs/stream
// The client subscribes to one or more job IDs and receives progress events
// until it unsubscribes or disconnects.
func (h *WSHandler) JobProgressStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("remote", c.ClientIP()).Logger()
	wsLog.Info().Msg("Client connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Serialize writes: the reader loop and the forwarder goroutines both
	// write to the connection.
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	cancels := make(map[string]context.CancelFunc)
	defer func() {
		for _, stop := range cancels {
			stop()
		}
	}()

	for {
		var msg ws.SubscribeRequest
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionSubscribe:
			h.handleSubscribe(ctx, wsLog, write, cancels, msg.JobID)
		case ws.ActionUnsubscribe:
			if stop, ok := cancels[msg.JobID]; ok {
				stop()
				delete(cancels, msg.JobID)
			}
		case ws.ActionPing:
			_ = write(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			writeMu.Lock()
			_ = ws.WriteError(conn, "unknown action: "+string(msg.Action))
			writeMu.Unlock()
		}
	}
}

func (h *WSHandler) handleSubscribe(ctx context.Context, wsLog zerolog.Logger, write func(interface{}) error, cancels map[string]context.CancelFunc, jobID string) {
	if _, err := uuid.Parse(jobID); err != nil {
		_ = write(ws.ErrorResponse{Event: ws.EventError, Error: "invalid job_id format"})
		return
	}
	if _, exists := cancels[jobID]; exists {
		return // Already streaming this job.
	}

	subCtx, stop := context.WithCancel(ctx)
	cancels[jobID] = stop

	// Replay the last known status so late subscribers don't miss a job
	// that already finished.
	if raw, err := h.rdb.Get(subCtx, config.CacheKey.JobStatusKey(jobID)).Result(); err == nil {
		h.forward(write, wsLog, jobID, []byte(raw))
	}

	sub := h.rdb.Subscribe(subCtx, config.CacheKey.JobProgressChannel(jobID))
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				h.forward(write, wsLog, jobID, []byte(payload.Payload))
			}
		}
	}()

	_ = write(ws.SubscribedResponse{Event: ws.EventSubscribed, JobID: jobID})
	wsLog.Debug().Str("job_id", jobID).Msg("Subscribed to job progress")
}

func (h *WSHandler) forward(write func(interface{}) error, wsLog zerolog.Logger, jobID string, raw []byte) {
	var progress model.JobProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		wsLog.Warn().Err(err).Str("job_id", jobID).Msg("Invalid progress payload")
		return
	}
	if err := write(ws.ProgressResponse{Event: ws.EventProgress, Progress: progress}); err != nil {
		wsLog.Debug().Err(err).Msg("Write failed, client likely gone")
	}
}
