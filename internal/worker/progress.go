package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// Live status payloads expire on their own so crashed jobs don't leave stale
// entries behind.
const jobStatusTTL = time.Hour

// publishProgress writes the live status snapshot and broadcasts it on the
// job's PubSub channel for WebSocket subscribers. Best-effort on both legs.
func publishProgress(ctx context.Context, rdb *redis.Client, progress model.JobProgress) {
	raw, err := json.Marshal(progress)
	if err != nil {
		return
	}
	jobID := progress.JobID.String()
	rdb.Set(ctx, config.CacheKey.JobStatusKey(jobID), raw, jobStatusTTL)
	rdb.Publish(ctx, config.CacheKey.JobProgressChannel(jobID), raw)
}
