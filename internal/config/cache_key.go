package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's active session.
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("login:admin:%d", adminID)
}

// JobStatusKey returns the cache key for a job's live status payload.
func (r *CacheKeyStruct) JobStatusKey(jobID string) string {
	return fmt.Sprintf("job:%s:status", jobID)
}

// JobProgressChannel returns the Redis PubSub channel name for job progress events.
func (r *CacheKeyStruct) JobProgressChannel(jobID string) string {
	return fmt.Sprintf("job:%s:progress", jobID)
}

var CacheKey = NewCacheKeyStruct()
