package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker remembers which recipients were already emailed about a job.
// Key format: notify:<job_id>:<email>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// IsDuplicate reports whether email was already notified about jobID.
func (d *DedupChecker) IsDuplicate(ctx context.Context, jobID, email string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(jobID, email)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records a delivered notification; the key expires after the TTL.
func (d *DedupChecker) Mark(ctx context.Context, jobID, email string) error {
	if err := d.client.Set(ctx, dedupKey(jobID, email), "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}

func dedupKey(jobID, email string) string {
	return fmt.Sprintf("notify:%s:%s", jobID, email)
}
