package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"leadscore_backend/internal/campaigns/service"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// progressTTL keeps finished job records around long enough for polling
// clients to observe the terminal state.
const progressTTL = 24 * time.Hour

// ProgressStore tracks rescore job progress in Redis.
type ProgressStore struct {
	rdb *redis.Client
}

// NewProgressStore connects a progress store to Redis.
func NewProgressStore(cfg config.SchedulerConfig) (*ProgressStore, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig.InsecureSkipVerify = true
	}

	return &ProgressStore{rdb: redis.NewClient(opt)}, nil
}

// newProgressStoreFromClient is used by tests with an in-memory Redis.
func newProgressStoreFromClient(rdb *redis.Client) *ProgressStore {
	return &ProgressStore{rdb: rdb}
}

// Close releases the Redis connection.
func (p *ProgressStore) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}

// Compile-time check that ProgressStore satisfies the service contract.
var _ service.ProgressReader = (*ProgressStore)(nil)

func progressKey(jobID uuid.UUID) string {
	return "scoring:job:" + jobID.String()
}

// Start records a freshly started job.
func (p *ProgressStore) Start(ctx context.Context, jobID uuid.UUID, total int) error {
	key := progressKey(jobID)
	pipe := p.rdb.TxPipeline()
	pipe.HSet(ctx, key, "state", service.JobStateRunning, "total", total, "scored", 0)
	pipe.Expire(ctx, key, progressTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Update records cumulative progress for a running job.
func (p *ProgressStore) Update(ctx context.Context, jobID uuid.UUID, scored, total int) error {
	return p.rdb.HSet(ctx, progressKey(jobID), "scored", scored, "total", total).Err()
}

// Finish records the terminal state of a job.
func (p *ProgressStore) Finish(ctx context.Context, jobID uuid.UUID, jobErr error) error {
	state := service.JobStateDone
	if jobErr != nil {
		state = service.JobStateFailed
	}
	return p.rdb.HSet(ctx, progressKey(jobID), "state", state).Err()
}

// GetProgress reads the observable state of a job.
func (p *ProgressStore) GetProgress(ctx context.Context, jobID uuid.UUID) (service.JobProgress, error) {
	values, err := p.rdb.HGetAll(ctx, progressKey(jobID)).Result()
	if err != nil {
		return service.JobProgress{}, err
	}
	if len(values) == 0 {
		return service.JobProgress{}, apperr.NotFound("scoring job not found")
	}

	progress := service.JobProgress{
		JobID: jobID,
		State: values["state"],
	}
	progress.Total, _ = strconv.Atoi(values["total"])
	progress.Scored, _ = strconv.Atoi(values["scored"])
	return progress, nil
}
