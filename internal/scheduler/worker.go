package scheduler

import (
	"context"
	"fmt"

	"leadscore_backend/internal/campaigns/service"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes async scoring tasks.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	svc      *service.Service
	progress *ProgressStore
	log      *logger.Logger
}

// NewWorker creates the asynq worker for campaign rescoring.
func NewWorker(cfg config.SchedulerConfig, svc *service.Service, progress *ProgressStore, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		svc:      svc,
		progress: progress,
		log:      log,
	}

	mux.HandleFunc(TaskCampaignRescore, w.handleCampaignRescore)

	return w, nil
}

func (w *Worker) handleCampaignRescore(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCampaignRescorePayload(task)
	if err != nil {
		return err
	}

	campaignID, err := uuid.Parse(payload.CampaignID)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}

	log := w.log.With("campaign_id", campaignID.String(), "job_id", jobID.String())
	log.Info("campaign rescore started")

	report := func(scored, total int) {
		if scored == 0 {
			if err := w.progress.Start(ctx, jobID, total); err != nil {
				log.Warn("failed to record job start", "error", err)
			}
			return
		}
		if err := w.progress.Update(ctx, jobID, scored, total); err != nil {
			log.Warn("failed to record job progress", "error", err)
		}
	}

	scored, runErr := w.svc.RescoreCampaign(ctx, campaignID, report)
	if err := w.progress.Finish(ctx, jobID, runErr); err != nil {
		log.Warn("failed to record job completion", "error", err)
	}

	if runErr != nil {
		log.Error("campaign rescore failed", "error", runErr, "scored", scored)
		return runErr
	}

	log.Info("campaign rescore finished", "scored", scored)
	return nil
}

// Run starts the worker and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scoring worker stopped", "error", err)
	}
}
