package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ledgerbook/internal/port"
)

// ExportWorkerConfig holds settings for the export job worker.
type ExportWorkerConfig struct {
	PollInterval time.Duration
	Concurrency  int
	JobTimeout   time.Duration
}

// ExportWorker polls for queued export jobs and renders them in the
// background. Failed jobs are marked failed and not retried.
type ExportWorker struct {
	jobRepo   port.ExportJobRepository
	exportSvc ExportService
	cfg       ExportWorkerConfig
	log       *zap.Logger
	wg        sync.WaitGroup
}

// NewExportWorker creates a new ExportWorker.
func NewExportWorker(jobRepo port.ExportJobRepository, exportSvc ExportService, cfg ExportWorkerConfig, log *zap.Logger) *ExportWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &ExportWorker{
		jobRepo:   jobRepo,
		exportSvc: exportSvc,
		cfg:       cfg,
		log:       log.Named("export_worker"),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished.
func (w *ExportWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.log.Info("started",
		zap.Duration("poll", w.cfg.PollInterval),
		zap.Int("concurrency", w.cfg.Concurrency),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("shutting down, waiting for in-flight exports")
			w.wg.Wait()
			w.log.Info("shutdown complete")
			return
		case <-ticker.C:
			w.poll(ctx, sem)
		}
	}
}

func (w *ExportWorker) poll(ctx context.Context, sem chan struct{}) {
	available := w.cfg.Concurrency - len(sem)
	if available <= 0 {
		return
	}

	jobs, err := w.jobRepo.ClaimQueued(ctx, available)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error("claiming queued exports", zap.Error(err))
		}
		return
	}

	for i := range jobs {
		job := jobs[i]

		sem <- struct{}{}
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer func() { <-sem }()

			// In-flight jobs finish even when the poll context is canceled.
			jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
			defer cancel()

			w.log.Debug("dispatching export", zap.String("job_id", job.ID.String()))
			_ = w.exportSvc.RunJob(jobCtx, &job)
		}()
	}
}

// Wait blocks until every dispatched job has finished.
func (w *ExportWorker) Wait() {
	w.wg.Wait()
}
