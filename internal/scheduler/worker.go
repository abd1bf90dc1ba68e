package scheduler

import (
	"bytes"
	"context"
	"fmt"

	"quotedesk/internal/exports/render"
	"quotedesk/internal/quotes/repository"
	"quotedesk/internal/storage"
	"quotedesk/platform/config"
	"quotedesk/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker processes background document tasks: rendering quote PDFs into the
// artifact store and removing them when the quote goes away.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	repo     repository.Repository
	pdf      *render.PDFRenderer
	artifact storage.Service
	bucket   string
	log      *logger.Logger
}

func NewWorker(cfg config.RedisConfig, pool *pgxpool.Pool, pdf *render.PDFRenderer, artifact storage.Service, bucket string, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
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
		repo:     repository.New(pool),
		pdf:      pdf,
		artifact: artifact,
		bucket:   bucket,
		log:      log,
	}

	mux.HandleFunc(TaskQuotePDFPrerender, w.handlePDFPrerender)
	mux.HandleFunc(TaskQuotePDFCleanup, w.handlePDFCleanup)

	return w, nil
}

// Start runs the worker loop. It blocks until Shutdown is called.
func (w *Worker) Start() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handlePDFPrerender(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuotePDFPrerenderPayload(task)
	if err != nil {
		return err
	}

	quoteID, err := uuid.Parse(payload.QuoteID)
	if err != nil {
		return fmt.Errorf("invalid quote id %q: %w", payload.QuoteID, err)
	}
	ownerID, err := uuid.Parse(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid owner id %q: %w", payload.OwnerID, err)
	}

	quote, err := w.repo.GetByID(ctx, quoteID, ownerID)
	if err != nil {
		// The quote can already be gone when the task runs; nothing to render.
		w.log.Info("skipping pdf prerender for missing quote", "quoteId", quoteID)
		return nil
	}

	items, err := w.repo.GetResolvedItems(ctx, quoteID, ownerID)
	if err != nil {
		return err
	}

	data, err := w.pdf.Render(quote, items)
	if err != nil {
		return err
	}

	key := render.ArtifactKey(quoteID)
	if err := w.artifact.PutObject(ctx, w.bucket, key, "application/pdf", bytes.NewReader(data), int64(len(data))); err != nil {
		return err
	}

	w.log.Info("prerendered quote pdf", "quoteId", quoteID, "bytes", len(data))
	return nil
}

func (w *Worker) handlePDFCleanup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuotePDFCleanupPayload(task)
	if err != nil {
		return err
	}

	quoteID, err := uuid.Parse(payload.QuoteID)
	if err != nil {
		return fmt.Errorf("invalid quote id %q: %w", payload.QuoteID, err)
	}

	if err := w.artifact.DeleteObject(ctx, w.bucket, render.ArtifactKey(quoteID)); err != nil {
		return err
	}

	w.log.Info("removed stored quote pdf", "quoteId", quoteID)
	return nil
}
