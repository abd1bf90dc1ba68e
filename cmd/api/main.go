package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotedesk/internal/auth"
	"quotedesk/internal/catalog"
	"quotedesk/internal/email"
	"quotedesk/internal/events"
	"quotedesk/internal/exports"
	apphttp "quotedesk/internal/http"
	"quotedesk/internal/http/router"
	"quotedesk/internal/listcache"
	"quotedesk/internal/notification"
	"quotedesk/internal/quotes"
	"quotedesk/internal/scheduler"
	"quotedesk/internal/storage"
	"quotedesk/platform/config"
	"quotedesk/platform/db"
	"quotedesk/platform/logger"
	"quotedesk/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Object storage for prerendered quote PDFs (optional)
	var artifactStore storage.Service
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure quote-pdfs bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketQuotePDFs())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketQuotePDFs())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		artifactStore = storageSvc
		log.Info("storage service initialized", "quotePDFsBucket", cfg.GetMinioBucketQuotePDFs())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; quote PDFs render on demand only")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		log.Warn("EMAIL_ENABLED not set; quote emails disabled")
	}
	notificationModule := notification.New(sender, cfg, log)
	if artifactStore != nil {
		notificationModule.SetArtifactStore(artifactStore, cfg.GetMinioBucketQuotePDFs())
	}
	notificationModule.Subscribe(eventBus)

	authModule := auth.NewModule(pool, cfg, eventBus, val)
	catalogModule := catalog.NewModule(pool, eventBus, val)
	quotesModule := quotes.NewModule(pool, eventBus, val)

	exportsModule := exports.NewModule(exports.ModuleDeps{
		Quotes:   quotesModule.Service(),
		Logger:   log,
		Artifact: artifactStore,
		Bucket:   cfg.GetMinioBucketQuotePDFs(),
		BaseURL:  cfg.GetAppBaseURL(),
	})

	// Redis-backed extras: listing cache and background PDF prerender
	if cfg.IsRedisEnabled() {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid REDIS_URL", "error", err)
			panic("invalid REDIS_URL: " + err.Error())
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()

		cache := listcache.New(rdb, log)
		cache.Subscribe(eventBus)
		quotesModule.Service().SetListCache(cache)
		log.Info("quote listing cache enabled")

		if artifactStore != nil {
			taskClient, err := scheduler.NewClient(cfg)
			if err != nil {
				log.Error("failed to initialize task client", "error", err)
				panic("failed to initialize task client: " + err.Error())
			}
			defer taskClient.Close()
			taskClient.Subscribe(eventBus, log)
			log.Info("quote pdf prerender tasks enabled", "queue", cfg.GetAsynqQueueName())
		}
	} else {
		log.Warn("REDIS_URL not configured; listing cache and pdf prerender disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			quotesModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
