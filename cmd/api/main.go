package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autotradespot_backend/internal/adapters"
	"autotradespot_backend/internal/adapters/storage"
	"autotradespot_backend/internal/auth"
	"autotradespot_backend/internal/catalog"
	"autotradespot_backend/internal/email"
	"autotradespot_backend/internal/events"
	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/internal/http/router"
	"autotradespot_backend/internal/listings"
	listingservice "autotradespot_backend/internal/listings/service"
	"autotradespot_backend/internal/media"
	"autotradespot_backend/internal/notification"
	"autotradespot_backend/internal/scheduler"
	"autotradespot_backend/internal/search"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/internal/vehicledata"
	"autotradespot_backend/internal/wizard"
	wizardservice "autotradespot_backend/internal/wizard/service"
	"autotradespot_backend/migrations"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/db"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
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

	eventBus := events.NewInMemoryBus(log)

	sessions, closeSessions, err := session.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize session store", "error", err)
		panic("failed to initialize session store: " + err.Error())
	}
	defer func() { _ = closeSessions() }()

	mailQueue, closeQueue := initMailQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	val := validator.New()

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		panic("failed to initialize storage: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "listing images", cfg.GetMinioBucketListingImages())
	imageStore := media.NewStore(storageSvc, cfg.GetMinioBucketListingImages(), log)

	// ========================================================================
	// Domain Modules
	// ========================================================================

	catalogModule := catalog.NewModule(pool, val, log)
	if err := catalogModule.SeedDefaults(ctx); err != nil {
		log.Error("failed to seed car catalog", "error", err)
		panic("failed to seed car catalog: " + err.Error())
	}
	carCatalog := adapters.NewCarCatalog(catalogModule.Service())

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)

	var queue scheduler.MailQueue
	if mailQueue != nil {
		queue = mailQueue
	}
	notification.New(queue, sender, authModule.Users(), cfg, log).RegisterHandlers(eventBus)

	listingsModule := listings.NewModule(pool, listingservice.Deps{
		Users:    authModule.Users(),
		Images:   imageStore,
		Catalog:  carCatalog,
		Sessions: sessions,
		EventBus: eventBus,
		Val:      val,
		Log:      log,
	})

	vehicleModule := vehicledata.NewModule(cfg, log)

	searchModule := search.NewModule(listingsModule.Repository(), listingsModule.Service(), val, log)

	wizardModule := wizard.NewModule(wizardservice.Deps{
		Listings: listingsModule.Service(),
		Catalog:  carCatalog,
		Plates:   vehicleModule.Service(),
		Sessions: sessions,
		Val:      val,
		Log:      log,
	})

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
			searchModule,
			listingsModule,
			wizardModule,
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
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initMailQueue(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; listing mail is sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize mail queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
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
