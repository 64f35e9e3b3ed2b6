package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/auth"
	"github.com/mrlokans/quotes/internal/config"
	"github.com/mrlokans/quotes/internal/database"
	"github.com/mrlokans/quotes/internal/database/quotes"
	http_controllers "github.com/mrlokans/quotes/internal/http"
	"github.com/mrlokans/quotes/internal/importers"
	"github.com/mrlokans/quotes/internal/logging"
	"github.com/mrlokans/quotes/internal/readonly"
	"github.com/mrlokans/quotes/internal/scheduler"
	"github.com/mrlokans/quotes/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Options are the per-invocation settings of the serve command.
type Options struct {
	Version string
	Seed    bool // import cfg.Seed.File before serving
}

// NewLogger builds the process logger from the logging section of cfg.
func NewLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		File:           cfg.Logging.File,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxBackups: cfg.Logging.FileMaxBackups,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})
}

// Serve runs srv until SIGINT or SIGTERM, then shuts it down within the configured timeout.
func Serve(srv *http.Server, cfg *config.Config, logger *slog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String(), "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops first so no task outlives the server.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Run wires the catalog, the web stack and the background cleanup, then serves until signalled.
func Run(cfg *config.Config, opts Options) error {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting quotes", "version", opts.Version)

	if cfg.ReadOnly.Enabled {
		logger.Info("read-only mode enabled, write operations will be blocked")
	}

	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	repo := quotes.NewRepository(db.DB)

	if opts.Seed {
		result, err := importers.ImportFile(context.Background(), repo, cfg.Seed.File, logger)
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		logger.Info("catalog seeded", "file", cfg.Seed.File, "imported", result.Imported, "failed", result.Failed)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:         repo,
		Database:      db,
		Logger:        logger,
		Pagination:    http_controllers.PageLimits{DefaultSize: cfg.Pagination.DefaultSize, MaxSize: cfg.Pagination.MaxSize},
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		SecureCookies: cfg.Sessions.SecureCookies,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		Version:       opts.Version,
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	routerCfg.SessionManager = auth.NewSessionManager(sqlDB, cfg.Sessions.Lifetime, cfg.Sessions.SecureCookies)

	if cfg.CSRF.Enabled {
		if cfg.CSRF.Secret == "" {
			logger.Warn("generated CSRF secret, set CSRF_SECRET to keep forms valid across restarts")
		}
		routerCfg.CSRFSecret, err = auth.DecodeSecret(cfg.CSRF.Secret)
		if err != nil {
			return fmt.Errorf("invalid CSRF_SECRET: %w", err)
		}
	}

	if cfg.Admin.PasswordHash != "" {
		limiter := auth.NewRateLimiter(auth.DefaultRateLimitConfig())
		defer limiter.Stop()
		routerCfg.AdminGuard = auth.NewAdminGuard(cfg.Admin.Username, cfg.Admin.PasswordHash, limiter, logger)
		logger.Info("admin protection enabled", "username", cfg.Admin.Username)
	} else {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, destructive endpoints are public")
	}

	if cfg.ReadOnly.Enabled {
		routerCfg.ReadOnly = readonly.NewMiddleware(true)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	taskCtx, taskCtxCancel := context.WithCancel(context.Background())
	defer taskCtxCancel()
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error("error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAssociationsQueue(repo, logger))
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient
	}

	var cleanupScheduler *scheduler.CleanupScheduler
	if cfg.Cleanup.ScheduleEnabled {
		var queue cleanupEnqueuer
		if taskClient != nil {
			queue = taskClient
		}
		cleanupScheduler = scheduler.NewCleanupScheduler(cfg.Cleanup.Schedule, cleanupJob(queue, repo, logger), logger)
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			return fmt.Errorf("failed to start cleanup scheduler: %w", err)
		}
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		return err
	}

	srv := newServer(cfg, router)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		taskCtxCancel()
	}

	return Serve(srv, cfg, logger, onShutdown)
}

func newServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type cleanupEnqueuer interface {
	EnqueueCleanup() (string, error)
}

// cleanupJob enqueues the sweep when queue is set and sweeps inline otherwise.
func cleanupJob(queue cleanupEnqueuer, sweeper tasks.AssociationSweeper, logger *slog.Logger) scheduler.CleanupJob {
	if queue != nil {
		return func(ctx context.Context) error {
			id, err := queue.EnqueueCleanup()
			if err != nil {
				return err
			}
			logger.Info("scheduled cleanup enqueued", "task_id", id)
			return nil
		}
	}
	return func(ctx context.Context) error {
		removed, err := sweeper.DeleteDanglingAssociations(ctx)
		if err != nil {
			return err
		}
		logger.Info("scheduled cleanup finished", "removed", removed)
		return nil
	}
}
