package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/salmankhalil12/Restaurant-Site/internal/catalog"
	"github.com/salmankhalil12/Restaurant-Site/internal/config"
	handler "github.com/salmankhalil12/Restaurant-Site/internal/handler/http"
	"github.com/salmankhalil12/Restaurant-Site/internal/notify"
	"github.com/salmankhalil12/Restaurant-Site/internal/render"
	"github.com/salmankhalil12/Restaurant-Site/internal/repository"
	"github.com/salmankhalil12/Restaurant-Site/internal/repository/memory"
	pgstorage "github.com/salmankhalil12/Restaurant-Site/internal/repository/postgres"
	redisstorage "github.com/salmankhalil12/Restaurant-Site/internal/repository/redis"
	"github.com/salmankhalil12/Restaurant-Site/internal/service"
	"github.com/salmankhalil12/Restaurant-Site/internal/store"
	"github.com/salmankhalil12/Restaurant-Site/pkg/database"
	"github.com/salmankhalil12/Restaurant-Site/pkg/health"
	"github.com/salmankhalil12/Restaurant-Site/pkg/tracing"
)

// App wires together all dependencies and runs the FoodSprint service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	storage        repository.Storage
	feed           *notify.Feed
	httpServer     *http.Server
	closers        []namedCloser
	shutdownTracer func(context.Context) error
}

type namedCloser struct {
	name  string
	close func() error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold, logger)

	a := &App{cfg: cfg, logger: logger, shutdownTracer: shutdownTracer}

	storage, err := a.openStorage(ctx)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	a.storage = storage

	menu, err := loadMenu(cfg.MenuFile)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	logger.Info("menu loaded", slog.Int("items", len(menu.All())), slog.Any("categories", menu.Categories()))

	// Build the dependency graph.
	a.feed = notify.NewFeed(cfg.ToastTTL, logger)
	cart := store.New(ctx, storage, store.WithKey(cfg.CartStorageKey), store.WithLogger(logger))
	cartService := service.NewCartService(cart, render.NewHTML(), a.feed, menu, logger)
	bookingService := service.NewBookingService(a.feed, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("storage", storage.Ping)
	healthHandler.RegisterNonCritical("menu", menu.Check)

	router := handler.NewRouter(cartService, bookingService, menu, a.feed, healthHandler, cfg.PprofAllowedCIDRs, logger)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// openStorage connects the configured backend and registers its closer.
func (a *App) openStorage(ctx context.Context) (repository.Storage, error) {
	switch a.cfg.StorageBackend {
	case config.BackendRedis:
		rc := a.cfg.Redis()
		client, err := database.NewRedisClient(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, namedCloser{"redis", client.Close})
		a.logger.Info("connected to Redis", slog.String("addr", rc.Addr()), slog.Int("db", rc.DB))
		return redisstorage.NewStorage(client, a.cfg.RedisTTL), nil

	case config.BackendPostgres:
		pc := a.cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pc, a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, namedCloser{"postgres", func() error { pool.Close(); return nil }})
		if err := database.RunMigrations(ctx, pool, pgstorage.Migrations(), a.logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, database.StatsFromPool(pool), config.ServiceName); err != nil {
			a.logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
		}
		a.logger.Info("connected to PostgreSQL", slog.String("host", pc.Host), slog.String("db", pc.DBName))
		return pgstorage.NewStorage(pool), nil

	case config.BackendMemory:
		a.logger.Warn("using in-memory cart storage; the cart is lost on restart")
		return memory.NewStorage(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.cfg.StorageBackend)
	}
}

func loadMenu(path string) (*catalog.Catalog, error) {
	if path == "" {
		menu, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load default menu: %w", err)
		}
		return menu, nil
	}
	menu, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load menu %s: %w", path, err)
	}
	return menu, nil
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeAll()

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) closeAll() {
	if a.feed != nil {
		a.feed.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].close(); err != nil {
			a.logger.Error(a.closers[i].name+" close error", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}
