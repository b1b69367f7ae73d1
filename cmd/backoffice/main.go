package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/retailcore/backoffice/internal/adapters/database/memory"
	"github.com/retailcore/backoffice/internal/adapters/database/pgsql"
	portsrepo "github.com/retailcore/backoffice/internal/core/ports/repositories"
	"github.com/retailcore/backoffice/internal/core/services"
	"github.com/retailcore/backoffice/internal/handlers"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/pkg/config"
	"github.com/retailcore/backoffice/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	serviceContainer := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.StructuredLoggingMiddleware(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-User-ID")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermemory.NewStore(), rate)))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Starting server", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories wires either the PostgreSQL adapters (when PGSQL_URL is
// set, running migrations first) or the in-memory store for local use.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using in-memory storage; data will not survive a restart")
		store := memory.NewStore()
		return portsrepo.RepositoryProvider{
			ProductRepo:  store,
			StockRepo:    store,
			DocumentRepo: store,
		}, func() {}, nil
	}

	pool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		pool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return portsrepo.RepositoryProvider{
		ProductRepo:  pgsql.NewProductRepository(pool),
		StockRepo:    pgsql.NewStockRepository(pool),
		DocumentRepo: pgsql.NewDocumentRepository(pool),
	}, pool.Close, nil
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// The migration tooling wants a database/sql connection; use the pgx
	// stdlib driver so it matches the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("Database migrations applied")
	return nil
}
