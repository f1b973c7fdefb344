package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/database/mongo"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/database/postgres"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/events"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/mail"
	infraRedis "github.com/MohdOwais22/subaku-backend/internal/infrastructure/redis"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/storage/cloudinary"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/storage/memory"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	"github.com/MohdOwais22/subaku-backend/internal/routes"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", cfg.Server.Environment),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closers, err := buildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error("Failed to close dependency", zap.Error(err))
			}
		}
	}()

	router := routes.SetupRoutes(ctx, cfg, deps)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      6 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

type closer func() error

// buildDependencies picks the adapters named by the configuration. Redis and
// Kafka are optional; Cloudinary falls back to the in-memory store.
func buildDependencies(ctx context.Context, cfg *config.Config) (routes.Dependencies, []closer, error) {
	var deps routes.Dependencies
	var closers []closer

	switch cfg.Database.Driver {
	case "mongo":
		db, err := mongo.NewDB(ctx, cfg)
		if err != nil {
			return deps, closers, err
		}
		closers = append(closers, db.Close)
		if err := db.EnsureIndexes(ctx); err != nil {
			return deps, closers, err
		}
		deps.Products = mongo.NewProductRepository(db.Database)
		deps.Users = mongo.NewUserRepository(db.Database)
		deps.Checks = append(deps.Checks, routes.HealthCheck{Name: "Database", Check: db.Health})
	default:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return deps, closers, err
		}
		closers = append(closers, db.Close)
		if err := db.Migrate(); err != nil {
			return deps, closers, err
		}
		deps.Products = postgres.NewProductRepository(db)
		deps.Users = postgres.NewUserRepository(db)
		deps.Checks = append(deps.Checks, routes.HealthCheck{Name: "Database", Check: db.Health})
	}

	store, err := newObjectStore(cfg)
	if err != nil {
		return deps, closers, err
	}
	deps.Store = store

	if cfg.Redis.Addr != "" {
		client, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return deps, closers, err
		}
		closers = append(closers, client.Close)
		deps.Cache = infraRedis.NewProductCache(client, cfg.Redis.ProductCacheTTL)
		deps.Orphans = infraRedis.NewOrphanQueue(client)
		deps.Checks = append(deps.Checks, routes.HealthCheck{
			Name:  "Redis",
			Check: func() error { return client.Ping(context.Background()).Err() },
		})
	} else {
		logger.Warn("REDIS_ADDR not set, product cache and orphan sweeper disabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers)
		closers = append(closers, publisher.Close)
		deps.Events = publisher
	} else {
		deps.Events = events.NoopPublisher{}
	}

	if cfg.SMTP.Host != "" {
		deps.Mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		logger.Warn("SMTP_HOST not set, password reset mail will only be logged")
		deps.Mailer = mail.LogMailer{}
	}

	return deps, closers, nil
}

func newObjectStore(cfg *config.Config) (asset.Store, error) {
	if cfg.Cloudinary.CloudName == "" {
		logger.Warn("CLOUDINARY_NAME not set, using in-memory image store")
		return memory.NewStore(""), nil
	}
	return cloudinary.NewStore(cfg.Cloudinary)
}
