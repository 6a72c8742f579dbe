package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	blobs, err := storage.NewBlobStore(ctx, cfg.Blob)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	fileRepo := repository.NewFileRepository(pool)

	authService := service.NewAuthService(*cfg, userRepo)
	contentService := service.NewContentService(service.ContentDependencies{
		CategoryRepo: categoryRepo,
		TagRepo:      tagRepo,
		PostRepo:     postRepo,
		ProjectRepo:  projectRepo,
		Views:        service.NewViewCounter(redis.Client, logger),
	})
	fileService := service.NewFileService(fileRepo, blobs, logger)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	bootstrapAdmin(ctx, cfg.Auth, authService, userRepo, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Taxonomy:   handlers.NewTaxonomyHandler(contentService),
		Posts:      handlers.NewPostsHandler(contentService),
		Projects:   handlers.NewProjectsHandler(contentService),
		Files:      handlers.NewFilesHandler(fileService),
		Middleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// bootstrapAdmin creates the admin account on first start when configured.
func bootstrapAdmin(ctx context.Context, cfg config.AuthConfig, authService *service.AuthService, users repository.UserRepository, logger *zap.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); !errors.Is(err, pgx.ErrNoRows) {
		return
	}
	if _, err := authService.Register(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, domain.RoleAdmin); err != nil {
		logger.Warn("admin bootstrap failed", zap.Error(err))
		return
	}
	logger.Info("bootstrapped admin account", zap.String("email", cfg.AdminEmail))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
