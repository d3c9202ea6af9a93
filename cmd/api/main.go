package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/server"
	"alfredoptarigan/resume-reviewer/internal/services"
)

// staleScratchAge is how old a leftover scratch file must be before startup
// removes it.
const staleScratchAge = time.Hour

func main() {
	log := config.NewLogger()

	if err := run(log); err != nil {
		log.WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	cfg := config.Load(log)
	config.ConfigureLogger(log, cfg.Server.Env)
	log.WithField("env", cfg.Server.Env).Info("Config loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo, reviewRepo, closeStore, err := initRepositories(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeStore()
	log.Info("Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.ScratchPath)
	if err := storageService.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	if n, err := storageService.PurgeStale(staleScratchAge); err != nil {
		log.WithError(err).Warn("Failed to purge stale scratch files")
	} else if n > 0 {
		log.WithField("removed", n).Info("Purged stale scratch files")
	}

	geminiService := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)
	reviewEngine := services.NewReviewEngine(geminiService, cfg.Gemini.Timeout, log)

	var indexer services.ReviewIndexer
	if cfg.IndexEnabled() {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
		if err != nil {
			return fmt.Errorf("failed to initialize qdrant: %w", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			return fmt.Errorf("failed to initialize qdrant collection: %w", err)
		}
		indexer = services.NewReviewIndexer(geminiService, qdrantService, log)
		log.Info("Review index enabled")
	}

	tokens := services.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.AccessTokenExpiry)

	app := server.New(server.Dependencies{
		Config:         cfg,
		Log:            log,
		AuthService:    services.NewAuthService(userRepo, tokens, log),
		Tokens:         tokens,
		ResumeService:  services.NewResumeService(reviewRepo, services.NewTextExtractor(), reviewEngine, indexer, log),
		StorageService: storageService,
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.WithError(err).Error("Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithField("addr", addr).Info("Server starting")

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// initRepositories picks the store backend from the database URL scheme.
func initRepositories(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repositories.UserRepository, repositories.ReviewRepository, func(), error) {
	if cfg.IsMongo() {
		client, db, err := config.InitMongo(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.EnsureUserIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}
		return repositories.NewMongoUserRepository(db), repositories.NewMongoReviewRepository(db), closeFn, nil
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repositories.NewUserRepository(db), repositories.NewReviewRepository(db), closeFn, nil
}
