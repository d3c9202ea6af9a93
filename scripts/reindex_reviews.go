package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

// Rebuilds the semantic review index from every stored review. Point ids are
// derived from review ids, so running it twice is safe.
func main() {
	log := config.NewLogger()

	if err := run(log); err != nil {
		log.WithError(err).Error("Reindex failed")
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	cfg := config.Load(log)
	config.ConfigureLogger(log, cfg.Server.Env)

	if !cfg.IndexEnabled() {
		return errors.New("QDRANT_URL is not set; nothing to reindex")
	}

	ctx := context.Background()

	var reviewRepo repositories.ReviewRepository
	if cfg.IsMongo() {
		client, db, err := config.InitMongo(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("Failed to disconnect from MongoDB")
			}
		}()
		reviewRepo = repositories.NewMongoReviewRepository(db)
	} else {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		reviewRepo = repositories.NewReviewRepository(db)
	}

	geminiService := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
	if err != nil {
		return fmt.Errorf("failed to initialize qdrant: %w", err)
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		return fmt.Errorf("failed to initialize collection: %w", err)
	}

	indexer := services.NewReviewIndexer(geminiService, qdrantService, log)

	reviews, err := reviewRepo.Find(ctx, models.ReviewFilter{})
	if err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}
	log.WithField("reviews", len(reviews)).Info("Starting reindex")

	successCount := 0
	failCount := 0
	chunkCount := 0

	for i := range reviews {
		review := &reviews[i]
		entry := log.WithField("review_id", review.ID)

		if strings.TrimSpace(review.ResumeText) == "" {
			entry.Warn("Review has no resume text, skipping")
			continue
		}

		if err := qdrantService.DeleteReview(ctx, review.ID); err != nil {
			entry.WithError(err).Warn("Failed to clear previous points")
		}

		n, err := indexer.IndexReview(ctx, review)
		if err != nil {
			entry.WithError(err).Error("Failed to index review")
			failCount++
			continue
		}

		chunkCount += n
		successCount++
		if successCount%10 == 0 {
			log.WithField("done", successCount).Info("Reindex progress")
		}
	}

	log.WithFields(logrus.Fields{
		"successful": successCount,
		"failed":     failCount,
		"chunks":     chunkCount,
	}).Info("Reindex summary")

	if failCount > 0 {
		return fmt.Errorf("%d of %d reviews failed to index", failCount, len(reviews))
	}
	return nil
}
