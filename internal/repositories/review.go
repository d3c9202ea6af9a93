package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.ResumeReview) error
	Find(ctx context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ResumeReview, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into an ILIKE pattern matching it as a
// literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Create implements ReviewRepository.
func (r *reviewRepository) Create(ctx context.Context, review *models.ResumeReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Find implements ReviewRepository. Reviews without a relevance score are
// never excluded by the score bounds.
func (r *reviewRepository) Find(ctx context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error) {
	query := r.db.WithContext(ctx).Model(&models.ResumeReview{})

	if filter.JobRole != "" {
		query = query.Where("job_role ILIKE ?", containsPattern(filter.JobRole))
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", containsPattern(filter.Location))
	}
	if filter.MinScore != nil {
		query = query.Where("relevance_score IS NULL OR relevance_score >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		query = query.Where("relevance_score IS NULL OR relevance_score <= ?", *filter.MaxScore)
	}

	var reviews []models.ResumeReview
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, nil
}

// FindByIDs implements ReviewRepository.
func (r *reviewRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ResumeReview, error) {
	if len(ids) == 0 {
		return []models.ResumeReview{}, nil
	}

	var reviews []models.ResumeReview
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return reviews, nil
}
