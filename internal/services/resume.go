package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
)

type CheckResumeRequest struct {
	Filename       string
	FilePath       string
	JobDescription string
	JobRole        string
	Location       string
}

type ResumeService interface {
	CheckResume(ctx context.Context, req CheckResumeRequest) (*models.ResumeReview, error)
	ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error)
	SearchReviews(ctx context.Context, query string, limit int) ([]models.ResumeReview, error)
}

type resumeService struct {
	reviewRepo repositories.ReviewRepository
	extractor  TextExtractor
	engine     ReviewEngine
	indexer    ReviewIndexer
	log        *logrus.Logger
}

// NewResumeService wires the review pipeline. indexer may be nil, in which
// case reviews are not indexed and search reports ErrIndexDisabled.
func NewResumeService(
	reviewRepo repositories.ReviewRepository,
	extractor TextExtractor,
	engine ReviewEngine,
	indexer ReviewIndexer,
	log *logrus.Logger,
) ResumeService {
	return &resumeService{
		reviewRepo: reviewRepo,
		extractor:  extractor,
		engine:     engine,
		indexer:    indexer,
		log:        log,
	}
}

// CheckResume extracts the resume text, asks the model for a review and
// stores the outcome. The file at req.FilePath is only read.
func (s *resumeService) CheckResume(ctx context.Context, req CheckResumeRequest) (*models.ResumeReview, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("%w: missing resume file or job description", ErrValidation)
	}

	kind, err := KindFromFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	resumeText, err := s.extractor.ExtractText(req.FilePath, kind)
	if err != nil {
		if errors.Is(err, ErrUnsupportedMediaType) {
			return nil, err
		}
		s.log.WithError(err).WithField("filename", req.Filename).Warn("Resume text extraction failed")
		return nil, fmt.Errorf("%w: could not extract text from resume", ErrValidation)
	}

	result, err := s.engine.Review(ctx, resumeText, req.JobDescription)
	if err != nil {
		return nil, err
	}

	review := &models.ResumeReview{
		Filename:       req.Filename,
		JobDescription: req.JobDescription,
		ResumeText:     resumeText,
		ReviewResult:   result,
		JobRole:        req.JobRole,
		Location:       req.Location,
		RelevanceScore: ParseRelevanceScore(result),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"review_id": review.ID,
		"job_role":  review.JobRole,
		"score":     review.RelevanceScore,
	}).Info("Resume reviewed")

	if s.indexer != nil {
		if _, err := s.indexer.IndexReview(ctx, review); err != nil {
			s.log.WithError(err).WithField("review_id", review.ID).Warn("Failed to index review")
		}
	}

	return review, nil
}

func (s *resumeService) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error) {
	reviews, err := s.reviewRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.ResumeReview{}
	}
	return reviews, nil
}

// SearchReviews returns stored reviews ranked by semantic similarity of their
// resume text to query.
func (s *resumeService) SearchReviews(ctx context.Context, query string, limit int) ([]models.ResumeReview, error) {
	if s.indexer == nil {
		return nil, ErrIndexDisabled
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	ids, err := s.indexer.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	found, err := s.reviewRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.ResumeReview, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	ranked := make([]models.ResumeReview, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ranked = append(ranked, r)
		}
	}
	return ranked, nil
}
