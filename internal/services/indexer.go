package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// searchFanout widens the chunk query so enough distinct reviews survive
// de-duplication.
const searchFanout = 4

// ReviewIndexer keeps a semantic index of stored reviews.
type ReviewIndexer interface {
	IndexReview(ctx context.Context, review *models.ResumeReview) (int, error)
	Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
}

type reviewIndexer struct {
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
	log           *logrus.Logger
}

func NewReviewIndexer(geminiService GeminiService, qdrantService QdrantService, log *logrus.Logger) ReviewIndexer {
	return &reviewIndexer{
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       NewTextChunker(),
		log:           log,
	}
}

// IndexReview embeds each chunk of the resume text and stores it under the
// review's id. It returns how many chunks were stored.
func (i *reviewIndexer) IndexReview(ctx context.Context, review *models.ResumeReview) (int, error) {
	chunks := i.chunker.ChunkText(review.ResumeText, defaultChunkSize, defaultChunkOverlap)

	for idx, chunk := range chunks {
		embedding, err := i.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return idx, fmt.Errorf("failed to embed chunk %d: %w", idx, err)
		}

		if err := i.qdrantService.UpsertChunk(ctx, review.ID, idx, chunk, embedding); err != nil {
			return idx, fmt.Errorf("failed to store chunk %d: %w", idx, err)
		}
	}

	i.log.WithFields(logrus.Fields{
		"review_id": review.ID,
		"chunks":    len(chunks),
	}).Debug("Review indexed")

	return len(chunks), nil
}

// Search returns the ids of the reviews whose chunks best match the query,
// ranked by their best chunk.
func (i *reviewIndexer) Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	embedding, err := i.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %v", ErrUpstream, err)
	}

	results, err := i.qdrantService.SearchSimilar(ctx, embedding, limit*searchFanout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	seen := make(map[uuid.UUID]struct{}, limit)
	ids := make([]uuid.UUID, 0, limit)
	for _, r := range results {
		id, err := uuid.Parse(r.ReviewID)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == limit {
			break
		}
	}

	return ids, nil
}
