package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = &bytes.Buffer{}
	return log
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return fmt.Errorf("failed to create user: %w", repositories.ErrDuplicate)
	}
	user.ID = uuid.New()
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", repositories.ErrNotFound)
	}
	return &u, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []models.ResumeReview
	err     error
	filters []models.ReviewFilter
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.ResumeReview) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	review.ID = uuid.New()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) Find(_ context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.filters = append(f.filters, filter)
	return f.reviews, f.err
}

func (f *fakeReviewRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.ResumeReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.ResumeReview
	for _, r := range f.reviews {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out, f.err
}

type fakeGemini struct {
	text       string
	err        error
	embedErr   error
	prompts    []string
	embedded   []string
	hadDeadline bool
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	_, f.hadDeadline = ctx.Deadline()
	return f.text, f.err
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.embedded = append(f.embedded, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

type upsert struct {
	reviewID uuid.UUID
	index    int
	text     string
}

type fakeQdrant struct {
	upserts   []upsert
	results   []SearchResult
	upsertErr error
	lastLimit int
}

func (f *fakeQdrant) InitCollection(context.Context) error { return nil }

func (f *fakeQdrant) UpsertChunk(_ context.Context, reviewID uuid.UUID, index int, text string, _ []float32) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, upsert{reviewID: reviewID, index: index, text: text})
	return nil
}

func (f *fakeQdrant) SearchSimilar(_ context.Context, _ []float32, limit int) ([]SearchResult, error) {
	f.lastLimit = limit
	return f.results, nil
}

func (f *fakeQdrant) DeleteReview(context.Context, uuid.UUID) error { return nil }

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(string, DocumentKind) (string, error) {
	return f.text, f.err
}

type fakeEngine struct {
	result string
	err    error
	calls  int
}

func (f *fakeEngine) Review(context.Context, string, string) (string, error) {
	f.calls++
	return f.result, f.err
}

type fakeIndexer struct {
	indexed []uuid.UUID
	ids     []uuid.UUID
	err     error
}

func (f *fakeIndexer) IndexReview(_ context.Context, review *models.ResumeReview) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.indexed = append(f.indexed, review.ID)
	return 1, nil
}

func (f *fakeIndexer) Search(context.Context, string, int) ([]uuid.UUID, error) {
	return f.ids, f.err
}
