package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const reviewsCollection = "resume_reviews"

type reviewDocument struct {
	ID             string    `bson:"_id"`
	Filename       string    `bson:"filename"`
	JobDescription string    `bson:"job_description"`
	ResumeText     string    `bson:"resume_text"`
	ReviewResult   string    `bson:"review_result"`
	JobRole        string    `bson:"job_role"`
	Location       string    `bson:"location"`
	RelevanceScore *int      `bson:"relevance_score"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (d reviewDocument) toModel() models.ResumeReview {
	id, _ := uuid.Parse(d.ID)
	return models.ResumeReview{
		ID:             id,
		Filename:       d.Filename,
		JobDescription: d.JobDescription,
		ResumeText:     d.ResumeText,
		ReviewResult:   d.ReviewResult,
		JobRole:        d.JobRole,
		Location:       d.Location,
		RelevanceScore: d.RelevanceScore,
		CreatedAt:      d.CreatedAt,
	}
}

type mongoReviewRepository struct {
	coll *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepository{coll: db.Collection(reviewsCollection)}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *models.ResumeReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	doc := reviewDocument{
		ID:             review.ID.String(),
		Filename:       review.Filename,
		JobDescription: review.JobDescription,
		ResumeText:     review.ResumeText,
		ReviewResult:   review.ReviewResult,
		JobRole:        review.JobRole,
		Location:       review.Location,
		RelevanceScore: review.RelevanceScore,
		CreatedAt:      review.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// reviewQuery builds the Mongo filter for a listing. Text filters match the
// input literally, ignoring case.
func reviewQuery(filter models.ReviewFilter) bson.M {
	var conds bson.A

	if filter.JobRole != "" {
		conds = append(conds, bson.M{"job_role": bson.M{"$regex": regexp.QuoteMeta(filter.JobRole), "$options": "i"}})
	}
	if filter.Location != "" {
		conds = append(conds, bson.M{"location": bson.M{"$regex": regexp.QuoteMeta(filter.Location), "$options": "i"}})
	}
	if filter.MinScore != nil {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"relevance_score": nil},
			bson.M{"relevance_score": bson.M{"$gte": *filter.MinScore}},
		}})
	}
	if filter.MaxScore != nil {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"relevance_score": nil},
			bson.M{"relevance_score": bson.M{"$lte": *filter.MaxScore}},
		}})
	}

	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}

func (r *mongoReviewRepository) Find(ctx context.Context, filter models.ReviewFilter) ([]models.ResumeReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, reviewQuery(filter), opts)
}

func (r *mongoReviewRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ResumeReview, error) {
	if len(ids) == 0 {
		return []models.ResumeReview{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}}, options.Find())
}

func (r *mongoReviewRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.ResumeReview, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]models.ResumeReview, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toModel())
	}
	return reviews, nil
}
