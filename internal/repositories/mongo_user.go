package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const usersCollection = "users"

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CompanyName  string    `bson:"company_name"`
	UserName     string    `bson:"user_name"`
	Designation  string    `bson:"designation"`
	CompanyMail  string    `bson:"company_mail"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d userDocument) toModel() models.User {
	id, _ := uuid.Parse(d.ID)
	return models.User{
		ID:           id,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CompanyName:  d.CompanyName,
		UserName:     d.UserName,
		Designation:  d.Designation,
		CompanyMail:  d.CompanyMail,
		CreatedAt:    d.CreatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureUserIndexes creates the unique email index backing signup conflicts.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	doc := userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CompanyName:  user.CompanyName,
		UserName:     user.UserName,
		Designation:  user.Designation,
		CompanyMail:  user.CompanyMail,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := doc.toModel()
	return &user, nil
}
