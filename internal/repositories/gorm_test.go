package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-reviewer/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func intPtr(v int) *int { return &v }

var reviewColumns = []string{
	"id", "filename", "job_description", "resume_text", "review_result",
	"job_role", "location", "relevance_score", "created_at",
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &models.User{Email: "a@b.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Email: "a@b.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "company_name", "user_name", "designation", "company_mail", "created_at"}).
		AddRow(id.String(), "a@b.com", "hash", "Acme", "Ann", "HR", "hr@acme.com", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, "Acme", user.CompanyName)
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@b.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReviewRepository_CreateKeepsDistinctRecords(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "resume_reviews"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	first := &models.ResumeReview{Filename: "cv.pdf", ReviewResult: "85"}
	second := &models.ResumeReview{Filename: "cv.pdf", ReviewResult: "85"}
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))

	assert.NotEqual(t, first.ID, second.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_FindWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	rows := sqlmock.NewRows(reviewColumns).
		AddRow(uuid.NewString(), "cv.pdf", "jd", "text", "85\nGood fit", "Python Developer", "Remote", int64(85), time.Now()).
		AddRow(uuid.NewString(), "cv2.pdf", "jd", "text", "no score", "python dev", "remote", nil, time.Now().Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "resume_reviews" WHERE job_role ILIKE \$1 AND location ILIKE \$2 AND .*relevance_score IS NULL OR relevance_score >= \$3.* AND .*relevance_score IS NULL OR relevance_score <= \$4.* ORDER BY created_at DESC`).
		WithArgs("%python%", "%remote%", 80, 90).
		WillReturnRows(rows)

	reviews, err := repo.Find(context.Background(), models.ReviewFilter{
		JobRole:  "python",
		Location: "remote",
		MinScore: intPtr(80),
		MaxScore: intPtr(90),
	})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.NotNil(t, reviews[0].RelevanceScore)
	assert.Equal(t, 85, *reviews[0].RelevanceScore)
	assert.Nil(t, reviews[1].RelevanceScore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_FindNoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resume_reviews" ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(reviewColumns))

	reviews, err := repo.Find(context.Background(), models.ReviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, reviews)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_FindByIDsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	reviews, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"python", "%python%"},
		{"100%", `%100\%%`},
		{"back_end", `%back\_end%`},
		{`c:\dev`, `%c:\\dev%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.in))
		})
	}
}
