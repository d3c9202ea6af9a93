package models

import (
	"time"

	"github.com/google/uuid"
)

// ResumeReview is one stored check_resume outcome. It is written once and
// never updated.
type ResumeReview struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Filename       string    `gorm:"type:text" json:"filename"`
	JobDescription string    `gorm:"type:text" json:"job_description"`
	ResumeText     string    `gorm:"type:text" json:"resume_text"`
	ReviewResult   string    `gorm:"type:text" json:"review_result"`
	JobRole        string    `gorm:"type:text;index" json:"job_role"`
	Location       string    `gorm:"type:text;index" json:"location"`
	RelevanceScore *int      `gorm:"index" json:"relevance_score,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (ResumeReview) TableName() string {
	return "resume_reviews"
}

// ReviewFilter narrows a review listing. Empty strings and nil pointers mean
// "no constraint".
type ReviewFilter struct {
	JobRole  string
	Location string
	MinScore *int
	MaxScore *int
}
