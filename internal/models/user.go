package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CompanyName  string    `gorm:"type:text" json:"company_name"`
	UserName     string    `gorm:"type:text" json:"user_name"`
	Designation  string    `gorm:"type:text" json:"designation"`
	CompanyMail  string    `gorm:"type:text" json:"company_mail"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
