package models

import (
	"time"

	"github.com/google/uuid"
)

// One profile per user, created by the registration handler in the same
// transaction as the user row. BranchID stays nil until the user picks one.
type UserProfile struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;unique" json:"user_id"`
	BranchID *uuid.UUID `gorm:"type:uuid" json:"branch_id"`

	ProfilePictureURL *string `gorm:"size:500" json:"profile_picture_url"`
	AcademicYear      *string `gorm:"size:10" json:"academic_year"`
	MobileNumber      *string `gorm:"size:15" json:"mobile_number"`

	User   User    `gorm:"foreignkey:UserID" json:"-"`
	Branch *Branch `gorm:"foreignkey:BranchID" json:"branch,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
