package models

import (
	"time"

	"github.com/google/uuid"
)

// A subject name is unique within its branch, not globally.
type Subject struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:200;not null;uniqueIndex:idx_subject_branch_name" json:"name"`
	BranchID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subject_branch_name" json:"branch_id"`
	Description string    `gorm:"type:text" json:"description"`

	Branch Branch `gorm:"foreignkey:BranchID" json:"-"`
	Tests  []Test `gorm:"foreignkey:SubjectID" json:"tests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
