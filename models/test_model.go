package models

import (
	"time"

	"github.com/google/uuid"
)

type Test struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"size:255;not null;uniqueIndex:idx_test_subject_name" json:"name"`
	SubjectID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_test_subject_name" json:"subject_id"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	TotalMarks      int       `gorm:"not null;default:100" json:"total_marks"`

	Subject   Subject    `gorm:"foreignkey:SubjectID" json:"-"`
	Questions []Question `gorm:"foreignkey:TestID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndsAt returns the close of the attempt window. The window is fixed at
// creation: [created_at, created_at + duration), not per-user-start.
func (t *Test) EndsAt() time.Time {
	return t.CreatedAt.Add(time.Duration(t.DurationMinutes) * time.Minute)
}
