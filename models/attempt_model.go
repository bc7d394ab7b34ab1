package models

import (
	"time"

	"github.com/google/uuid"
)

// At most one attempt exists per (user, question); resubmission overwrites
// it. SelectedOption is nil when the question was only marked for review.
type Attempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_question" json:"user_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_question" json:"question_id"`
	SelectedOption *int      `json:"selected_option"`
	IsCorrect      bool      `gorm:"not null;default:false" json:"is_correct"`
	Reviewed       bool      `gorm:"not null;default:false" json:"reviewed"`
	AttemptedAt    time.Time `gorm:"not null" json:"attempted_at"`

	User     User     `gorm:"foreignkey:UserID" json:"-"`
	Question Question `gorm:"foreignkey:QuestionID" json:"-"`
}
