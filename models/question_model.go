package models

import (
	"time"

	"github.com/google/uuid"
)

// SortOrder is assigned at creation and fixes the delivery sequence;
// q_index is an offset into the test's questions ordered by it.
type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TestID        uuid.UUID `gorm:"type:uuid;not null;index" json:"test_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	Option1       string    `gorm:"size:500;not null" json:"option1"`
	Option2       string    `gorm:"size:500;not null" json:"option2"`
	Option3       string    `gorm:"size:500;not null" json:"option3"`
	Option4       string    `gorm:"size:500;not null" json:"option4"`
	CorrectOption int       `gorm:"not null" json:"correct_option"`
	Solution      *string   `gorm:"type:text" json:"solution"`
	SortOrder     int       `gorm:"not null;default:0;index" json:"sort_order"`

	Test Test `gorm:"foreignkey:TestID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
