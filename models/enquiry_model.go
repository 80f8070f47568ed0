package models

import (
	"time"

	"github.com/google/uuid"
)

type Enquiry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ParlorEmail string    `gorm:"size:255;not null;index" json:"parlor_email"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	UserMessage string    `gorm:"type:text" json:"user_message"`
	SpMessage   string    `gorm:"type:text;default:''" json:"sp_message"`
	Status      string    `gorm:"size:20;not null;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
