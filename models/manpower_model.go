package models

import (
	"time"

	"github.com/google/uuid"
)

type ManpowerEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID     uuid.UUID `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      *string   `gorm:"size:20" json:"phone,omitempty"`
	Experience float64   `gorm:"not null" json:"experience"`
	Salary     float64   `gorm:"type:numeric(10,2);not null" json:"salary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
