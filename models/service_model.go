package models

import (
	"time"

	"github.com/google/uuid"
)

type ServiceEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index" json:"shop_id"`
	ServiceName string    `gorm:"size:255;not null" json:"service_name"`
	Style       string    `gorm:"size:255;not null" json:"style"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	ShopImage   string    `gorm:"size:512" json:"shop_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
