package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the durable record the gateway webhook reconciles against.
// One row per created order, keyed by the external order id; never deleted.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID     uuid.UUID `gorm:"type:uuid;not null" json:"booking_id"`
	OrderID       string    `gorm:"size:255;not null;unique" json:"order_id"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentStatus string    `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	TransactionID *string   `gorm:"size:255" json:"transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
