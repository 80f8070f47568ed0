package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"

	ConfirmedPending   = "Pending"
	ConfirmedConfirmed = "confirmed"
	ConfirmedCancelled = "Cancelled"

	RefundStatusNone     = "NONE"
	RefundStatusPending  = "PENDING"
	RefundStatusApproved = "APPROVED"
	RefundStatusRejected = "REJECTED"
)

type Booking struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	ParlorEmail string     `gorm:"size:255;not null;index" json:"parlor_email"`
	ParlorName  string     `gorm:"size:255;not null" json:"parlor_name"`
	Name        string     `gorm:"size:255" json:"name"`
	Date        *time.Time `json:"date"`
	Time        string     `gorm:"size:20;not null" json:"time"`
	Duration    int        `json:"duration"`
	Service     string     `gorm:"size:255;not null" json:"service"`

	FavoriteEmployee string   `gorm:"size:255" json:"favorite_employee"`
	RelatedServices  []string `gorm:"serializer:json" json:"related_services"`

	Amount      float64 `gorm:"type:numeric(10,2)" json:"amount"`
	TotalAmount float64 `gorm:"type:numeric(10,2)" json:"total_amount"`
	PaymentMode string  `gorm:"size:50" json:"payment_mode"`

	PaymentStatus string `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	Confirmed     string `gorm:"size:20;not null;default:'Pending'" json:"confirmed"`

	RefundStatus   string  `gorm:"size:20;not null;default:'NONE'" json:"refund_status"`
	RefundedAmount float64 `gorm:"type:numeric(10,2);default:0" json:"refunded_amount"`
	UPIID          *string `gorm:"size:255" json:"upi_id,omitempty"`

	OrderID       *string `gorm:"size:255;index" json:"order_id,omitempty"`
	TransactionID *string `gorm:"size:255" json:"transaction_id,omitempty"`
	FailureReason *string `gorm:"type:text" json:"failure_reason,omitempty"`
	Pin           *string `gorm:"size:10" json:"pin,omitempty"`

	UserRating    *int    `json:"user_rating,omitempty"`
	UserReview    *string `gorm:"type:text" json:"user_review,omitempty"`
	UserComplaint *string `gorm:"type:text" json:"user_complaint,omitempty"`
	SpComplaint   *string `gorm:"type:text" json:"sp_complaint,omitempty"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
