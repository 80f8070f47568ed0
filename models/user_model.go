package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;unique" json:"email"`
	Phone       string     `gorm:"size:20;not null;unique" json:"phone"`
	Gender      string     `gorm:"size:10" json:"gender"`
	DOB         *time.Time `json:"dob"`
	Designation string     `gorm:"size:50;not null;default:'User'" json:"designation"`
	Password    string     `gorm:"not null" json:"-"`
	Login       bool       `gorm:"default:false" json:"login"`

	OTP          *int       `json:"-"`
	OTPTimestamp *time.Time `json:"-"`

	Bookings  []Booking `gorm:"foreignkey:UserID" json:"bookings,omitempty"`
	Enquiries []Enquiry `gorm:"foreignkey:UserID" json:"enquiries,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
