package models

import (
	"time"

	"github.com/google/uuid"
)

type Shop struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Approved    bool       `gorm:"default:false" json:"approved"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255;not null;unique" json:"email"`
	Phone       string     `gorm:"size:20;not null;unique" json:"phone"`
	Gender      string     `gorm:"size:10" json:"gender"`
	DOB         *time.Time `json:"dob"`
	Designation string     `gorm:"size:50;not null" json:"designation"`
	Password    string     `gorm:"not null" json:"-"`

	ShopName string `gorm:"size:255;not null" json:"shop_name"`
	Location string `gorm:"size:255;not null" json:"location"`
	Address  string `gorm:"size:255" json:"address"`

	Rating      float64 `gorm:"type:numeric(4,2);default:0" json:"rating"`
	CountPeople int     `gorm:"default:0" json:"count_people"`

	FromTime string `gorm:"size:10" json:"from_time"`
	ToTime   string `gorm:"size:10" json:"to_time"`
	Priority int    `gorm:"default:0" json:"priority"`

	OTP          *int       `json:"-"`
	OTPTimestamp *time.Time `json:"-"`

	Manpower []ManpowerEntry `gorm:"foreignkey:ShopID" json:"manpower,omitempty"`
	Services []ServiceEntry  `gorm:"foreignkey:ShopID" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
