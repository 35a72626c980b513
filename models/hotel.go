package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;index" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Address     string         `gorm:"size:500" json:"address"`
	City        string         `gorm:"size:100;index" json:"city"`
	Province    string         `gorm:"size:100" json:"province"`
	PostalCode  string         `gorm:"column:postal_code;size:10" json:"postal_code,omitempty"`
	Latitude    *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude   *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Phone       string         `gorm:"size:20" json:"phone,omitempty"`
	Email       string         `gorm:"size:255" json:"email,omitempty"`
	Website     string         `gorm:"size:255" json:"website,omitempty"`
	Facilities  datatypes.JSON `json:"facilities,omitempty"`
	Images      datatypes.JSON `json:"images,omitempty"`

	CheckInTime  string `gorm:"column:check_in_time;size:5;default:14:00" json:"check_in_time"`
	CheckOutTime string `gorm:"column:check_out_time;size:5;default:12:00" json:"check_out_time"`

	// Derived from reviews, recomputed by the review service. Never set
	// directly by clients.
	Rating       float64 `gorm:"type:decimal(2,1);default:0" json:"rating"`
	TotalReviews int     `gorm:"column:total_reviews;default:0" json:"total_reviews"`

	IsActive  bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomTypes []RoomType `gorm:"foreignKey:HotelID" json:"room_types,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:HotelID" json:"reviews,omitempty"`
	Bookings  []Booking  `gorm:"foreignKey:HotelID" json:"bookings,omitempty"`
}
