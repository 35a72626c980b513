package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is a priced, capacity-bounded category of rooms within a hotel
// (Standard, Deluxe, Suite). Bookings reference the type, not a physical
// room.
type RoomType struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	HotelID       uint           `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	Name          string         `gorm:"size:255" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PricePerNight float64        `gorm:"column:price_per_night;type:decimal(10,2)" json:"price_per_night"`
	Capacity      int            `json:"capacity"` // max guests
	Size          *float64       `gorm:"type:decimal(5,2)" json:"size,omitempty"` // m²
	Facilities    datatypes.JSON `json:"facilities,omitempty"`
	Images        datatypes.JSON `json:"images,omitempty"`
	IsAvailable   bool           `gorm:"column:is_available;default:true" json:"is_available"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Hotel    Hotel     `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Rooms    []Room    `gorm:"foreignKey:RoomTypeID" json:"rooms,omitempty"`
	Bookings []Booking `gorm:"foreignKey:RoomTypeID" json:"bookings,omitempty"`
}
