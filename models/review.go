package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is 1:1 with its booking and only allowed once the booking is
// completed. Hotel.rating / Hotel.total_reviews are recomputed on every
// review mutation.
type Review struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"column:user_id;index;not null" json:"user_id"`
	HotelID     uint           `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	BookingID   uint           `gorm:"column:booking_id;uniqueIndex;not null" json:"booking_id"`
	Rating      int            `json:"rating"` // 1..5
	RatingLabel string         `gorm:"-" json:"rating_label,omitempty"`
	Comment     string         `gorm:"size:1000" json:"comment,omitempty"`
	Images      datatypes.JSON `json:"images,omitempty"` // stored file references

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hotel   Hotel   `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (r *Review) AfterFind(*gorm.DB) error {
	r.RatingLabel = RatingLabels[r.Rating]
	return nil
}

func (r *Review) IsPositive() bool { return r.Rating >= 4 }
func (r *Review) IsNegative() bool { return r.Rating <= 2 }
func (r *Review) IsNeutral() bool  { return r.Rating == 3 }
