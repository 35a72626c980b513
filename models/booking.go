package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. cancelled and completed are terminal: no transition
// leads out of them (the refund override in the payment service is the one
// sanctioned exception, see services.PaymentService.MarkAsRefunded).
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking reserves a room type for a date range. No physical room is
// assigned; availability is checked per type before creation.
type Booking struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	BookingCode string `gorm:"column:booking_code;uniqueIndex;size:32" json:"booking_code"`
	UserID      uint   `gorm:"column:user_id;index;not null" json:"user_id"`
	HotelID     uint   `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	RoomTypeID  uint   `gorm:"column:room_type_id;index;not null" json:"room_type_id"`

	CheckInDate  time.Time `gorm:"column:check_in_date;type:date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date" json:"check_out_date"`
	Nights       int       `json:"nights"`
	Guests       int       `json:"guests"`

	// RoomPrice is snapshotted from the room type at creation; later price
	// changes on the type do not affect this booking.
	RoomPrice  float64 `gorm:"column:room_price;type:decimal(10,2)" json:"room_price"`
	TotalPrice float64 `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`

	Status          string     `gorm:"size:32;default:pending;index" json:"status"`
	StatusLabel     string     `gorm:"-" json:"status_label,omitempty"`
	SpecialRequests string     `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`
	ConfirmedAt     *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hotel    Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
	Payment  *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
	Review   *Review  `gorm:"foreignKey:BookingID" json:"review,omitempty"`
}

// AfterFind fills the presentation label for the loaded status.
func (b *Booking) AfterFind(*gorm.DB) error {
	b.StatusLabel = BookingStatusLabels[b.Status]
	return nil
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func (b *Booking) IsPending() bool   { return b.Status == BookingStatusPending }
func (b *Booking) IsConfirmed() bool { return b.Status == BookingStatusConfirmed }

// IsTerminal reports whether the booking reached a final state.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}
