package models

import (
	"time"

	"gorm.io/gorm"
)

// Room statuses. is_available mirrors status: it is true exactly when the
// status is RoomStatusAvailable, kept in sync by the room service.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out_of_order"
)

type Room struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoomTypeID  uint   `gorm:"column:room_type_id;index;not null" json:"room_type_id"`
	RoomNumber  string `gorm:"column:room_number;size:10;index" json:"room_number"`
	Floor       int    `json:"floor"`
	Status      string `gorm:"size:32;default:available;index" json:"status"`
	StatusLabel string `gorm:"-" json:"status_label,omitempty"`
	IsAvailable bool   `gorm:"column:is_available;default:true" json:"is_available"`
	Notes       string `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

func (r *Room) AfterFind(*gorm.DB) error {
	r.StatusLabel = RoomStatusLabels[r.Status]
	return nil
}

func ValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusOutOfOrder:
		return true
	}
	return false
}

func (r *Room) IsBookable() bool {
	return r.Status == RoomStatusAvailable && r.IsAvailable
}
