package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. hotel_manager users administer the hotels linked through
// the managed_hotels join table.
const (
	RoleAdmin        = "admin"
	RoleHotelManager = "hotel_manager"
	RoleUser         = "user"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	Role      string         `gorm:"size:32;default:user;index" json:"role"`
	Phone     string         `gorm:"size:20" json:"phone,omitempty"`
	Address   string         `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ManagedHotels []Hotel   `gorm:"many2many:managed_hotels" json:"managed_hotels,omitempty"`
	Bookings      []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
	Reviews       []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

func (u *User) HasRole(role string) bool { return u.Role == role }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsHotelManager() bool { return u.Role == RoleHotelManager }
