package services

import (
	"fmt"
	"testing"
	"time"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var emailSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// single connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	emailSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     fmt.Sprintf("User %d", emailSeq),
		Email:    fmt.Sprintf("user%d@example.test", emailSeq),
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHotel(t *testing.T, db *gorm.DB) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{
		Name:     "Test Hotel",
		Address:  "1 Test St",
		City:     "Testville",
		IsActive: true,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func seedRoomType(t *testing.T, db *gorm.DB, hotelID uint, price float64, capacity int) *models.RoomType {
	t.Helper()
	rt := &models.RoomType{
		HotelID:       hotelID,
		Name:          "Standard",
		PricePerNight: price,
		Capacity:      capacity,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, roomTypeID uint, number string) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomTypeID:  roomTypeID,
		RoomNumber:  number,
		Floor:       1,
		Status:      models.RoomStatusAvailable,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func userCaller(u *models.User) models.Caller {
	return models.Caller{ID: u.ID, Role: u.Role}
}

func adminCaller(u *models.User) models.Caller {
	return models.Caller{ID: u.ID, Role: models.RoleAdmin}
}

func managerCaller(u *models.User, hotelIDs ...uint) models.Caller {
	return models.Caller{ID: u.ID, Role: models.RoleHotelManager, ManagedHotelIDs: hotelIDs}
}

// futureDate returns midnight UTC n days from today.
func futureDate(n int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}
