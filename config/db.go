package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func mustJSONList(items ...string) datatypes.JSON {
	raw, err := json.Marshal(items)
	if err != nil {
		log.Fatalf("Error building seed JSON: %v", err)
	}
	return datatypes.JSON(raw)
}

// SeedDatabase is idempotent: an existing admin or hotel row means the
// corresponding block already ran.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		password := utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Name:     "Admin",
				Email:    utils.EnvOrDefault("ADMIN_EMAIL", "admin@hotel.local"),
				Password: string(hash),
				Role:     models.RoleAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount > 0 {
		return
	}

	hotel := models.Hotel{
		Name:        "Grand Archipelago Hotel",
		Description: "City-centre hotel with pool and conference rooms",
		Address:     "Jl. Sudirman No. 1",
		City:        "Jakarta",
		Province:    "DKI Jakarta",
		Phone:       "+62-21-555-0100",
		Email:       "frontdesk@grandarchipelago.example",
		Facilities:  mustJSONList("wifi", "pool", "parking", "restaurant"),
		IsActive:    true,
	}
	if err := DB.Create(&hotel).Error; err != nil {
		log.Printf("warning: failed to seed hotel: %v", err)
		return
	}

	roomTypes := []models.RoomType{
		{HotelID: hotel.ID, Name: "Standard", Description: "Standard double room", PricePerNight: 450000, Capacity: 2, IsAvailable: true, Facilities: mustJSONList("wifi", "ac")},
		{HotelID: hotel.ID, Name: "Deluxe", Description: "Deluxe room with city view", PricePerNight: 750000, Capacity: 3, IsAvailable: true, Facilities: mustJSONList("wifi", "ac", "minibar")},
		{HotelID: hotel.ID, Name: "Suite", Description: "Suite with living area", PricePerNight: 1500000, Capacity: 4, IsAvailable: true, Facilities: mustJSONList("wifi", "ac", "minibar", "bathtub")},
	}
	if err := DB.Create(&roomTypes).Error; err != nil {
		log.Printf("warning: failed to seed room types: %v", err)
		return
	}

	var rooms []models.Room
	for i, rt := range roomTypes {
		floor := i + 1
		for n := 1; n <= 4; n++ {
			rooms = append(rooms, models.Room{
				RoomTypeID:  rt.ID,
				RoomNumber:  fmt.Sprintf("%d%02d", floor, n),
				Floor:       floor,
				Status:      models.RoomStatusAvailable,
				IsAvailable: true,
			})
		}
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	log.Println("Sample hotel data seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
