package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type CreateRoomInput struct {
	RoomTypeID uint
	RoomNumber string
	Floor      int
	Status     string
	Notes      string
}

type UpdateRoomInput struct {
	RoomTypeID *uint
	RoomNumber *string
	Floor      *int
	Status     *string
	Notes      *string
}

type RoomFilters struct {
	HotelID    uint
	RoomTypeID uint
	Status     string
	Floor      *int
	Search     string
	Page       int
	PerPage    int
}

type RoomStatistics struct {
	TotalRooms       int64            `json:"total_rooms"`
	AvailableRooms   int64            `json:"available_rooms"`
	OccupiedRooms    int64            `json:"occupied_rooms"`
	MaintenanceRooms int64            `json:"maintenance_rooms"`
	OutOfOrderRooms  int64            `json:"out_of_order_rooms"`
	StatusCounts     map[string]int64 `json:"status_distribution"`
	OccupancyRate    float64          `json:"occupancy_rate"`
}

// FindAvailableRooms lists physical rooms of the type that are free for
// the half-open range [checkIn, checkOut): the room itself must be
// bookable and the room's type must have no pending/confirmed booking
// whose interval overlaps. A checkout on day X does not conflict with a
// check-in on day X. Read-only; an empty result just means no
// availability.
func (s *RoomService) FindAvailableRooms(roomTypeID uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	if err := validateStayDates(checkIn, checkOut, true); err != nil {
		return nil, err
	}

	var roomType models.RoomType
	if err := s.DB.First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("db error loading room type: %w", err)
	}

	activeStatuses := []string{models.BookingStatusPending, models.BookingStatusConfirmed}

	var rooms []models.Room
	err := s.DB.
		Where("room_type_id = ? AND status = ? AND is_available = ?",
			roomTypeID, models.RoomStatusAvailable, true).
		Where(`NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE bookings.room_type_id = rooms.room_type_id
			  AND bookings.status IN ?
			  AND bookings.check_in_date < ?
			  AND bookings.check_out_date > ?
			  AND bookings.deleted_at IS NULL
		)`, activeStatuses, truncateToDate(checkOut), truncateToDate(checkIn)).
		Preload("RoomType.Hotel").
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	return rooms, nil
}

// roomNumberTaken checks hotel-scoped room number uniqueness. excludeID
// skips the room being updated.
func (s *RoomService) roomNumberTaken(hotelID uint, roomNumber string, excludeID uint) (bool, error) {
	query := s.DB.Model(&models.Room{}).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.hotel_id = ? AND rooms.room_number = ?", hotelID, roomNumber)
	if excludeID != 0 {
		query = query.Where("rooms.id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room number: %w", err)
	}
	return count > 0, nil
}

func (s *RoomService) Create(in CreateRoomInput) (*models.Room, error) {
	var roomType models.RoomType
	if err := s.DB.First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("db error loading room type: %w", err)
	}

	status := in.Status
	if status == "" {
		status = models.RoomStatusAvailable
	}
	if !models.ValidRoomStatus(status) {
		return nil, fmt.Errorf("invalid room status %q", status)
	}

	taken, err := s.roomNumberTaken(roomType.HotelID, in.RoomNumber, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrRoomNumberTaken
	}

	room := &models.Room{
		RoomTypeID:  in.RoomTypeID,
		RoomNumber:  in.RoomNumber,
		Floor:       in.Floor,
		Status:      status,
		IsAvailable: status == models.RoomStatusAvailable,
		Notes:       in.Notes,
	}
	if err := s.DB.Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return s.Get(room.ID)
}

func (s *RoomService) Get(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType.Hotel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Update(id uint, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	roomTypeID := room.RoomTypeID
	if in.RoomTypeID != nil {
		roomTypeID = *in.RoomTypeID
	}
	var roomType models.RoomType
	if err := s.DB.First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("db error loading room type: %w", err)
	}

	if in.RoomNumber != nil || in.RoomTypeID != nil {
		roomNumber := room.RoomNumber
		if in.RoomNumber != nil {
			roomNumber = *in.RoomNumber
		}
		taken, err := s.roomNumberTaken(roomType.HotelID, roomNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrRoomNumberTaken
		}
	}

	updates := map[string]interface{}{}
	if in.RoomTypeID != nil {
		updates["room_type_id"] = *in.RoomTypeID
	}
	if in.RoomNumber != nil {
		updates["room_number"] = *in.RoomNumber
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if in.Status != nil {
		if !models.ValidRoomStatus(*in.Status) {
			return nil, fmt.Errorf("invalid room status %q", *in.Status)
		}
		updates["status"] = *in.Status
		updates["is_available"] = *in.Status == models.RoomStatusAvailable
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}

	if len(updates) > 0 {
		if err := s.DB.Model(room).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
	}
	return s.Get(id)
}

// UpdateStatus changes the operational status, keeping is_available in
// sync (available ⇔ is_available).
func (s *RoomService) UpdateStatus(id uint, status, notes string) (*models.Room, error) {
	if !models.ValidRoomStatus(status) {
		return nil, fmt.Errorf("invalid room status %q", status)
	}
	room, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Updates(map[string]interface{}{
		"status":       status,
		"is_available": status == models.RoomStatusAvailable,
		"notes":        notes,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	return s.Get(id)
}

// Delete refuses while the room's type still has active bookings: rooms
// back type-level inventory, removing one under an active booking would
// shrink it out from under the reservation.
func (s *RoomService) Delete(id uint) error {
	room, err := s.Get(id)
	if err != nil {
		return err
	}

	var active int64
	err = s.DB.Model(&models.Booking{}).
		Where("room_type_id = ? AND status IN ?", room.RoomTypeID,
			[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to count active bookings: %w", err)
	}
	if active > 0 {
		return ErrRoomHasBookings
	}

	if err := s.DB.Delete(room).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *RoomService) List(f RoomFilters) (utils.Paginated, error) {
	query := s.DB.Model(&models.Room{}).Preload("RoomType.Hotel")

	if f.HotelID != 0 {
		query = query.Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
			Where("room_types.hotel_id = ?", f.HotelID)
	}
	if f.RoomTypeID != 0 {
		query = query.Where("rooms.room_type_id = ?", f.RoomTypeID)
	}
	if f.Status != "" {
		query = query.Where("rooms.status = ?", f.Status)
	}
	if f.Floor != nil {
		query = query.Where("rooms.floor = ?", *f.Floor)
	}
	if f.Search != "" {
		query = query.Where("rooms.room_number LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count rooms: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var rooms []models.Room
	if err := query.Order("rooms.floor ASC, rooms.room_number ASC").
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&rooms).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve rooms: %w", err)
	}

	return utils.NewPaginated(rooms, f.Page, f.PerPage, total), nil
}

// Statistics aggregates room counts per status and the occupancy rate,
// optionally scoped to one hotel.
func (s *RoomService) Statistics(hotelID uint) (*RoomStatistics, error) {
	base := func() *gorm.DB {
		q := s.DB.Model(&models.Room{})
		if hotelID != 0 {
			q = q.Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
				Where("room_types.hotel_id = ?", hotelID)
		}
		return q
	}

	stats := &RoomStatistics{StatusCounts: map[string]int64{}}
	if err := base().Count(&stats.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	for _, status := range []string{
		models.RoomStatusAvailable, models.RoomStatusOccupied,
		models.RoomStatusMaintenance, models.RoomStatusOutOfOrder,
	} {
		var n int64
		if err := base().Where("rooms.status = ?", status).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count rooms by status: %w", err)
		}
		stats.StatusCounts[status] = n
	}

	stats.AvailableRooms = stats.StatusCounts[models.RoomStatusAvailable]
	stats.OccupiedRooms = stats.StatusCounts[models.RoomStatusOccupied]
	stats.MaintenanceRooms = stats.StatusCounts[models.RoomStatusMaintenance]
	stats.OutOfOrderRooms = stats.StatusCounts[models.RoomStatusOutOfOrder]

	if stats.TotalRooms > 0 {
		stats.OccupancyRate = math.Round(float64(stats.OccupiedRooms)/float64(stats.TotalRooms)*1000) / 10
	}
	return stats, nil
}
