package services

import (
	"errors"
	"fmt"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

type CreateRoomTypeInput struct {
	HotelID       uint
	Name          string
	Description   string
	PricePerNight float64
	Capacity      int
	Size          *float64
	Facilities    []string
	Images        []string
	IsAvailable   *bool
}

type UpdateRoomTypeInput struct {
	Name          *string
	Description   *string
	PricePerNight *float64
	Capacity      *int
	Size          *float64
	Facilities    *[]string
	Images        *[]string
	IsAvailable   *bool
}

type RoomTypeFilters struct {
	HotelID       uint
	AvailableOnly bool
	MinPrice      float64
	MaxPrice      float64
	Capacity      int
	Search        string
	Page          int
	PerPage       int
}

// Create requires admin or a manager of the owning hotel.
func (s *RoomTypeService) Create(caller models.Caller, in CreateRoomTypeInput) (*models.RoomType, error) {
	if !caller.ManagesHotel(in.HotelID) {
		return nil, ErrUnauthorized
	}
	if in.PricePerNight <= 0 {
		return nil, fmt.Errorf("price_per_night must be positive")
	}
	if in.Capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, in.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}

	facilities, err := toJSONList(in.Facilities)
	if err != nil {
		return nil, fmt.Errorf("invalid facilities: %w", err)
	}
	images, err := toJSONList(in.Images)
	if err != nil {
		return nil, fmt.Errorf("invalid images: %w", err)
	}

	rt := &models.RoomType{
		HotelID:       in.HotelID,
		Name:          in.Name,
		Description:   in.Description,
		PricePerNight: in.PricePerNight,
		Capacity:      in.Capacity,
		Size:          in.Size,
		Facilities:    facilities,
		Images:        images,
		IsAvailable:   true,
	}
	if in.IsAvailable != nil {
		rt.IsAvailable = *in.IsAvailable
	}

	if err := s.DB.Create(rt).Error; err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	return s.Get(rt.ID)
}

func (s *RoomTypeService) Get(id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.Preload("Hotel").First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to load room type: %w", err)
	}
	return &rt, nil
}

// Update changes the type in place. Existing bookings keep their price
// snapshot, so repricing never rewrites history.
func (s *RoomTypeService) Update(caller models.Caller, id uint, in UpdateRoomTypeInput) (*models.RoomType, error) {
	rt, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !caller.ManagesHotel(rt.HotelID) {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.PricePerNight != nil {
		if *in.PricePerNight <= 0 {
			return nil, fmt.Errorf("price_per_night must be positive")
		}
		updates["price_per_night"] = *in.PricePerNight
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, fmt.Errorf("capacity must be at least 1")
		}
		updates["capacity"] = *in.Capacity
	}
	if in.Size != nil {
		updates["size"] = *in.Size
	}
	if in.Facilities != nil {
		raw, err := toJSONList(*in.Facilities)
		if err != nil {
			return nil, fmt.Errorf("invalid facilities: %w", err)
		}
		updates["facilities"] = raw
	}
	if in.Images != nil {
		raw, err := toJSONList(*in.Images)
		if err != nil {
			return nil, fmt.Errorf("invalid images: %w", err)
		}
		updates["images"] = raw
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.RoomType{}).Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update room type: %w", err)
		}
	}
	return s.Get(id)
}

// Delete refuses while active bookings reference the type.
func (s *RoomTypeService) Delete(caller models.Caller, id uint) error {
	rt, err := s.Get(id)
	if err != nil {
		return err
	}
	if !caller.ManagesHotel(rt.HotelID) {
		return ErrUnauthorized
	}

	var active int64
	if err := s.DB.Model(&models.Booking{}).
		Where("room_type_id = ? AND status IN ?", id,
			[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&active).Error; err != nil {
		return fmt.Errorf("failed to count bookings: %w", err)
	}
	if active > 0 {
		return ErrRoomHasBookings
	}

	if err := s.DB.Delete(&models.RoomType{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}
	return nil
}

func (s *RoomTypeService) List(f RoomTypeFilters) (utils.Paginated, error) {
	query := s.DB.Model(&models.RoomType{}).Preload("Hotel")

	if f.HotelID != 0 {
		query = query.Where("hotel_id = ?", f.HotelID)
	}
	if f.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if f.MinPrice > 0 {
		query = query.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.Capacity > 0 {
		query = query.Where("capacity >= ?", f.Capacity)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count room types: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var types []models.RoomType
	if err := query.Order("price_per_night ASC").
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&types).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve room types: %w", err)
	}

	return utils.NewPaginated(types, f.Page, f.PerPage, total), nil
}
