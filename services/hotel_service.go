package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

type CreateHotelInput struct {
	Name        string
	Description string
	Address     string
	City        string
	Province    string
	PostalCode  string
	Phone       string
	Email       string
	Website     string
	Facilities  []string
	Images      []string
	Latitude    *float64
	Longitude   *float64
	CheckInTime string
	CheckOutTime string
	IsActive    *bool
}

type UpdateHotelInput struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	Province     *string
	PostalCode   *string
	Phone        *string
	Email        *string
	Website      *string
	Facilities   *[]string
	Images       *[]string
	Latitude     *float64
	Longitude    *float64
	CheckInTime  *string
	CheckOutTime *string
	IsActive     *bool
}

type HotelFilters struct {
	City       string
	Search     string
	MinRating  float64
	Facilities []string
	ActiveOnly bool
	SortBy     string
	SortOrder  string
	Page       int
	PerPage    int
}

func toJSONList(items []string) (datatypes.JSON, error) {
	if items == nil {
		return nil, nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Create is admin-only. rating and total_reviews always start at zero;
// they are derived from reviews, never accepted from the client.
func (s *HotelService) Create(caller models.Caller, in CreateHotelInput) (*models.Hotel, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}

	facilities, err := toJSONList(in.Facilities)
	if err != nil {
		return nil, fmt.Errorf("invalid facilities: %w", err)
	}
	images, err := toJSONList(in.Images)
	if err != nil {
		return nil, fmt.Errorf("invalid images: %w", err)
	}

	hotel := &models.Hotel{
		Name:         in.Name,
		Description:  in.Description,
		Address:      in.Address,
		City:         in.City,
		Province:     in.Province,
		PostalCode:   in.PostalCode,
		Phone:        in.Phone,
		Email:        in.Email,
		Website:      in.Website,
		Facilities:   facilities,
		Images:       images,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		CheckInTime:  in.CheckInTime,
		CheckOutTime: in.CheckOutTime,
		IsActive:     true,
	}
	if in.IsActive != nil {
		hotel.IsActive = *in.IsActive
	}
	if hotel.CheckInTime == "" {
		hotel.CheckInTime = "14:00"
	}
	if hotel.CheckOutTime == "" {
		hotel.CheckOutTime = "12:00"
	}

	if err := s.DB.Create(hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return hotel, nil
}

func (s *HotelService) Get(id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.Preload("RoomTypes", "is_available = ?", true).
		First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}
	return &hotel, nil
}

// Update allows admins to change anything; a manager may update only
// hotels they manage and may not flip is_active.
func (s *HotelService) Update(caller models.Caller, id uint, in UpdateHotelInput) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to load hotel: %w", err)
	}

	if !caller.ManagesHotel(id) {
		return nil, ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.Province != nil {
		updates["province"] = *in.Province
	}
	if in.PostalCode != nil {
		updates["postal_code"] = *in.PostalCode
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Website != nil {
		updates["website"] = *in.Website
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
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}
	if in.CheckInTime != nil {
		updates["check_in_time"] = *in.CheckInTime
	}
	if in.CheckOutTime != nil {
		updates["check_out_time"] = *in.CheckOutTime
	}
	if in.IsActive != nil {
		if !caller.IsAdmin() {
			return nil, ErrUnauthorized
		}
		updates["is_active"] = *in.IsActive
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&hotel).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update hotel: %w", err)
		}
	}
	return s.Get(id)
}

// Delete is admin-only and soft-deletes; room types and their bookings
// keep their foreign keys for history.
func (s *HotelService) Delete(caller models.Caller, id uint) error {
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}
	result := s.DB.Delete(&models.Hotel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete hotel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHotelNotFound
	}
	return nil
}

var hotelSortColumns = map[string]bool{
	"name":       true,
	"city":       true,
	"rating":     true,
	"created_at": true,
}

// List is the public hotel catalogue. ActiveOnly is forced on for
// non-staff callers by the controller.
func (s *HotelService) List(f HotelFilters) (utils.Paginated, error) {
	query := s.DB.Model(&models.Hotel{})

	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if f.City != "" {
		query = query.Where("city LIKE ?", "%"+f.City+"%")
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR address LIKE ?", like, like, like)
	}
	if f.MinRating > 0 {
		query = query.Where("rating >= ?", f.MinRating)
	}
	for _, fac := range f.Facilities {
		query = query.Where("facilities LIKE ?", "%"+fac+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count hotels: %w", err)
	}

	sortBy := f.SortBy
	if !hotelSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if f.SortOrder == "asc" {
		order = "ASC"
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var hotels []models.Hotel
	if err := query.Order(sortBy + " " + order).
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&hotels).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve hotels: %w", err)
	}

	return utils.NewPaginated(hotels, f.Page, f.PerPage, total), nil
}

type HotelSearchInput struct {
	City       string
	Search     string
	Facilities []string
	MinPrice   float64
	MaxPrice   float64
	Capacity   int
	Page       int
	PerPage    int
}

// Search finds active hotels whose available room types match the price
// and capacity constraints, preloading only the matching types.
func (s *HotelService) Search(in HotelSearchInput) (utils.Paginated, error) {
	roomTypeCond := func(db *gorm.DB) *gorm.DB {
		q := db.Where("is_available = ?", true)
		if in.MinPrice > 0 {
			q = q.Where("price_per_night >= ?", in.MinPrice)
		}
		if in.MaxPrice > 0 {
			q = q.Where("price_per_night <= ?", in.MaxPrice)
		}
		if in.Capacity > 0 {
			q = q.Where("capacity >= ?", in.Capacity)
		}
		return q
	}

	query := s.DB.Model(&models.Hotel{}).
		Where("is_active = ?", true).
		Where(`EXISTS (
			SELECT 1 FROM room_types
			WHERE room_types.hotel_id = hotels.id
			  AND room_types.is_available = 1
			  AND room_types.deleted_at IS NULL
			  AND (? = 0 OR room_types.price_per_night >= ?)
			  AND (? = 0 OR room_types.price_per_night <= ?)
			  AND (? = 0 OR room_types.capacity >= ?)
		)`, in.MinPrice, in.MinPrice, in.MaxPrice, in.MaxPrice, in.Capacity, in.Capacity)

	if in.City != "" {
		query = query.Where("city LIKE ?", "%"+in.City+"%")
	}
	if in.Search != "" {
		like := "%" + in.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	for _, fac := range in.Facilities {
		query = query.Where("facilities LIKE ?", "%"+fac+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count hotels: %w", err)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = utils.DefaultPerPage
	}

	var hotels []models.Hotel
	if err := query.Preload("RoomTypes", roomTypeCond).
		Order("rating DESC").
		Scopes(utils.Paginate(in.Page, in.PerPage)).
		Find(&hotels).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to search hotels: %w", err)
	}

	return utils.NewPaginated(hotels, in.Page, in.PerPage, total), nil
}

// Cities returns the distinct city list for search dropdowns.
func (s *HotelService) Cities() ([]string, error) {
	var cities []string
	if err := s.DB.Model(&models.Hotel{}).
		Where("is_active = ?", true).
		Distinct("city").Order("city ASC").
		Pluck("city", &cities).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}
