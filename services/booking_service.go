package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// BookingService owns the booking state machine:
// pending → confirmed → completed, pending/confirmed → cancelled.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	HotelID         uint
	RoomTypeID      uint
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Guests          int
	SpecialRequests string
}

// UpdateBookingInput enumerates exactly which fields are mutable. Status is
// honored for admin/hotel-manager callers only; server-owned fields
// (nights, prices, timestamps) are always derived, never assigned.
type UpdateBookingInput struct {
	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	Guests          *int
	SpecialRequests *string
	Status          *string
}

type BookingFilters struct {
	UserID    uint
	HotelID   uint
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string // booking code substring
	Page      int
	PerPage   int
}

// truncateToDate drops the time component; bookings deal in calendar days.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// nightsBetween computes whole days in the half-open range [in, out).
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(truncateToDate(checkOut).Sub(truncateToDate(checkIn)).Hours() / 24)
}

func validateStayDates(checkIn, checkOut time.Time, requireFuture bool) error {
	ci, co := truncateToDate(checkIn), truncateToDate(checkOut)
	if !co.After(ci) {
		return ErrInvalidDateRange
	}
	if requireFuture && ci.Before(truncateToDate(time.Now())) {
		return ErrCheckInPast
	}
	return nil
}

// isDuplicateErr detects unique-constraint violations across drivers:
// MySQL error 1062 in production, string match for anything else.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	var my *mysqldrv.MySQLError
	if errors.As(err, &my) {
		return my.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

// Create prices and persists a pending booking. Availability is the
// caller's concern (checked via RoomService.FindAvailableRooms before
// calling); the create itself is not serialized against concurrent
// bookings for the same type and range.
func (s *BookingService) Create(caller models.Caller, in CreateBookingInput) (*models.Booking, error) {
	if err := validateStayDates(in.CheckInDate, in.CheckOutDate, true); err != nil {
		return nil, err
	}
	if in.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrCapacityExceeded)
	}

	var roomType models.RoomType
	if err := s.DB.First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("db error loading room type: %w", err)
	}
	if roomType.HotelID != in.HotelID {
		return nil, ErrRoomTypeNotFound
	}
	if in.Guests > roomType.Capacity {
		return nil, ErrCapacityExceeded
	}

	nights := nightsBetween(in.CheckInDate, in.CheckOutDate)

	booking := &models.Booking{
		UserID:          caller.ID,
		HotelID:         in.HotelID,
		RoomTypeID:      in.RoomTypeID,
		CheckInDate:     truncateToDate(in.CheckInDate),
		CheckOutDate:    truncateToDate(in.CheckOutDate),
		Nights:          nights,
		Guests:          in.Guests,
		RoomPrice:       roomType.PricePerNight,
		TotalPrice:      roomType.PricePerNight * float64(nights),
		Status:          models.BookingStatusPending,
		SpecialRequests: in.SpecialRequests,
	}

	// Generated codes can collide; retry a few times on the unique index.
	const maxRetries = 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := utils.GenerateBookingCode(time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to generate booking code: %w", err)
		}
		booking.BookingCode = code

		createErr = s.DB.Create(booking).Error
		if createErr == nil {
			break
		}
		if isDuplicateErr(createErr) {
			log.Printf("booking code collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", createErr)
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create booking after retries: %w", createErr)
	}

	if err := s.DB.Preload("User").Preload("Hotel").Preload("RoomType").
		First(booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) get(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}

// Get loads a booking with its relations, enforcing access.
func (s *BookingService) Get(caller models.Caller, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("User").Preload("Hotel").Preload("RoomType").
		Preload("Payment").Preload("Review").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if !caller.CanAccessBooking(&booking) {
		return nil, ErrUnauthorized
	}
	return &booking, nil
}

// Update applies the explicit field set. Regular users may only touch a
// pending booking and never its status; staff may update regardless but
// cannot move a terminal booking back to life.
func (s *BookingService) Update(caller models.Caller, id uint, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessBooking(booking) {
		return nil, ErrUnauthorized
	}

	staff := caller.IsStaffFor(booking.HotelID)
	if in.Status != nil && !staff {
		return nil, ErrUnauthorized
	}
	if !staff && !booking.IsPending() {
		return nil, ErrBookingNotPending
	}

	updates := map[string]interface{}{}
	now := time.Now()

	if in.Status != nil {
		status := *in.Status
		if !models.ValidBookingStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
		}
		if booking.IsTerminal() && status != booking.Status {
			return nil, ErrInvalidTransition
		}
		if status != booking.Status {
			updates["status"] = status
			switch status {
			case models.BookingStatusConfirmed:
				updates["confirmed_at"] = now
			case models.BookingStatusCancelled:
				updates["cancelled_at"] = now
			}
		}
	}

	if in.CheckInDate != nil || in.CheckOutDate != nil {
		ci := booking.CheckInDate
		co := booking.CheckOutDate
		if in.CheckInDate != nil {
			ci = truncateToDate(*in.CheckInDate)
		}
		if in.CheckOutDate != nil {
			co = truncateToDate(*in.CheckOutDate)
		}
		// Only newly supplied check-in dates must be in the future.
		if err := validateStayDates(ci, co, in.CheckInDate != nil); err != nil {
			return nil, err
		}
		nights := nightsBetween(ci, co)
		updates["check_in_date"] = ci
		updates["check_out_date"] = co
		updates["nights"] = nights
		// Recompute from the snapshot price, not the current type price.
		updates["total_price"] = booking.RoomPrice * float64(nights)
	}

	if in.Guests != nil {
		var roomType models.RoomType
		if err := s.DB.First(&roomType, booking.RoomTypeID).Error; err != nil {
			return nil, fmt.Errorf("db error loading room type: %w", err)
		}
		if *in.Guests < 1 || *in.Guests > roomType.Capacity {
			return nil, ErrCapacityExceeded
		}
		updates["guests"] = *in.Guests
	}

	if in.SpecialRequests != nil {
		updates["special_requests"] = *in.SpecialRequests
	}

	if len(updates) > 0 {
		if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	return s.Get(caller, id)
}

// Confirm moves pending → confirmed. Staff only.
func (s *BookingService) Confirm(caller models.Caller, id uint) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaffFor(booking.HotelID) {
		return nil, ErrUnauthorized
	}
	if !booking.IsPending() {
		return nil, ErrInvalidTransition
	}
	if err := s.DB.Model(booking).Updates(map[string]interface{}{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": time.Now(),
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	return s.get(id)
}

// Cancel moves a non-terminal booking to cancelled. Owner or staff.
func (s *BookingService) Cancel(caller models.Caller, id uint) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessBooking(booking) {
		return nil, ErrUnauthorized
	}
	if booking.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	if err := s.DB.Model(booking).Updates(map[string]interface{}{
		"status":       models.BookingStatusCancelled,
		"cancelled_at": time.Now(),
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return s.get(id)
}

// Complete moves confirmed → completed (the stay ended). Staff only;
// completion is what unlocks reviews.
func (s *BookingService) Complete(caller models.Caller, id uint) (*models.Booking, error) {
	booking, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaffFor(booking.HotelID) {
		return nil, ErrUnauthorized
	}
	if !booking.IsConfirmed() {
		return nil, ErrInvalidTransition
	}
	if err := s.DB.Model(booking).
		Update("status", models.BookingStatusCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}
	return s.get(id)
}

// Delete hard-removes a pending booking.
func (s *BookingService) Delete(caller models.Caller, id uint) error {
	booking, err := s.get(id)
	if err != nil {
		return err
	}
	if !caller.CanAccessBooking(booking) {
		return ErrUnauthorized
	}
	if !booking.IsPending() {
		return ErrBookingNotPending
	}
	if err := s.DB.Delete(booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// List returns bookings visible to the caller, newest first. Non-staff
// callers always see only their own.
func (s *BookingService) List(caller models.Caller, f BookingFilters) (utils.Paginated, error) {
	query := s.DB.Model(&models.Booking{}).
		Preload("User").Preload("Hotel").Preload("RoomType").Preload("Payment")

	if caller.IsAdmin() {
		if f.UserID != 0 {
			query = query.Where("user_id = ?", f.UserID)
		}
	} else if caller.IsHotelManager() && f.HotelID != 0 && caller.ManagesHotel(f.HotelID) {
		// managers browsing a managed hotel see every booking of it
	} else {
		query = query.Where("user_id = ?", caller.ID)
	}

	if f.HotelID != 0 && caller.IsStaffFor(f.HotelID) {
		query = query.Where("hotel_id = ?", f.HotelID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("check_in_date >= ?", truncateToDate(*f.StartDate))
	}
	if f.EndDate != nil {
		query = query.Where("check_out_date <= ?", truncateToDate(*f.EndDate))
	}
	if f.Search != "" {
		query = query.Where("booking_code LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count bookings: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&bookings).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve bookings: %w", err)
	}

	return utils.NewPaginated(bookings, f.Page, f.PerPage, total), nil
}
