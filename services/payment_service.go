package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentService couples payment outcomes to the booking state machine:
// paid → booking confirmed, refunded → booking cancelled.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type CreatePaymentInput struct {
	BookingID      uint
	PaymentMethod  string
	Amount         float64
	PaymentDetails datatypes.JSON
}

type UpdatePaymentInput struct {
	PaymentMethod  *string
	PaymentDetails *datatypes.JSON
	TransactionID  *string
}

type PaymentFilters struct {
	Status        string
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	PerPage       int
}

// amountsEqual compares monetary values to the cent.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// Create opens a pending payment for a booking the caller may access.
// One payment per booking, amount must equal the booking total exactly.
func (s *PaymentService) Create(caller models.Caller, in CreatePaymentInput) (*models.Payment, error) {
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("invalid payment method %q", in.PaymentMethod)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, in.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("db error loading booking: %w", err)
	}
	if !caller.CanAccessBooking(&booking) {
		return nil, ErrUnauthorized
	}

	var existing int64
	if err := s.DB.Model(&models.Payment{}).
		Where("booking_id = ?", in.BookingID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicatePayment
	}

	if !amountsEqual(in.Amount, booking.TotalPrice) {
		return nil, ErrAmountMismatch
	}

	payment := &models.Payment{
		BookingID:      in.BookingID,
		PaymentMethod:  in.PaymentMethod,
		Amount:         in.Amount,
		Status:         models.PaymentStatusPending,
		PaymentDetails: in.PaymentDetails,
	}
	if err := s.DB.Create(payment).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return s.get(payment.ID)
}

func (s *PaymentService) get(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Booking").Preload("Booking.User").Preload("Booking.Hotel").
		First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return &payment, nil
}

func (s *PaymentService) Get(caller models.Caller, id uint) (*models.Payment, error) {
	payment, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccessBooking(&payment.Booking) {
		return nil, ErrUnauthorized
	}
	return payment, nil
}

// Update edits method/details/transaction id while the payment is still
// pending. Status never moves through here.
func (s *PaymentService) Update(caller models.Caller, id uint, in UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.Get(caller, id)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, ErrPaymentNotPending
	}

	updates := map[string]interface{}{}
	if in.PaymentMethod != nil {
		if !models.ValidPaymentMethod(*in.PaymentMethod) {
			return nil, fmt.Errorf("invalid payment method %q", *in.PaymentMethod)
		}
		updates["payment_method"] = *in.PaymentMethod
	}
	if in.PaymentDetails != nil {
		updates["payment_details"] = *in.PaymentDetails
	}
	if in.TransactionID != nil {
		updates["transaction_id"] = *in.TransactionID
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Payment{}).Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update payment: %w", err)
		}
	}
	return s.get(id)
}

// MarkAsPaid settles a pending payment and, in the same transaction,
// confirms the owning booking. This is the one place a booking is
// auto-confirmed without an explicit Confirm call. Staff of the owning
// hotel only.
func (s *PaymentService) MarkAsPaid(caller models.Caller, id uint, transactionID string) (*models.Payment, error) {
	current, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaffFor(current.Booking.HotelID) {
		return nil, ErrUnauthorized
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if !payment.IsPending() {
			return ErrPaymentNotPending
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":  models.PaymentStatusPaid,
			"paid_at": now,
		}
		if transactionID != "" {
			updates["transaction_id"] = transactionID
		}
		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":       models.BookingStatusConfirmed,
				"confirmed_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.get(id)
}

// MarkAsFailed fails a pending payment. No booking side effect. Staff of
// the owning hotel only.
func (s *PaymentService) MarkAsFailed(caller models.Caller, id uint) (*models.Payment, error) {
	payment, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaffFor(payment.Booking.HotelID) {
		return nil, ErrUnauthorized
	}
	if !payment.IsPending() {
		return nil, ErrPaymentNotPending
	}
	if err := s.DB.Model(&models.Payment{}).Where("id = ?", id).
		Update("status", models.PaymentStatusFailed).Error; err != nil {
		return nil, fmt.Errorf("failed to mark payment failed: %w", err)
	}
	return s.get(id)
}

// MarkAsRefunded refunds a paid payment and cancels the owning booking in
// the same transaction. This deliberately overrides terminal-state
// immutability: a refund cancels even a completed booking, since money
// went back regardless of how the stay ended. Staff of the owning hotel
// only.
func (s *PaymentService) MarkAsRefunded(caller models.Caller, id uint) (*models.Payment, error) {
	current, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !caller.IsStaffFor(current.Booking.HotelID) {
		return nil, ErrUnauthorized
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if !payment.IsPaid() {
			return ErrPaymentNotPaid
		}

		if err := tx.Model(&payment).
			Update("status", models.PaymentStatusRefunded).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":       models.BookingStatusCancelled,
				"cancelled_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.get(id)
}

// List is the staff payment overview. Managers see only payments of
// bookings in their hotels; admins see everything.
func (s *PaymentService) List(caller models.Caller, f PaymentFilters) (utils.Paginated, error) {
	query := s.DB.Model(&models.Payment{}).
		Preload("Booking").Preload("Booking.User").Preload("Booking.Hotel")

	if !caller.IsAdmin() {
		if len(caller.ManagedHotelIDs) == 0 {
			return utils.NewPaginated([]models.Payment{}, 1, utils.DefaultPerPage, 0), nil
		}
		query = query.Where(
			"booking_id IN (SELECT id FROM bookings WHERE hotel_id IN ? AND deleted_at IS NULL)",
			caller.ManagedHotelIDs)
	}

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.PaymentMethod != "" {
		query = query.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.StartDate != nil {
		query = query.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to count payments: %w", err)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = utils.DefaultPerPage
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").
		Scopes(utils.Paginate(f.Page, f.PerPage)).
		Find(&payments).Error; err != nil {
		return utils.Paginated{}, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	return utils.NewPaginated(payments, f.Page, f.PerPage, total), nil
}
