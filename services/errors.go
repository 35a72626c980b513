package services

import "errors"

// Business-rule sentinels. Controllers translate these with errors.Is:
// not-found → 404, unauthorized → 403, everything else here → 422.
var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrUnauthorized = errors.New("unauthorized access")

	ErrCapacityExceeded    = errors.New("number of guests exceeds room capacity")
	ErrInvalidDateRange    = errors.New("check-out date must be after check-in date")
	ErrCheckInPast         = errors.New("check-in date must be today or later")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrBookingNotPending   = errors.New("booking is not pending")
	ErrDuplicatePayment    = errors.New("booking already has a payment")
	ErrAmountMismatch      = errors.New("payment amount does not match booking total")
	ErrPaymentNotPending   = errors.New("payment is not pending")
	ErrPaymentNotPaid      = errors.New("payment is not paid")
	ErrNotOwner            = errors.New("you can only review your own bookings")
	ErrBookingNotCompleted = errors.New("you can only review completed bookings")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
	ErrRoomNumberTaken     = errors.New("room number already exists in this hotel")
	ErrRoomHasBookings     = errors.New("cannot delete room with active bookings")
	ErrEmailTaken          = errors.New("email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSelfDelete          = errors.New("cannot delete own account")
)
