package services

import (
	"testing"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// bookingFixture creates a pending booking worth 300 (100/night x 3).
func bookingFixture(t *testing.T, db *gorm.DB, user *models.User) *models.Booking {
	t.Helper()
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	booking, err := NewBookingService(db).Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(1), CheckOutDate: futureDate(4), Guests: 2,
	})
	require.NoError(t, err)
	return booking
}

func TestCreatePaymentValidations(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	user := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)
	booking := bookingFixture(t, db, user)

	// strangers cannot pay for someone else's booking
	_, err := payments.Create(userCaller(stranger), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// amount must match the booking total
	_, err = payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 299,
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	// one payment per booking
	_, err = payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCash, Amount: 300,
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestMarkAsPaidConfirmsBooking(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodBankTransfer, Amount: 300,
	})
	require.NoError(t, err)

	paid, err := payments.MarkAsPaid(adminCaller(admin), payment.ID, "TXN-123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, "TXN-123", paid.TransactionID)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, reloaded.Status)
	assert.NotNil(t, reloaded.ConfirmedAt)

	// settling twice fails
	_, err = payments.MarkAsPaid(adminCaller(admin), payment.ID, "TXN-124")
	assert.ErrorIs(t, err, ErrPaymentNotPending)
}

func TestMarkAsFailedLeavesBookingAlone(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodEWallet, Amount: 300,
	})
	require.NoError(t, err)

	failed, err := payments.MarkAsFailed(adminCaller(admin), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, failed.Status)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingStatusPending, reloaded.Status)

	_, err = payments.MarkAsFailed(adminCaller(admin), payment.ID)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
}

func TestMarkAsRefundedCancelsBooking(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	require.NoError(t, err)

	// refunding an unpaid payment fails
	_, err = payments.MarkAsRefunded(adminCaller(admin), payment.ID)
	assert.ErrorIs(t, err, ErrPaymentNotPaid)

	_, err = payments.MarkAsPaid(adminCaller(admin), payment.ID, "")
	require.NoError(t, err)

	refunded, err := payments.MarkAsRefunded(adminCaller(admin), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.Status)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, reloaded.Status)
	assert.NotNil(t, reloaded.CancelledAt)
}

func TestRefundCancelsEvenCompletedBooking(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	bookings := NewBookingService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	require.NoError(t, err)
	_, err = payments.MarkAsPaid(adminCaller(admin), payment.ID, "")
	require.NoError(t, err)

	_, err = bookings.Complete(adminCaller(admin), booking.ID)
	require.NoError(t, err)

	// refunds override the terminal completed state
	_, err = payments.MarkAsRefunded(adminCaller(admin), payment.ID)
	require.NoError(t, err)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, reloaded.Status)
}

func TestSettlementScopedToManagedHotel(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	bookings := NewBookingService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	manager := seedUser(t, db, models.RoleHotelManager)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	require.NoError(t, err)

	// a manager of an unrelated hotel cannot touch this payment
	outsider := managerCaller(manager, booking.HotelID+1)
	_, err = payments.MarkAsPaid(outsider, payment.ID, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = payments.MarkAsFailed(outsider, payment.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// nor refund it after settlement, even once the booking completed
	owner := managerCaller(manager, booking.HotelID)
	_, err = payments.MarkAsPaid(owner, payment.ID, "")
	require.NoError(t, err)
	_, err = bookings.Complete(adminCaller(admin), booking.ID)
	require.NoError(t, err)

	_, err = payments.MarkAsRefunded(outsider, payment.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, reloaded.Status)

	// the managing manager can
	refunded, err := payments.MarkAsRefunded(owner, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.Status)
}

func TestListPaymentsScopedToManagedHotels(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	userA := seedUser(t, db, models.RoleUser)
	userB := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	manager := seedUser(t, db, models.RoleHotelManager)
	bookingA := bookingFixture(t, db, userA)
	bookingB := bookingFixture(t, db, userB)

	_, err := payments.Create(userCaller(userA), CreatePaymentInput{
		BookingID: bookingA.ID, PaymentMethod: models.PaymentMethodCash, Amount: 300,
	})
	require.NoError(t, err)
	_, err = payments.Create(userCaller(userB), CreatePaymentInput{
		BookingID: bookingB.ID, PaymentMethod: models.PaymentMethodCash, Amount: 300,
	})
	require.NoError(t, err)

	all, err := payments.List(adminCaller(admin), PaymentFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	scoped, err := payments.List(managerCaller(manager, bookingA.HotelID), PaymentFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), scoped.Total)

	none, err := payments.List(managerCaller(manager), PaymentFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Total)
}

func TestUpdatePaymentOnlyWhilePending(t *testing.T) {
	db := openTestDB(t)
	payments := NewPaymentService(db)
	user := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	booking := bookingFixture(t, db, user)

	payment, err := payments.Create(userCaller(user), CreatePaymentInput{
		BookingID: booking.ID, PaymentMethod: models.PaymentMethodCreditCard, Amount: 300,
	})
	require.NoError(t, err)

	method := models.PaymentMethodBankTransfer
	updated, err := payments.Update(userCaller(user), payment.ID, UpdatePaymentInput{PaymentMethod: &method})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodBankTransfer, updated.PaymentMethod)

	_, err = payments.MarkAsPaid(adminCaller(admin), payment.ID, "")
	require.NoError(t, err)

	cash := models.PaymentMethodCash
	_, err = payments.Update(userCaller(user), payment.ID, UpdatePaymentInput{PaymentMethod: &cash})
	assert.ErrorIs(t, err, ErrPaymentNotPending)
}
