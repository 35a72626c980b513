package services

import (
	"testing"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomTypeAuthorization(t *testing.T) {
	db := openTestDB(t)
	roomTypes := NewRoomTypeService(db)
	manager := seedUser(t, db, models.RoleHotelManager)
	user := seedUser(t, db, models.RoleUser)
	managed := seedHotel(t, db)
	other := seedHotel(t, db)

	_, err := roomTypes.Create(userCaller(user), CreateRoomTypeInput{
		HotelID: managed.ID, Name: "Deluxe", PricePerNight: 100, Capacity: 2,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = roomTypes.Create(managerCaller(manager, managed.ID), CreateRoomTypeInput{
		HotelID: other.ID, Name: "Deluxe", PricePerNight: 100, Capacity: 2,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	rt, err := roomTypes.Create(managerCaller(manager, managed.ID), CreateRoomTypeInput{
		HotelID: managed.ID, Name: "Deluxe", PricePerNight: 100, Capacity: 2,
	})
	require.NoError(t, err)
	assert.True(t, rt.IsAvailable)
	assert.Equal(t, managed.ID, rt.HotelID)
}

func TestUpdateRoomTypeKeepsBookingSnapshots(t *testing.T) {
	db := openTestDB(t)
	roomTypes := NewRoomTypeService(db)
	bookings := NewBookingService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	user := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)

	booking, err := bookings.Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(1), CheckOutDate: futureDate(3), Guests: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 200.0, booking.TotalPrice)

	price := 500.0
	_, err = roomTypes.Update(adminCaller(admin), rt.ID, UpdateRoomTypeInput{PricePerNight: &price})
	require.NoError(t, err)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, 100.0, reloaded.RoomPrice)
	assert.Equal(t, 200.0, reloaded.TotalPrice)
}

func TestDeleteRoomTypeBlockedByActiveBookings(t *testing.T) {
	db := openTestDB(t)
	roomTypes := NewRoomTypeService(db)
	bookings := NewBookingService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	user := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)

	booking, err := bookings.Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(1), CheckOutDate: futureDate(2), Guests: 1,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, roomTypes.Delete(adminCaller(admin), rt.ID), ErrRoomHasBookings)

	_, err = bookings.Cancel(userCaller(user), booking.ID)
	require.NoError(t, err)
	assert.NoError(t, roomTypes.Delete(adminCaller(admin), rt.ID))
}

func TestListRoomTypesFilters(t *testing.T) {
	db := openTestDB(t)
	roomTypes := NewRoomTypeService(db)
	hotel := seedHotel(t, db)
	seedRoomType(t, db, hotel.ID, 100, 2)
	seedRoomType(t, db, hotel.ID, 400, 4)
	unavailable := seedRoomType(t, db, hotel.ID, 250, 2)
	require.NoError(t, db.Model(unavailable).Update("is_available", false).Error)

	all, err := roomTypes.List(RoomTypeFilters{HotelID: hotel.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	available, err := roomTypes.List(RoomTypeFilters{HotelID: hotel.ID, AvailableOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), available.Total)

	cheap, err := roomTypes.List(RoomTypeFilters{HotelID: hotel.ID, MaxPrice: 150})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cheap.Total)

	large, err := roomTypes.List(RoomTypeFilters{HotelID: hotel.ID, Capacity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), large.Total)
}
