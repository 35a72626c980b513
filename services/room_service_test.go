package services

import (
	"testing"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailableRoomsOverlap(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	bookings := NewBookingService(db)
	user := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	seedRoom(t, db, rt.ID, "101")
	seedRoom(t, db, rt.ID, "102")

	// occupy days [5, 8)
	_, err := bookings.Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(5), CheckOutDate: futureDate(8), Guests: 1,
	})
	require.NoError(t, err)

	cases := []struct {
		name      string
		in, out   int
		available bool
	}{
		{"inside", 6, 7, false},
		{"spanning", 4, 9, false},
		{"left overlap", 4, 6, false},
		{"right overlap", 7, 10, false},
		{"before", 2, 5, true},       // checkout on their check-in day is fine
		{"after", 8, 10, true},       // check-in on their checkout day is fine
		{"disjoint later", 20, 22, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rooms.FindAvailableRooms(rt.ID, futureDate(tc.in), futureDate(tc.out))
			require.NoError(t, err)
			if tc.available {
				assert.Len(t, got, 2)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFindAvailableRoomsSkipsUnbookable(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	seedRoom(t, db, rt.ID, "101")
	broken := seedRoom(t, db, rt.ID, "102")

	_, err := rooms.UpdateStatus(broken.ID, models.RoomStatusMaintenance, "leaking tap")
	require.NoError(t, err)

	got, err := rooms.FindAvailableRooms(rt.ID, futureDate(1), futureDate(3))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].RoomNumber)
}

func TestFindAvailableRoomsIgnoresCancelled(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	bookings := NewBookingService(db)
	user := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	seedRoom(t, db, rt.ID, "101")

	booking, err := bookings.Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(5), CheckOutDate: futureDate(8), Guests: 1,
	})
	require.NoError(t, err)

	got, err := rooms.FindAvailableRooms(rt.ID, futureDate(6), futureDate(7))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = bookings.Cancel(userCaller(user), booking.ID)
	require.NoError(t, err)

	got, err = rooms.FindAvailableRooms(rt.ID, futureDate(6), futureDate(7))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRoomNumberUniquePerHotel(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	hotelA := seedHotel(t, db)
	hotelB := seedHotel(t, db)
	rtA := seedRoomType(t, db, hotelA.ID, 100, 2)
	rtA2 := seedRoomType(t, db, hotelA.ID, 200, 3)
	rtB := seedRoomType(t, db, hotelB.ID, 100, 2)

	_, err := rooms.Create(CreateRoomInput{RoomTypeID: rtA.ID, RoomNumber: "101"})
	require.NoError(t, err)

	// same number, same hotel, different type: rejected
	_, err = rooms.Create(CreateRoomInput{RoomTypeID: rtA2.ID, RoomNumber: "101"})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	// same number in another hotel is fine
	_, err = rooms.Create(CreateRoomInput{RoomTypeID: rtB.ID, RoomNumber: "101"})
	assert.NoError(t, err)
}

func TestUpdateRoomStatusSyncsAvailability(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	room := seedRoom(t, db, rt.ID, "101")

	updated, err := rooms.UpdateStatus(room.ID, models.RoomStatusOccupied, "")
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	updated, err = rooms.UpdateStatus(room.ID, models.RoomStatusAvailable, "")
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable)
}

func TestDeleteRoomBlockedByActiveBookings(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	bookings := NewBookingService(db)
	user := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)
	room := seedRoom(t, db, rt.ID, "101")

	booking, err := bookings.Create(userCaller(user), CreateBookingInput{
		HotelID: hotel.ID, RoomTypeID: rt.ID,
		CheckInDate: futureDate(1), CheckOutDate: futureDate(2), Guests: 1,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.Delete(room.ID), ErrRoomHasBookings)

	_, err = bookings.Cancel(userCaller(user), booking.ID)
	require.NoError(t, err)
	assert.NoError(t, rooms.Delete(room.ID))
}

func TestRoomStatistics(t *testing.T) {
	db := openTestDB(t)
	rooms := NewRoomService(db)
	hotel := seedHotel(t, db)
	rt := seedRoomType(t, db, hotel.ID, 100, 2)

	seedRoom(t, db, rt.ID, "101")
	seedRoom(t, db, rt.ID, "102")
	occupied := seedRoom(t, db, rt.ID, "103")
	broken := seedRoom(t, db, rt.ID, "104")

	_, err := rooms.UpdateStatus(occupied.ID, models.RoomStatusOccupied, "")
	require.NoError(t, err)
	_, err = rooms.UpdateStatus(broken.ID, models.RoomStatusMaintenance, "")
	require.NoError(t, err)

	stats, err := rooms.Statistics(hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalRooms)
	assert.Equal(t, int64(2), stats.AvailableRooms)
	assert.Equal(t, int64(1), stats.OccupiedRooms)
	assert.Equal(t, int64(1), stats.MaintenanceRooms)
	assert.Equal(t, 25.0, stats.OccupancyRate)
}
