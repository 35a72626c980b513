package services

import (
	"testing"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHotelAdminOnly(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	user := seedUser(t, db, models.RoleUser)

	_, err := hotels.Create(userCaller(user), CreateHotelInput{Name: "Nope", Address: "x", City: "y"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	hotel, err := hotels.Create(adminCaller(admin), CreateHotelInput{
		Name:       "Seaside",
		Address:    "Beach Rd 1",
		City:       "Denpasar",
		Facilities: []string{"wifi", "pool"},
	})
	require.NoError(t, err)
	assert.True(t, hotel.IsActive)
	assert.Equal(t, 0.0, hotel.Rating)
	assert.Equal(t, 0, hotel.TotalReviews)
	assert.Equal(t, "14:00", hotel.CheckInTime)
	assert.Equal(t, "12:00", hotel.CheckOutTime)
}

func TestUpdateHotelManagerScope(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)
	manager := seedUser(t, db, models.RoleHotelManager)
	managed := seedHotel(t, db)
	other := seedHotel(t, db)

	name := "Renamed"
	_, err := hotels.Update(managerCaller(manager, managed.ID), other.ID, UpdateHotelInput{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err := hotels.Update(managerCaller(manager, managed.ID), managed.ID, UpdateHotelInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	// managers cannot toggle is_active
	inactive := false
	_, err = hotels.Update(managerCaller(manager, managed.ID), managed.ID, UpdateHotelInput{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListHotelsFilters(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)

	require.NoError(t, db.Create(&models.Hotel{Name: "Alpha", Address: "a", City: "Jakarta", IsActive: true, Rating: 4.5}).Error)
	require.NoError(t, db.Create(&models.Hotel{Name: "Beta", Address: "b", City: "Bandung", IsActive: true, Rating: 3.0}).Error)
	require.NoError(t, db.Create(&models.Hotel{Name: "Hidden", Address: "c", City: "Jakarta", IsActive: false}).Error)

	active, err := hotels.List(HotelFilters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), active.Total)

	jakarta, err := hotels.List(HotelFilters{ActiveOnly: true, City: "Jakarta"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), jakarta.Total)

	rated, err := hotels.List(HotelFilters{ActiveOnly: true, MinRating: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rated.Total)

	all, err := hotels.List(HotelFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}

func TestSearchHotelsByRoomConstraints(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)

	cheap := seedHotel(t, db)
	seedRoomType(t, db, cheap.ID, 200, 2)
	pricey := seedHotel(t, db)
	seedRoomType(t, db, pricey.ID, 900, 4)
	empty := seedHotel(t, db)
	_ = empty // no room types, never matches

	result, err := hotels.Search(HotelSearchInput{MaxPrice: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = hotels.Search(HotelSearchInput{Capacity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)

	result, err = hotels.Search(HotelSearchInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestCities(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)

	for _, city := range []string{"Jakarta", "Bandung", "Jakarta"} {
		require.NoError(t, db.Create(&models.Hotel{Name: "H " + city, Address: "x", City: city, IsActive: true}).Error)
	}

	cities, err := hotels.Cities()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bandung", "Jakarta"}, cities)
}

func TestDeleteHotelAdminOnly(t *testing.T) {
	db := openTestDB(t)
	hotels := NewHotelService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	manager := seedUser(t, db, models.RoleHotelManager)
	hotel := seedHotel(t, db)

	assert.ErrorIs(t, hotels.Delete(managerCaller(manager, hotel.ID), hotel.ID), ErrUnauthorized)
	assert.NoError(t, hotels.Delete(adminCaller(admin), hotel.ID))
	assert.ErrorIs(t, hotels.Delete(adminCaller(admin), hotel.ID), ErrHotelNotFound)
}
