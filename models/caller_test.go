package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagesHotel(t *testing.T) {
	admin := Caller{ID: 1, Role: RoleAdmin}
	manager := Caller{ID: 2, Role: RoleHotelManager, ManagedHotelIDs: []uint{10, 20}}
	user := Caller{ID: 3, Role: RoleUser}

	assert.True(t, admin.ManagesHotel(99))
	assert.True(t, manager.ManagesHotel(10))
	assert.False(t, manager.ManagesHotel(30))
	assert.False(t, user.ManagesHotel(10))
}

func TestIsStaffFor(t *testing.T) {
	manager := Caller{ID: 2, Role: RoleHotelManager, ManagedHotelIDs: []uint{10}}

	assert.True(t, Caller{Role: RoleAdmin}.IsStaffFor(5))
	assert.True(t, manager.IsStaffFor(10))
	assert.False(t, manager.IsStaffFor(11))
	assert.False(t, Caller{Role: RoleUser}.IsStaffFor(10))
}

func TestCanAccessBooking(t *testing.T) {
	booking := &Booking{UserID: 3, HotelID: 10}

	assert.True(t, Caller{ID: 3, Role: RoleUser}.CanAccessBooking(booking))
	assert.False(t, Caller{ID: 4, Role: RoleUser}.CanAccessBooking(booking))
	assert.True(t, Caller{Role: RoleAdmin}.CanAccessBooking(booking))
	assert.True(t, Caller{ID: 5, Role: RoleHotelManager, ManagedHotelIDs: []uint{10}}.CanAccessBooking(booking))
	assert.False(t, Caller{ID: 5, Role: RoleHotelManager, ManagedHotelIDs: []uint{11}}.CanAccessBooking(booking))
	assert.False(t, Caller{Role: RoleAdmin}.CanAccessBooking(nil))
}
