package services

import (
	"testing"

	"hotel-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterForcesUserRole(t *testing.T) {
	db := openTestDB(t)
	users := NewUserService(db)

	user, err := users.Register(RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.Test",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "alice@example.test", user.Email)
	assert.NotEqual(t, "supersecret", user.Password)

	// duplicate email
	_, err = users.Register(RegisterInput{
		Name:     "Impostor",
		Email:    "alice@example.test",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	users := NewUserService(db)

	_, err := users.Register(RegisterInput{
		Name: "Bob", Email: "bob@example.test", Password: "supersecret",
	})
	require.NoError(t, err)

	user, token, err := users.Login("bob@example.test", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "bob@example.test", user.Email)

	_, _, err = users.Login("bob@example.test", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email looks identical to a wrong password
	_, _, err = users.Login("nobody@example.test", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminUpdateRoleAndHotels(t *testing.T) {
	db := openTestDB(t)
	users := NewUserService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)
	hotel := seedHotel(t, db)

	role := models.RoleHotelManager
	hotelIDs := []uint{hotel.ID}
	updated, err := users.AdminUpdate(adminCaller(admin), target.ID, AdminUpdateUserInput{
		Role:            &role,
		ManagedHotelIDs: &hotelIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHotelManager, updated.Role)
	require.Len(t, updated.ManagedHotels, 1)
	assert.Equal(t, hotel.ID, updated.ManagedHotels[0].ID)

	caller, err := users.CallerFor(target.ID)
	require.NoError(t, err)
	assert.True(t, caller.ManagesHotel(hotel.ID))

	// non-admins cannot use the admin update
	_, err = users.AdminUpdate(userCaller(target), admin.ID, AdminUpdateUserInput{Role: &role})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// unknown hotel id is rejected
	bad := []uint{9999}
	_, err = users.AdminUpdate(adminCaller(admin), target.ID, AdminUpdateUserInput{ManagedHotelIDs: &bad})
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	db := openTestDB(t)
	users := NewUserService(db)
	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)

	assert.ErrorIs(t, users.Delete(adminCaller(admin), admin.ID), ErrSelfDelete)
	assert.NoError(t, users.Delete(adminCaller(admin), target.ID))
	assert.ErrorIs(t, users.Delete(adminCaller(admin), target.ID), ErrUserNotFound)
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	db := openTestDB(t)
	users := NewUserService(db)
	user := seedUser(t, db, models.RoleUser)

	name := "New Name"
	phone := "+62-812-000"
	updated, err := users.UpdateProfile(user.ID, UpdateProfileInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "+62-812-000", updated.Phone)
	assert.Equal(t, models.RoleUser, updated.Role)
}
